// Copyright 2021 aes128 Author. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package gf 有限域GF(2^8)运算(约化多项式 x^8+x^4+x^3+x+1)
package gf

const (
	// Poly 约化多项式 x^8+x^4+x^3+x+1
	Poly = 0x11b

	// Generator 乘法群生成元
	Generator = 0x03

	// order 乘法群阶
	order = 255
)

// 对数/反对数表,按高低半字节索引: table[a>>4][a&0xF]
// 进程启动时生成一次,之后只读
var (
	expTable [16][16]byte // Generator^i
	logTable [16][16]byte // log_Generator(a), logTable[0]无意义
)

func init() {
	x := uint16(1)
	for i := 0; i <= order; i++ {
		expTable[i>>4][i&0xF] = byte(x)
		if i < order {
			logTable[x>>4][x&0xF] = byte(i)
		}
		// x *= 3 即 x*2 ^ x
		x ^= x << 1
		if x&0x100 != 0 {
			x ^= Poly
		}
	}
}

// Exp 生成元的i次幂(i取值0..255, Exp(255) == Exp(0) == 1)
func Exp(i byte) byte {
	return expTable[i>>4][i&0xF]
}

// Log 以生成元为底的离散对数(Log(0)无定义,返回0)
func Log(a byte) byte {
	return logTable[a>>4][a&0xF]
}

// Add 有限域加法(异或)
func Add(a, b byte) byte {
	return a ^ b
}

// Mul 有限域乘法: 对数相加,超过255则减255,再取反对数
func Mul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	sum := uint16(Log(a)) + uint16(Log(b))
	if sum > order {
		sum -= order
	}
	return Exp(byte(sum))
}

// Inverse 乘法逆元, 约定Inverse(0) == 0
func Inverse(a byte) byte {
	if a == 0 {
		return 0
	}
	return Exp(order - Log(a))
}
