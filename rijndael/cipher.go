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

// Package rijndael AES-128分组密码(密钥编排,轮变换,单分组加解密)
//
// 只实现FIPS-197中的AES-128, 不做常量时间处理.
package rijndael

import "crypto/cipher"

// Cipher 持有一份只读的密钥编排, 可被多个goroutine同时使用
type Cipher struct {
	ks *KeySchedule
}

var _ cipher.Block = (*Cipher)(nil)

// NewCipher 创建AES-128实例(key必须为16字节)
func NewCipher(key []byte) (*Cipher, error) {
	ks, err := ExpandKey(key)
	if err != nil {
		return nil, err
	}
	return &Cipher{ks: ks}, nil
}

// Schedule 密钥编排
func (c *Cipher) Schedule() *KeySchedule { return c.ks }

// EncryptState 加密一个状态块
func (c *Cipher) EncryptState(s State) State {
	// 轮密钥0..8: 注入 -> SubBytes -> ShiftRows -> MixColumns
	for i := 0; i <= Rounds-2; i++ {
		s = MixColumns(ShiftRows(SubBytes(AddRoundKey(s, c.ks[i]))))
	}

	// 末轮无MixColumns
	s = ShiftRows(SubBytes(AddRoundKey(s, c.ks[Rounds-1])))
	return AddRoundKey(s, c.ks[Rounds])
}

// DecryptState 解密一个状态块(EncryptState的逆序镜像)
func (c *Cipher) DecryptState(s State) State {
	s = InvSubBytes(InvShiftRows(AddRoundKey(s, c.ks[Rounds])))
	for i := Rounds - 1; i >= 1; i-- {
		s = InvSubBytes(InvShiftRows(InvMixColumns(AddRoundKey(s, c.ks[i]))))
	}
	return AddRoundKey(s, c.ks[0])
}

// BlockSize cipher.Block
func (c *Cipher) BlockSize() int { return BlockSize }

// Encrypt cipher.Block, dst和src可以重叠
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("rijndael: input not full block")
	}
	if len(dst) < BlockSize {
		panic("rijndael: output not full block")
	}
	s, _ := ParseMatrix(src[:BlockSize])
	out := c.EncryptState(s).Serialize()
	copy(dst, out[:])
}

// Decrypt cipher.Block, dst和src可以重叠
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("rijndael: input not full block")
	}
	if len(dst) < BlockSize {
		panic("rijndael: output not full block")
	}
	s, _ := ParseMatrix(src[:BlockSize])
	out := c.DecryptState(s).Serialize()
	copy(dst, out[:])
}
