package rijndael

import (
	"math/bits"

	"github.com/cloudapex/aes128/gf"
)

// rcon 轮常量(只作用于字的首字节)
var rcon = [Rounds]byte{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80, 0x1b, 0x36}

// S盒及其逆,进程启动时由GF(2^8)逆元+仿射变换生成一次
var (
	sbox    [256]byte
	sboxInv [256]byte
)

func init() {
	for i := 0; i < 256; i++ {
		s := affine(gf.Inverse(byte(i)))
		sbox[i] = s
		sboxInv[s] = byte(i)
	}
}

// affine b ^ rotl(b,1) ^ rotl(b,2) ^ rotl(b,3) ^ rotl(b,4) ^ 0x63
func affine(b byte) byte {
	return b ^
		bits.RotateLeft8(b, 1) ^
		bits.RotateLeft8(b, 2) ^
		bits.RotateLeft8(b, 3) ^
		bits.RotateLeft8(b, 4) ^ 0x63
}

// SBox 正向字节替换
func SBox(x byte) byte { return sbox[x] }

// InvSBox 逆向字节替换
func InvSBox(x byte) byte { return sboxInv[x] }

// Rcon 第round轮(1..10)的轮常量
func Rcon(round int) byte { return rcon[round-1] }
