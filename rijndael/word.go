package rijndael

import "github.com/cloudapex/aes128/gf"

// Word 4字节字,既是密钥编排单元,也是状态矩阵的一列
type Word [4]byte

// Rol 循环左移一个字节
func (w Word) Rol() Word { return Word{w[1], w[2], w[3], w[0]} }

// Sub 逐字节S盒替换
func (w Word) Sub() Word {
	return Word{sbox[w[0]], sbox[w[1]], sbox[w[2]], sbox[w[3]]}
}

// InvSub 逐字节逆S盒替换
func (w Word) InvSub() Word {
	return Word{sboxInv[w[0]], sboxInv[w[1]], sboxInv[w[2]], sboxInv[w[3]]}
}

// Xor 逐字节异或
func (w Word) Xor(o Word) Word {
	return Word{w[0] ^ o[0], w[1] ^ o[1], w[2] ^ o[2], w[3] ^ o[3]}
}

// mix 列混合: 循环矩阵 {2,3,1,1}
func (w Word) mix() Word {
	return Word{
		gf.Mul(w[0], 2) ^ gf.Mul(w[1], 3) ^ w[2] ^ w[3],
		w[0] ^ gf.Mul(w[1], 2) ^ gf.Mul(w[2], 3) ^ w[3],
		w[0] ^ w[1] ^ gf.Mul(w[2], 2) ^ gf.Mul(w[3], 3),
		gf.Mul(w[0], 3) ^ w[1] ^ w[2] ^ gf.Mul(w[3], 2),
	}
}

// invMix 逆列混合: 循环矩阵 {0e,0b,0d,09}
func (w Word) invMix() Word {
	return Word{
		gf.Mul(w[0], 0x0e) ^ gf.Mul(w[1], 0x0b) ^ gf.Mul(w[2], 0x0d) ^ gf.Mul(w[3], 0x09),
		gf.Mul(w[0], 0x09) ^ gf.Mul(w[1], 0x0e) ^ gf.Mul(w[2], 0x0b) ^ gf.Mul(w[3], 0x0d),
		gf.Mul(w[0], 0x0d) ^ gf.Mul(w[1], 0x09) ^ gf.Mul(w[2], 0x0e) ^ gf.Mul(w[3], 0x0b),
		gf.Mul(w[0], 0x0b) ^ gf.Mul(w[1], 0x0d) ^ gf.Mul(w[2], 0x09) ^ gf.Mul(w[3], 0x0e),
	}
}
