package rijndael

// Rounds AES-128轮数
const Rounds = 10

// KeySchedule 轮密钥0..10, 第0个即原始密钥; 构建后只读,可并发共享
type KeySchedule [Rounds + 1]Key

// ExpandKey 由16字节密钥迭代生成11个轮密钥
func ExpandKey(key []byte) (*KeySchedule, error) {
	if len(key) != KeySize {
		return nil, keyLengthError(len(key))
	}

	ks := new(KeySchedule)
	ks[0], _ = ParseMatrix(key)
	for i := 1; i <= Rounds; i++ {
		p := ks[i-1]

		// g(): rol -> ssub -> 首字节异或rcon
		t := p[3].Rol().Sub()
		t[0] ^= rcon[i-1]

		var k Key
		k[0] = p[0].Xor(t)
		k[1] = k[0].Xor(p[1])
		k[2] = k[1].Xor(p[2])
		k[3] = k[2].Xor(p[3])
		ks[i] = k
	}
	return ks, nil
}

// RoundKey 第i个轮密钥
func (ks *KeySchedule) RoundKey(i int) Key { return ks[i] }
