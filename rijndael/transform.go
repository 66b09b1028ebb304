package rijndael

// 轮变换: 全部为值进值出的纯函数

// AddRoundKey 状态与轮密钥异或(自逆)
func AddRoundKey(s State, k Key) State { return s.Xor(k) }

// SubBytes 逐字节S盒替换
func SubBytes(s State) State {
	return State{s[0].Sub(), s[1].Sub(), s[2].Sub(), s[3].Sub()}
}

// InvSubBytes 逐字节逆S盒替换
func InvSubBytes(s State) State {
	return State{s[0].InvSub(), s[1].InvSub(), s[2].InvSub(), s[3].InvSub()}
}

// ShiftRows 第r行循环左移r位
func ShiftRows(s State) State {
	var o State
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			o[c][r] = s[(c+r)%4][r]
		}
	}
	return o
}

// InvShiftRows 第r行循环右移r位
func InvShiftRows(s State) State {
	var o State
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			o[c][r] = s[(c-r+4)%4][r]
		}
	}
	return o
}

// MixColumns 每列左乘固定矩阵
func MixColumns(s State) State {
	return State{s[0].mix(), s[1].mix(), s[2].mix(), s[3].mix()}
}

// InvMixColumns 每列左乘逆矩阵
func InvMixColumns(s State) State {
	return State{s[0].invMix(), s[1].invMix(), s[2].invMix(), s[3].invMix()}
}
