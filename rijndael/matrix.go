package rijndael

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

const (
	// BlockSize 分组长度(字节)
	BlockSize = 16

	// KeySize 密钥长度(字节)
	KeySize = 16
)

// Matrix 4x4字节矩阵,按列存储: 第r行第c列的字节为 m[c][r]
type Matrix [4]Word

// State 加解密过程中的工作状态
type State = Matrix

// Key 一个128位轮密钥
type Key = Matrix

// ParseMatrix 从16字节序列按列解析矩阵
func ParseMatrix(b []byte) (Matrix, error) {
	var m Matrix
	if len(b) != BlockSize {
		return m, blockLengthError(len(b))
	}
	for c := 0; c < 4; c++ {
		copy(m[c][:], b[c*4:c*4+4])
	}
	return m, nil
}

// MustParse 从32位十六进制字符串解析矩阵,出错panic(用于常量和测试)
func MustParse(s string) Matrix {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	m, err := ParseMatrix(b)
	if err != nil {
		panic(err)
	}
	return m
}

// Serialize 按列序列化为16字节, ParseMatrix(m.Serialize()) == m
func (m Matrix) Serialize() [BlockSize]byte {
	var b [BlockSize]byte
	for c := 0; c < 4; c++ {
		copy(b[c*4:], m[c][:])
	}
	return b
}

// Bytes 同Serialize,返回切片
func (m Matrix) Bytes() []byte {
	b := m.Serialize()
	return b[:]
}

// At 取第row行第col列的字节
func (m Matrix) At(row, col int) byte { return m[col][row] }

// Xor 逐列异或
func (m Matrix) Xor(o Matrix) Matrix {
	return Matrix{m[0].Xor(o[0]), m[1].Xor(o[1]), m[2].Xor(o[2]), m[3].Xor(o[3])}
}

// String 小写十六进制
func (m Matrix) String() string { return hex.EncodeToString(m.Bytes()) }

// SplitStates 把长度为16整数倍的字节序列切分为状态序列
func SplitStates(b []byte) ([]State, error) {
	if len(b)%BlockSize != 0 {
		return nil, errors.Wrapf(ErrInvalidBlockLength, "%d bytes is not a multiple of %d", len(b), BlockSize)
	}
	states := make([]State, len(b)/BlockSize)
	for i := range states {
		states[i], _ = ParseMatrix(b[i*BlockSize : (i+1)*BlockSize])
	}
	return states, nil
}

// JoinStates 按顺序拼接状态序列
func JoinStates(states []State) []byte {
	b := make([]byte, 0, len(states)*BlockSize)
	for _, s := range states {
		b = append(b, s.Bytes()...)
	}
	return b
}
