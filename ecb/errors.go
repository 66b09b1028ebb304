package ecb

import "github.com/pkg/errors"

var (
	// ErrPadding 去除填充后末字节不是0x01(密文损坏或密钥不匹配)
	ErrPadding = errors.New("ecb: bad padding")

	// ErrEmptyCiphertext 解密输入为0个分组
	ErrEmptyCiphertext = errors.New("ecb: empty ciphertext")

	// ErrBlockLength 密文长度不是分组长度的整数倍
	ErrBlockLength = errors.New("ecb: input not full blocks")
)
