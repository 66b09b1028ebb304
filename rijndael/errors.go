package rijndael

import "github.com/pkg/errors"

var (
	// ErrInvalidKeyLength 密钥长度不是16字节
	ErrInvalidKeyLength = errors.New("rijndael: invalid key length")

	// ErrInvalidBlockLength 状态块长度不是16字节
	ErrInvalidBlockLength = errors.New("rijndael: invalid block length")
)

func keyLengthError(n int) error {
	return errors.Wrapf(ErrInvalidKeyLength, "got %d bytes, want %d", n, KeySize)
}

func blockLengthError(n int) error {
	return errors.Wrapf(ErrInvalidBlockLength, "got %d bytes, want %d", n, BlockSize)
}
