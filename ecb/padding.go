package ecb

import (
	"github.com/cloudapex/aes128/rijndael"
	"github.com/pkg/errors"
)

// Marker 真实数据之后的填充标记字节, 其后全部补0x00
const Marker = 0x01

// PaddedLen 填充后的长度: n + 16 - n%16 (n对齐时也会多出一整个分组)
func PaddedLen(n int) int {
	return n + rijndael.BlockSize - n%rijndael.BlockSize
}

// Pad 复制msg, 追加0x01后用0x00补齐到PaddedLen
func Pad(msg []byte) []byte {
	buf := make([]byte, PaddedLen(len(msg)))
	copy(buf, msg)
	buf[len(msg)] = Marker
	return buf
}

// Unpad 去掉末尾所有0x00, 要求紧接着的字节为0x01并去掉它
func Unpad(buf []byte) ([]byte, error) {
	i := len(buf)
	for i > 0 && buf[i-1] == 0 {
		i--
	}
	if i == 0 {
		return nil, errors.Wrap(ErrPadding, "no marker found")
	}
	if buf[i-1] != Marker {
		return nil, errors.Wrapf(ErrPadding, "marker %#02x at offset %d", buf[i-1], i-1)
	}
	return buf[:i-1], nil
}
