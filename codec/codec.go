// Package codec 密文分组序列的编解码(hex/base64/json/msgpack)
package codec

import (
	"sort"
	"sync"

	"github.com/cloudapex/aes128/rijndael"
	"github.com/pkg/errors"
)

// ErrUnknownCodec 未注册的编码名
var ErrUnknownCodec = errors.New("codec: unknown codec")

// Codec 密文分组序列与字节流互转
type Codec interface {
	Name() string
	Encode(blocks []rijndael.State) ([]byte, error)
	Decode(data []byte) ([]rijndael.State, error)
}

var (
	mu     sync.RWMutex
	codecs = map[string]Codec{}
)

func init() {
	Register(Hex{})
	Register(Base64{})
	Register(JSON{})
	Register(Msgpack{})
}

// Register 注册编码(同名覆盖)
func Register(c Codec) {
	mu.Lock()
	codecs[c.Name()] = c
	mu.Unlock()
}

// Lookup 按名称取编码
func Lookup(name string) (Codec, error) {
	mu.RLock()
	c, ok := codecs[name]
	mu.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCodec, "%q", name)
	}
	return c, nil
}

// Names 已注册的编码名
func Names() []string {
	mu.RLock()
	names := make([]string, 0, len(codecs))
	for n := range codecs {
		names = append(names, n)
	}
	mu.RUnlock()
	sort.Strings(names)
	return names
}
