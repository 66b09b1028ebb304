package codec

import (
	"github.com/cloudapex/aes128/rijndael"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// Msgpack 分组数组 [][]byte
type Msgpack struct{}

func (Msgpack) Name() string { return "msgpack" }

func (Msgpack) Encode(blocks []rijndael.State) ([]byte, error) {
	return msgpack.Marshal(StatesToBytes(blocks))
}

func (Msgpack) Decode(data []byte) ([]rijndael.State, error) {
	var raw [][]byte
	if err := msgpack.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "msgpack decode")
	}
	return BytesToStates(raw)
}

// StatesToBytes 每个分组转为16字节切片
func StatesToBytes(blocks []rijndael.State) [][]byte {
	raw := make([][]byte, len(blocks))
	for i, b := range blocks {
		raw[i] = b.Bytes()
	}
	return raw
}

// BytesToStates 每个切片必须恰好16字节
func BytesToStates(raw [][]byte) ([]rijndael.State, error) {
	blocks := make([]rijndael.State, len(raw))
	for i, b := range raw {
		s, err := rijndael.ParseMatrix(b)
		if err != nil {
			return nil, errors.Wrapf(err, "block %d", i)
		}
		blocks[i] = s
	}
	return blocks, nil
}
