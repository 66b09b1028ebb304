package codec

import (
	"github.com/cloudapex/aes128/rijndael"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// blockDoc {"blocks":["<32位hex>",...]}
type blockDoc struct {
	Blocks []string `json:"blocks"`
}

// JSON 每个分组一个hex字符串
type JSON struct{}

func (JSON) Name() string { return "json" }

func (JSON) Encode(blocks []rijndael.State) ([]byte, error) {
	doc := blockDoc{Blocks: make([]string, len(blocks))}
	for i, b := range blocks {
		doc.Blocks[i] = b.String()
	}
	return json.Marshal(doc)
}

func (JSON) Decode(data []byte) ([]rijndael.State, error) {
	var doc blockDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "json decode")
	}
	blocks := make([]rijndael.State, len(doc.Blocks))
	for i, s := range doc.Blocks {
		b, err := Hex{}.Decode([]byte(s))
		if err != nil {
			return nil, errors.Wrapf(err, "block %d", i)
		}
		if len(b) != 1 {
			return nil, errors.Wrapf(rijndael.ErrInvalidBlockLength, "block %d", i)
		}
		blocks[i] = b[0]
	}
	return blocks, nil
}
