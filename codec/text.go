package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"

	"github.com/cloudapex/aes128/rijndael"
	"github.com/pkg/errors"
)

// Hex 拼接后的小写十六进制
type Hex struct{}

func (Hex) Name() string { return "hex" }

func (Hex) Encode(blocks []rijndael.State) ([]byte, error) {
	raw := rijndael.JoinStates(blocks)
	out := make([]byte, hex.EncodedLen(len(raw)))
	hex.Encode(out, raw)
	return out, nil
}

func (Hex) Decode(data []byte) ([]rijndael.State, error) {
	data = bytes.TrimSpace(data)
	raw := make([]byte, hex.DecodedLen(len(data)))
	if _, err := hex.Decode(raw, data); err != nil {
		return nil, errors.Wrap(err, "hex decode")
	}
	return rijndael.SplitStates(raw)
}

// Base64 拼接后的标准base64
type Base64 struct{}

func (Base64) Name() string { return "base64" }

func (Base64) Encode(blocks []rijndael.State) ([]byte, error) {
	raw := rijndael.JoinStates(blocks)
	out := make([]byte, base64.StdEncoding.EncodedLen(len(raw)))
	base64.StdEncoding.Encode(out, raw)
	return out, nil
}

func (Base64) Decode(data []byte) ([]rijndael.State, error) {
	data = bytes.TrimSpace(data)
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(data)))
	n, err := base64.StdEncoding.Decode(raw, data)
	if err != nil {
		return nil, errors.Wrap(err, "base64 decode")
	}
	return rijndael.SplitStates(raw[:n])
}
