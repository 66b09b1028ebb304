// Package service 通过nats请求/应答提供ECB加解密服务
package service

import (
	"github.com/cloudapex/aes128/ecb"
	"github.com/cloudapex/aes128/rijndael"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	OpEncrypt = "encrypt" // 加密
	OpDecrypt = "decrypt" // 解密
)

// 错误码
const (
	CodeBadRequest  = "bad_request"
	CodeInvalidKey  = "invalid_key"
	CodePadding     = "padding"
	CodeEmpty       = "empty_ciphertext"
	CodeBlockLength = "block_length"
	CodeInternal    = "internal"
)

// ErrRemote 服务端返回了无法识别的错误
var ErrRemote = errors.New("service: remote error")

// Request 请求
type Request struct {
	ID     string   `msgpack:"id" json:"id"`                             // 调用ID
	Op     string   `msgpack:"op" json:"op"`                             // encrypt|decrypt
	Trace  string   `msgpack:"trace,omitempty" json:"trace,omitempty"`   // 跟踪信息
	Data   []byte   `msgpack:"data,omitempty" json:"data,omitempty"`     // 明文(encrypt)
	Blocks [][]byte `msgpack:"blocks,omitempty" json:"blocks,omitempty"` // 密文分组(decrypt)
}

// Response 应答
type Response struct {
	ID     string   `msgpack:"id" json:"id"`                             // 调用ID
	Data   []byte   `msgpack:"data,omitempty" json:"data,omitempty"`     // 明文(decrypt)
	Blocks [][]byte `msgpack:"blocks,omitempty" json:"blocks,omitempty"` // 密文分组(encrypt)
	Code   string   `msgpack:"code,omitempty" json:"code,omitempty"`     // 错误码
	Error  string   `msgpack:"error,omitempty" json:"error,omitempty"`   // 错误信息
}

func (r *Request) Marshal() ([]byte, error) { return msgpack.Marshal(r) }

// UnmarshalRequest 解码请求
func UnmarshalRequest(data []byte) (*Request, error) {
	var req Request
	if err := msgpack.Unmarshal(data, &req); err != nil {
		return nil, errors.Wrap(err, "decode request")
	}
	return &req, nil
}

func (r *Response) Marshal() ([]byte, error) { return msgpack.Marshal(r) }

// UnmarshalResponse 解码应答
func UnmarshalResponse(data []byte) (*Response, error) {
	var resp Response
	if err := msgpack.Unmarshal(data, &resp); err != nil {
		return nil, errors.Wrap(err, "decode response")
	}
	return &resp, nil
}

// Err 把错误码还原为本地可用errors.Is判断的错误
func (r *Response) Err() error {
	if r.Code == "" {
		return nil
	}
	base := ErrRemote
	switch r.Code {
	case CodeInvalidKey:
		base = rijndael.ErrInvalidKeyLength
	case CodePadding:
		base = ecb.ErrPadding
	case CodeEmpty:
		base = ecb.ErrEmptyCiphertext
	case CodeBlockLength:
		base = rijndael.ErrInvalidBlockLength
	}
	return &remoteError{code: r.Code, msg: r.Error, base: base}
}

type remoteError struct {
	code string
	msg  string
	base error
}

func (e *remoteError) Error() string { return "remote " + e.code + ": " + e.msg }
func (e *remoteError) Unwrap() error { return e.base }

// fail 填充错误码
func (r *Response) fail(err error) {
	r.Error = err.Error()
	switch {
	case errors.Is(err, rijndael.ErrInvalidKeyLength):
		r.Code = CodeInvalidKey
	case errors.Is(err, ecb.ErrPadding):
		r.Code = CodePadding
	case errors.Is(err, ecb.ErrEmptyCiphertext):
		r.Code = CodeEmpty
	case errors.Is(err, rijndael.ErrInvalidBlockLength), errors.Is(err, ecb.ErrBlockLength):
		r.Code = CodeBlockLength
	default:
		r.Code = CodeInternal
	}
}
