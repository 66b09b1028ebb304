package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudapex/aes128/codec"
	"github.com/cloudapex/aes128/ecb"
	"github.com/cloudapex/aes128/log"
	"github.com/cloudapex/aes128/tools"
)

// Handler 用固定密钥处理加解密请求, 不会panic
type Handler struct {
	engine *ecb.Engine
	key    []byte
	fp     uint64
}

// NewHandler 校验密钥并预先完成密钥扩展
func NewHandler(engine *ecb.Engine, key []byte) (*Handler, error) {
	if _, err := engine.Cipher(key); err != nil {
		return nil, err
	}
	return &Handler{
		engine: engine,
		key:    append([]byte(nil), key...),
		fp:     ecb.KeyFingerprint(key),
	}, nil
}

// Handle 执行一个请求
func (h *Handler) Handle(ctx context.Context, req *Request) (resp *Response) {
	resp = &Response{ID: req.ID}
	span := log.NewTraceSpan(req.Trace)
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			resp.Data, resp.Blocks = nil, nil
			resp.Code, resp.Error = CodeInternal, fmt.Sprint(r)
			log.TError(span, "ecb %s panic|id=%s|%v", req.Op, req.ID, tools.Catch(r))
			return
		}
		if resp.Code != "" {
			log.TWarning(span, "ecb %s failed|id=%s|key=%016x|code=%s|err=%s", req.Op, req.ID, h.fp, resp.Code, resp.Error)
			return
		}
		log.TInfo(span, "ecb %s|id=%s|key=%016x|elapsed=%v", req.Op, req.ID, h.fp, time.Since(start))
	}()

	switch req.Op {
	case OpEncrypt:
		blocks, err := h.engine.Encrypt(ctx, h.key, req.Data)
		if err != nil {
			resp.fail(err)
			return
		}
		resp.Blocks = codec.StatesToBytes(blocks)
	case OpDecrypt:
		blocks, err := codec.BytesToStates(req.Blocks)
		if err != nil {
			resp.fail(err)
			return
		}
		plain, err := h.engine.Decrypt(ctx, h.key, blocks)
		if err != nil {
			resp.fail(err)
			return
		}
		resp.Data = plain
	default:
		resp.Code, resp.Error = CodeBadRequest, fmt.Sprintf("unknown op %q", req.Op)
	}
	return
}

// ServeMsg 解码请求, 执行, 编码应答
func (h *Handler) ServeMsg(ctx context.Context, data []byte) ([]byte, error) {
	req, err := UnmarshalRequest(data)
	if err != nil {
		resp := &Response{Code: CodeBadRequest, Error: err.Error()}
		return resp.Marshal()
	}
	return h.Handle(ctx, req).Marshal()
}
