package service

import (
	"context"
	"time"

	"github.com/cloudapex/aes128/codec"
	"github.com/cloudapex/aes128/log"
	"github.com/cloudapex/aes128/rijndael"
	"github.com/nats-io/nats.go"
	"github.com/pborman/uuid"
	"github.com/pkg/errors"
)

// Client 服务调用方
type Client struct {
	nc      *nats.Conn
	subject string
	timeout time.Duration
}

// NewClient 创建客户端, ctx没有deadline时使用timeout
func NewClient(nc *nats.Conn, subject string, timeout time.Duration) *Client {
	return &Client{nc: nc, subject: subject, timeout: timeout}
}

// Encrypt 远程加密
func (c *Client) Encrypt(ctx context.Context, plain []byte) ([]rijndael.State, error) {
	resp, err := c.call(ctx, &Request{Op: OpEncrypt, Data: plain})
	if err != nil {
		return nil, err
	}
	return codec.BytesToStates(resp.Blocks)
}

// Decrypt 远程解密
func (c *Client) Decrypt(ctx context.Context, blocks []rijndael.State) ([]byte, error) {
	resp, err := c.call(ctx, &Request{Op: OpDecrypt, Blocks: codec.StatesToBytes(blocks)})
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) call(ctx context.Context, req *Request) (*Response, error) {
	req.ID = uuid.NewRandom().String()
	if span := log.ContextValueTrace(ctx); span != nil {
		req.Trace = span.TraceID()
	}
	data, err := req.Marshal()
	if err != nil {
		return nil, errors.Wrap(err, "encode request")
	}

	// 没有设置超时的话使用默认超时
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	msg, err := c.nc.RequestWithContext(ctx, c.subject, data)
	if err != nil {
		return nil, errors.Wrapf(err, "request %s", c.subject)
	}
	resp, err := UnmarshalResponse(msg.Data)
	if err != nil {
		return nil, err
	}
	if resp.ID != req.ID {
		return nil, errors.Errorf("response id mismatch: %s != %s", resp.ID, req.ID)
	}
	return resp, resp.Err()
}
