package main

import (
	"context"
	"io"

	"github.com/cloudapex/aes128/codec"
	"github.com/cloudapex/aes128/ecb"
	"github.com/cloudapex/aes128/rijndael"
	"github.com/pkg/errors"
)

// cryptor 本地引擎或远程服务
type cryptor interface {
	Encrypt(ctx context.Context, plain []byte) ([]rijndael.State, error)
	Decrypt(ctx context.Context, blocks []rijndael.State) ([]byte, error)
}

type localCryptor struct {
	engine *ecb.Engine
	key    []byte
}

func (l localCryptor) Encrypt(ctx context.Context, plain []byte) ([]rijndael.State, error) {
	return l.engine.Encrypt(ctx, l.key, plain)
}

func (l localCryptor) Decrypt(ctx context.Context, blocks []rijndael.State) ([]byte, error) {
	return l.engine.Decrypt(ctx, l.key, blocks)
}

// encryptStream 读入全部明文, 写出编码后的密文分组
func encryptStream(ctx context.Context, c cryptor, cd codec.Codec, r io.Reader, w io.Writer) error {
	plain, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "read input")
	}
	blocks, err := c.Encrypt(ctx, plain)
	if err != nil {
		return err
	}
	out, err := cd.Encode(blocks)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return errors.Wrap(err, "write output")
}

// decryptStream 读入编码后的密文分组, 写出明文
func decryptStream(ctx context.Context, c cryptor, cd codec.Codec, r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return errors.Wrap(err, "read input")
	}
	blocks, err := cd.Decode(data)
	if err != nil {
		return err
	}
	plain, err := c.Decrypt(ctx, blocks)
	if err != nil {
		return err
	}
	_, err = w.Write(plain)
	return errors.Wrap(err, "write output")
}
