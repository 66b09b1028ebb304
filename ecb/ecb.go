// Copyright 2021 aes128 Author. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package ecb AES-128电码本模式: 任意长度消息的填充,分组与重组
//
// 填充规则: 消息后追加一个0x01, 再补0x00到16字节整数倍(对齐时多补一整组).
// ECB会暴露相同明文分组, 这里只保证确定性的正确加解密.
package ecb

import (
	"context"
	"crypto/cipher"

	"github.com/cloudapex/aes128/log"
	"github.com/cloudapex/aes128/rijndael"
	"github.com/cloudapex/aes128/tools"
	"github.com/mitchellh/hashstructure"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

var defaultEngine = NewEngine()

// Encrypt 用默认引擎加密, 返回有序的密文分组
func Encrypt(key, plain []byte) ([]rijndael.State, error) {
	return defaultEngine.Encrypt(context.Background(), key, plain)
}

// Decrypt 用默认引擎解密密文分组, 返回原始消息
func Decrypt(key []byte, blocks []rijndael.State) ([]byte, error) {
	return defaultEngine.Decrypt(context.Background(), key, blocks)
}

// KeyFingerprint 密钥指纹, 日志里只出现指纹不出现密钥
func KeyFingerprint(key []byte) uint64 {
	h, err := hashstructure.Hash(key, nil)
	if err != nil {
		return 0
	}
	return h
}

// Engine ECB引擎: 按密钥缓存密钥编排, 分组多时并行处理
type Engine struct {
	opts    Options
	ciphers *tools.SafeMap[[rijndael.KeySize]byte, *rijndael.Cipher]
}

// NewEngine 创建引擎
func NewEngine(opts ...Option) *Engine {
	return &Engine{
		opts:    NewOptions(opts...),
		ciphers: tools.NewSafeMap[[rijndael.KeySize]byte, *rijndael.Cipher](),
	}
}

// Options 引擎选项
func (e *Engine) Options() Options { return e.opts }

// Cipher 取密钥对应的分组密码, 每个密钥只做一次密钥扩展
func (e *Engine) Cipher(key []byte) (*rijndael.Cipher, error) {
	if len(key) != rijndael.KeySize || e.opts.CacheSize == 0 {
		return rijndael.NewCipher(key)
	}

	var k [rijndael.KeySize]byte
	copy(k[:], key)
	if c, ok := e.ciphers.Get(k); ok {
		return c, nil
	}

	c, err := rijndael.NewCipher(key)
	if err != nil {
		return nil, err
	}
	if e.ciphers.Len() >= e.opts.CacheSize {
		e.ciphers.DeleteAll()
	}
	c, loaded := e.ciphers.LoadOrStore(k, c)
	if !loaded {
		log.Debug("ecb key schedule cached|key=%016x|size=%d", KeyFingerprint(key), e.ciphers.Len())
	}
	return c, nil
}

// Encrypt 填充后逐组加密, 返回有序密文分组
func (e *Engine) Encrypt(ctx context.Context, key, plain []byte) ([]rijndael.State, error) {
	b, err := e.EncryptBytes(ctx, key, plain)
	if err != nil {
		return nil, err
	}
	return rijndael.SplitStates(b)
}

// EncryptBytes 同Encrypt, 返回拼接后的密文(长度为PaddedLen(len(plain)))
func (e *Engine) EncryptBytes(ctx context.Context, key, plain []byte) ([]byte, error) {
	c, err := e.Cipher(key)
	if err != nil {
		return nil, err
	}
	buf := Pad(plain)
	if err := e.crypt(ctx, NewECBEncrypter(c), buf, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// Decrypt 逐组解密后去填充, 任何一组失败则整体失败
func (e *Engine) Decrypt(ctx context.Context, key []byte, blocks []rijndael.State) ([]byte, error) {
	c, err := e.Cipher(key)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, errors.WithStack(ErrEmptyCiphertext)
	}
	return e.decrypt(ctx, c, rijndael.JoinStates(blocks))
}

// DecryptBytes 解密拼接后的密文(长度必须为16的非零整数倍)
func (e *Engine) DecryptBytes(ctx context.Context, key, data []byte) ([]byte, error) {
	c, err := e.Cipher(key)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.WithStack(ErrEmptyCiphertext)
	}
	if len(data)%rijndael.BlockSize != 0 {
		return nil, errors.Wrapf(ErrBlockLength, "%d bytes", len(data))
	}
	return e.decrypt(ctx, c, data)
}

func (e *Engine) decrypt(ctx context.Context, c *rijndael.Cipher, data []byte) ([]byte, error) {
	buf := make([]byte, len(data))
	if err := e.crypt(ctx, NewECBDecrypter(c), buf, data); err != nil {
		return nil, err
	}
	return Unpad(buf)
}

// crypt 分组之间没有依赖, 按连续分段并行, 各段写回原位置以保持顺序
func (e *Engine) crypt(ctx context.Context, mode cipher.BlockMode, dst, src []byte) error {
	bs := mode.BlockSize()
	n := len(src) / bs
	workers := min(e.opts.Workers, n)
	if workers <= 1 || n < e.opts.ParallelThreshold {
		if err := ctx.Err(); err != nil {
			return errors.WithStack(err)
		}
		mode.CryptBlocks(dst, src)
		return nil
	}

	step := (n + workers - 1) / workers * bs
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for off := 0; off < len(src); off += step {
		end := min(off+step, len(src))
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = tools.Catch(r)
				}
			}()
			if err := gctx.Err(); err != nil {
				return err
			}
			mode.CryptBlocks(dst[off:end], src[off:end])
			return nil
		})
	}
	return errors.WithStack(g.Wait())
}
