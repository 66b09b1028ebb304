package service

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/cloudapex/aes128/ecb"
	"github.com/cloudapex/aes128/rijndael"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey, _ = hex.DecodeString("000102030405060708090a0b0c0d0e0f")

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	h, err := NewHandler(ecb.NewEngine(), testKey)
	require.NoError(t, err)
	return h
}

func TestNewHandlerInvalidKey(t *testing.T) {
	_, err := NewHandler(ecb.NewEngine(), []byte("short"))
	assert.ErrorIs(t, err, rijndael.ErrInvalidKeyLength)
}

func TestHandleRoundTrip(t *testing.T) {
	h := newTestHandler(t)
	ctx := context.Background()

	plain := []byte("the quick brown fox jumps over the lazy dog")
	enc := h.Handle(ctx, &Request{ID: "1", Op: OpEncrypt, Data: plain})
	require.Empty(t, enc.Code, enc.Error)
	assert.Equal(t, "1", enc.ID)
	assert.Len(t, enc.Blocks, 3)

	dec := h.Handle(ctx, &Request{ID: "2", Op: OpDecrypt, Blocks: enc.Blocks})
	require.Empty(t, dec.Code, dec.Error)
	assert.Equal(t, "2", dec.ID)
	assert.Equal(t, plain, dec.Data)
	assert.NoError(t, dec.Err())
}

func TestHandleKnownCiphertext(t *testing.T) {
	h := newTestHandler(t)
	plain, _ := hex.DecodeString("00112233445566778899aabbccddeeff")

	resp := h.Handle(context.Background(), &Request{Op: OpEncrypt, Data: plain})
	require.Empty(t, resp.Code)
	require.Len(t, resp.Blocks, 2)
	assert.Equal(t, "69c4e0d86a7b0430d8cdb78070b4c55a", hex.EncodeToString(resp.Blocks[0]))
}

func TestHandleErrors(t *testing.T) {
	h := newTestHandler(t)
	c, err := rijndael.NewCipher(testKey)
	require.NoError(t, err)
	zero := c.EncryptState(rijndael.State{}).Bytes()

	cases := []struct {
		name string
		req  *Request
		code string
		is   error
	}{
		{"unknown op", &Request{Op: "rot13"}, CodeBadRequest, ErrRemote},
		{"empty ciphertext", &Request{Op: OpDecrypt}, CodeEmpty, ecb.ErrEmptyCiphertext},
		{"short block", &Request{Op: OpDecrypt, Blocks: [][]byte{make([]byte, 15)}}, CodeBlockLength, rijndael.ErrInvalidBlockLength},
		{"zero plaintext block", &Request{Op: OpDecrypt, Blocks: [][]byte{zero}}, CodePadding, ecb.ErrPadding},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := h.Handle(context.Background(), tc.req)
			assert.Equal(t, tc.code, resp.Code)
			assert.NotEmpty(t, resp.Error)
			assert.Nil(t, resp.Data)
			assert.ErrorIs(t, resp.Err(), tc.is)
		})
	}
}

func TestHandleCanceled(t *testing.T) {
	h := newTestHandler(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp := h.Handle(ctx, &Request{Op: OpEncrypt, Data: []byte("x")})
	assert.Equal(t, CodeInternal, resp.Code)
	assert.ErrorIs(t, resp.Err(), ErrRemote)
}

func TestServeMsg(t *testing.T) {
	h := newTestHandler(t)
	ctx := context.Background()

	req := &Request{ID: "abc", Op: OpEncrypt, Data: []byte("hello")}
	data, err := req.Marshal()
	require.NoError(t, err)

	out, err := h.ServeMsg(ctx, data)
	require.NoError(t, err)
	resp, err := UnmarshalResponse(out)
	require.NoError(t, err)
	assert.Equal(t, "abc", resp.ID)
	assert.Len(t, resp.Blocks, 1)

	out, err = h.ServeMsg(ctx, []byte{0xc1})
	require.NoError(t, err)
	resp, err = UnmarshalResponse(out)
	require.NoError(t, err)
	assert.Equal(t, CodeBadRequest, resp.Code)
}

func TestRequestWire(t *testing.T) {
	req := &Request{ID: "id", Op: OpDecrypt, Trace: "t", Blocks: [][]byte{make([]byte, 16)}}
	data, err := req.Marshal()
	require.NoError(t, err)
	got, err := UnmarshalRequest(data)
	require.NoError(t, err)
	assert.Equal(t, req, got)

	_, err = UnmarshalRequest([]byte{0xc1})
	assert.Error(t, err)
}

func TestResponseErrMessage(t *testing.T) {
	resp := &Response{Code: CodePadding, Error: "ecb: bad padding"}
	err := resp.Err()
	assert.EqualError(t, err, "remote padding: ecb: bad padding")
	assert.ErrorIs(t, err, ecb.ErrPadding)
	assert.NoError(t, (&Response{}).Err())
}

func TestSetAddrs(t *testing.T) {
	assert.Equal(t, []string{"nats://127.0.0.1:4222", "nats://h2:4222"}, setAddrs([]string{"127.0.0.1:4222", "", "nats://h2:4222"}))
	assert.Equal(t, []string{"nats://127.0.0.1:4222"}, setAddrs(nil))
}
