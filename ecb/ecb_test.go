package ecb

import (
	"bytes"
	"context"
	"crypto/aes"
	"encoding/hex"
	"math/rand"
	"testing"

	"github.com/cloudapex/aes128/rijndael"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey, _ = hex.DecodeString("2b7e151628aed2a6abf7158809cf4f3c")

func TestRoundTripShort(t *testing.T) {
	msg := []byte("small str")
	blocks, err := Encrypt(testKey, msg)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	got, err := Decrypt(testKey, blocks)
	require.NoError(t, err)
	assert.Equal(t, msg, got)
}

func TestRoundTripLong(t *testing.T) {
	msg := []byte("this is a test string longer than 128 bits")
	blocks, err := Encrypt(testKey, msg)
	require.NoError(t, err)
	require.Len(t, blocks, 3)

	got, err := Decrypt(testKey, blocks)
	require.NoError(t, err)
	assert.Equal(t, msg, got)
}

func TestRoundTripTrailingZero(t *testing.T) {
	msg := []byte("abcdefgh\x00")
	blocks, err := Encrypt(testKey, msg)
	require.NoError(t, err)

	got, err := Decrypt(testKey, blocks)
	require.NoError(t, err)
	assert.Equal(t, msg, got)
}

func TestRoundTripAligned(t *testing.T) {
	msg := []byte("0123456789abcdef")
	blocks, err := Encrypt(testKey, msg)
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	got, err := Decrypt(testKey, blocks)
	require.NoError(t, err)
	assert.Equal(t, msg, got)
}

func TestRoundTripEmpty(t *testing.T) {
	blocks, err := Encrypt(testKey, nil)
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	got, err := Decrypt(testKey, blocks)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestKnownCiphertext(t *testing.T) {
	pt, _ := hex.DecodeString("6bc1bee22e409f96e93d7e117393172a")
	blocks, err := Encrypt(testKey, pt)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, "3ad77bb40d7a3660a89ecaf32466ef97", blocks[0].String())

	ref, err := aes.NewCipher(testKey)
	require.NoError(t, err)
	marker := make([]byte, 16)
	marker[0] = Marker
	ref.Encrypt(marker, marker)
	assert.Equal(t, marker, blocks[1].Bytes())
}

func TestDeterministic(t *testing.T) {
	msg := []byte("same message, same key")
	a, err := Encrypt(testKey, msg)
	require.NoError(t, err)
	b, err := Encrypt(testKey, msg)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEqualBlocksLeak(t *testing.T) {
	blocks, err := Encrypt(testKey, bytes.Repeat([]byte("A"), 32))
	require.NoError(t, err)
	require.Len(t, blocks, 3)
	assert.Equal(t, blocks[0], blocks[1])
	assert.NotEqual(t, blocks[0], blocks[2])
}

func TestInvalidKey(t *testing.T) {
	_, err := Encrypt(make([]byte, 15), []byte("x"))
	assert.ErrorIs(t, err, rijndael.ErrInvalidKeyLength)

	_, err = Decrypt(make([]byte, 32), []rijndael.State{{}})
	assert.ErrorIs(t, err, rijndael.ErrInvalidKeyLength)

	_, err = Decrypt(nil, nil)
	assert.ErrorIs(t, err, rijndael.ErrInvalidKeyLength)
}

func TestDecryptErrors(t *testing.T) {
	_, err := Decrypt(testKey, nil)
	assert.ErrorIs(t, err, ErrEmptyCiphertext)

	e := NewEngine()
	_, err = e.DecryptBytes(context.Background(), testKey, nil)
	assert.ErrorIs(t, err, ErrEmptyCiphertext)

	_, err = e.DecryptBytes(context.Background(), testKey, make([]byte, 17))
	assert.ErrorIs(t, err, ErrBlockLength)
}

func TestDecryptWrongKey(t *testing.T) {
	blocks, err := Encrypt(testKey, []byte("secret"))
	require.NoError(t, err)

	other := bytes.Repeat([]byte{0x42}, 16)
	assert.NotPanics(t, func() {
		got, err := Decrypt(other, blocks)
		if err == nil {
			assert.NotEqual(t, []byte("secret"), got)
		} else {
			assert.ErrorIs(t, err, ErrPadding)
		}
	})
}

func TestDecryptZeroBlock(t *testing.T) {
	ref, err := rijndael.NewCipher(testKey)
	require.NoError(t, err)

	// 解密结果全0, 找不到标记
	block := ref.EncryptState(rijndael.State{})
	_, err = Decrypt(testKey, []rijndael.State{block})
	assert.ErrorIs(t, err, ErrPadding)
}

func TestParallelMatchesSequential(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	msg := make([]byte, 10000)
	r.Read(msg)

	seq := NewEngine(Workers(1))
	par := NewEngine(Workers(4), ParallelThreshold(2))
	ctx := context.Background()

	a, err := seq.EncryptBytes(ctx, testKey, msg)
	require.NoError(t, err)
	b, err := par.EncryptBytes(ctx, testKey, msg)
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Len(t, a, PaddedLen(len(msg)))

	got, err := par.DecryptBytes(ctx, testKey, b)
	require.NoError(t, err)
	assert.Equal(t, msg, got)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, e := range []*Engine{NewEngine(Workers(1)), NewEngine(Workers(4), ParallelThreshold(2))} {
		_, err := e.EncryptBytes(ctx, testKey, make([]byte, 1024))
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestBlockModeMatchesStdlib(t *testing.T) {
	c, err := rijndael.NewCipher(testKey)
	require.NoError(t, err)
	ref, err := aes.NewCipher(testKey)
	require.NoError(t, err)

	src := Pad([]byte("block mode against crypto/aes, several blocks long"))
	want := make([]byte, len(src))
	got := make([]byte, len(src))
	NewECBEncrypter(ref).CryptBlocks(want, src)
	NewECBEncrypter(c).CryptBlocks(got, src)
	assert.Equal(t, want, got)

	back := make([]byte, len(src))
	NewECBDecrypter(c).CryptBlocks(back, got)
	assert.Equal(t, src, back)

	assert.Equal(t, rijndael.BlockSize, NewECBDecrypter(c).BlockSize())
	assert.Panics(t, func() { NewECBEncrypter(c).CryptBlocks(got, src[:5]) })
	assert.Panics(t, func() { NewECBDecrypter(c).CryptBlocks(got[:16], src) })
}

func TestCipherCache(t *testing.T) {
	e := NewEngine()
	a, err := e.Cipher(testKey)
	require.NoError(t, err)
	b, err := e.Cipher(testKey)
	require.NoError(t, err)
	assert.Same(t, a, b)

	nc := NewEngine(CacheSize(0))
	a, err = nc.Cipher(testKey)
	require.NoError(t, err)
	b, err = nc.Cipher(testKey)
	require.NoError(t, err)
	assert.NotSame(t, a, b)

	small := NewEngine(CacheSize(1))
	_, err = small.Cipher(testKey)
	require.NoError(t, err)
	_, err = small.Cipher(bytes.Repeat([]byte{1}, 16))
	require.NoError(t, err)
	assert.Equal(t, 1, small.ciphers.Len())
}

func TestKeyFingerprint(t *testing.T) {
	assert.Equal(t, KeyFingerprint(testKey), KeyFingerprint(append([]byte(nil), testKey...)))
	assert.NotEqual(t, KeyFingerprint(testKey), KeyFingerprint(make([]byte, 16)))
}
