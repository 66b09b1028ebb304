package codec

import (
	"encoding/hex"
	"testing"

	"github.com/cloudapex/aes128/rijndael"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = []rijndael.State{
	rijndael.MustParse("3925841d02dc09fbdc118597196a0b32"),
	rijndael.MustParse("3ad77bb40d7a3660a89ecaf32466ef97"),
}

func TestCodecs(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			c, err := Lookup(name)
			require.NoError(t, err)
			assert.Equal(t, name, c.Name())

			data, err := c.Encode(sample)
			require.NoError(t, err)
			got, err := c.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, sample, got)
		})
	}
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"base64", "hex", "json", "msgpack"}, Names())
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("rot13")
	assert.ErrorIs(t, err, ErrUnknownCodec)
}

func TestHexFormat(t *testing.T) {
	data, err := Hex{}.Encode(sample)
	require.NoError(t, err)
	assert.Equal(t, "3925841d02dc09fbdc118597196a0b323ad77bb40d7a3660a89ecaf32466ef97", string(data))

	got, err := Hex{}.Decode(append(data, '\n'))
	require.NoError(t, err)
	assert.Equal(t, sample, got)

	_, err = Hex{}.Decode([]byte("3925841d"))
	assert.ErrorIs(t, err, rijndael.ErrInvalidBlockLength)

	_, err = Hex{}.Decode([]byte("zz"))
	assert.Error(t, err)
}

func TestJSONFormat(t *testing.T) {
	data, err := JSON{}.Encode(sample[:1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"blocks":["3925841d02dc09fbdc118597196a0b32"]}`, string(data))

	_, err = JSON{}.Decode([]byte(`{"blocks":["3925841d02dc09fbdc118597196a0b323925841d02dc09fbdc118597196a0b32"]}`))
	assert.ErrorIs(t, err, rijndael.ErrInvalidBlockLength)
}

func TestBase64Invalid(t *testing.T) {
	_, err := Base64{}.Decode([]byte("!!!"))
	assert.Error(t, err)
}

func TestMsgpackShortBlock(t *testing.T) {
	raw := StatesToBytes(sample)
	raw[1] = raw[1][:8]
	_, err := BytesToStates(raw)
	assert.ErrorIs(t, err, rijndael.ErrInvalidBlockLength)

	want, _ := hex.DecodeString("3925841d02dc09fbdc118597196a0b32")
	assert.Equal(t, want, StatesToBytes(sample)[0])
}
