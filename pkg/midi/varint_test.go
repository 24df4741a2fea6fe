package midi

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeVarint(t *testing.T) {
	tests := []struct {
		value uint32
		want  []byte
	}{
		{0, []byte{0x00}},
		{0x40, []byte{0x40}},
		{127, []byte{0x7F}},
		{128, []byte{0x81, 0x00}},
		{0x2000, []byte{0xC0, 0x00}},
		{16383, []byte{0xFF, 0x7F}},
		{16384, []byte{0x81, 0x80, 0x00}},
		{2097151, []byte{0xFF, 0xFF, 0x7F}},
		{2097152, []byte{0x81, 0x80, 0x80, 0x00}},
		{0x0FFFFFFF, []byte{0xFF, 0xFF, 0xFF, 0x7F}},
		{0xFFFFFFFF, []byte{0x8F, 0xFF, 0xFF, 0xFF, 0x7F}},
	}

	for _, tt := range tests {
		got := EncodeVarint(tt.value)
		assert.Equal(t, tt.want, got, "encode %d", tt.value)

		v, n, err := DecodeVarint(got)
		require.NoError(t, err)
		assert.Equal(t, tt.value, v)
		assert.Equal(t, len(got), n)
	}
}

func TestDecodeVarint_StopsAtLastByte(t *testing.T) {
	v, n, err := DecodeVarint([]byte{0x81, 0x00, 0x90, 0x3C})
	require.NoError(t, err)
	assert.Equal(t, uint32(128), v)
	assert.Equal(t, 2, n)
}

func TestDecodeVarint_NonMinimal(t *testing.T) {
	v, n, err := DecodeVarint([]byte{0x80, 0x80, 0x05})
	require.NoError(t, err)
	assert.Equal(t, uint32(5), v)
	assert.Equal(t, 3, n)
}

func TestDecodeVarint_Truncated(t *testing.T) {
	_, _, err := DecodeVarint([]byte{0x81, 0x80})
	assert.ErrorIs(t, err, ErrTruncated)

	_, _, err = DecodeVarint(nil)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeVarint_Overflow(t *testing.T) {
	_, _, err := DecodeVarint([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x7F})
	assert.ErrorIs(t, err, ErrVarintOverflow)
}

func TestVarintRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500

	properties := gopter.NewProperties(parameters)

	properties.Property("decode(encode(v)) == v", prop.ForAll(
		func(v uint32) bool {
			b := EncodeVarint(v)
			got, n, err := DecodeVarint(b)
			return err == nil && got == v && n == len(b)
		},
		gen.UInt32(),
	))

	properties.Property("encoding is minimal", prop.ForAll(
		func(v uint32) bool {
			b := EncodeVarint(v)
			return len(b) == 1 || b[0] != 0x80
		},
		gen.UInt32(),
	))

	properties.TestingRun(t)
}
