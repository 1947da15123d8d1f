package parser

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xltrail/xltrail-go/internal/testutil"
)

func TestDecompressLiterals(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short", []byte("Attribute VB_Name = \"Module1\"\r\nSub X()\r\nEnd Sub")},
		{"eight bit", []byte{0x00, 0x7F, 0x80, 0xE9, 0xFF}},
		{"raw chunk plus tail", bytes.Repeat([]byte("0123456789"), 500)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decompress(testutil.Compress(tt.data))
			require.NoError(t, err)
			assert.Equal(t, string(tt.data), string(got))
		})
	}
}

func TestDecompressCopyToken(t *testing.T) {
	// "abc" as literals, then a copy token of length 6 at offset 3.
	container := []byte{0x01, 0x05, 0xB0, 0x08, 'a', 'b', 'c', 0x03, 0x20}

	got, err := Decompress(container)
	require.NoError(t, err)
	assert.Equal(t, "abcabcabc", string(got))
}

func TestDecompressErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad signature", []byte{0x02, 0x00, 0xB0}},
		{"truncated header", []byte{0x01, 0x05}},
		{"bad chunk signature", []byte{0x01, 0x00, 0x00, 0x00}},
		{"copy before literal", []byte{0x01, 0x02, 0xB0, 0x01, 0x00, 0x00}},
		{"truncated copy token", []byte{0x01, 0x01, 0xB0, 0x01, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decompress(tt.data)
			assert.ErrorIs(t, err, ErrCorruptContainer)
		})
	}
}

func TestUnpackCopyToken(t *testing.T) {
	tests := []struct {
		token        uint16
		decompressed int
		length       int
		offset       int
	}{
		{0x2003, 3, 6, 3},
		{0x0000, 1, 3, 1},
		{0x0000, 16, 3, 1},
		// 17 bytes in: five offset bits, eleven length bits
		{0x0801, 17, 4, 2},
	}

	for _, tt := range tests {
		length, offset := unpackCopyToken(tt.token, tt.decompressed)
		if length != tt.length || offset != tt.offset {
			t.Errorf("unpackCopyToken(%#04x, %d) = (%d, %d), expected (%d, %d)",
				tt.token, tt.decompressed, length, offset, tt.length, tt.offset)
		}
	}
}
