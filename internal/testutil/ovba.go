package testutil

import "encoding/binary"

// maxLiteralChunk is the largest input a literal-only compressed chunk can
// carry: one flag byte per eight literals must fit in 4096 bytes.
const maxLiteralChunk = 3640

// Compress writes data as an MS-OVBA compressed container without copy
// tokens. Full 4096-byte chunks are stored raw.
func Compress(data []byte) []byte {
	out := []byte{0x01}
	for len(data) > 0 {
		n := min(len(data), 4096)
		chunk := data[:n]
		data = data[n:]

		if n == 4096 {
			out = binary.LittleEndian.AppendUint16(out, 0x3FFF)
			out = append(out, chunk...)
			continue
		}
		if n > maxLiteralChunk {
			panic("testutil: partial chunk too large for literal compression")
		}

		var body []byte
		for i := 0; i < n; i += 8 {
			body = append(body, 0x00)
			body = append(body, chunk[i:min(i+8, n)]...)
		}
		header := uint16(len(body)+2-3) | 0x3000 | 0x8000
		out = binary.LittleEndian.AppendUint16(out, header)
		out = append(out, body...)
	}
	return out
}
