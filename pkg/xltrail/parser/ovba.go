package parser

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrCorruptContainer indicates a malformed MS-OVBA compressed container.
var ErrCorruptContainer = errors.New("corrupt compressed container")

const (
	containerSignature = 0x01
	chunkSize          = 4096
	chunkSignature     = 0x3
)

// Decompress expands an MS-OVBA compressed container. Source modules and the
// dir stream of a VBA project are stored this way.
func Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 || data[0] != containerSignature {
		return nil, fmt.Errorf("%w: bad signature", ErrCorruptContainer)
	}

	out := make([]byte, 0, len(data)*2)
	pos := 1
	for pos < len(data) {
		if pos+2 > len(data) {
			return nil, fmt.Errorf("%w: truncated chunk header at %d", ErrCorruptContainer, pos)
		}
		header := binary.LittleEndian.Uint16(data[pos:])
		size := int(header&0x0FFF) + 3
		if (header>>12)&0x7 != chunkSignature {
			return nil, fmt.Errorf("%w: bad chunk signature at %d", ErrCorruptContainer, pos)
		}
		compressed := header&0x8000 != 0

		end := min(pos+size, len(data))
		pos += 2

		if !compressed {
			raw := min(chunkSize, end-pos)
			out = append(out, data[pos:pos+raw]...)
			pos += raw
			continue
		}

		var err error
		out, err = decompressChunk(out, data[pos:end])
		if err != nil {
			return nil, err
		}
		pos = end
	}
	return out, nil
}

// decompressChunk appends the decompressed form of one chunk body to out.
func decompressChunk(out, chunk []byte) ([]byte, error) {
	start := len(out)
	pos := 0
	for pos < len(chunk) {
		flags := chunk[pos]
		pos++
		for bit := 0; bit < 8 && pos < len(chunk); bit++ {
			if flags&(1<<bit) == 0 {
				out = append(out, chunk[pos])
				pos++
				continue
			}

			if pos+2 > len(chunk) {
				return nil, fmt.Errorf("%w: truncated copy token", ErrCorruptContainer)
			}
			token := binary.LittleEndian.Uint16(chunk[pos:])
			pos += 2

			length, offset := unpackCopyToken(token, len(out)-start)
			src := len(out) - offset
			if src < start {
				return nil, fmt.Errorf("%w: copy token offset %d out of range", ErrCorruptContainer, offset)
			}
			// Byte by byte: the source may overlap the bytes being written.
			for i := 0; i < length; i++ {
				out = append(out, out[src+i])
			}
		}
	}
	return out, nil
}

// unpackCopyToken splits a copy token into length and offset. The split
// point depends on how much of the chunk has been decompressed so far.
func unpackCopyToken(token uint16, decompressed int) (length, offset int) {
	bitCount := 4
	for (1 << bitCount) < decompressed {
		bitCount++
	}
	lengthMask := uint16(0xFFFF) >> bitCount
	offsetMask := ^lengthMask

	length = int(token&lengthMask) + 3
	offset = int((token&offsetMask)>>(16-bitCount)) + 1
	return length, offset
}
