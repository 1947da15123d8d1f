package testutil

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf16"
)

const (
	recBOF        = 0x0809
	recEOF        = 0x000A
	recBoundSheet = 0x0085
	recSST        = 0x00FC
	recLabelSST   = 0x00FD
	recNumber     = 0x0203

	biff8         = 0x0600
	bofGlobals    = 0x0005
	bofWorksheet  = 0x0010
	generalFormat = 0x000F
)

// WorkbookStream encodes sheets as a BIFF8 Workbook stream for a legacy
// .xls compound file. Cells may be strings, ints, float64 or nil for an
// empty cell. The result must stay under the mini stream cutoff.
func WorkbookStream(sheets []Sheet) []byte {
	var sst []string
	index := make(map[string]uint32)
	for _, s := range sheets {
		for _, row := range s.Rows {
			for _, v := range row {
				if str, ok := v.(string); ok {
					if _, seen := index[str]; !seen {
						index[str] = uint32(len(sst))
						sst = append(sst, str)
					}
				}
			}
		}
	}

	var globals biffWriter
	globals.record(recBOF, bofPayload(bofGlobals))
	positions := make([]int, len(sheets))
	for i, s := range sheets {
		// The stream offset of the sheet's BOF is patched in below.
		positions[i] = len(globals.buf) + 4
		data := []byte{0, 0, 0, 0, 0, 0}
		globals.record(recBoundSheet, append(data, biffString(s.Name, false)...))
	}
	sstData := binary.LittleEndian.AppendUint32(nil, uint32(len(sst)))
	sstData = binary.LittleEndian.AppendUint32(sstData, uint32(len(sst)))
	for _, str := range sst {
		sstData = append(sstData, biffString(str, true)...)
	}
	globals.record(recSST, sstData)
	globals.record(recEOF, nil)

	out := globals.buf
	for i, s := range sheets {
		binary.LittleEndian.PutUint32(out[positions[i]:], uint32(len(out)))

		var ws biffWriter
		ws.record(recBOF, bofPayload(bofWorksheet))
		for r, row := range s.Rows {
			for c, v := range row {
				cell := binary.LittleEndian.AppendUint16(nil, uint16(r))
				cell = binary.LittleEndian.AppendUint16(cell, uint16(c))
				cell = binary.LittleEndian.AppendUint16(cell, generalFormat)
				switch v := v.(type) {
				case nil:
					continue
				case string:
					ws.record(recLabelSST, binary.LittleEndian.AppendUint32(cell, index[v]))
				case int:
					ws.record(recNumber, binary.LittleEndian.AppendUint64(cell, math.Float64bits(float64(v))))
				case float64:
					ws.record(recNumber, binary.LittleEndian.AppendUint64(cell, math.Float64bits(v)))
				default:
					panic(fmt.Sprintf("testutil: unsupported cell value %T", v))
				}
			}
		}
		ws.record(recEOF, nil)
		out = append(out, ws.buf...)
	}
	return out
}

type biffWriter struct {
	buf []byte
}

func (w *biffWriter) record(id uint16, data []byte) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, id)
	w.buf = binary.LittleEndian.AppendUint16(w.buf, uint16(len(data)))
	w.buf = append(w.buf, data...)
}

func bofPayload(kind uint16) []byte {
	b := make([]byte, 16)
	binary.LittleEndian.PutUint16(b[0:], biff8)
	binary.LittleEndian.PutUint16(b[2:], kind)
	return b
}

// biffString encodes an unformatted BIFF8 string. Text within Latin-1 is
// stored compressed, anything else as UTF-16. The length prefix is one
// byte for sheet names and two bytes for shared strings.
func biffString(s string, wide bool) []byte {
	var out []byte
	units := utf16.Encode([]rune(s))
	compressed := true
	for _, u := range units {
		if u > 0xFF {
			compressed = false
		}
	}
	if wide {
		out = binary.LittleEndian.AppendUint16(out, uint16(len(units)))
	} else {
		out = append(out, byte(len(units)))
	}
	if compressed {
		out = append(out, 0)
		for _, u := range units {
			out = append(out, byte(u))
		}
		return out
	}
	out = append(out, 1)
	for _, u := range units {
		out = binary.LittleEndian.AppendUint16(out, u)
	}
	return out
}
