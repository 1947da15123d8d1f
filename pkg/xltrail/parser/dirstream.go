package parser

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// dir stream record ids
const (
	recCodePage          = 0x0003
	recProjectVersion    = 0x0009
	recDirTerminator     = 0x0010
	recModuleName        = 0x0019
	recModuleStreamName  = 0x001A
	recModuleProcedural  = 0x0021
	recModuleDocOrClass  = 0x0022
	recModuleTerminator  = 0x002B
	recModuleOffset      = 0x0031
	recModuleStreamNameW = 0x0032
	recModuleNameW       = 0x0047
)

const defaultCodePage = 1252

// dirModule is the per-module information held by the dir stream.
type dirModule struct {
	Name       string
	Stream     string
	TextOffset uint32
	Procedural bool
}

// dirInfo is the decoded dir stream.
type dirInfo struct {
	CodePage uint16
	Modules  []dirModule
}

// parseDirStream decodes a decompressed dir stream.
func parseDirStream(data []byte) (*dirInfo, error) {
	info := &dirInfo{CodePage: defaultCodePage}
	var cur *dirModule

	pos := 0
	for pos+6 <= len(data) {
		id := binary.LittleEndian.Uint16(data[pos:])
		size := int(binary.LittleEndian.Uint32(data[pos+2:]))
		pos += 6
		// PROJECTVERSION declares a reserved size of 4 but carries 6 bytes.
		if id == recProjectVersion {
			size = 6
		}
		if size < 0 || pos+size > len(data) {
			return nil, fmt.Errorf("%w: dir record 0x%04X overruns stream", ErrCorruptContainer, id)
		}
		body := data[pos : pos+size]
		pos += size

		switch id {
		case recCodePage:
			if len(body) >= 2 {
				info.CodePage = binary.LittleEndian.Uint16(body)
			}
		case recModuleName:
			cur = &dirModule{Name: decodeMBCS(body, info.CodePage)}
		case recModuleNameW:
			if cur != nil {
				cur.Name = decodeUTF16(body)
			}
		case recModuleStreamName:
			if cur != nil {
				cur.Stream = decodeMBCS(body, info.CodePage)
			}
		case recModuleStreamNameW:
			if cur != nil {
				cur.Stream = decodeUTF16(body)
			}
		case recModuleOffset:
			if cur != nil && len(body) >= 4 {
				cur.TextOffset = binary.LittleEndian.Uint32(body)
			}
		case recModuleProcedural:
			if cur != nil {
				cur.Procedural = true
			}
		case recModuleDocOrClass:
			if cur != nil {
				cur.Procedural = false
			}
		case recModuleTerminator:
			if cur != nil {
				info.Modules = append(info.Modules, *cur)
				cur = nil
			}
		case recDirTerminator:
			return info, nil
		}
	}
	return info, nil
}

// codePageEncoding maps a Windows code page to its text encoding.
func codePageEncoding(cp uint16) encoding.Encoding {
	switch cp {
	case 874:
		return charmap.Windows874
	case 932:
		return japanese.ShiftJIS
	case 936:
		return simplifiedchinese.GBK
	case 949:
		return korean.EUCKR
	case 950:
		return traditionalchinese.Big5
	case 1250:
		return charmap.Windows1250
	case 1251:
		return charmap.Windows1251
	case 1253:
		return charmap.Windows1253
	case 1254:
		return charmap.Windows1254
	case 1255:
		return charmap.Windows1255
	case 1256:
		return charmap.Windows1256
	case 1257:
		return charmap.Windows1257
	case 1258:
		return charmap.Windows1258
	case 65001:
		return unicode.UTF8
	default:
		return charmap.Windows1252
	}
}

func decodeMBCS(b []byte, cp uint16) string {
	out, err := codePageEncoding(cp).NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

func decodeUTF16(b []byte) string {
	out, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
