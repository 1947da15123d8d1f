package parser

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xltrail/xltrail-go/internal/testutil"
)

func TestParseDirStream(t *testing.T) {
	data := testutil.DirStream([]testutil.VBAModule{
		{Name: "ThisWorkbook"},
		{Name: "Module1", Procedural: true},
	})

	info, err := parseDirStream(data)
	require.NoError(t, err)

	assert.Equal(t, uint16(1252), info.CodePage)
	assert.Equal(t, []dirModule{
		{Name: "ThisWorkbook", Stream: "ThisWorkbook", Procedural: false},
		{Name: "Module1", Stream: "Module1", Procedural: true},
	}, info.Modules)
}

func TestParseDirStreamTextOffset(t *testing.T) {
	var data []byte
	record := func(id uint16, body []byte) {
		data = binary.LittleEndian.AppendUint16(data, id)
		data = binary.LittleEndian.AppendUint32(data, uint32(len(body)))
		data = append(data, body...)
	}
	record(recModuleName, []byte("Sheet1"))
	record(recModuleStreamName, []byte("Sheet1"))
	record(recModuleOffset, binary.LittleEndian.AppendUint32(nil, 0x0333))
	record(recModuleDocOrClass, nil)
	record(recModuleTerminator, nil)

	info, err := parseDirStream(data)
	require.NoError(t, err)
	require.Len(t, info.Modules, 1)
	assert.Equal(t, uint32(0x0333), info.Modules[0].TextOffset)
	assert.Equal(t, uint16(defaultCodePage), info.CodePage)
}

func TestParseDirStreamOverrun(t *testing.T) {
	data := binary.LittleEndian.AppendUint16(nil, recModuleName)
	data = binary.LittleEndian.AppendUint32(data, 10)
	data = append(data, 'M', 'o')

	_, err := parseDirStream(data)
	assert.ErrorIs(t, err, ErrCorruptContainer)
}

func TestDecodeMBCS(t *testing.T) {
	assert.Equal(t, "Mü", decodeMBCS([]byte{'M', 0xFC}, 1252))
	assert.Equal(t, "Mь", decodeMBCS([]byte{'M', 0xFC}, 1251))
	assert.Equal(t, "Mü", decodeMBCS([]byte{'M', 0xFC}, 0))
}

func TestDecodeUTF16(t *testing.T) {
	assert.Equal(t, "Modül", decodeUTF16([]byte{'M', 0, 'o', 0, 'd', 0, 0xFC, 0, 'l', 0}))
}
