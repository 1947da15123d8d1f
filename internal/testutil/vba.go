package testutil

import (
	"encoding/binary"
	"strings"
	"unicode/utf16"
)

// VBAModule describes one module of a generated VBA project.
type VBAModule struct {
	Name string
	// Code is the module body without the VB_Name declaration.
	Code string
	// Procedural marks a standard module; otherwise it is a document module.
	Procedural bool
}

// Source returns the module source as stored in the project: the name
// declaration followed by the code, CRLF separated.
func (m VBAModule) Source() string {
	lines := append([]string{`Attribute VB_Name = "` + m.Name + `"`}, strings.Split(m.Code, "\n")...)
	return strings.Join(lines, "\r\n")
}

// VBAProject builds a vbaProject.bin compound file holding modules.
func VBAProject(modules []VBAModule) []byte {
	return CompoundFile(VBAStreams(modules))
}

// VBAStreams returns the PROJECT, dir and module streams of a VBA project
// stored under the given storage path. Legacy workbooks keep the project
// under "_VBA_PROJECT_CUR".
func VBAStreams(modules []VBAModule, storage ...string) []Stream {
	at := func(names ...string) []string {
		return append(append([]string{}, storage...), names...)
	}
	streams := []Stream{
		{Path: at("PROJECT"), Data: []byte(projectStream(modules))},
		{Path: at("VBA", "dir"), Data: Compress(DirStream(modules))},
	}
	for _, m := range modules {
		streams = append(streams, Stream{
			Path: at("VBA", m.Name),
			Data: Compress([]byte(m.Source())),
		})
	}
	return streams
}

func projectStream(modules []VBAModule) string {
	var b strings.Builder
	b.WriteString("ID=\"{00000000-0000-0000-0000-000000000000}\"\r\n")
	for _, m := range modules {
		if m.Procedural {
			b.WriteString("Module=" + m.Name + "\r\n")
		} else {
			b.WriteString("Document=" + m.Name + "/&H00000000\r\n")
		}
	}
	b.WriteString("Name=\"VBAProject\"\r\n")
	b.WriteString("\r\n[Host Extender Info]\r\n&H00000001={3832D640-CF90-11CF-8E43-00A0C911005A};VBE;&H00000000\r\n")
	return b.String()
}

// DirStream returns the uncompressed dir stream describing modules. Every
// module's source starts at offset 0 of its stream.
func DirStream(modules []VBAModule) []byte {
	var d dirWriter
	d.u32(0x0001, 1)      // SYSKIND win32
	d.u32(0x0002, 0x0409) // LCID
	d.u32(0x0014, 0x0409) // LCIDINVOKE
	d.u16(0x0003, 1252)   // CODEPAGE
	d.record(0x0004, []byte("VBAProject"))
	d.record(0x0005, nil)
	d.record(0x0040, nil)
	d.record(0x0006, nil)
	d.record(0x003D, nil)
	d.u32(0x0007, 0)
	d.u32(0x0008, 0)
	// PROJECTVERSION: reserved size 4, then six bytes of version.
	d.buf = binary.LittleEndian.AppendUint16(d.buf, 0x0009)
	d.buf = binary.LittleEndian.AppendUint32(d.buf, 4)
	d.buf = binary.LittleEndian.AppendUint32(d.buf, 1)
	d.buf = binary.LittleEndian.AppendUint16(d.buf, 0)
	d.record(0x000C, nil)
	d.record(0x003C, nil)
	d.u16(0x000F, uint16(len(modules)))
	d.u16(0x0013, 0xFFFF)

	for _, m := range modules {
		d.record(0x0019, []byte(m.Name))
		d.record(0x0047, utf16LE(m.Name))
		d.record(0x001A, []byte(m.Name))
		d.record(0x0032, utf16LE(m.Name))
		d.record(0x001C, nil)
		d.record(0x0048, nil)
		d.u32(0x0031, 0)
		d.u32(0x001E, 0)
		d.u16(0x002C, 0xFFFF)
		if m.Procedural {
			d.record(0x0021, nil)
		} else {
			d.record(0x0022, nil)
		}
		d.record(0x002B, nil)
	}
	d.record(0x0010, nil)
	return d.buf
}

type dirWriter struct {
	buf []byte
}

func (d *dirWriter) record(id uint16, data []byte) {
	d.buf = binary.LittleEndian.AppendUint16(d.buf, id)
	d.buf = binary.LittleEndian.AppendUint32(d.buf, uint32(len(data)))
	d.buf = append(d.buf, data...)
}

func (d *dirWriter) u16(id uint16, v uint16) {
	d.record(id, binary.LittleEndian.AppendUint16(nil, v))
}

func (d *dirWriter) u32(id uint16, v uint32) {
	d.record(id, binary.LittleEndian.AppendUint32(nil, v))
}

func utf16LE(s string) []byte {
	var out []byte
	for _, u := range utf16.Encode([]rune(s)) {
		out = binary.LittleEndian.AppendUint16(out, u)
	}
	return out
}
