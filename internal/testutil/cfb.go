package testutil

import (
	"encoding/binary"
	"fmt"
	"unicode/utf16"
)

const (
	sectorSize     = 512
	miniSectorSize = 64
	miniCutoff     = 4096
	dirEntrySize   = 128

	endOfChain = 0xFFFFFFFE
	fatSect    = 0xFFFFFFFD
	freeSect   = 0xFFFFFFFF
	noStream   = 0xFFFFFFFF

	typeStorage = 1
	typeStream  = 2
	typeRoot    = 5
	colorBlack  = 1
)

// Stream is one stream of a compound file. Path holds the storage names
// followed by the stream name, e.g. {"VBA", "dir"}.
type Stream struct {
	Path []string
	Data []byte
}

type dirEntry struct {
	name     string
	kind     byte
	left     uint32
	right    uint32
	child    uint32
	start    uint32
	size     uint32
	children []uint32
}

// CompoundFile writes a version 3 compound file holding streams. Every
// stream must be smaller than the mini stream cutoff and the whole file
// must fit in the sectors addressed by a single FAT sector.
func CompoundFile(streams []Stream) []byte {
	entries := []*dirEntry{{name: "Root Entry", kind: typeRoot}}
	storages := map[string]uint32{"": 0}

	var mini []byte
	var miniFAT []uint32
	for _, s := range streams {
		if len(s.Data) >= miniCutoff {
			panic(fmt.Sprintf("testutil: stream %v too large for mini stream", s.Path))
		}

		parent := uint32(0)
		key := ""
		for _, storage := range s.Path[:len(s.Path)-1] {
			key += "/" + storage
			id, ok := storages[key]
			if !ok {
				id = uint32(len(entries))
				entries = append(entries, &dirEntry{name: storage, kind: typeStorage})
				entries[parent].children = append(entries[parent].children, id)
				storages[key] = id
			}
			parent = id
		}

		e := &dirEntry{name: s.Path[len(s.Path)-1], kind: typeStream, start: endOfChain, size: uint32(len(s.Data))}
		if len(s.Data) > 0 {
			e.start = uint32(len(miniFAT))
			n := (len(s.Data) + miniSectorSize - 1) / miniSectorSize
			for i := 0; i < n; i++ {
				next := uint32(len(miniFAT) + 1)
				if i == n-1 {
					next = endOfChain
				}
				miniFAT = append(miniFAT, next)
			}
			padded := make([]byte, n*miniSectorSize)
			copy(padded, s.Data)
			mini = append(mini, padded...)
		}
		id := uint32(len(entries))
		entries = append(entries, e)
		entries[parent].children = append(entries[parent].children, id)
	}

	// Siblings form a right-leaning chain under their storage's child.
	for _, e := range entries {
		e.left, e.right, e.child = noStream, noStream, noStream
	}
	for _, e := range entries {
		for i, id := range e.children {
			if i == 0 {
				e.child = id
			}
			if i+1 < len(e.children) {
				entries[id].right = e.children[i+1]
			}
		}
	}

	dirSectors := sectorsFor(len(entries) * dirEntrySize)
	miniFATSectors := sectorsFor(len(miniFAT) * 4)
	miniStreamSectors := sectorsFor(len(mini))
	total := 1 + dirSectors + miniFATSectors + miniStreamSectors
	if total > sectorSize/4 {
		panic("testutil: compound file too large for a single FAT sector")
	}

	fat := make([]uint32, sectorSize/4)
	for i := range fat {
		fat[i] = freeSect
	}
	fat[0] = fatSect
	next := uint32(1)
	chain := func(n int) uint32 {
		if n == 0 {
			return endOfChain
		}
		first := next
		for i := 0; i < n; i++ {
			if i == n-1 {
				fat[next] = endOfChain
			} else {
				fat[next] = next + 1
			}
			next++
		}
		return first
	}
	dirStart := chain(dirSectors)
	miniFATStart := chain(miniFATSectors)
	miniStreamStart := chain(miniStreamSectors)

	entries[0].start = miniStreamStart
	entries[0].size = uint32(len(mini))

	buf := make([]byte, sectorSize*(1+total))
	writeHeader(buf[:sectorSize], dirStart, miniFATStart, uint32(miniFATSectors))

	sector := func(i uint32) []byte {
		off := int(i+1) * sectorSize
		return buf[off:]
	}
	for i, v := range fat {
		binary.LittleEndian.PutUint32(sector(0)[i*4:], v)
	}

	dir := sector(dirStart)[:dirSectors*sectorSize]
	for i := 0; i < dirSectors*sectorSize/dirEntrySize; i++ {
		raw := dir[i*dirEntrySize : (i+1)*dirEntrySize]
		if i < len(entries) {
			writeDirEntry(raw, entries[i])
		} else {
			writeDirEntry(raw, &dirEntry{left: noStream, right: noStream, child: noStream})
		}
	}

	if miniFATSectors > 0 {
		mf := sector(miniFATStart)[:miniFATSectors*sectorSize]
		for i := range mf[:len(mf)/4] {
			v := uint32(freeSect)
			if i < len(miniFAT) {
				v = miniFAT[i]
			}
			binary.LittleEndian.PutUint32(mf[i*4:], v)
		}
		copy(sector(miniStreamStart), mini)
	}

	return buf
}

func sectorsFor(n int) int {
	return (n + sectorSize - 1) / sectorSize
}

func writeHeader(h []byte, dirStart, miniFATStart, miniFATSectors uint32) {
	copy(h, []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1})
	le := binary.LittleEndian
	le.PutUint16(h[0x18:], 0x003E) // minor version
	le.PutUint16(h[0x1A:], 0x0003) // major version
	le.PutUint16(h[0x1C:], 0xFFFE) // byte order
	le.PutUint16(h[0x1E:], 9)      // sector shift
	le.PutUint16(h[0x20:], 6)      // mini sector shift
	le.PutUint32(h[0x2C:], 1)      // FAT sectors
	le.PutUint32(h[0x30:], dirStart)
	le.PutUint32(h[0x38:], miniCutoff)
	le.PutUint32(h[0x3C:], miniFATStart)
	le.PutUint32(h[0x40:], miniFATSectors)
	le.PutUint32(h[0x44:], endOfChain) // no DIFAT sectors
	le.PutUint32(h[0x4C:], 0)          // FAT lives in sector 0
	for i := 1; i < 109; i++ {
		le.PutUint32(h[0x4C+i*4:], freeSect)
	}
}

func writeDirEntry(raw []byte, e *dirEntry) {
	le := binary.LittleEndian
	if e.name != "" {
		units := utf16.Encode([]rune(e.name))
		for i, u := range units {
			le.PutUint16(raw[i*2:], u)
		}
		le.PutUint16(raw[0x40:], uint16((len(units)+1)*2))
	}
	raw[0x42] = e.kind
	raw[0x43] = colorBlack
	le.PutUint32(raw[0x44:], e.left)
	le.PutUint32(raw[0x48:], e.right)
	le.PutUint32(raw[0x4C:], e.child)
	le.PutUint32(raw[0x74:], e.start)
	le.PutUint32(raw[0x78:], e.size)
}
