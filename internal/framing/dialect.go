// Package framing implements the host<->MCU packet codec (§4.1). Two
// dialects share one wire shape and differ only in checksum width,
// line parity, and tolerance for a missing leading magic; both are
// expressed as free functions over a Dialect descriptor rather than a
// pair of near-duplicate encoder/decoder types.
package framing

import "github.com/grigorig/stcgal/internal/link"

const (
	magicHi = 0x46
	magicLo = 0xB9
	endByte = 0x16

	// DirHostToMCU and DirMCUToHost are the packet direction bytes.
	DirHostToMCU = 0x6A
	DirMCUToHost = 0x68
)

// Dialect describes the two framing variants named in §4.1.
type Dialect struct {
	// Name identifies the dialect for diagnostics.
	Name string
	// ChecksumWidth is 1 for Dialect A, 2 for Dialect B.
	ChecksumWidth int
	// Parity is the serial line parity this dialect runs at.
	Parity link.Parity
	// TolerateMissingMagic allows a status packet that begins directly
	// with DIR (0x68), as some 89/90 BSL revisions emit.
	TolerateMissingMagic bool
}

// DialectA is the early (89/90) framing: 8-bit checksum, no parity,
// tolerant of a dropped leading magic on the first status packet.
var DialectA = Dialect{
	Name:                 "A",
	ChecksumWidth:        1,
	Parity:               link.ParityNone,
	TolerateMissingMagic: true,
}

// DialectB is the later (12 and up) framing: 16-bit big-endian
// checksum, even parity, magic always present.
var DialectB = Dialect{
	Name:                 "B",
	ChecksumWidth:        2,
	Parity:               link.ParityEven,
}
