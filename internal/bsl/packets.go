package bsl

import (
	"encoding/binary"
)

// BuildProgramChunk builds one program_flash write packet (§4.4.5):
// (cmd, addr_be16, len_be16, data...) padded with 0xFF to
// 5+len(authKey)+blockSize bytes, so the data area is always a full
// block, and returns the 8-bit checksum over the data portion. authKey, when
// non-nil, is inserted between the address and the data as the 15/8
// families require once BSL >= 0x72.
func BuildProgramChunk(cmd byte, addr uint16, data []byte, blockSize int, authKey []byte) (packet []byte, checksum byte) {
	packet = make([]byte, 0, 1+2+2+len(authKey)+blockSize)
	packet = append(packet, cmd)
	var addrBuf [2]byte
	binary.BigEndian.PutUint16(addrBuf[:], addr)
	packet = append(packet, addrBuf[:]...)

	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(len(data)))
	packet = append(packet, lenBuf[:]...)
	packet = append(packet, authKey...)
	packet = append(packet, data...)

	for len(packet) < 1+2+2+len(authKey)+blockSize {
		packet = append(packet, 0xFF)
	}

	for _, b := range data {
		checksum += b
	}
	return packet, checksum
}

// AuthKey is the 0x5A 0xA5 erase/program authorization key required by
// BSL revisions >= 0x72 on the 15/8 families (§4.4.4, §4.4.5).
var AuthKey = []byte{0x5A, 0xA5}

// BSLSupportsAuthKey reports whether a BSL version requires the
// authorization key, given as the single version byte (e.g. 0x72), which
// Identify takes from the low byte of the parsed version.
func BSLSupportsAuthKey(versionMajorMinor uint16) bool {
	return versionMajorMinor >= 0x72
}
