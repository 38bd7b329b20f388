package framing

import (
	"time"

	"github.com/grigorig/stcgal/internal/link"
)

// MaxPayload bounds a single packet's payload to keep the LEN field (and
// preallocated read buffers) sane; no known family's packets approach it.
const MaxPayload = 4096

// Encode builds the wire bytes for a packet with the given direction and
// payload, per the dialect's checksum width. header length = payload + 5
// (Dialect A) or + 6 (Dialect B), matching LEN's definition in §4.1.
func Encode(d Dialect, dir byte, payload []byte) []byte {
	lenField := len(payload) + 5 + (d.ChecksumWidth - 1)
	out := make([]byte, 0, 2+2+len(payload)+d.ChecksumWidth+1+2)
	out = append(out, magicHi, magicLo)
	out = append(out, dir, byte(lenField>>8), byte(lenField))
	out = append(out, payload...)

	sum := checksum(d, out[2:])
	if d.ChecksumWidth == 2 {
		out = append(out, byte(sum>>8), byte(sum))
	} else {
		out = append(out, byte(sum))
	}
	out = append(out, endByte)
	return out
}

// checksum sums covered (everything from DIR through the last payload
// byte, i.e. the slice passed in) modulo 2^(8*width).
func checksum(d Dialect, covered []byte) uint32 {
	var sum uint32
	for _, b := range covered {
		sum += uint32(b)
	}
	if d.ChecksumWidth == 2 {
		return sum & 0xFFFF
	}
	return sum & 0xFF
}

// Decode reads one packet from sl using dialect d, returning its direction
// byte and payload. It tolerates a missing leading magic when the dialect
// allows it (§4.1 Dialect A note): if the first byte read is DIR rather
// than the first magic byte, the magic is treated as implicitly present.
func Decode(sl link.SerialLink, d Dialect, timeout time.Duration) (dir byte, payload []byte, err error) {
	var hdr [1]byte
	if err = sl.ReadFull(hdr[:], timeout); err != nil {
		return 0, nil, err
	}

	var dirByte byte
	if d.TolerateMissingMagic && (hdr[0] == DirHostToMCU || hdr[0] == DirMCUToHost) {
		dirByte = hdr[0]
	} else {
		if hdr[0] != magicHi {
			return 0, nil, &FramingError{Reason: "magic[0]", Expected: magicHi, Observed: hdr[0]}
		}
		var b2 [1]byte
		if err = sl.ReadFull(b2[:], timeout); err != nil {
			return 0, nil, err
		}
		if b2[0] != magicLo {
			return 0, nil, &FramingError{Reason: "magic[1]", Expected: magicLo, Observed: b2[0]}
		}
		var dbuf [1]byte
		if err = sl.ReadFull(dbuf[:], timeout); err != nil {
			return 0, nil, err
		}
		dirByte = dbuf[0]
	}

	if dirByte != DirHostToMCU && dirByte != DirMCUToHost {
		return 0, nil, &FramingError{Reason: "direction", Expected: DirMCUToHost, Observed: dirByte}
	}

	var lenBuf [2]byte
	if err = sl.ReadFull(lenBuf[:], timeout); err != nil {
		return 0, nil, err
	}
	lenField := int(lenBuf[0])<<8 | int(lenBuf[1])
	payloadLen := lenField - 5 - (d.ChecksumWidth - 1)
	if payloadLen < 0 || payloadLen > MaxPayload {
		return 0, nil, &FramingError{Reason: "length", Expected: 0, Observed: lenBuf[1]}
	}

	body := make([]byte, payloadLen+d.ChecksumWidth+1)
	if err = sl.ReadFull(body, timeout); err != nil {
		return 0, nil, err
	}
	payload = body[:payloadLen]
	chkBytes := body[payloadLen : payloadLen+d.ChecksumWidth]
	endB := body[payloadLen+d.ChecksumWidth]
	if endB != endByte {
		return 0, nil, &FramingError{Reason: "end", Expected: endByte, Observed: endB}
	}

	var received uint32
	for _, b := range chkBytes {
		received = received<<8 | uint32(b)
	}

	covered := make([]byte, 0, 3+payloadLen)
	covered = append(covered, dirByte, lenBuf[0], lenBuf[1])
	covered = append(covered, payload...)
	computed := checksum(d, covered)
	if computed != received {
		return 0, nil, &ChecksumError{Computed: computed, Received: received}
	}

	return dirByte, payload, nil
}
