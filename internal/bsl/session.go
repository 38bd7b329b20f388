// Package bsl implements the protocol state machines that drive an STC
// 8051 factory bootloader end to end: connect, identify, handshake,
// erase, program, and disconnect (§4.4). One Machine, parameterized by
// a per-family Params value, replaces what the original implements as
// one subclass per family — framing, the pulse loop, erase-countdown
// construction, and chunked programming are family-generic; only the
// handshake strategy, command bytes, and MSR trailer differ, and those
// differences are captured as data plus two handshake strategies
// (simple baud switch vs. RC-oscillator trim) rather than as seven
// divergent code paths.
package bsl

import (
	"github.com/grigorig/stcgal/internal/options"
	"github.com/grigorig/stcgal/internal/registry"
)

// Session is the per-connection state named in §3 "Session State". It
// is created by Identify and discarded when the Machine returns.
type Session struct {
	Magic          uint16
	Model          registry.MCUModel
	MCUClockHz     float64
	BSLVersion     string
	HandshakeBaud  int
	TransferBaud   int
	UID            [7]byte
	HaveUID        bool
	TrimData       [7]byte
	FreqCounter    float64
	TrimValue      [2]byte
	ProgTrimValue  [2]byte
	TrimFrequency  float64
	ExternalClock  bool
	// UseAuthKey records whether this session's BSL version requires the
	// 0x5A 0xA5 authorization key on erase/program_flash packets (§4.4.4,
	// §4.4.5: required once BSL >= 0x72, trim-capable families only).
	UseAuthKey bool

	Codec *options.Codec
}
