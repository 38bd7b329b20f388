package bsl

import "github.com/grigorig/stcgal/internal/framing"

// HandshakeStrategy selects which of §4.4.3's two baud-switch
// procedures a family uses.
type HandshakeStrategy int

const (
	// StrategySimple is the 89/12A/12 BRT-divisor switch.
	StrategySimple HandshakeStrategy = iota
	// StrategyTrim is the 15A/15/8 RC-oscillator interpolation dance.
	StrategyTrim
)

// Params captures everything that differs between protocol families —
// the data a subclass would otherwise hard-code in method bodies.
type Params struct {
	Name    string
	Dialect framing.Dialect

	Handshake HandshakeStrategy
	// BaudDivisorK is the simple-handshake K constant (§4.4.3); unused
	// under StrategyTrim.
	BaudDivisorK int
	// SixTModeK is the alternate K used by the 89-series when its 6T
	// (double-speed core) option bit is set.
	SixTModeK int

	ProgramBlockSize int
	// FirstBlockCmd/NextBlockCmd are the program_flash command bytes
	// (§4.4.5); 15-family families use a distinct first-block command.
	FirstBlockCmd byte
	NextBlockCmd  byte
	// AuthKeyRequired gates insertion of the 0x5A 0xA5 authorization
	// key the 15/8 families require once BSL >= 0x72.
	AuthKeyRequired bool
	// FinalizeAfterProgram is true only for the 12-series: after the
	// last program_flash chunk it sends a 0x69 finishing packet carrying
	// the magic (§4.4.5). 89/12A share program_flash's loop but send no
	// such packet.
	FinalizeAfterProgram bool

	// EraseCountdownFrom/To bound the decreasing tail byte sequence
	// erase packets append on 89/12-series families (§4.4.4).
	EraseCountdownFrom byte
	EraseCountdownTo   byte
	// EraseUsesAuthKey selects the 15/8-series 2- or 4-byte auth-key
	// erase packet instead of a countdown tail.
	EraseUsesAuthKey bool

	// FreqCounterSamples is how many counter samples the status packet
	// carries (eight on 12/89, four on 15-series).
	FreqCounterSamples int

	// SupportsTrim is true for families with a writable RC calibration
	// register (15A, 15, 8); false families skip calibration entirely.
	SupportsTrim bool
	// NoHardwareUART is true for the 15-series magics (high byte 0xF2)
	// that compute baud directly rather than dividing by 4 (§4.4.3).
	NoHardwareUART bool

	MSRSize int
}
