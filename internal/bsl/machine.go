package bsl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/grigorig/stcgal/internal/framing"
	"github.com/grigorig/stcgal/internal/link"
	"github.com/grigorig/stcgal/internal/options"
	"github.com/grigorig/stcgal/internal/progress"
	"github.com/grigorig/stcgal/internal/registry"
)

const (
	pulseByte      = 0x7F
	pulseInterval  = 15 * time.Millisecond
	pingByte       = 0x80
	resetByte      = 0x82
	readTimeout    = 10 * time.Second
	charTimeout    = 1 * time.Second
)

// StatusPacket is the decoded connect-time status frame (§4.4.1). Field
// layout (offsets within the payload) is family-specific in the wire
// protocol but normalized here to one logical shape.
type StatusPacket struct {
	Magic       uint16
	FreqCounter []uint16
	// ExtClockRaw holds the two status-packet bytes 15-series BSLs in
	// external-clock mode report in place of a meaningful frequency
	// counter (§4.4.1: "the MCU clock is then read directly from two
	// bytes of the status packet multiplied by the handshake baud").
	// Populated only for trim-capable families; zero otherwise.
	ExtClockRaw uint16
	BSLVersion  uint16 // (major<<8 | minor), BCD nibbles per §4.4.1
	Stepping    byte
	MSR         []byte
}

// Machine runs one connect->disconnect session against a single family,
// per the shared skeleton in §4.4.
type Machine struct {
	Link   link.SerialLink
	Params Params
	Sink   progress.Sink
	Debug  bool

	Session Session
}

// NewMachine constructs a Machine for a known family.
func NewMachine(sl link.SerialLink, family registry.Family, sink progress.Sink) (*Machine, error) {
	p, ok := ParamsFor(family)
	if !ok {
		return nil, fmt.Errorf("bsl: no protocol parameters for family %s", family)
	}
	return &Machine{Link: sl, Params: p, Sink: sink}, nil
}

// Connect implements §4.4.1: pulse the target until a status packet
// arrives, tolerating framing/timeout errors (and an optional 0x80
// ping) until the user cancels via ctx.
func (m *Machine) Connect(ctx context.Context, handshakeBaud int) (*StatusPacket, error) {
	m.Sink.Status("connecting: power-cycle the target now")
	ticker := time.NewTicker(pulseInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		if _, err := m.Link.Write([]byte{pulseByte}); err != nil {
			return nil, err
		}

		payload, dir, err := m.tryReadPacket(200 * time.Millisecond)
		if err != nil {
			// Framing, checksum and timeout errors are expected and
			// absorbed during the sync loop; anything else is a hard link
			// failure and ends it.
			if framing.IsRecoverable(err) || errors.Is(err, link.ErrTimeout) {
				continue
			}
			return nil, err
		}
		if dir != framing.DirMCUToHost {
			continue
		}
		if len(payload) == 1 && payload[0] == pingByte {
			if _, err := m.Link.Write([]byte{pingByte}); err != nil {
				return nil, err
			}
			continue
		}
		status, err := m.parseStatus(payload)
		if err != nil {
			continue
		}
		return status, nil
	}
}

// tryReadPacket wraps framing.Decode, returning its error unchanged so
// Connect can tell "keep pulsing" apart from "the link is gone".
func (m *Machine) tryReadPacket(timeout time.Duration) ([]byte, byte, error) {
	dir, payload, err := framing.Decode(m.Link, m.Params.Dialect, timeout)
	if err != nil {
		return nil, 0, err
	}
	return payload, dir, nil
}

// parseStatus decodes a status packet payload into normalized fields.
// The exact byte layout is family-specific; this extracts the common
// prefix (magic, then FreqCounterSamples 16-bit counters) and leaves
// the remainder as the MSR.
func (m *Machine) parseStatus(payload []byte) (*StatusPacket, error) {
	if len(payload) < 2 {
		return nil, fmt.Errorf("bsl: status packet too short")
	}
	magic := uint16(payload[0])<<8 | uint16(payload[1])
	off := 2

	n := m.Params.FreqCounterSamples
	if len(payload) < off+n*2 {
		return nil, fmt.Errorf("bsl: status packet too short for %d frequency samples", n)
	}
	counters := make([]uint16, n)
	for i := 0; i < n; i++ {
		counters[i] = uint16(payload[off])<<8 | uint16(payload[off+1])
		off += 2
	}

	var extClockRaw uint16
	if m.Params.SupportsTrim && len(payload) >= off+2 {
		extClockRaw = uint16(payload[off])<<8 | uint16(payload[off+1])
		off += 2
	}

	var version uint16
	var stepping byte
	if len(payload) >= off+3 {
		version = uint16(payload[off])<<8 | uint16(payload[off+1])
		stepping = payload[off+2]
		off += 3
	}

	msr := payload[off:]
	if len(msr) > m.Params.MSRSize {
		msr = msr[:m.Params.MSRSize]
	}

	return &StatusPacket{
		Magic:       magic,
		FreqCounter: counters,
		ExtClockRaw: extClockRaw,
		BSLVersion:  version,
		Stepping:    stepping,
		MSR:         append([]byte(nil), msr...),
	}, nil
}

// Identify implements §4.4.2: look up the magic, print identification,
// construct the family's Option Codec over the status MSR, and derive
// the MCU clock (§4.4.1) now that handshakeBaud and the codec's
// clock_source bit (for trim-capable families) are both known.
func (m *Machine) Identify(status *StatusPacket, handshakeBaud int) error {
	model, found := registry.FindModel(status.Magic)
	if !found {
		m.Sink.Warn(fmt.Sprintf("unrecognized magic 0x%04x; treating as UNKNOWN", status.Magic))
	}
	if registry.IsDocumentedCollision(status.Magic) {
		m.Sink.Warn(fmt.Sprintf("magic 0x%04x is shared by two documented models; identification may be ambiguous", status.Magic))
	}
	// Only 0xF2-prefixed magics take the no-hardware-UART divisor (§4.4.3).
	if status.Magic>>8 != 0xF2 {
		m.Params.NoHardwareUART = false
	}
	if m.Params.SupportsTrim && m.Params.NoHardwareUART && !registry.IsKnownNoUARTMagic(status.Magic) {
		m.Sink.Warn(fmt.Sprintf("magic 0x%04x high byte 0xF2 selects the no-hardware-UART handshake path empirically, not from documentation; verify baud after programming", status.Magic))
	}
	m.Sink.Status(fmt.Sprintf("found %s, code %d bytes, eeprom %d bytes", model.Name, model.Code, model.EEPROM))

	descriptors := DescriptorsFor(model.Family)
	msr := make([]byte, m.Params.MSRSize)
	copy(msr, status.MSR)
	codec := options.NewCodec(model.Family.String(), descriptors, msr)

	mean := Mean(status.FreqCounter)

	externalClock := false
	var mcuClockHz float64
	if m.Params.SupportsTrim {
		if v, err := codec.Get("clock_source"); err == nil && v == "external" {
			externalClock = true
		}
	}
	if externalClock {
		mcuClockHz = float64(handshakeBaud) * float64(status.ExtClockRaw)
	} else {
		sixT := false
		if v, err := codec.Get("cpu_6t_enabled"); err == nil && v == "true" {
			sixT = true
		}
		mcuClockHz = ComputeMCUClock(handshakeBaud, mean, sixT)
	}

	// The authorization key requirement is gated on BSL version, not
	// family alone (§4.4.4/§4.4.5: "once BSL >= 0x72"); the low byte of
	// the parsed version carries the single-byte BCD value the spec's
	// threshold is expressed in.
	useAuthKey := m.Params.SupportsTrim && BSLSupportsAuthKey(status.BSLVersion&0xFF)

	m.Session = Session{
		Magic:         status.Magic,
		Model:         model,
		MCUClockHz:    mcuClockHz,
		BSLVersion:    fmt.Sprintf("%d.%d%c", status.BSLVersion>>8, status.BSLVersion&0xFF, status.Stepping),
		HandshakeBaud: handshakeBaud,
		FreqCounter:   mean,
		ExternalClock: externalClock,
		UseAuthKey:    useAuthKey,
		Codec:         codec,
	}
	m.Sink.Status(fmt.Sprintf("MCU clock: %.3f MHz, BSL version %s", mcuClockHz/1e6, m.Session.BSLVersion))
	return nil
}

// Disconnect implements §4.4.7: send the reset byte and close the link
// without waiting for a response.
func (m *Machine) Disconnect() error {
	_, err := m.Link.Write([]byte{resetByte})
	closeErr := m.Link.Close()
	if err != nil {
		return err
	}
	return closeErr
}
