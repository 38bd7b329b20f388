package bsl

import (
	"fmt"

	"github.com/grigorig/stcgal/internal/framing"
)

const eraseCmd = 0x03

// Erase implements §4.4.4: build the family-specific erase packet,
// send it, and capture the UID if the ack carries one.
func (m *Machine) Erase(eraseSize int) error {
	m.Sink.Status("erasing flash")
	blocks := EraseBlocks(eraseSize)

	payload := []byte{eraseCmd, byte(blocks >> 8), byte(blocks)}
	switch {
	case m.Params.EraseUsesAuthKey && m.Session.UseAuthKey:
		// BSL >= 0x72 (§4.4.4): the authorization key is required.
		payload = append(payload, AuthKey...)
	case m.Params.EraseUsesAuthKey:
		// Older BSL revisions of the same family predate the
		// authorization key and expect the erase packet without it.
	default:
		payload = append(payload, EraseCountdown(m.Params.EraseCountdownFrom, m.Params.EraseCountdownTo)...)
	}

	if err := m.send(payload); err != nil {
		return err
	}
	ack, err := m.waitAck()
	if err != nil {
		return fmt.Errorf("bsl: erase: %w", err)
	}
	if len(ack) == 0 || ack[0] != eraseCmd {
		return fmt.Errorf("bsl: erase: unexpected ack type 0x%02x", firstByte(ack))
	}
	if len(ack) >= 1+7 {
		copy(m.Session.UID[:], ack[1:8])
		m.Session.HaveUID = true
	}
	return nil
}

func firstByte(b []byte) byte {
	if len(b) == 0 {
		return 0
	}
	return b[0]
}

// send frames payload host->MCU and writes it to the link.
func (m *Machine) send(payload []byte) error {
	wire := framing.Encode(m.Params.Dialect, framing.DirHostToMCU, payload)
	if _, err := m.Link.Write(wire); err != nil {
		return err
	}
	return m.Link.Flush()
}

// waitAck reads one packet with the standard protocol timeout.
func (m *Machine) waitAck() ([]byte, error) {
	_, payload, err := framing.Decode(m.Link, m.Params.Dialect, readTimeout)
	return payload, err
}
