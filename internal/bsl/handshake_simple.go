package bsl

import "fmt"

const (
	checkNewBaudCmd = 0x01
	commitBaudCmd   = 0x05
)

// HandshakeSimple implements §4.4.3's simple strategy for 89/12A/12:
// compute BRT and its checksum, switch the link, and confirm at the
// new rate. The 12 and 12A families additionally run a 4-iteration
// ping-pong probe at the new rate.
func (m *Machine) HandshakeSimple(targetBaud int, sixTMode bool) error {
	k := m.Params.BaudDivisorK
	if sixTMode && m.Params.SixTModeK != 0 {
		k = m.Params.SixTModeK
	}
	brt, checksum, err := SimpleBRT(m.Session.MCUClockHz, targetBaud, k)
	if err != nil {
		return err
	}

	iapWait := IAPWait(m.Session.MCUClockHz/1e6, m.Params.Name != "89")

	checkPayload := []byte{checkNewBaudCmd, byte(brt), checksum, iapWait}
	if err := m.send(checkPayload); err != nil {
		return err
	}
	if _, err := m.waitAck(); err != nil {
		return fmt.Errorf("bsl: handshake: check-new-baud: %w", err)
	}

	if err := m.Link.SetBaud(targetBaud); err != nil {
		return fmt.Errorf("bsl: handshake: switching link to %d baud: %w", targetBaud, err)
	}
	if _, err := m.waitAck(); err != nil {
		return fmt.Errorf("bsl: handshake: echo at new baud: %w", err)
	}

	if err := m.send([]byte{commitBaudCmd}); err != nil {
		return err
	}
	if _, err := m.waitAck(); err != nil {
		return fmt.Errorf("bsl: handshake: commit ack: %w", err)
	}

	if m.Params.Name == "12" || m.Params.Name == "12A" {
		for i := 0; i < 4; i++ {
			probe := []byte{byte(i)}
			if err := m.send(probe); err != nil {
				return err
			}
			if _, err := m.waitAck(); err != nil {
				return fmt.Errorf("bsl: handshake: ping-pong probe %d: %w", i, err)
			}
		}
	}

	m.Session.TransferBaud = targetBaud
	return nil
}
