package bsl

import (
	"encoding/binary"
	"fmt"
)

// ProgramFlash implements §4.4.5: iterate image in ProgramBlockSize
// chunks, each acked by its checksum. The 15-family's first block uses
// a distinct command byte.
func (m *Machine) ProgramFlash(image []byte) error {
	m.Sink.Status("programming flash")
	blockSize := m.Params.ProgramBlockSize
	total := len(image)

	var authKey []byte
	if m.Params.AuthKeyRequired && m.Session.UseAuthKey {
		authKey = AuthKey
	}

	for off := 0; off < total; off += blockSize {
		end := off + blockSize
		if end > total {
			end = total
		}
		chunk := image[off:end]

		cmd := m.Params.NextBlockCmd
		if off == 0 {
			cmd = m.Params.FirstBlockCmd
		}

		packet, wantChecksum := BuildProgramChunk(cmd, uint16(off), chunk, blockSize, authKey)
		if err := m.send(packet); err != nil {
			return err
		}
		ack, err := m.waitAck()
		if err != nil {
			return fmt.Errorf("bsl: program_flash at offset 0x%04x: %w", off, err)
		}
		if len(ack) < 1 || ack[len(ack)-1] != wantChecksum {
			return fmt.Errorf("bsl: program_flash at offset 0x%04x: checksum mismatch", off)
		}
		m.Sink.Progress(end, total)
	}

	if m.Params.FinalizeAfterProgram {
		// The 12-series alone sends a finishing packet carrying the
		// magic after the last chunk (§4.4.5); the ack's type byte is
		// 0x8d, not the outgoing command's 0x69.
		magic := m.Session.Magic
		packet := []byte{finalizeProgramCmd, 0x00, 0x00, 0x36, 0x01, byte(magic >> 8), byte(magic)}
		if err := m.send(packet); err != nil {
			return err
		}
		ack, err := m.waitAck()
		if err != nil {
			return fmt.Errorf("bsl: program_flash finalize: %w", err)
		}
		if len(ack) == 0 || ack[0] != finalizeProgramAck {
			return fmt.Errorf("bsl: program_flash finalize: unexpected ack type 0x%02x", firstByte(ack))
		}
	}
	return nil
}

const (
	finalizeProgramCmd = 0x69
	finalizeProgramAck = 0x8d
)

const programOptionsCmd = 0x04

// ProgramOptions implements §4.4.6: serialize the MSR and attach the
// family-specific trailer, then expect an ack that may carry the UID.
func (m *Machine) ProgramOptions(measuredFreqHz float64) error {
	m.Sink.Status("programming options")
	msr := m.Session.Codec.Serialize()

	payload := []byte{programOptionsCmd}
	payload = append(payload, msr...)
	payload = append(payload, m.buildOptionsTrailer(measuredFreqHz, msr)...)

	if err := m.send(payload); err != nil {
		return err
	}
	ack, err := m.waitAck()
	if err != nil {
		return fmt.Errorf("bsl: program_options: %w", err)
	}
	if len(ack) == 0 || ack[0] != programOptionsCmd {
		return fmt.Errorf("bsl: program_options: unexpected ack type 0x%02x", firstByte(ack))
	}
	if !m.Session.HaveUID && len(ack) >= 1+7 {
		copy(m.Session.UID[:], ack[1:8])
		m.Session.HaveUID = true
	}
	return nil
}

// buildOptionsTrailer builds the family-specific trailing fields
// described in §4.4.6.
func (m *Machine) buildOptionsTrailer(measuredFreqHz float64, msr []byte) []byte {
	switch m.Params.Name {
	case "12A", "12":
		trailer := make([]byte, 4)
		binary.BigEndian.PutUint32(trailer, uint32(measuredFreqHz))
		return append(padFF(4), trailer...)
	case "15A":
		return padFF(8)
	case "15", "usb15":
		freqBuf := make([]byte, 4)
		binary.BigEndian.PutUint32(freqBuf, uint32(m.Session.TrimFrequency))
		out := append([]byte{}, freqBuf...)
		out = append(out, freqBuf...)
		if len(msr) > 3 {
			out = append(out, msr[3])
		}
		out = append(out, padFF(4)...)
		out = append(out, m.Session.TrimValue[0]+0x3F, m.Session.TrimValue[1]+0x3F)
		if len(msr) >= 4 {
			out = append(out, msr[0:4]...)
		}
		return out
	case "8":
		freqBuf := make([]byte, 4)
		binary.BigEndian.PutUint32(freqBuf, uint32(m.Session.TrimFrequency))
		out := append([]byte{}, freqBuf...)
		out = append(out, freqBuf...)
		if len(msr) > 3 {
			out = append(out, msr[3])
		}
		out = append(out, padFF(4)...)
		out = append(out, m.Session.TrimValue[0]+0x3F, m.Session.TrimValue[1]+0x3F)
		if len(msr) >= 4 {
			out = append(out, msr[0:4]...)
		}
		// 8-series adds the split-point byte beyond the 15-series layout.
		if len(msr) > 4 {
			out = append(out, msr[4])
		}
		return out
	default: // "89"
		return nil
	}
}

func padFF(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = 0xFF
	}
	return b
}
