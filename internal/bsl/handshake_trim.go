package bsl

import "fmt"

const (
	trimChallengeCmd = 0x00
	switchFreqCmd    = 0x01
)

// coarseTrimChallenge is the fixed 12-pair (trim_adj, trim_range) coarse
// calibration challenge, sent as a single packet: four trim_range bands
// (0xc0, 0x80, 0x40, 0x00), each sampled at three trim_adj points
// spanning that band. Ported byte-for-byte from the original source's
// Stc15Protocol.calibrate round 1 packet.
func coarseTrimChallenge() []TrimSample {
	return []TrimSample{
		{TrimAdj: 0x00, TrimRange: 0xc0}, {TrimAdj: 0x80, TrimRange: 0xc0}, {TrimAdj: 0xff, TrimRange: 0xc0},
		{TrimAdj: 0x00, TrimRange: 0x80}, {TrimAdj: 0x80, TrimRange: 0x80}, {TrimAdj: 0xff, TrimRange: 0x80},
		{TrimAdj: 0x00, TrimRange: 0x40}, {TrimAdj: 0x80, TrimRange: 0x40}, {TrimAdj: 0xff, TrimRange: 0x40},
		{TrimAdj: 0x00, TrimRange: 0x00}, {TrimAdj: 0x80, TrimRange: 0x00}, {TrimAdj: 0xc0, TrimRange: 0x00},
	}
}

// fineTrimChallenge builds the second-round packet: six trim_adj values
// bracketing the user-frequency estimate followed by six bracketing the
// program-frequency estimate, each half paired with its own bracket's
// trim_range byte.
func fineTrimChallenge(userBracket, progBracket TrimBracket) []TrimSample {
	out := make([]TrimSample, 0, 12)
	for i := userBracket.TrimAdj - 3; i < userBracket.TrimAdj+3; i++ {
		out = append(out, TrimSample{TrimAdj: byte(i), TrimRange: userBracket.TrimRange})
	}
	for i := progBracket.TrimAdj - 3; i < progBracket.TrimAdj+3; i++ {
		out = append(out, TrimSample{TrimAdj: byte(i), TrimRange: progBracket.TrimRange})
	}
	return out
}

// HandshakeTrim implements §4.4.3's RC-oscillator trim strategy for
// 15A/15/8: derive target counters, run a single coarse challenge round,
// bracket-interpolate both targets, run a single combined fine round,
// pick the closest sample for each, then switch to the final
// baud/frequency.
func (m *Machine) HandshakeTrim(targetBaud int, userSpeedHz float64) error {
	if m.Session.ExternalClock {
		return m.handshakeExternalClock(targetBaud)
	}

	ratio := MeasuredRatio(m.Session.FreqCounter, m.Session.MCUClockHz)
	targetUser, targetProg := TargetCounters(userSpeedHz, ratio, ProgrammingFrequencyHz)

	coarse, err := m.runTrimRound(coarseTrimChallenge())
	if err != nil {
		return fmt.Errorf("bsl: trim: coarse round: %w", err)
	}

	userBracket, err := ChooseRange(coarse, targetUser)
	if err != nil {
		return err
	}
	progBracket, err := ChooseRange(coarse, targetProg)
	if err != nil {
		return err
	}

	fine, err := m.runTrimRound(fineTrimChallenge(userBracket, progBracket))
	if err != nil {
		return fmt.Errorf("bsl: trim: fine round: %w", err)
	}
	if len(fine) < 12 {
		return fmt.Errorf("bsl: trim: fine round: short response (%d samples)", len(fine))
	}

	userBest := ClosestFineTrim(fine[:6], targetUser)
	progBest := ClosestFineTrim(fine[6:], targetProg)

	m.Session.TrimValue = [2]byte{userBest.TrimAdj, userBest.TrimRange}
	m.Session.ProgTrimValue = [2]byte{progBest.TrimAdj, progBest.TrimRange}
	m.Session.TrimFrequency = progBest.Counter / ratio

	divisor := TransferDivisor(ProgrammingFrequencyHz, targetBaud, m.Params.NoHardwareUART)
	payload := []byte{
		switchFreqCmd,
		progBest.TrimAdj, progBest.TrimRange,
		byte(int(divisor) >> 8), byte(int(divisor)),
	}
	if err := m.send(payload); err != nil {
		return err
	}
	if err := m.Link.SetBaud(targetBaud); err != nil {
		return err
	}
	if _, err := m.waitAck(); err != nil {
		return fmt.Errorf("bsl: trim: switch-frequency ack: %w", err)
	}

	m.Session.TransferBaud = targetBaud
	return nil
}

// handshakeExternalClock implements the §4.4.3 external-clock shortcut:
// no calibration, a direct divisor, and recording factory trim for
// later restoration.
func (m *Machine) handshakeExternalClock(targetBaud int) error {
	divisor := ExternalClockDivisor(m.Session.MCUClockHz, targetBaud)
	payload := []byte{switchFreqCmd, byte(divisor >> 8), byte(divisor)}
	if err := m.send(payload); err != nil {
		return err
	}
	if err := m.Link.SetBaud(targetBaud); err != nil {
		return err
	}
	if _, err := m.waitAck(); err != nil {
		return fmt.Errorf("bsl: trim: external-clock switch ack: %w", err)
	}
	m.Session.TransferBaud = targetBaud
	return nil
}

// runTrimRound sends one challenge packet carrying every (trim_adj,
// trim_range) pair and returns each pair together with its measured
// counter, decoded from the single multi-value response. The original
// source sends one packet and reads one packet per round, not one
// round trip per sample.
func (m *Machine) runTrimRound(challenge []TrimSample) ([]TrimSample, error) {
	payload := make([]byte, 0, 2+2*len(challenge))
	payload = append(payload, trimChallengeCmd, byte(len(challenge)))
	for _, c := range challenge {
		payload = append(payload, c.TrimAdj, c.TrimRange)
	}
	if err := m.send(payload); err != nil {
		return nil, err
	}
	ack, err := m.waitAck()
	if err != nil {
		return nil, err
	}
	if len(ack) < 2 || ack[0] != trimChallengeCmd {
		return nil, fmt.Errorf("unexpected ack type 0x%02x", firstByte(ack))
	}
	n := int(ack[1])
	if n > len(challenge) {
		n = len(challenge)
	}
	if len(ack) < 2+2*n {
		return nil, fmt.Errorf("challenge ack too short")
	}
	out := make([]TrimSample, n)
	for i := 0; i < n; i++ {
		counter := float64(uint16(ack[2+2*i])<<8 | uint16(ack[3+2*i]))
		out[i] = TrimSample{TrimAdj: challenge[i].TrimAdj, TrimRange: challenge[i].TrimRange, Counter: counter}
	}
	return out, nil
}
