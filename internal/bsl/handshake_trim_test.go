package bsl

import (
	"strings"
	"testing"

	"github.com/grigorig/stcgal/internal/framing"
	"github.com/grigorig/stcgal/internal/link"
	"github.com/grigorig/stcgal/internal/registry"
)

// TestHandshakeTrimUnbracketableFails covers §8's "15 series untrimmed"
// scenario: if the coarse round's measured counters never bracket the
// target, trimming cannot proceed (protocols.py choose_range's None
// path) and HandshakeTrim must fail with a diagnostic naming the
// failure, not silently clamp to the nearest sample.
func TestHandshakeTrimUnbracketableFails(t *testing.T) {
	params, _ := ParamsFor(registry.Family15)

	ackPayload := []byte{trimChallengeCmd, 12}
	for i := 0; i < 12; i++ {
		ackPayload = append(ackPayload, 0x00, 0x05)
	}
	wire := framing.Encode(params.Dialect, framing.DirMCUToHost, ackPayload)

	sl := link.NewMockSerialLink(wire)
	m := newMachineFor(t, registry.Family15, sl)
	m.Session.FreqCounter = 1000
	m.Session.MCUClockHz = 1

	err := m.HandshakeTrim(9600, 11059200)
	if err == nil {
		t.Fatal("HandshakeTrim should fail when no coarse pair brackets the target")
	}
	if !strings.Contains(err.Error(), "frequency trimming unsuccessful") {
		t.Fatalf("HandshakeTrim error = %q, want it to contain %q", err, "frequency trimming unsuccessful")
	}
}
