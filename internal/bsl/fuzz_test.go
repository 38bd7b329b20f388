package bsl

import (
	"context"
	"testing"
	"time"

	"github.com/grigorig/stcgal/internal/framing"
	"github.com/grigorig/stcgal/internal/link"
	"github.com/grigorig/stcgal/internal/registry"
)

// faultInjectingLink is a thin MockSerialLink wrapper fed a trace that
// was deliberately built from a corrupted or truncated status packet
// (§8 "Fuzzed input"); it adds no behavior of its own. It exists so
// fuzz-style tests read as "construct a bad trace, hand it to a link, see
// how the state machine reacts" rather than poking Machine internals
// directly.
type faultInjectingLink struct {
	*link.MockSerialLink
}

func newFaultInjectingLink(trace []byte) *faultInjectingLink {
	return &faultInjectingLink{MockSerialLink: link.NewMockSerialLink(trace)}
}

// flipBit returns a copy of trace with bit 0 of the byte at offset
// inverted, simulating a single-bit line error.
func flipBit(trace []byte, offset int) []byte {
	out := make([]byte, len(trace))
	copy(out, trace)
	out[offset] ^= 0x01
	return out
}

// TestFuzzedTraces drives Connect against a valid status trace with
// truncation and a single-bit error injected at every offset. Every
// case must end in either a decoded status or an error — never a panic,
// a hang, or a nil status without an error (§8 "Fuzzed input").
func TestFuzzedTraces(t *testing.T) {
	params, _ := ParamsFor(registry.Family89)
	payload := buildStatusPayload(0xF000, []uint16{1, 1, 1, 1, 1, 1, 1, 1}, 0, false, 0x0601, 'A', []byte{0})
	goodWire := framing.Encode(params.Dialect, framing.DirMCUToHost, payload)

	t.Run("truncated", func(t *testing.T) {
		for cut := 1; cut < len(goodWire); cut++ {
			fl := newFaultInjectingLink(goodWire[:cut])
			m := newMachineFor(t, registry.Family89, fl)
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			_, err := m.Connect(ctx, 2400)
			cancel()
			if err == nil {
				t.Fatalf("truncated trace at %d bytes: expected an error, got none", cut)
			}
		}
	})

	t.Run("bit-flipped", func(t *testing.T) {
		for i := range goodWire {
			fl := newFaultInjectingLink(flipBit(goodWire, i))
			m := newMachineFor(t, registry.Family89, fl)
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			status, err := m.Connect(ctx, 2400)
			cancel()
			// A corrupted framing/checksum byte fails to decode at all; a
			// corrupted payload byte may still decode into a (differently
			// valued) status packet. Either is acceptable — a panic or a
			// nil status with no error is not.
			if err == nil && status == nil {
				t.Fatalf("bit flip at offset %d: nil status without an error", i)
			}
		}
	})
}

func TestFaultInjectingLinkPassesCleanTrace(t *testing.T) {
	params, _ := ParamsFor(registry.Family89)
	payload := buildStatusPayload(0xF000, []uint16{1, 1, 1, 1, 1, 1, 1, 1}, 0, false, 0x0601, 'A', []byte{0})
	wire := framing.Encode(params.Dialect, framing.DirMCUToHost, payload)

	fl := newFaultInjectingLink(wire)
	m := newMachineFor(t, registry.Family89, fl)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	status, err := m.Connect(ctx, 2400)
	if err != nil {
		t.Fatalf("clean trace through faultInjectingLink: %v", err)
	}
	if status.Magic != 0xF000 {
		t.Fatalf("status.Magic = 0x%04x, want 0xF000", status.Magic)
	}
}
