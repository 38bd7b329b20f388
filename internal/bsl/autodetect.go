package bsl

import (
	"context"
	"fmt"

	"github.com/grigorig/stcgal/internal/framing"
	"github.com/grigorig/stcgal/internal/link"
	"github.com/grigorig/stcgal/internal/progress"
	"github.com/grigorig/stcgal/internal/registry"
)

// Detect implements §4.6: pulse at the handshake baud, accept whichever
// dialect responds, classify the magic by high byte, and return the
// chosen family without committing any state change on the target.
//
// It tries Dialect A first (most permissive: tolerates a missing
// magic), falling back to Dialect B if no status packet arrives.
func Detect(ctx context.Context, sl link.SerialLink, sink progress.Sink) (registry.Family, *StatusPacket, error) {
	for _, dialect := range []framing.Dialect{framing.DialectA, framing.DialectB} {
		if err := sl.SetParity(dialect.Parity); err != nil {
			return registry.FamilyUnknown, nil, err
		}
		// Use the smaller sample count so parseStatus's length check
		// passes regardless of which family actually responds; the probe
		// only needs the leading magic, never the full status fields.
		probe := &Machine{Link: sl, Params: Params{Dialect: dialect, FreqCounterSamples: 4, MSRSize: 16}, Sink: sink}
		// Connect only returns on a status packet or cancellation, so each
		// dialect gets a bounded window before the next one is tried.
		probeCtx, cancel := context.WithTimeout(ctx, readTimeout)
		status, err := probe.Connect(probeCtx, 0)
		cancel()
		if err != nil {
			continue
		}
		family := registry.ClassifyHighByte(status.Magic)
		if family == registry.FamilyUnknown {
			continue
		}
		// Tear down the probe without committing anything: a reset
		// byte, no handshake, no erase. The caller restarts from a
		// fresh Connect using the real family's Machine.
		_, _ = sl.Write([]byte{resetByte})
		return family, status, nil
	}
	return registry.FamilyUnknown, nil, fmt.Errorf("bsl: auto-detect: no recognizable status packet received")
}
