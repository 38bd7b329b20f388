package bsl

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/grigorig/stcgal/internal/framing"
	"github.com/grigorig/stcgal/internal/link"
	"github.com/grigorig/stcgal/internal/options"
	"github.com/grigorig/stcgal/internal/progress"
	"github.com/grigorig/stcgal/internal/registry"
)

// buildStatusPayload assembles a raw (unframed) status packet payload
// matching parseStatus's layout for a given set of params.
func buildStatusPayload(magic uint16, freqSamples []uint16, extClockRaw uint16, supportsTrim bool, version uint16, stepping byte, msr []byte) []byte {
	var out []byte
	out = append(out, byte(magic>>8), byte(magic))
	for _, s := range freqSamples {
		out = append(out, byte(s>>8), byte(s))
	}
	if supportsTrim {
		out = append(out, byte(extClockRaw>>8), byte(extClockRaw))
	}
	out = append(out, byte(version>>8), byte(version), stepping)
	out = append(out, msr...)
	return out
}

func newMachineFor(t *testing.T, family registry.Family, sl link.SerialLink) *Machine {
	t.Helper()
	m, err := NewMachine(sl, family, progress.Discard)
	if err != nil {
		t.Fatalf("NewMachine: %v", err)
	}
	return m
}

func TestMachineConnectAndIdentifyFamily89(t *testing.T) {
	params, _ := ParamsFor(registry.Family89)
	// cpu_6t_enabled is active-low on the 89-series: a clear bit0 means
	// the double-speed core is enabled.
	payload := buildStatusPayload(0xF000, []uint16{1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000}, 0, false, 0x0601, 'A', []byte{0x00})
	wire := framing.Encode(params.Dialect, framing.DirMCUToHost, payload)

	sl := link.NewMockSerialLink(wire)
	m := newMachineFor(t, registry.Family89, sl)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	status, err := m.Connect(ctx, 2400)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if status.Magic != 0xF000 {
		t.Fatalf("status.Magic = 0x%04x, want 0xF000", status.Magic)
	}

	if err := m.Identify(status, 2400); err != nil {
		t.Fatalf("Identify: %v", err)
	}
	if m.Session.Model.Name != "STC89C51RC" {
		t.Fatalf("Model.Name = %q, want STC89C51RC", m.Session.Model.Name)
	}
	want := ComputeMCUClock(2400, 1000, true) // cpu_6t_enabled active (bit0 clear)
	if m.Session.MCUClockHz != want {
		t.Fatalf("MCUClockHz = %v, want %v", m.Session.MCUClockHz, want)
	}
	if m.Session.UseAuthKey {
		t.Fatal("Family89 never uses the auth key")
	}
	if m.Session.BSLVersion != "6.1A" {
		t.Fatalf("BSLVersion = %q, want 6.1A", m.Session.BSLVersion)
	}
}

func TestMachineIdentifyAuthKeyGating(t *testing.T) {
	params, _ := ParamsFor(registry.Family15)
	// BSL 0x71 predates the auth key requirement.
	payload := buildStatusPayload(0xF402, []uint16{500, 500, 500, 500}, 0, true, 0x0071, 'A', make([]byte, 4))
	wire := framing.Encode(params.Dialect, framing.DirMCUToHost, payload)
	sl := link.NewMockSerialLink(wire)
	m := newMachineFor(t, registry.Family15, sl)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	status, err := m.Connect(ctx, 9600)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := m.Identify(status, 9600); err != nil {
		t.Fatalf("Identify: %v", err)
	}
	if m.Session.UseAuthKey {
		t.Fatal("BSL 0x71 should not require the auth key")
	}

	// BSL 0x72 requires it.
	payload2 := buildStatusPayload(0xF402, []uint16{500, 500, 500, 500}, 0, true, 0x0072, 'A', make([]byte, 4))
	wire2 := framing.Encode(params.Dialect, framing.DirMCUToHost, payload2)
	sl2 := link.NewMockSerialLink(wire2)
	m2 := newMachineFor(t, registry.Family15, sl2)
	status2, err := m2.Connect(ctx, 9600)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := m2.Identify(status2, 9600); err != nil {
		t.Fatalf("Identify: %v", err)
	}
	if !m2.Session.UseAuthKey {
		t.Fatal("BSL 0x72 should require the auth key")
	}
}

func TestMachineExternalClock(t *testing.T) {
	params, _ := ParamsFor(registry.Family15)
	// clock_source lives at msr[2] bit0 and is inverted: a clear bit
	// selects "external" for Family15.
	msr := []byte{0, 0, 0x00, 0, 0}
	payload := buildStatusPayload(0xF402, []uint16{500, 500, 500, 500}, 7, true, 0x0080, 'A', msr)
	wire := framing.Encode(params.Dialect, framing.DirMCUToHost, payload)
	sl := link.NewMockSerialLink(wire)
	m := newMachineFor(t, registry.Family15, sl)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	status, err := m.Connect(ctx, 9600)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := m.Identify(status, 9600); err != nil {
		t.Fatalf("Identify: %v", err)
	}
	if !m.Session.ExternalClock {
		t.Fatal("expected ExternalClock=true when clock_source=external")
	}
	want := float64(9600 * 7)
	if m.Session.MCUClockHz != want {
		t.Fatalf("MCUClockHz = %v, want %v", m.Session.MCUClockHz, want)
	}
}

func TestMachineErase(t *testing.T) {
	params, _ := ParamsFor(registry.Family89)
	ack := framing.Encode(params.Dialect, framing.DirMCUToHost, []byte{eraseCmd})
	sl := link.NewMockSerialLink(ack)
	m := newMachineFor(t, registry.Family89, sl)
	m.Session.UseAuthKey = false

	if err := m.Erase(256); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	written := sl.AllWritten()
	dir, payload, err := framing.Decode(bytesLink(written), params.Dialect, time.Second)
	if err != nil {
		t.Fatalf("decoding erase packet we sent: %v", err)
	}
	if dir != framing.DirHostToMCU {
		t.Fatalf("direction = 0x%02x, want host->MCU", dir)
	}
	if payload[0] != eraseCmd {
		t.Fatalf("erase payload[0] = 0x%02x, want eraseCmd", payload[0])
	}
}

func TestMachineProgramFlashFamily89SendsNoFinalize(t *testing.T) {
	params, _ := ParamsFor(registry.Family89)
	image := []byte{1, 2, 3, 4}
	_, checksum := BuildProgramChunk(params.FirstBlockCmd, 0, image, params.ProgramBlockSize, nil)

	chunkAck := framing.Encode(params.Dialect, framing.DirMCUToHost, []byte{0x00, checksum})
	sl := link.NewMockSerialLink(chunkAck)
	m := newMachineFor(t, registry.Family89, sl)

	if err := m.ProgramFlash(image); err != nil {
		t.Fatalf("ProgramFlash: %v", err)
	}
	if len(sl.Written) != 1 {
		t.Fatalf("wrote %d packets, want 1 (no finalize packet for family89)", len(sl.Written))
	}
}

func TestMachineProgramFlashFamily12SendsFinalize(t *testing.T) {
	params, _ := ParamsFor(registry.Family12)
	image := []byte{1, 2, 3, 4}
	_, checksum := BuildProgramChunk(params.FirstBlockCmd, 0, image, params.ProgramBlockSize, nil)

	chunkAck := framing.Encode(params.Dialect, framing.DirMCUToHost, []byte{0x00, checksum})
	finalizeAck := framing.Encode(params.Dialect, framing.DirMCUToHost, []byte{0x8d})
	wire := append(append([]byte{}, chunkAck...), finalizeAck...)

	sl := link.NewMockSerialLink(wire)
	m := newMachineFor(t, registry.Family12, sl)
	m.Session.Magic = 0xF500

	if err := m.ProgramFlash(image); err != nil {
		t.Fatalf("ProgramFlash: %v", err)
	}
	if len(sl.Written) != 2 {
		t.Fatalf("wrote %d packets, want 2 (chunk + finalize)", len(sl.Written))
	}
	dir, payload, err := framing.Decode(bytesLink(sl.Written[1]), params.Dialect, time.Second)
	if err != nil {
		t.Fatalf("decoding finalize packet we sent: %v", err)
	}
	if dir != framing.DirHostToMCU {
		t.Fatalf("finalize direction = 0x%02x, want host->MCU", dir)
	}
	want := []byte{0x69, 0x00, 0x00, 0x36, 0x01, 0xF5, 0x00}
	if !bytes.Equal(payload, want) {
		t.Fatalf("finalize payload = % X, want % X", payload, want)
	}
}

func TestMachineProgramOptions(t *testing.T) {
	params, _ := ParamsFor(registry.Family89)
	codec := options.NewCodec(registry.Family89.String(), DescriptorsFor(registry.Family89), []byte{0x01})

	ack := framing.Encode(params.Dialect, framing.DirMCUToHost, []byte{programOptionsCmd})
	sl := link.NewMockSerialLink(ack)
	m := newMachineFor(t, registry.Family89, sl)
	m.Session.Codec = codec

	if err := m.ProgramOptions(11059200); err != nil {
		t.Fatalf("ProgramOptions: %v", err)
	}
}

func TestDetect(t *testing.T) {
	payload := buildStatusPayload(0xF000, []uint16{1, 1, 1, 1, 1, 1, 1, 1}, 0, false, 0x0601, 'A', []byte{0})
	wire := framing.Encode(framing.DialectA, framing.DirMCUToHost, payload)
	sl := link.NewMockSerialLink(wire)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	family, status, err := Detect(ctx, sl, progress.Discard)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if family != registry.Family89 {
		t.Fatalf("Detect family = %v, want Family89", family)
	}
	if status.Magic != 0xF000 {
		t.Fatalf("Detect magic = 0x%04x, want 0xF000", status.Magic)
	}
}

// bytesLink adapts a plain byte slice to link.SerialLink for re-decoding
// bytes this package itself wrote, so tests can assert on wire shape
// without duplicating framing.Encode's checksum math by hand.
type bytesLinkT struct {
	buf []byte
	pos int
}

func bytesLink(b []byte) link.SerialLink {
	return &bytesLinkT{buf: b}
}

func (b *bytesLinkT) Write(data []byte) (int, error) { return len(data), nil }
func (b *bytesLinkT) Flush() error                   { return nil }
func (b *bytesLinkT) ReadFull(buf []byte, timeout time.Duration) error {
	if b.pos+len(buf) > len(b.buf) {
		return link.ErrTimeout
	}
	copy(buf, b.buf[b.pos:b.pos+len(buf)])
	b.pos += len(buf)
	return nil
}
func (b *bytesLinkT) SetBaud(int) error        { return nil }
func (b *bytesLinkT) SetParity(link.Parity) error { return nil }
func (b *bytesLinkT) InputWaiting() (bool, error) { return b.pos < len(b.buf), nil }
func (b *bytesLinkT) PulsePower() error           { return nil }
func (b *bytesLinkT) Close() error                { return nil }
