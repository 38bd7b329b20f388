package framing

import (
	"bytes"
	"testing"
	"time"

	"github.com/grigorig/stcgal/internal/link"
)

func TestEncodeDecodeRoundTripDialectA(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0x04}
	wire := Encode(DialectA, DirHostToMCU, payload)

	sl := link.NewMockSerialLink(wire)
	dir, got, err := Decode(sl, DialectA, time.Second)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if dir != DirHostToMCU {
		t.Errorf("dir = 0x%02x, want 0x%02x", dir, DirHostToMCU)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("payload = %x, want %x", got, payload)
	}
}

func TestEncodeDecodeRoundTripDialectB(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAA, 0x55}, 20)
	wire := Encode(DialectB, DirMCUToHost, payload)

	sl := link.NewMockSerialLink(wire)
	dir, got, err := Decode(sl, DialectB, time.Second)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if dir != DirMCUToHost {
		t.Errorf("dir = 0x%02x, want 0x%02x", dir, DirMCUToHost)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("payload = %x, want %x", got, payload)
	}
}

func TestDecodeToleratesMissingMagic(t *testing.T) {
	payload := []byte{0x00}
	full := Encode(DialectA, DirMCUToHost, payload)
	// Drop the two leading magic bytes, as some 89/90 BSL revisions do on
	// the initial status packet.
	truncated := full[2:]

	sl := link.NewMockSerialLink(truncated)
	dir, got, err := Decode(sl, DialectA, time.Second)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if dir != DirMCUToHost {
		t.Errorf("dir = 0x%02x, want 0x%02x", dir, DirMCUToHost)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("payload = %x, want %x", got, payload)
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	wire := Encode(DialectB, DirHostToMCU, []byte{0x01})
	wire[0] = 0xFF
	sl := link.NewMockSerialLink(wire)
	if _, _, err := Decode(sl, DialectB, time.Second); err == nil {
		t.Fatal("expected framing error, got nil")
	} else if !IsRecoverable(err) {
		t.Errorf("expected a recoverable framing error, got %T", err)
	}
}

func TestDecodeRejectsBadChecksum(t *testing.T) {
	wire := Encode(DialectA, DirHostToMCU, []byte{0x01, 0x02})
	wire[len(wire)-2] ^= 0xFF
	sl := link.NewMockSerialLink(wire)
	if _, _, err := Decode(sl, DialectA, time.Second); err == nil {
		t.Fatal("expected checksum error, got nil")
	} else if _, ok := err.(*ChecksumError); !ok {
		t.Errorf("expected *ChecksumError, got %T", err)
	}
}

func TestDecodeRejectsBadEndByte(t *testing.T) {
	wire := Encode(DialectB, DirHostToMCU, []byte{0x01})
	wire[len(wire)-1] = 0x00
	sl := link.NewMockSerialLink(wire)
	if _, _, err := Decode(sl, DialectB, time.Second); err == nil {
		t.Fatal("expected framing error, got nil")
	}
}
