package ihex

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseSimpleDataRecord(t *testing.T) {
	// ":03 0000 00 010203 F7" — 3 bytes 01 02 03 at address 0, then EOF.
	src := ":03000000010203F7\n:00000001FF\n"
	img, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := img.Flatten(0xFF)
	want := []byte{0x01, 0x02, 0x03}
	if !bytes.Equal(got, want) {
		t.Errorf("Flatten = %x, want %x", got, want)
	}
}

func TestParseRejectsBadChecksum(t *testing.T) {
	src := ":03000000010203FF\n:00000001FF\n"
	if _, err := Parse(strings.NewReader(src)); err == nil {
		t.Fatal("expected checksum error, got nil")
	}
}

func TestParseRejectsUnknownType(t *testing.T) {
	src := ":00000006FA\n"
	if _, err := Parse(strings.NewReader(src)); err == nil {
		t.Fatal("expected unknown-type error, got nil")
	}
}

func TestParseExtendedLinearAddress(t *testing.T) {
	// Set upper 16 bits to 0x0001, then write 2 bytes at offset 0x0010.
	src := ":020000040001F9\n:020010000708DF\n:00000001FF\n"
	img, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got := img.Flatten(0x00)
	wantLen := 0x10012
	if len(got) != wantLen {
		t.Fatalf("len(Flatten) = %d, want %d", len(got), wantLen)
	}
	if got[0x10010] != 0x07 || got[0x10011] != 0x08 {
		t.Errorf("tail bytes = %x %x, want 07 08", got[0x10010], got[0x10011])
	}
}

func TestParseStartLinearAddress(t *testing.T) {
	src := ":0400000500010000F6\n"
	img, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	start, ok := img.StartAddress()
	if !ok {
		t.Fatal("expected a start address")
	}
	if start != 0x00010000 {
		t.Errorf("start = 0x%x, want 0x00010000", start)
	}
}

func TestLooksLikeIntelHex(t *testing.T) {
	cases := map[string]bool{
		"firmware.hex":  true,
		"firmware.IHX":  true,
		"firmware.ihex": true,
		"firmware.bin":  false,
		"firmware":      false,
	}
	for name, want := range cases {
		if got := LooksLikeIntelHex(name); got != want {
			t.Errorf("LooksLikeIntelHex(%q) = %v, want %v", name, got, want)
		}
	}
}
