package bsl

import "testing"

func TestBuildProgramChunk(t *testing.T) {
	data := []byte{1, 2, 3}
	packet, checksum := BuildProgramChunk(0x02, 0x0010, data, 8, nil)

	wantLen := 1 + 2 + 2 + 0 + 8
	if len(packet) != wantLen {
		t.Fatalf("packet length = %d, want %d", len(packet), wantLen)
	}
	if packet[0] != 0x02 {
		t.Fatalf("cmd byte = 0x%02x, want 0x02", packet[0])
	}
	if packet[1] != 0x00 || packet[2] != 0x10 {
		t.Fatalf("addr bytes = %02x %02x, want 00 10", packet[1], packet[2])
	}
	if packet[3] != 0x00 || packet[4] != 0x03 {
		t.Fatalf("len bytes = %02x %02x, want 00 03", packet[3], packet[4])
	}
	for i, b := range data {
		if packet[5+i] != b {
			t.Fatalf("data[%d] = 0x%02x, want 0x%02x", i, packet[5+i], b)
		}
	}
	for i := 5 + len(data); i < len(packet); i++ {
		if packet[i] != 0xFF {
			t.Fatalf("pad byte at %d = 0x%02x, want 0xFF", i, packet[i])
		}
	}
	if checksum != 1+2+3 {
		t.Fatalf("checksum = %d, want %d", checksum, 6)
	}
}

func TestBuildProgramChunkWithAuthKey(t *testing.T) {
	data := []byte{0xAA}
	packet, _ := BuildProgramChunk(0x22, 0, data, 4, AuthKey)

	if len(packet) != 1+2+2+len(AuthKey)+4 {
		t.Fatalf("packet length = %d, want %d", len(packet), 1+2+2+len(AuthKey)+4)
	}
	if packet[5] != AuthKey[0] || packet[6] != AuthKey[1] {
		t.Fatalf("auth key not inserted after length field: %x", packet[5:7])
	}
	if packet[7] != 0xAA {
		t.Fatalf("data byte after auth key = 0x%02x, want 0xAA", packet[7])
	}
}

func TestBSLSupportsAuthKey(t *testing.T) {
	if BSLSupportsAuthKey(0x71) {
		t.Fatal("0x71 should not require the auth key")
	}
	if !BSLSupportsAuthKey(0x72) {
		t.Fatal("0x72 should require the auth key")
	}
	if !BSLSupportsAuthKey(0x80) {
		t.Fatal("0x80 should require the auth key")
	}
}
