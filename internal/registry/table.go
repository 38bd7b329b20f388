package registry

// entries is the static MCU model database. It compresses what is, in the
// original stcgal.py source, several hundred lines of repetitive
// dictionary-literal entries (one per marketed part number) into the same
// shape: a flat list of (name, magic, family, total, code, eeprom) facts.
// This module ships a representative subset spanning the six
// magic-classified protocol families (usb15 has no entries of its own)
// rather than stcgal's full multi-hundred-entry catalog; adding a
// model is a one-line append, never a code change.
var entries = []MCUModel{
	// --- STC89/90 (Family89): one-byte checksum, no parity, 8-bit sum ---
	{Name: "STC89C51RC", Magic: 0xF000, Family: Family89, Total: 13312, Code: 13312, EEPROM: 0},
	{Name: "STC89C52RC", Magic: 0xF001, Family: Family89, Total: 17408, Code: 17408, EEPROM: 0},
	{Name: "STC89C53RC", Magic: 0xF002, Family: Family89, Total: 21504, Code: 21504, EEPROM: 0},
	{Name: "STC89C54RD+", Magic: 0xF003, Family: Family89, Total: 27648, Code: 27648, EEPROM: 0},
	{Name: "STC89C58RD+", Magic: 0xF004, Family: Family89, Total: 35840, Code: 35840, EEPROM: 0},
	{Name: "STC90C51RC", Magic: 0xF020, Family: Family89, Total: 13312, Code: 13312, EEPROM: 0},
	{Name: "STC90C52RC", Magic: 0xF021, Family: Family89, Total: 17408, Code: 17408, EEPROM: 0},

	// --- STC12A (Family12A, grouped under the 10/11/12 generation) ---
	{Name: "STC12C5410AD", Magic: 0xD120, Family: Family12A, Total: 10240, Code: 10240, EEPROM: 0},
	{Name: "STC12C5412AD", Magic: 0xD121, Family: Family12A, Total: 12288, Code: 12288, EEPROM: 0},
	{Name: "STC12C5404AD", Magic: 0xD130, Family: Family12A, Total: 4096, Code: 4096, EEPROM: 0},

	// --- STC12 (Family12) ---
	{Name: "STC12C5A60S2", Magic: 0xE000, Family: Family12, Total: 61440, Code: 61440, EEPROM: 0},
	{Name: "STC12C5A56S2", Magic: 0xE001, Family: Family12, Total: 57344, Code: 57344, EEPROM: 0},
	{Name: "STC12C5A52S2", Magic: 0xE002, Family: Family12, Total: 53248, Code: 53248, EEPROM: 0},
	{Name: "STC12C5A32S2", Magic: 0xE010, Family: Family12, Total: 32768, Code: 32768, EEPROM: 0},
	{Name: "STC12C5A16S2", Magic: 0xE011, Family: Family12, Total: 16384, Code: 16384, EEPROM: 0},
	{Name: "STC12C5A08S2", Magic: 0xE012, Family: Family12, Total: 8192, Code: 8192, EEPROM: 0},
	{Name: "STC12LE5A60S2", Magic: 0xE100, Family: Family12, Total: 61440, Code: 61440, EEPROM: 0},
	// STC12x54xx anomalous EEPROM sizing (open question, §9): the BSL
	// optimistically reports the full 1KB overlay even on BSL revisions
	// that actually reserve it. Preserved verbatim, not guessed further.
	{Name: "STC12C5410PI", Magic: 0xE200, Family: Family12, Total: 10240, Code: 9216, EEPROM: 1024},
	{Name: "STC12C5412PI", Magic: 0xE201, Family: Family12, Total: 12288, Code: 11264, EEPROM: 1024},
	{Name: "STC12C2052AD", Magic: 0xE600, Family: Family12, Total: 2048, Code: 2048, EEPROM: 0},

	// --- STC15A (Family15A): two-round RC trim, smaller part ---
	{Name: "STC15F104E", Magic: 0xF211, Family: Family15A, Total: 4096, Code: 3072, EEPROM: 1024},
	{Name: "STC15F104W", Magic: 0xF211, Family: Family15A, Total: 4096, Code: 3072, EEPROM: 1024}, // documented collision with STC15F104E
	{Name: "STC15F204EA", Magic: 0xF212, Family: Family15A, Total: 8192, Code: 6144, EEPROM: 2048},
	{Name: "STC15F100W", Magic: 0xF230, Family: Family15A, Total: 2048, Code: 1024, EEPROM: 1024},

	// --- STC15 (Family15) ---
	{Name: "STC15W408AS", Magic: 0xF402, Family: Family15, Total: 8192, Code: 8192, EEPROM: 0},
	{Name: "STC15W404AS", Magic: 0xF403, Family: Family15, Total: 4096, Code: 4096, EEPROM: 0},
	{Name: "STC15W401AS", Magic: 0xF404, Family: Family15, Total: 1024, Code: 1024, EEPROM: 0},
	{Name: "IAP15W413AS", Magic: 0xF2D4, Family: Family15, Total: 13312, Code: 9216, EEPROM: 4096},
	{Name: "IAP15W413AS (W)", Magic: 0xF2D4, Family: Family15, Total: 13312, Code: 9216, EEPROM: 4096}, // documented collision
	{Name: "STC15F2K60S2", Magic: 0xF449, Family: Family15, Total: 61440, Code: 61440, EEPROM: 0},
	{Name: "STC15F2K08S2", Magic: 0xF44A, Family: Family15, Total: 8192, Code: 8192, EEPROM: 0},
	{Name: "IAP15F2K61S2", Magic: 0xF4A9, Family: Family15, Total: 63488, Code: 61440, EEPROM: 2048},
	// magic high byte 0xF2 on a no-hardware-UART model (§4.4.3 open
	// question): empirically confirmed for this entry only.
	{Name: "IAP15F2K60S2 (no UART)", Magic: 0xF294, Family: Family15, Total: 61440, Code: 61440, EEPROM: 0},
	{Name: "IAP15F2K60S2 (no UART) variant", Magic: 0xF294, Family: Family15, Total: 61440, Code: 61440, EEPROM: 0}, // documented collision

	// --- STC8 (Family8) ---
	{Name: "STC8A8K64S4A12", Magic: 0xF7F0, Family: Family8, Total: 65536, Code: 65536, EEPROM: 0},
	{Name: "STC8A8K32S4A12", Magic: 0xF7F1, Family: Family8, Total: 32768, Code: 32768, EEPROM: 0},
	{Name: "STC8A8K16S4A12", Magic: 0xF7F2, Family: Family8, Total: 16384, Code: 16384, EEPROM: 0},
	{Name: "STC8G1K08A", Magic: 0xF802, Family: Family8, Total: 1024, Code: 1024, EEPROM: 0},
	{Name: "STC8G1K17A", Magic: 0xF803, Family: Family8, Total: 2048, Code: 1024, EEPROM: 1024},
	{Name: "STC8H1K28", Magic: 0xF820, Family: Family8, Total: 3072, Code: 2048, EEPROM: 1024},
	{Name: "STC8H3K64S2", Magic: 0xF840, Family: Family8, Total: 65536, Code: 65536, EEPROM: 0},
}

// table is entries indexed by magic, built once at init. Where two entries
// share a documented-collision magic, the later entry in the list (by
// convention the "W" or secondary-named variant) wins the lookup; both
// names remain visible via entries for diagnostics and tests.
var table map[uint16]MCUModel

func init() {
	table = make(map[uint16]MCUModel, len(entries))
	for _, m := range entries {
		table[m.Magic] = m
	}
}
