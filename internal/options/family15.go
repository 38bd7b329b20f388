package options

// Family15Size is the MSR length for the STC15 family (and the USB15
// variant, which shares this codec per §4 "option Codecs"): 4 core option
// bytes plus a trailing core-voltage byte present on newer silicon.
const Family15Size = 5

// Family15Descriptors describes the STC15 option bytes.
func Family15Descriptors() []Descriptor {
	return []Descriptor{
		{Name: "reset_pin_enabled", Byte: 2, Mask: 0x10, Shift: 4, Kind: KindActiveLowBool},
		// clock_source is inverted relative to every other family: the raw
		// bit set means internal, clear means external.
		{Name: "clock_source", Byte: 2, Mask: 0x01, Shift: 0, Kind: KindEnum, Enum: map[byte]string{
			0: "external", 1: "internal",
		}},
		{Name: "clock_gain", Byte: 2, Mask: 0x02, Shift: 1, Kind: KindEnum, Enum: map[byte]string{
			0: "low", 1: "high",
		}},
		{Name: "watchdog_por_enabled", Byte: 0, Mask: 0x20, Shift: 5, Kind: KindActiveLowBool},
		{Name: "watchdog_stop_idle", Byte: 0, Mask: 0x08, Shift: 3, Kind: KindActiveLowBool},
		{Name: "watchdog_prescale", Byte: 0, Mask: 0x07, Shift: 0, Kind: KindPowerOfTwo},
		{Name: "low_voltage_reset", Byte: 1, Mask: 0x40, Shift: 6, Kind: KindActiveLowBool},
		{Name: "low_voltage_threshold", Byte: 1, Mask: 0x07, Shift: 0, Kind: KindEnum, Enum: map[byte]string{
			0: "0", 1: "1", 2: "2", 3: "3", 4: "4", 5: "5", 6: "6", 7: "7",
		}},
		{Name: "eeprom_lvd_inhibit", Byte: 1, Mask: 0x80, Shift: 7, Kind: KindActiveHighBool},
		{Name: "eeprom_erase_enabled", Byte: 3, Mask: 0x02, Shift: 1, Kind: KindActiveHighBool},
		{Name: "bsl_pindetect_enabled", Byte: 3, Mask: 0x01, Shift: 0, Kind: KindActiveLowBool},
		{Name: "por_reset_delay", Byte: 2, Mask: 0x80, Shift: 7, Kind: KindEnum, Enum: map[byte]string{
			0: "short", 1: "long",
		}},
		{Name: "rstout_por_state", Byte: 2, Mask: 0x08, Shift: 3, Kind: KindEnum, Enum: map[byte]string{
			0: "low", 1: "high",
		}},
		{Name: "uart2_passthrough", Byte: 2, Mask: 0x40, Shift: 6, Kind: KindActiveHighBool},
		{Name: "uart2_pin_mode", Byte: 2, Mask: 0x20, Shift: 5, Kind: KindEnum, Enum: map[byte]string{
			0: "normal", 1: "push-pull",
		}},
		// cpu_core_voltage occupies the whole trailing byte on silicon that
		// reports a 5-byte MSR; it is not a bitfield, it is one of three
		// fixed byte values.
		{Name: "cpu_core_voltage", Byte: 4, Mask: 0xFF, Shift: 0, Kind: KindEnum, Enum: map[byte]string{
			0xea: "low", 0xf7: "mid", 0xfd: "high",
		}},
	}
}
