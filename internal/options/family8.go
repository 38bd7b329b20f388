package options

// Family8Size is the MSR length for the STC8 family: it adds a dedicated
// EEPROM/program-flash split byte on top of an STC15-style layout (with
// its own field-to-byte assignment).
const Family8Size = 5

// Family8Descriptors describes the STC8 option bytes.
func Family8Descriptors() []Descriptor {
	return []Descriptor{
		{Name: "bsl_pindetect_enabled", Byte: 0, Mask: 0x01, Shift: 0, Kind: KindActiveLowBool},
		{Name: "eeprom_erase_enabled", Byte: 0, Mask: 0x02, Shift: 1, Kind: KindActiveHighBool},
		{Name: "clock_gain", Byte: 1, Mask: 0x02, Shift: 1, Kind: KindEnum, Enum: map[byte]string{
			0: "low", 1: "high",
		}},
		{Name: "epwm_open_drain", Byte: 1, Mask: 0x04, Shift: 2, Kind: KindActiveHighBool},
		{Name: "rstout_por_state", Byte: 1, Mask: 0x08, Shift: 3, Kind: KindEnum, Enum: map[byte]string{
			0: "low", 1: "high",
		}},
		{Name: "uart2_passthrough", Byte: 1, Mask: 0x10, Shift: 4, Kind: KindActiveHighBool},
		{Name: "uart2_pin_mode", Byte: 1, Mask: 0x20, Shift: 5, Kind: KindEnum, Enum: map[byte]string{
			0: "normal", 1: "push-pull",
		}},
		{Name: "uart1_remap", Byte: 1, Mask: 0x40, Shift: 6, Kind: KindActiveHighBool},
		{Name: "por_reset_delay", Byte: 1, Mask: 0x80, Shift: 7, Kind: KindEnum, Enum: map[byte]string{
			0: "short", 1: "long",
		}},
		// low_voltage_threshold is stored inverted on the 8-series: the raw
		// field counts down from Max as the threshold voltage rises.
		{Name: "low_voltage_threshold", Byte: 2, Mask: 0x03, Shift: 0, Kind: KindInverted, Max: 3},
		{Name: "reset_pin_enabled", Byte: 2, Mask: 0x10, Shift: 4, Kind: KindActiveLowBool},
		{Name: "low_voltage_reset", Byte: 2, Mask: 0x40, Shift: 6, Kind: KindActiveLowBool},
		{Name: "watchdog_prescale", Byte: 3, Mask: 0x07, Shift: 0, Kind: KindPowerOfTwo},
		{Name: "watchdog_stop_idle", Byte: 3, Mask: 0x08, Shift: 3, Kind: KindActiveLowBool},
		{Name: "watchdog_por_enabled", Byte: 3, Mask: 0x20, Shift: 5, Kind: KindActiveLowBool},
		// program_eeprom_split owns the entire trailing byte: the logical
		// split point is this byte's value times 256, in 512-byte units.
		{Name: "program_eeprom_split", Byte: 4, Mask: 0xFF, Shift: 0, Kind: KindRawByte},
	}
}
