package options

// Family12Size is the MSR length for the STC10/11/12 family: 4 option
// bytes.
const Family12Size = 4

// Family12Descriptors describes the STC10/11/12 option bytes.
func Family12Descriptors() []Descriptor {
	return []Descriptor{
		{Name: "reset_pin_enabled", Byte: 0, Mask: 0x01, Shift: 0, Kind: KindActiveHighBool},
		{Name: "low_voltage_reset", Byte: 0, Mask: 0x40, Shift: 6, Kind: KindActiveLowBool},
		{Name: "oscillator_stable_delay", Byte: 0, Mask: 0x30, Shift: 4, Kind: KindEnum, Enum: map[byte]string{
			0: "4096", 1: "8192", 2: "16384", 3: "32768",
		}},
		{Name: "por_reset_delay", Byte: 1, Mask: 0x80, Shift: 7, Kind: KindEnum, Enum: map[byte]string{
			0: "long", 1: "short",
		}},
		{Name: "clock_gain", Byte: 1, Mask: 0x40, Shift: 6, Kind: KindEnum, Enum: map[byte]string{
			0: "low", 1: "high",
		}},
		{Name: "clock_source", Byte: 1, Mask: 0x02, Shift: 1, Kind: KindEnum, Enum: map[byte]string{
			0: "internal", 1: "external",
		}},
		{Name: "watchdog_por_enabled", Byte: 2, Mask: 0x20, Shift: 5, Kind: KindActiveLowBool},
		{Name: "watchdog_stop_idle", Byte: 2, Mask: 0x08, Shift: 3, Kind: KindActiveLowBool},
		{Name: "watchdog_prescale", Byte: 2, Mask: 0x07, Shift: 0, Kind: KindPowerOfTwo},
		{Name: "eeprom_erase_enabled", Byte: 3, Mask: 0x02, Shift: 1, Kind: KindActiveLowBool},
		{Name: "bsl_pindetect_enabled", Byte: 3, Mask: 0x01, Shift: 0, Kind: KindActiveLowBool},
	}
}
