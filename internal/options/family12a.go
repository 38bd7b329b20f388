package options

// Family12ASize is the MSR length for the STC12A family: 4 option bytes.
const Family12ASize = 4

// Family12ADescriptors describes the STC12A option bytes.
func Family12ADescriptors() []Descriptor {
	return []Descriptor{
		{Name: "clock_source", Byte: 0, Mask: 0x02, Shift: 1, Kind: KindEnum, Enum: map[byte]string{
			0: "internal", 1: "external",
		}},
		{Name: "watchdog_por_enabled", Byte: 1, Mask: 0x20, Shift: 5, Kind: KindActiveLowBool},
		{Name: "watchdog_stop_idle", Byte: 1, Mask: 0x08, Shift: 3, Kind: KindActiveLowBool},
		{Name: "watchdog_prescale", Byte: 1, Mask: 0x07, Shift: 0, Kind: KindPowerOfTwo},
		{Name: "eeprom_erase_enabled", Byte: 2, Mask: 0x02, Shift: 1, Kind: KindActiveLowBool},
		{Name: "bsl_pindetect_enabled", Byte: 2, Mask: 0x01, Shift: 0, Kind: KindActiveLowBool},
		// low_voltage_reset is inverted relative to every other family's LVD
		// bit: a clear bit means "high" threshold here.
		{Name: "low_voltage_reset", Byte: 3, Mask: 0x40, Shift: 6, Kind: KindEnum, Enum: map[byte]string{
			0: "high", 1: "low",
		}},
	}
}
