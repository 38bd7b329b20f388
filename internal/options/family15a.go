package options

// Family15ASize is the MSR length for the STC15A family: a 13-byte MSR,
// the widest of the seven, with the pindetect/EEPROM-erase bits living in
// the trailing byte rather than alongside the rest of the options.
const Family15ASize = 13

// Family15ADescriptors describes the STC15A option bytes.
func Family15ADescriptors() []Descriptor {
	return []Descriptor{
		{Name: "reset_pin_enabled", Byte: 0, Mask: 0x10, Shift: 4, Kind: KindActiveHighBool},
		{Name: "watchdog_por_enabled", Byte: 2, Mask: 0x20, Shift: 5, Kind: KindActiveLowBool},
		{Name: "watchdog_stop_idle", Byte: 2, Mask: 0x08, Shift: 3, Kind: KindActiveLowBool},
		{Name: "watchdog_prescale", Byte: 2, Mask: 0x07, Shift: 0, Kind: KindPowerOfTwo},
		{Name: "low_voltage_reset", Byte: 1, Mask: 0x40, Shift: 6, Kind: KindActiveHighBool},
		{Name: "low_voltage_threshold", Byte: 1, Mask: 0x07, Shift: 0, Kind: KindEnum, Enum: map[byte]string{
			0: "0", 1: "1", 2: "2", 3: "3", 4: "4", 5: "5", 6: "6", 7: "7",
		}},
		{Name: "eeprom_lvd_inhibit", Byte: 1, Mask: 0x80, Shift: 7, Kind: KindActiveHighBool},
		{Name: "eeprom_erase_enabled", Byte: 12, Mask: 0x02, Shift: 1, Kind: KindActiveLowBool},
		{Name: "bsl_pindetect_enabled", Byte: 12, Mask: 0x01, Shift: 0, Kind: KindActiveLowBool},
	}
}
