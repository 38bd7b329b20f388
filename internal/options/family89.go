package options

// Family89Size is the MSR length for the STC89/90 family: a single status
// byte, the smallest of all seven codecs.
const Family89Size = 1

// Family89Descriptors describes the STC89/90 option byte.
func Family89Descriptors() []Descriptor {
	return []Descriptor{
		{Name: "cpu_6t_enabled", Byte: 0, Mask: 0x01, Shift: 0, Kind: KindActiveLowBool},
		{Name: "bsl_pindetect_enabled", Byte: 0, Mask: 0x04, Shift: 2, Kind: KindActiveLowBool},
		{Name: "eeprom_erase_enabled", Byte: 0, Mask: 0x08, Shift: 3, Kind: KindActiveLowBool},
		{Name: "clock_gain", Byte: 0, Mask: 0x10, Shift: 4, Kind: KindEnum, Enum: map[byte]string{
			0: "low", 1: "high",
		}},
		{Name: "ale_enabled", Byte: 0, Mask: 0x20, Shift: 5, Kind: KindActiveHighBool},
		{Name: "xram_enabled", Byte: 0, Mask: 0x40, Shift: 6, Kind: KindActiveHighBool},
		{Name: "watchdog_por_enabled", Byte: 0, Mask: 0x80, Shift: 7, Kind: KindActiveLowBool},
	}
}
