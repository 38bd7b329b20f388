package options

import (
	"fmt"
	"strconv"
)

func (d Descriptor) set(buf []byte, value string) error {
	var raw byte
	switch d.Kind {
	case KindRawByte:
		n, err := strconv.ParseUint(value, 0, 8)
		if err != nil {
			return fmt.Errorf("invalid value for option %s: %w", d.Name, err)
		}
		raw = byte(n)
	case KindActiveLowBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for option %s: %w", d.Name, err)
		}
		if !b {
			raw = 1
		}
	case KindActiveHighBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for option %s: %w", d.Name, err)
		}
		if b {
			raw = 1
		}
	case KindEnum:
		found := false
		for r, name := range d.Enum {
			if name == value {
				raw = r
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("invalid value for option %s: %q", d.Name, value)
		}
	case KindPowerOfTwo:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for option %s: %w", d.Name, err)
		}
		exp := -1
		for e := 0; e < 8; e++ {
			if 1<<(e+1) == n {
				exp = e
				break
			}
		}
		if exp < 0 {
			return fmt.Errorf("invalid value for option %s: %d is not a power of two in range", d.Name, n)
		}
		raw = byte(exp)
	case KindInverted:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for option %s: %w", d.Name, err)
		}
		if n < 0 || n > int(d.Max) {
			return fmt.Errorf("invalid value for option %s: %d out of range 0..%d", d.Name, n, d.Max)
		}
		raw = d.Max - byte(n)
	default:
		return fmt.Errorf("invalid value for option %s: unhandled kind", d.Name)
	}

	d.write(buf, raw)
	return nil
}
