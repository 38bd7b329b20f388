// Package options implements the option-byte ("MSR") codecs (§4.3). Rather
// than seven hand-written classes each with ten-plus get/set method pairs,
// every family's option table is static data — a list of (name, byte index,
// mask, shift, encoding kind) descriptors — interpreted by one generic
// Codec. Adding or correcting a family's bit layout is a data change, never
// a new method.
package options

import "fmt"

// Kind is how a descriptor's raw bits map to a logical value.
type Kind int

const (
	// KindActiveLowBool: raw bit clear (0) means the feature is enabled.
	KindActiveLowBool Kind = iota
	// KindActiveHighBool: raw bit set (1) means the feature is enabled.
	KindActiveHighBool
	// KindEnum: raw field value indexes a fixed {raw: name} map.
	KindEnum
	// KindPowerOfTwo: raw field is an exponent index; the logical value is
	// 1 << (raw+1), giving the 2..256 ranges used by watchdog prescalers.
	KindPowerOfTwo
	// KindInverted: logical value is Max - raw (used by the 8-series LVD
	// threshold, a 2-bit field that reads backwards relative to the
	// 15-series' direct 3-bit encoding).
	KindInverted
	// KindRawByte: the whole byte is the value, formatted as hex; used for
	// fields with no further structure (e.g. an 8-series split-point byte).
	KindRawByte
)

// Descriptor is one named, addressable bitfield within an MSR buffer.
type Descriptor struct {
	Name  string
	Byte  int
	Mask  byte
	Shift uint
	Kind  Kind
	// Enum holds the raw(shifted)->name mapping for KindEnum descriptors.
	Enum map[byte]string
	// Max is the KindInverted descriptor's inversion ceiling (e.g. 7 for a
	// 3-bit field, 3 for a 2-bit field).
	Max byte
}

func (d Descriptor) raw(buf []byte) byte {
	return (buf[d.Byte] & d.Mask) >> d.Shift
}

func (d Descriptor) write(buf []byte, raw byte) {
	buf[d.Byte] = (buf[d.Byte] &^ d.Mask) | ((raw << d.Shift) & d.Mask)
}

func (d Descriptor) get(buf []byte) (string, error) {
	raw := d.raw(buf)
	switch d.Kind {
	case KindRawByte:
		return fmt.Sprintf("0x%02x", raw), nil
	case KindActiveLowBool:
		return boolString(raw == 0), nil
	case KindActiveHighBool:
		return boolString(raw != 0), nil
	case KindEnum:
		name, ok := d.Enum[raw]
		if !ok {
			return "", fmt.Errorf("option %s: no enum name for raw value 0x%x", d.Name, raw)
		}
		return name, nil
	case KindPowerOfTwo:
		return fmt.Sprintf("%d", 1<<(raw+1)), nil
	case KindInverted:
		return fmt.Sprintf("%d", int(d.Max)-int(raw)), nil
	default:
		return "", fmt.Errorf("option %s: unhandled kind %d", d.Name, d.Kind)
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
