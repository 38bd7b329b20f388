// Package image builds the flat code+eeprom buffer sent to the MCU
// during programming (§3 "Image", §5 step "Load code image").
package image

import "fmt"

// PaddingUnit is the boundary an image is padded to before chunking for
// transfer. Older families pad to 256 bytes; 15/8-series and USB15 pad
// to 512.
type PaddingUnit int

const (
	PadUnit256 PaddingUnit = 256
	PadUnit512 PaddingUnit = 512
)

// Warning is a non-fatal note produced while building an image — used
// to report overflow-past-code (still fits in eeprom capacity) without
// aborting the build.
type Warning struct {
	Message string
}

func (w Warning) Error() string { return w.Message }

// Build concatenates code and eeprom data into one buffer, applies the
// capacity invariant from §3 (overflow past `code` warns, overflow past
// `code+eeprom` truncates), and pads the result to unit's boundary.
//
// codeCap and eepromCap are the target model's code-flash and
// data-EEPROM sizes in bytes.
func Build(code, eeprom []byte, codeCap, eepromCap int, unit PaddingUnit) (buf []byte, warnings []Warning) {
	if len(code) > codeCap {
		warnings = append(warnings, Warning{Message: fmt.Sprintf(
			"code image is %d bytes, exceeds model code capacity %d bytes", len(code), codeCap)})
	}

	total := codeCap + eepromCap
	buf = make([]byte, 0, codeCap+len(eeprom))
	buf = append(buf, code...)
	if len(buf) < codeCap {
		buf = append(buf, make([]byte, codeCap-len(buf))...)
	}
	buf = append(buf, eeprom...)

	if len(buf) > total {
		warnings = append(warnings, Warning{Message: fmt.Sprintf(
			"image is %d bytes, truncating to model total capacity %d bytes", len(buf), total)})
		buf = buf[:total]
	}

	buf = padTo(buf, unit)
	return buf, warnings
}

// padTo right-pads buf with 0xFF (the erased-flash value) to the next
// multiple of unit.
func padTo(buf []byte, unit PaddingUnit) []byte {
	u := int(unit)
	if rem := len(buf) % u; rem != 0 {
		pad := make([]byte, u-rem)
		for i := range pad {
			pad[i] = 0xFF
		}
		buf = append(buf, pad...)
	}
	return buf
}
