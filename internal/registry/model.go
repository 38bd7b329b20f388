// Package registry is the pure magic -> MCUModel lookup table (§4.2). It
// has no dependency on the link, framing, or protocol packages: a model is a
// plain data fact about a device, not a live connection.
package registry

import "fmt"

// Family identifies which BSL protocol generation a magic belongs to,
// derived from the high byte of the magic word (§3 "Magic").
type Family int

const (
	FamilyUnknown Family = iota
	Family89
	Family12A
	Family12
	Family15A
	Family15
	Family8
	// FamilyUSB15 is the CDC-ACM transport variant of Family15: same
	// magic space and MSR layout, selected explicitly by the user
	// rather than inferred from ClassifyHighByte, since the wire magic
	// alone cannot distinguish a USB bootloader from a UART one.
	FamilyUSB15
)

func (f Family) String() string {
	switch f {
	case Family89:
		return "stc89"
	case Family12A:
		return "stc12a"
	case Family12:
		return "stc12"
	case Family15A:
		return "stc15a"
	case Family15:
		return "stc15"
	case Family8:
		return "stc8"
	case FamilyUSB15:
		return "usb15"
	default:
		return "unknown"
	}
}

// MCUModel is a static fact about one device, named and sized exactly as
// the BSL status packet's magic word indicates.
type MCUModel struct {
	Name   string
	Magic  uint16
	Family Family
	// Total, Code and EEPROM are byte counts. Invariant: Code <= Total.
	// Code+EEPROM <= Total is NOT guaranteed; some families present the
	// data-EEPROM region as an overlay the host treats separately for
	// programming purposes (§3 "MCUModel").
	Total  uint32
	Code   uint32
	EEPROM uint32
}

// ClassifyHighByte maps the high byte of a magic word to a protocol family
// per §3's grouping. It is used by the auto-detector (§4.6) before a model
// lookup succeeds, and as the fallback classification when a magic misses
// the table entirely (§4.2).
func ClassifyHighByte(magic uint16) Family {
	hi := byte(magic >> 8)
	switch {
	case hi == 0xF0:
		return Family89
	case hi == 0xD1 || hi == 0xD2 || hi == 0xD3 || hi == 0xE0 || hi == 0xE1 || hi == 0xE2 || hi == 0xE6:
		return Family12
	case hi >= 0xF2 && hi <= 0xF5:
		return Family15
	case hi == 0xF7 || hi == 0xF8:
		return Family8
	default:
		return FamilyUnknown
	}
}

// knownCollisions lists the magic values where two distinct models
// legitimately share one magic word (§8 invariant 5): an "E" and a "W"
// variant of the same die that differ only in packaging/voltage grade and
// were never given separate identification words by the factory.
var knownCollisions = map[uint16]bool{
	0xF294: true,
	0xF2D4: true,
}

// FindModel looks up magic in the static table. On a miss it synthesizes a
// conservative "UNKNOWN" entry (§4.2) so the session can continue far enough
// to print diagnostic information; callers should surface a warning in that
// case (ok == false).
func FindModel(magic uint16) (model MCUModel, ok bool) {
	if m, found := table[magic]; found {
		return m, true
	}
	return MCUModel{
		Name:   "UNKNOWN",
		Magic:  magic,
		Family: ClassifyHighByte(magic),
		Total:  63488,
		Code:   63488,
		EEPROM: 0,
	}, false
}

// IsDocumentedCollision reports whether magic is one of the two models in
// the table known to share a magic with a sibling "E"/"W" variant.
func IsDocumentedCollision(magic uint16) bool {
	return knownCollisions[magic]
}

// knownNoUARTMagics lists the magics §9's open question confirms
// empirically select the no-hardware-UART handshake path (high byte
// 0xF2). Any other 0xF2-prefixed magic outside this set is unverified.
var knownNoUARTMagics = map[uint16]bool{
	0xF294: true,
}

// IsKnownNoUARTMagic reports whether magic is one of the entries §9's
// open question confirms as a no-hardware-UART model, as opposed to an
// unverified magic that merely shares the 0xF2 high byte.
func IsKnownNoUARTMagic(magic uint16) bool {
	return knownNoUARTMagics[magic]
}

// CheckInjective verifies the §8 invariant-5 property: every table magic is
// unique except the documented collisions. It exists mainly for tests, but
// is exported since it is cheap and a useful startup sanity check.
func CheckInjective() error {
	seen := map[uint16]string{}
	for _, m := range entries {
		if prev, dup := seen[m.Magic]; dup && !IsDocumentedCollision(m.Magic) {
			return fmt.Errorf("registry: magic 0x%04x used by both %q and %q but is not a documented collision", m.Magic, prev, m.Name)
		}
		seen[m.Magic] = m.Name
	}
	return nil
}
