package options

import (
	"fmt"
	"sort"
)

// ErrUnknownOption is returned by Set/Get when name is not recognized by
// this family's codec (§4.3: "a set on an unsupported name fails with
// unknown").
var ErrUnknownOption = fmt.Errorf("unknown option")

// NamedValue is one entry in a Codec's List() output.
type NamedValue struct {
	Name  string
	Value string
}

// Codec owns one family's mutable MSR buffer plus the static descriptor
// table that interprets it. It is created fresh per connection (§3
// "Option Register Set"), seeded with the MSR bytes returned in the status
// packet, mutated by user --option overrides and by Set, and serialized
// back out verbatim during program_options (§4.4.6).
type Codec struct {
	Family      string
	descriptors []Descriptor
	buf         []byte
}

// NewCodec builds a codec over a copy of initial. initial must be at least
// as long as the highest byte index any descriptor references.
func NewCodec(family string, descriptors []Descriptor, initial []byte) *Codec {
	buf := make([]byte, len(initial))
	copy(buf, initial)
	return &Codec{Family: family, descriptors: descriptors, buf: buf}
}

func (c *Codec) find(name string) (Descriptor, bool) {
	for _, d := range c.descriptors {
		if d.Name == name {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Get returns the decoded value of a named option.
func (c *Codec) Get(name string) (string, error) {
	d, ok := c.find(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}
	return d.get(c.buf)
}

// Set parses value and writes it into the owned MSR buffer, touching only
// the bits the named descriptor owns (§4.3 invariant).
func (c *Codec) Set(name, value string) error {
	d, ok := c.find(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownOption, name)
	}
	return d.set(c.buf, value)
}

// List enumerates every option this family supports with its current
// decoded value, sorted by name for stable diagnostic output.
func (c *Codec) List() []NamedValue {
	out := make([]NamedValue, 0, len(c.descriptors))
	for _, d := range c.descriptors {
		v, err := d.get(c.buf)
		if err != nil {
			v = fmt.Sprintf("<%v>", err)
		}
		out = append(out, NamedValue{Name: d.Name, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Serialize returns the raw MSR bytes to send back to the MCU.
func (c *Codec) Serialize() []byte {
	out := make([]byte, len(c.buf))
	copy(out, c.buf)
	return out
}

// Raw exposes the live MSR buffer for protocol code that needs to read
// specific bytes directly (e.g. the §4.4.6 trailing-field packing that
// reuses msr[0..3] verbatim).
func (c *Codec) Raw() []byte {
	return c.buf
}
