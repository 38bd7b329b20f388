package cli

import (
	"fmt"
	"strings"

	"github.com/grigorig/stcgal/internal/bsl"
)

// parseOptionOverride splits one "--option name=value" flag value into
// a bsl.OptionOverride (§4.5, §6).
func parseOptionOverride(raw string) (bsl.OptionOverride, error) {
	name, value, found := strings.Cut(raw, "=")
	if !found || name == "" {
		return bsl.OptionOverride{}, fmt.Errorf("malformed --option %q: want name=value", raw)
	}
	return bsl.OptionOverride{Name: name, Value: value}, nil
}

// parseOptionOverrides applies parseOptionOverride across every --option
// flag occurrence, in the order given on the command line.
func parseOptionOverrides(raw []string) ([]bsl.OptionOverride, error) {
	out := make([]bsl.OptionOverride, 0, len(raw))
	for _, r := range raw {
		ov, err := parseOptionOverride(r)
		if err != nil {
			return nil, err
		}
		out = append(out, ov)
	}
	return out, nil
}
