package cli

import (
	"fmt"

	"github.com/grigorig/stcgal/internal/registry"
)

// protocolNames maps the §6 --protocol flag's accepted values to a
// registry.Family. "auto" is handled by the caller before this map is
// consulted. stc12b is the STC12 generation's alternate-silicon variant;
// it shares STC12's protocol and option layout, so it aliases Family12
// rather than getting a third descriptor table (the two differ only in
// die revision, never in BSL wire behavior).
var protocolNames = map[string]registry.Family{
	"stc89":  registry.Family89,
	"stc12a": registry.Family12A,
	"stc12b": registry.Family12,
	"stc12":  registry.Family12,
	"stc15a": registry.Family15A,
	"stc15":  registry.Family15,
	"stc8":   registry.Family8,
	"usb15":  registry.FamilyUSB15,
}

// parseProtocol resolves the --protocol flag value to a family, or
// (FamilyUnknown, true) for "auto" or an empty value.
func parseProtocol(name string) (family registry.Family, auto bool, err error) {
	if name == "" || name == "auto" {
		return registry.FamilyUnknown, true, nil
	}
	f, ok := protocolNames[name]
	if !ok {
		return registry.FamilyUnknown, false, fmt.Errorf("unknown --protocol %q", name)
	}
	return f, false, nil
}
