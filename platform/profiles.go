package platform

import (
	"sort"

	"github.com/pkg/errors"
)

// Profiles are named command lists for the lab topologies that are backed up
// most often.
var profiles = map[string][]string{
	"CCNP-SDWAN": {
		"show sdwan running-config",
		"show sdwan control connections",
		"show system status",
	},
	"CCNP-FHRP": {
		"show running-config",
		"show vrrp brief",
		"show hsrp brief",
		"show glbp brief",
		"show track",
	},
	"CCNP-PING-SNMP-SYSLOG": {
		"show running-config",
		"show logging",
		"show snmp",
		"show snmp user",
		"show snmp group",
	},
}

func ProfileCommands(name string) ([]string, error) {
	commands, ok := profiles[name]
	if !ok {
		return nil, errors.Errorf("unknown command profile %q", name)
	}
	return append([]string(nil), commands...), nil
}

func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
