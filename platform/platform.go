package platform

import (
	"sort"
	"strings"
)

const (
	CiscoIOS  = "cisco_ios"
	CiscoXE   = "cisco_xe"
	CiscoXR   = "cisco_xr"
	CiscoNXOS = "cisco_nxos"
	CiscoASA  = "cisco_asa"
	AristaEOS = "arista_eos"

	TelnetSuffix = "_telnet"

	DefaultCommand = "show running-config"
)

type Transport string

const (
	SSH    Transport = "ssh"
	Telnet Transport = "telnet"
)

// Platform describes how to drive the CLI of one device type.
type Platform struct {
	Name           string
	Transport      Transport
	DefaultCommand string
	PagingCommand  string
	EnableRequired bool
	Known          bool
}

func (p Platform) DefaultPort() int {
	if p.Transport == Telnet {
		return 23
	}
	return 22
}

type dialect struct {
	pagingCommand  string
	enableRequired bool
}

var dialects = map[string]dialect{
	CiscoIOS:  {pagingCommand: "terminal length 0", enableRequired: true},
	CiscoXE:   {pagingCommand: "terminal length 0", enableRequired: true},
	CiscoXR:   {pagingCommand: "terminal length 0", enableRequired: false},
	CiscoNXOS: {pagingCommand: "terminal length 0", enableRequired: true},
	CiscoASA:  {pagingCommand: "terminal pager 0", enableRequired: true},
	AristaEOS: {pagingCommand: "terminal length 0", enableRequired: true},
}

var generic = dialect{pagingCommand: "terminal length 0", enableRequired: true}

// Lookup never fails: unknown types get the generic Cisco-like dialect over SSH.
func Lookup(deviceType string) Platform {
	name := strings.ToLower(strings.TrimSpace(deviceType))

	transport := SSH
	base := name
	if strings.HasSuffix(name, TelnetSuffix) {
		transport = Telnet
		base = strings.TrimSuffix(name, TelnetSuffix)
	}

	d, known := dialects[base]
	if !known {
		d = generic
	}

	return Platform{
		Name:           name,
		Transport:      transport,
		DefaultCommand: DefaultCommand,
		PagingCommand:  d.pagingCommand,
		EnableRequired: d.enableRequired,
		Known:          known,
	}
}

// DefaultCommands is the command list used when a group does not configure one.
func DefaultCommands(deviceType string) []string {
	return []string{Lookup(deviceType).DefaultCommand}
}

func Known() []string {
	var names []string
	for name := range dialects {
		names = append(names, name, name+TelnetSuffix)
	}
	sort.Strings(names)
	return names
}
