package config

import (
	"github.com/cloudfoundry/netbackup/platform"
)

const DefaultBackupRootDirectory = "backups"

// Device is a single backup target with everything needed to open a session.
type Device struct {
	Address        string
	Type           string
	Username       string
	Password       string
	EnablePassword string
	Port           int
	Commands       []string
}

// DeviceGroup is a named set of devices sharing a platform type, credentials
// and command list.
type DeviceGroup struct {
	Name           string   `yaml:"-" validate:"required"`
	Type           string   `yaml:"type" validate:"required,device_type"`
	Addresses      []string `yaml:"devices" validate:"min=1,dive,required,hostname_rfc1123|ip"`
	Username       string   `yaml:"username"`
	Password       string   `yaml:"password"`
	EnablePassword string   `yaml:"enable_password"`
	Port           int      `yaml:"port" validate:"gte=0,lte=65535"`
	Profile        string   `yaml:"profile"`
	Commands       []string `yaml:"commands" validate:"min=1,dive,required"`
}

// Targets expands the group into one Device per address, in declared order.
func (g DeviceGroup) Targets() []Device {
	devices := make([]Device, 0, len(g.Addresses))
	for _, address := range g.Addresses {
		devices = append(devices, Device{
			Address:        address,
			Type:           g.Type,
			Username:       g.Username,
			Password:       g.Password,
			EnablePassword: g.EnablePassword,
			Port:           g.Port,
			Commands:       append([]string(nil), g.Commands...),
		})
	}
	return devices
}

// BackupConfiguration is loaded once per run and not modified afterwards.
type BackupConfiguration struct {
	BackupRootDirectory string
	groups              map[string]DeviceGroup
	order               []string
}

// New builds a configuration keeping the groups in the given order. Groups
// without commands get their profile's commands or the platform default.
func New(backupRootDirectory string, groups ...DeviceGroup) BackupConfiguration {
	if backupRootDirectory == "" {
		backupRootDirectory = DefaultBackupRootDirectory
	}

	cfg := BackupConfiguration{
		BackupRootDirectory: backupRootDirectory,
		groups:              map[string]DeviceGroup{},
	}
	for _, group := range groups {
		if len(group.Commands) == 0 && group.Profile != "" {
			if commands, err := platform.ProfileCommands(group.Profile); err == nil {
				group.Commands = commands
			}
		}
		if len(group.Commands) == 0 && group.Profile == "" {
			group.Commands = platform.DefaultCommands(group.Type)
		}
		if _, exists := cfg.groups[group.Name]; !exists {
			cfg.order = append(cfg.order, group.Name)
		}
		cfg.groups[group.Name] = group
	}
	return cfg
}

func (c BackupConfiguration) Group(name string) (DeviceGroup, bool) {
	group, ok := c.groups[name]
	return group, ok
}

func (c BackupConfiguration) GroupNames() []string {
	return append([]string(nil), c.order...)
}

func (c BackupConfiguration) Groups() []DeviceGroup {
	groups := make([]DeviceGroup, 0, len(c.order))
	for _, name := range c.order {
		groups = append(groups, c.groups[name])
	}
	return groups
}

// Default is used when no configuration file exists. It carries structure
// only: no credentials are embedded.
func Default() BackupConfiguration {
	return New(DefaultBackupRootDirectory,
		DeviceGroup{
			Name:      "CCNP_CRTL",
			Type:      platform.CiscoXE,
			Addresses: []string{"192.168.100.24", "192.168.100.25", "192.168.100.26"},
		},
		DeviceGroup{
			Name:      "CCNP_SDWAN",
			Type:      platform.CiscoXE,
			Addresses: []string{"192.168.100.20", "192.168.100.27"},
		},
	)
}
