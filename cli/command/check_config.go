package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli"

	"github.com/cloudfoundry/netbackup/platform"
)

type CheckConfigCommand struct {
}

func NewCheckConfigCommand() CheckConfigCommand {
	return CheckConfigCommand{}
}

func (cmd CheckConfigCommand) Cli() cli.Command {
	return cli.Command{
		Name:    "check-config",
		Aliases: []string{"c"},
		Usage:   "Validate the configuration without contacting any device",
		Action:  cmd.Action,
	}
}

func (cmd CheckConfigCommand) Action(c *cli.Context) error {
	cfg, err := loadConfiguration(c, makeConsoleLogger(c))
	if err != nil {
		return err
	}

	devices := 0
	for _, group := range cfg.Groups() {
		devices += len(group.Addresses)
	}

	fmt.Fprintf(c.App.Writer, "Configuration %s is valid.\n", c.GlobalString("config"))
	fmt.Fprintf(c.App.Writer, "Backup root directory: %s\n", cfg.BackupRootDirectory)
	fmt.Fprintf(c.App.Writer, "Groups: %d, devices: %d\n", len(cfg.Groups()), devices)
	fmt.Fprintf(c.App.Writer, "Known device types: %s\n", strings.Join(platform.Known(), ", "))
	fmt.Fprintf(c.App.Writer, "Command profiles: %s\n", strings.Join(platform.ProfileNames(), ", "))
	return nil
}
