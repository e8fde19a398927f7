package command

import (
	"github.com/google/uuid"
	"github.com/urfave/cli"

	"github.com/cloudfoundry/netbackup/cli/flags"
	"github.com/cloudfoundry/netbackup/config"
	"github.com/cloudfoundry/netbackup/factory"
	"github.com/cloudfoundry/netbackup/orchestrator"
)

type BackupCommand struct {
}

func NewBackupCommand() BackupCommand {
	return BackupCommand{}
}

func (cmd BackupCommand) Cli() cli.Command {
	return cli.Command{
		Name:    "backup",
		Aliases: []string{"b"},
		Usage:   "Back up the configured device groups",
		Action:  cmd.Action,
		Flags: []cli.Flag{
			cli.StringSliceFlag{
				Name:  "group, g",
				Usage: "Only back up this group (repeatable)",
			},
			cli.StringFlag{
				Name:  "device",
				Usage: "Back up a single device that is not in the configuration",
			},
			cli.StringFlag{
				Name:  "type",
				Usage: "Platform type of --device, e.g. cisco_xe or cisco_ios_telnet",
			},
			cli.StringFlag{
				Name:  "username, u",
				Usage: "Username for --device",
			},
			cli.StringFlag{
				Name:   "password, p",
				EnvVar: "NETBACKUP_PASSWORD",
				Usage:  "Password for --device",
			},
			cli.StringFlag{
				Name:   "enable-password",
				EnvVar: "NETBACKUP_ENABLE_PASSWORD",
				Usage:  "Enable password for --device",
			},
			cli.IntFlag{
				Name:  "port",
				Usage: "Port for --device, defaults to the transport's port",
			},
			cli.StringSliceFlag{
				Name:  "command",
				Usage: "Command to capture from --device (repeatable)",
			},
		},
	}
}

// Action runs the backup. Device failures are reported in the log and the
// summary line; only configuration problems make the command fail.
func (cmd BackupCommand) Action(c *cli.Context) error {
	if err := flags.ValidateDevice(c); err != nil {
		return err
	}

	logger, logFile, err := factory.BuildLogger(c.GlobalBool("debug"), c.GlobalString("log-file"))
	if err != nil {
		return redCliError(err)
	}
	defer logFile.Close()

	runID := uuid.New().String()
	logger.Info(orchestrator.LogTag, "Starting backup run %s", runID)

	cfg, err := loadConfiguration(c, logger)
	if err != nil {
		logger.Error(orchestrator.LogTag, "Run %s aborted: %s", runID, err)
		return err
	}

	var device config.Device
	if c.String("device") != "" {
		cfg, device, err = adHocConfiguration(c, cfg.BackupRootDirectory)
		if err != nil {
			logger.Error(orchestrator.LogTag, "Run %s aborted: %s", runID, err)
			return redCliError(err)
		}
	}

	backuper, err := factory.BuildBackuper(cfg, logger)
	if err != nil {
		logger.Error(orchestrator.LogTag, "Run %s aborted: %s", runID, err)
		return redCliError(err)
	}

	var succeeded bool
	switch {
	case c.String("device") != "":
		succeeded = backuper.BackupDevice(device)
	case len(c.StringSlice("group")) > 0:
		succeeded = backuper.BackupGroups(c.StringSlice("group"))
	default:
		succeeded = backuper.BackupAll()
	}

	if succeeded {
		logger.Info(orchestrator.LogTag, "%s (run %s)", allBackupsSucceeded, runID)
	} else {
		logger.Warn(orchestrator.LogTag, "%s (run %s)", someBackupsFailed, runID)
	}
	return nil
}

func adHocConfiguration(c *cli.Context, backupRootDirectory string) (config.BackupConfiguration, config.Device, error) {
	cfg := config.New(backupRootDirectory, config.DeviceGroup{
		Name:           adHocGroupName,
		Type:           c.String("type"),
		Addresses:      []string{c.String("device")},
		Username:       c.String("username"),
		Password:       c.String("password"),
		EnablePassword: c.String("enable-password"),
		Port:           c.Int("port"),
		Commands:       c.StringSlice("command"),
	})
	if err := cfg.Validate(); err != nil {
		return config.BackupConfiguration{}, config.Device{}, err
	}

	group, _ := cfg.Group(adHocGroupName)
	return cfg, group.Targets()[0], nil
}
