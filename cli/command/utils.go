package command

import (
	"github.com/mgutz/ansi"
	"github.com/urfave/cli"

	"github.com/cloudfoundry/netbackup/config"
	"github.com/cloudfoundry/netbackup/factory"
)

// GlobalFlags are shared by every command and read through c.GlobalString.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Value: "backup_config.yml",
			Usage: "Path to the device groups configuration",
		},
		cli.StringFlag{
			Name:  "log-file",
			Value: "network_backup.log",
			Usage: "File the run log is appended to",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logs",
		},
	}
}

func loadConfiguration(c *cli.Context, logger config.Logger) (config.BackupConfiguration, error) {
	cfg, err := config.Load(c.GlobalString("config"), logger)
	if err != nil {
		return config.BackupConfiguration{}, redCliError(err)
	}
	return cfg, nil
}

func makeConsoleLogger(c *cli.Context) config.Logger {
	return factory.BuildLoggerWithCustomWriter(c.App.Writer, c.GlobalBool("debug"))
}

func redCliError(err error) *cli.ExitError {
	return cli.NewExitError(ansi.Color(err.Error(), "red"), 1)
}
