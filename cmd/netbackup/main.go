package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/cloudfoundry/netbackup/cli/command"
)

var version string

func main() {
	cli.AppHelpTemplate = helpTextTemplate

	app := cli.NewApp()

	app.Version = version

	app.Name = "netbackup"
	app.HelpName = "netbackup"
	app.Usage = "Network device configuration backup"
	app.Flags = command.GlobalFlags()

	backupCommand := command.NewBackupCommand()
	app.Action = backupCommand.Action

	app.Commands = []cli.Command{
		backupCommand.Cli(),
		command.NewGroupsCommand().Cli(),
		command.NewCheckConfigCommand().Cli(),
		{
			Name:  "version",
			Usage: "Shows the version of netbackup",
			Action: func(c *cli.Context) error {
				cli.ShowVersion(c)
				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}
