package command

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli"
)

type GroupsCommand struct {
}

func NewGroupsCommand() GroupsCommand {
	return GroupsCommand{}
}

func (cmd GroupsCommand) Cli() cli.Command {
	return cli.Command{
		Name:    "groups",
		Aliases: []string{"g"},
		Usage:   "List the configured device groups",
		Action:  cmd.Action,
	}
}

func (cmd GroupsCommand) Action(c *cli.Context) error {
	cfg, err := loadConfiguration(c, makeConsoleLogger(c))
	if err != nil {
		return err
	}

	table := tabwriter.NewWriter(c.App.Writer, 0, 8, 2, ' ', 0)
	fmt.Fprintln(table, "GROUP\tTYPE\tDEVICES\tCOMMANDS")
	for _, group := range cfg.Groups() {
		fmt.Fprintf(table, "%s\t%s\t%d\t%s\n", group.Name, group.Type, len(group.Addresses), strings.Join(group.Commands, ", "))
	}
	return table.Flush()
}
