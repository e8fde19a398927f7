package flags

import (
	"github.com/mgutz/ansi"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

var deviceOnlyFlags = []string{"type", "username", "password", "enable-password", "port", "command"}

func Validate(requiredFlags []string, c *cli.Context) error {
	if containsHelpFlag(c) {
		return nil
	}

	for _, flag := range requiredFlags {
		if c.String(flag) == "" {
			cli.ShowCommandHelp(c, c.Command.Name)
			return redCliError(errors.Errorf("--%v flag is required.", flag))
		}
	}
	return nil
}

// ValidateDevice checks the flags describing an ad-hoc device: --type is
// required alongside --device, and the device flags make no sense without it.
func ValidateDevice(c *cli.Context) error {
	if containsHelpFlag(c) {
		return nil
	}

	if c.String("device") == "" {
		for _, flag := range deviceOnlyFlags {
			if c.IsSet(flag) {
				cli.ShowCommandHelp(c, c.Command.Name)
				return redCliError(errors.Errorf("--%v flag requires --device.", flag))
			}
		}
		return nil
	}

	if len(c.StringSlice("group")) > 0 {
		return redCliError(errors.New("--device and --group cannot be used together."))
	}

	return Validate([]string{"type"}, c)
}

func containsHelpFlag(c *cli.Context) bool {
	for _, arg := range c.Args() {
		if arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}

func redCliError(err error) *cli.ExitError {
	return cli.NewExitError(ansi.Color(err.Error(), "red"), 1)
}
