package telnet

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/ziutek/telnet"

	"github.com/cloudfoundry/netbackup/config"
	"github.com/cloudfoundry/netbackup/orchestrator"
	"github.com/cloudfoundry/netbackup/platform"
	"github.com/cloudfoundry/netbackup/terminal"
)

const DefaultConnectTimeout = 20 * time.Second

var loginFailures = []string{
	"% Login invalid",
	"% Authentication failed",
	"% Bad passwords",
	"Login incorrect",
}

// Session is a device CLI reached over telnet.
type Session struct {
	address string
	conn    *telnet.Conn
	shell   *terminal.Shell
	logger  orchestrator.Logger
}

// NewDeviceSession logs in through the vty username and password prompts and
// leaves the CLI privileged with paging off.
func NewDeviceSession(device config.Device, logger orchestrator.Logger, connectTimeout time.Duration) (orchestrator.DeviceSession, error) {
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}

	dialect := platform.Lookup(device.Type)
	port := device.Port
	if port == 0 {
		port = dialect.DefaultPort()
	}
	addr := net.JoinHostPort(device.Address, strconv.Itoa(port))

	conn, err := telnet.DialTimeout("tcp", addr, connectTimeout)
	if err != nil {
		return nil, orchestrator.NewConnectionFailure(err, "failed to connect to "+addr)
	}
	conn.SetUnixWriteMode(true)
	logger.Debug(orchestrator.LogTag, "Telnet connection to %s established", addr)

	s := &Session{
		address: device.Address,
		conn:    conn,
		shell:   terminal.NewShell(conn, conn),
		logger:  logger,
	}

	if err := s.login(device.Username, device.Password, connectTimeout); err != nil {
		s.Close()
		return nil, err
	}

	if err := s.shell.Prepare(dialect, device.EnablePassword, connectTimeout); err != nil {
		s.Close()
		return nil, orchestrator.NewOtherFailure(err, "failed to prepare the CLI of "+device.Address)
	}
	logger.Debug(orchestrator.LogTag, "CLI of %s ready at prompt %s", device.Address, s.shell.Prompt())

	return s, nil
}

func isLoginPrompt(text string) bool {
	line := strings.ToLower(terminal.LastLine(text))
	return strings.HasSuffix(line, "username:") || strings.HasSuffix(line, "login:")
}

func isLoginFailure(text string) bool {
	for _, failure := range loginFailures {
		if strings.Contains(text, failure) {
			return true
		}
	}
	return false
}

// login answers the username and password prompts. Lines without AAA only
// ask for a password; lines without any login go straight to a prompt.
func (s *Session) login(username, password string, timeout time.Duration) error {
	output, err := s.shell.ReadUntil(func(text string) bool {
		return isLoginPrompt(text) || terminal.IsPasswordPrompt(text) || terminal.IsPrompt(text)
	}, timeout)
	if err != nil {
		return orchestrator.NewConnectionFailure(err, "no login prompt from "+s.address)
	}

	if isLoginPrompt(output) {
		if err := s.shell.Send(username); err != nil {
			return orchestrator.NewConnectionFailure(err, "failed sending username")
		}
		output, err = s.shell.ReadUntil(terminal.IsPasswordPrompt, timeout)
		if err != nil {
			return orchestrator.NewConnectionFailure(err, "no password prompt from "+s.address)
		}
	}

	if terminal.IsPasswordPrompt(output) {
		if err := s.shell.Send(password); err != nil {
			return orchestrator.NewConnectionFailure(err, "failed sending password")
		}
		output, err = s.shell.ReadUntil(func(text string) bool {
			return isLoginFailure(text) || isLoginPrompt(text) || terminal.IsPasswordPrompt(text) || terminal.IsPrompt(text)
		}, timeout)
		if err != nil {
			return orchestrator.NewOtherFailure(err, "no prompt after login on "+s.address)
		}
		if isLoginFailure(output) || isLoginPrompt(output) || terminal.IsPasswordPrompt(output) {
			return orchestrator.NewAuthFailure(errors.New("device rejected the login"), "authentication failed for "+username)
		}
	}

	s.shell.SawPrompt(output)
	return nil
}

func (s *Session) Run(command string, timeout time.Duration) (string, error) {
	s.logger.Debug(orchestrator.LogTag, "Sending '%s' to %s", command, s.address)
	return s.shell.Run(command, timeout)
}

func (s *Session) Close() error {
	s.shell.Close()
	return s.conn.Close()
}
