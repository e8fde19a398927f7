package ssh

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"

	"github.com/cloudfoundry/netbackup/config"
	"github.com/cloudfoundry/netbackup/orchestrator"
	"github.com/cloudfoundry/netbackup/platform"
	"github.com/cloudfoundry/netbackup/terminal"
)

const DefaultConnectTimeout = 20 * time.Second

// Older IOS images only offer CBC ciphers and SHA-1 key exchanges, so these
// are appended to the modern defaults.
var (
	ciphers = []string{
		"aes128-gcm@openssh.com",
		"aes256-gcm@openssh.com",
		"chacha20-poly1305@openssh.com",
		"aes128-ctr",
		"aes192-ctr",
		"aes256-ctr",
		"aes128-cbc",
		"3des-cbc",
	}
	keyExchanges = []string{
		"curve25519-sha256",
		"curve25519-sha256@libssh.org",
		"ecdh-sha2-nistp256",
		"ecdh-sha2-nistp384",
		"ecdh-sha2-nistp521",
		"diffie-hellman-group14-sha256",
		"diffie-hellman-group16-sha512",
		"diffie-hellman-group-exchange-sha256",
		"diffie-hellman-group14-sha1",
		"diffie-hellman-group-exchange-sha1",
		"diffie-hellman-group1-sha1",
	}
)

// Session is an interactive shell on a device reached over SSH.
type Session struct {
	address string
	client  *ssh.Client
	session *ssh.Session
	shell   *terminal.Shell
	logger  orchestrator.Logger
}

// NewDeviceSession logs into the device and leaves its CLI privileged with
// paging off. Rejected credentials are an AuthFailure, anything that stops
// the SSH handshake is a ConnectionFailure and later problems are an
// OtherFailure.
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

	client, err := dial(addr, device.Username, device.Password, connectTimeout)
	if err != nil {
		return nil, err
	}
	logger.Debug(orchestrator.LogTag, "SSH handshake with %s completed", addr)

	s := &Session{address: device.Address, client: client, logger: logger}
	if err := s.startShell(); err != nil {
		client.Close()
		return nil, orchestrator.NewOtherFailure(err, "failed to start a shell on "+device.Address)
	}

	if err := s.shell.Prepare(dialect, device.EnablePassword, connectTimeout); err != nil {
		s.Close()
		return nil, orchestrator.NewOtherFailure(err, "failed to prepare the CLI of "+device.Address)
	}
	logger.Debug(orchestrator.LogTag, "CLI of %s ready at prompt %s", device.Address, s.shell.Prompt())

	return s, nil
}

func dial(addr, username, password string, timeout time.Duration) (*ssh.Client, error) {
	clientConfig := &ssh.ClientConfig{
		User: username,
		Auth: []ssh.AuthMethod{
			ssh.Password(password),
			ssh.KeyboardInteractive(func(user, instruction string, questions []string, echos []bool) ([]string, error) {
				answers := make([]string, len(questions))
				for i := range answers {
					answers[i] = password
				}
				return answers, nil
			}),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
		Config: ssh.Config{
			Ciphers:      ciphers,
			KeyExchanges: keyExchanges,
		},
	}

	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, orchestrator.NewConnectionFailure(err, "failed to connect to "+addr)
	}

	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		conn.Close()
		return nil, orchestrator.NewConnectionFailure(err, "failed to set handshake deadline")
	}
	clientConn, chans, reqs, err := ssh.NewClientConn(conn, addr, clientConfig)
	if err != nil {
		conn.Close()
		if strings.Contains(err.Error(), "unable to authenticate") {
			return nil, orchestrator.NewAuthFailure(err, "authentication failed for "+username)
		}
		return nil, orchestrator.NewConnectionFailure(err, "SSH handshake with "+addr+" failed")
	}
	if err := conn.SetDeadline(time.Time{}); err != nil {
		clientConn.Close()
		return nil, orchestrator.NewConnectionFailure(err, "failed to clear handshake deadline")
	}

	return ssh.NewClient(clientConn, chans, reqs), nil
}

func (s *Session) startShell() error {
	session, err := s.client.NewSession()
	if err != nil {
		return errors.Wrap(err, "failed to open session")
	}

	modes := ssh.TerminalModes{
		ssh.ECHO:          0,
		ssh.TTY_OP_ISPEED: 9600,
		ssh.TTY_OP_OSPEED: 9600,
	}
	if err := session.RequestPty("vt100", 80, 40, modes); err != nil {
		session.Close()
		return errors.Wrap(err, "failed to request PTY")
	}

	stdin, err := session.StdinPipe()
	if err != nil {
		session.Close()
		return errors.Wrap(err, "failed to get stdin pipe")
	}
	stdout, err := session.StdoutPipe()
	if err != nil {
		session.Close()
		return errors.Wrap(err, "failed to get stdout pipe")
	}

	if err := session.Shell(); err != nil {
		session.Close()
		return errors.Wrap(err, "failed to start shell")
	}

	s.session = session
	s.shell = terminal.NewShell(stdin, stdout)
	return nil
}

func (s *Session) Run(command string, timeout time.Duration) (string, error) {
	s.logger.Debug(orchestrator.LogTag, "Sending '%s' to %s", command, s.address)
	return s.shell.Run(command, timeout)
}

func (s *Session) Close() error {
	s.shell.Close()
	s.session.Close()
	return s.client.Close()
}
