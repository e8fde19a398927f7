package testdevice

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"
	"log"
	"net"

	"golang.org/x/crypto/ssh"
)

// SSHServer accepts password and keyboard-interactive logins and serves a
// Device on every shell request.
type SSHServer struct {
	Port int
	net.Listener
	Username string
	Password string
	Device   *Device
	// KeyboardInteractiveOnly turns off the password method, as some IOS
	// images do.
	KeyboardInteractiveOnly bool
	logger                  *log.Logger
}

func NewSSHServer(device *Device, username, password string, logWriter io.Writer) *SSHServer {
	t := &SSHServer{
		Username: username,
		Password: password,
		Device:   device,
		logger:   log.New(logWriter, "[test-ssh-server] ", log.Lshortfile),
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.logger.Fatalf("Failed to listen (%s)", err)
	}
	t.Port = listener.Addr().(*net.TCPAddr).Port
	t.Listener = listener

	go t.HandleRequests()
	return t
}

func (t *SSHServer) Close() {
	t.logger.Printf("Closing server listening on (%d)", t.Port)
	t.Listener.Close()
}

func (t *SSHServer) HandleRequests() {
	t.logger.Printf("Listening on %d...", t.Port)

	for {
		tcpConn, err := t.Accept()
		if err != nil {
			t.logger.Printf("Failed to accept incoming connection (%s)", err)
			return
		}

		go func() {
			sshConn, chans, reqs, err := ssh.NewServerConn(tcpConn, t.sshConfig())
			if err != nil {
				t.logger.Printf("Failed to handshake (%s)", err)
				return
			}

			t.logger.Printf("New SSH connection from %s (%s)", sshConn.RemoteAddr(), sshConn.ClientVersion())
			go ssh.DiscardRequests(reqs)
			t.handleChannels(chans)
		}()
	}
}

func (t *SSHServer) handleChannels(chans <-chan ssh.NewChannel) {
	for newChannel := range chans {
		go t.handleChannel(newChannel)
	}
}

func (t *SSHServer) handleChannel(newChannel ssh.NewChannel) {
	if channelType := newChannel.ChannelType(); channelType != "session" {
		newChannel.Reject(ssh.UnknownChannelType, fmt.Sprintf("unknown channel type: %s", channelType))
		return
	}
	channel, requests, err := newChannel.Accept()
	if err != nil {
		t.logger.Printf("Could not accept channel (%s)", err)
		return
	}

	for req := range requests {
		switch req.Type {
		case "pty-req":
			req.Reply(true, nil)
		case "shell":
			req.Reply(true, nil)
			go func() {
				defer channel.Close()
				if err := t.Device.Serve(channel, channel); err != nil && err != io.EOF {
					t.logger.Printf("Session ended (%s)", err)
				}
			}()
		default:
			if req.WantReply {
				req.Reply(false, nil)
			}
		}
	}
}

func (t *SSHServer) sshConfig() *ssh.ServerConfig {
	config := &ssh.ServerConfig{
		KeyboardInteractiveCallback: func(conn ssh.ConnMetadata, client ssh.KeyboardInteractiveChallenge) (*ssh.Permissions, error) {
			answers, err := client(conn.User(), "", []string{"Password: "}, []bool{false})
			if err != nil {
				return nil, err
			}
			if conn.User() != t.Username || len(answers) != 1 || answers[0] != t.Password {
				return nil, fmt.Errorf("wrong credentials for %s", conn.User())
			}
			return nil, nil
		},
	}
	if !t.KeyboardInteractiveOnly {
		config.PasswordCallback = func(conn ssh.ConnMetadata, password []byte) (*ssh.Permissions, error) {
			if conn.User() != t.Username || string(password) != t.Password {
				return nil, fmt.Errorf("wrong credentials for %s", conn.User())
			}
			return nil, nil
		}
	}

	_, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.logger.Fatalf("Failed to generate host key (%s)", err)
	}
	signer, err := ssh.NewSignerFromKey(private)
	if err != nil {
		t.logger.Fatalf("Failed to load host key (%s)", err)
	}
	config.AddHostKey(signer)
	return config
}
