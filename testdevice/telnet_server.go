package testdevice

import (
	"bufio"
	"io"
	"log"
	"net"
)

// TelnetServer asks for a username and password like an IOS vty line and
// then serves a Device. It sends no option negotiation.
type TelnetServer struct {
	Port int
	net.Listener
	Username string
	Password string
	Device   *Device
	logger   *log.Logger
}

func NewTelnetServer(device *Device, username, password string, logWriter io.Writer) *TelnetServer {
	t := &TelnetServer{
		Username: username,
		Password: password,
		Device:   device,
		logger:   log.New(logWriter, "[test-telnet-server] ", log.Lshortfile),
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

func (t *TelnetServer) Close() {
	t.logger.Printf("Closing server listening on (%d)", t.Port)
	t.Listener.Close()
}

func (t *TelnetServer) HandleRequests() {
	for {
		conn, err := t.Accept()
		if err != nil {
			t.logger.Printf("Failed to accept incoming connection (%s)", err)
			return
		}
		go t.serve(conn)
	}
}

func (t *TelnetServer) serve(conn net.Conn) {
	defer conn.Close()
	reader := bufio.NewReader(conn)

	io.WriteString(conn, "\r\n\r\nUser Access Verification\r\n\r\n")
	for attempt := 0; attempt < 3; attempt++ {
		if _, err := io.WriteString(conn, "Username: "); err != nil {
			return
		}
		username, err := readLine(reader)
		if err != nil {
			return
		}
		io.WriteString(conn, "\r\nPassword: ")
		password, err := readLine(reader)
		if err != nil {
			return
		}

		if username == t.Username && password == t.Password {
			if err := t.Device.Serve(reader, conn); err != nil && err != io.EOF {
				t.logger.Printf("Session ended (%s)", err)
			}
			return
		}
		io.WriteString(conn, "\r\n% Login invalid\r\n\r\n")
	}
}
