package testdevice

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Device is a scripted IOS-like CLI used by specs in place of real
// hardware. Unknown commands get the IOS invalid input marker.
type Device struct {
	Hostname        string
	EnablePassword  string
	StartPrivileged bool
	Outputs         map[string]string
	// Hang lists commands the device never answers.
	Hang map[string]bool

	mutex    sync.Mutex
	received []string
}

func NewDevice(hostname string) *Device {
	return &Device{
		Hostname: hostname,
		Outputs:  map[string]string{},
		Hang:     map[string]bool{},
	}
}

// Received lists every line typed into the CLI, including passwords sent
// to the enable prompt.
func (d *Device) Received() []string {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return append([]string(nil), d.received...)
}

func (d *Device) record(line string) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	d.received = append(d.received, line)
}

// Serve runs the CLI until the client disconnects or types exit.
func (d *Device) Serve(r io.Reader, w io.Writer) error {
	reader, ok := r.(*bufio.Reader)
	if !ok {
		reader = bufio.NewReader(r)
	}

	privileged := d.StartPrivileged
	prompt := func() string {
		if privileged {
			return d.Hostname + "#"
		}
		return d.Hostname + ">"
	}

	if _, err := fmt.Fprintf(w, "\r\n%s", prompt()); err != nil {
		return err
	}

	for {
		line, err := readLine(reader)
		if err != nil {
			return err
		}
		d.record(line)

		// The echo and the reply go out in separate writes, like a real
		// device that echoes as it reads.
		if _, err := fmt.Fprintf(w, "%s\r\n", line); err != nil {
			return err
		}

		var reply string
		switch {
		case line == "exit":
			return nil
		case d.Hang[line]:
			continue
		case line == "enable":
			if !privileged {
				privileged = d.enable(reader, w)
			}
		case line == "terminal length 0" || line == "terminal pager 0" || line == "":
		default:
			output, found := d.Outputs[line]
			if !found {
				output = "                ^\n% Invalid input detected at '^' marker.\n"
			}
			reply = strings.ReplaceAll(output, "\n", "\r\n")
		}

		if _, err := fmt.Fprintf(w, "%s%s", reply, prompt()); err != nil {
			return err
		}
	}
}

func (d *Device) enable(reader *bufio.Reader, w io.Writer) bool {
	if d.EnablePassword == "" {
		return true
	}

	for attempt := 0; attempt < 3; attempt++ {
		if _, err := io.WriteString(w, "Password: "); err != nil {
			return false
		}
		password, err := readLine(reader)
		if err != nil {
			return false
		}
		d.record(password)
		if _, err := io.WriteString(w, "\r\n"); err != nil {
			return false
		}
		if password == d.EnablePassword {
			return true
		}
	}
	io.WriteString(w, "% Bad secrets\r\n\r\n")
	return false
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
