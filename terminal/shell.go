package terminal

import (
	"io"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/cloudfoundry/netbackup/platform"
)

const readBufferSize = 4096

type chunk struct {
	data []byte
	err  error
}

// Shell drives an interactive device CLI over any byte stream. It is not
// safe for concurrent use.
type Shell struct {
	stdin     io.Writer
	chunks    chan chunk
	done      chan struct{}
	closeOnce sync.Once
	readErr   error
	prompt    string
	hostname  string
}

func NewShell(stdin io.Writer, stdout io.Reader) *Shell {
	s := &Shell{
		stdin:  stdin,
		chunks: make(chan chunk, 16),
		done:   make(chan struct{}),
	}
	go s.pump(stdout)
	return s
}

func (s *Shell) pump(stdout io.Reader) {
	buffer := make([]byte, readBufferSize)
	for {
		n, err := stdout.Read(buffer)
		if n > 0 {
			data := append([]byte(nil), buffer[:n]...)
			select {
			case s.chunks <- chunk{data: data}:
			case <-s.done:
				return
			}
		}
		if err != nil {
			select {
			case s.chunks <- chunk{err: err}:
			case <-s.done:
			}
			return
		}
	}
}

// Prompt is the last prompt the device showed.
func (s *Shell) Prompt() string {
	return s.prompt
}

func (s *Shell) Send(line string) error {
	_, err := io.WriteString(s.stdin, line+"\n")
	return errors.Wrap(err, "writing to the device")
}

// ReadUntil reads until match accepts everything read so far, the stream
// fails or the timeout elapses.
func (s *Shell) ReadUntil(match func(string) bool, timeout time.Duration) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var output strings.Builder
	for {
		if s.readErr != nil {
			return output.String(), s.readErr
		}

		select {
		case c := <-s.chunks:
			if c.err != nil {
				s.readErr = errors.Wrap(c.err, "reading from the device")
				continue
			}
			output.Write(c.data)
			if match(output.String()) {
				return output.String(), nil
			}
		case <-timer.C:
			return output.String(), errors.Errorf("timed out after %s waiting for the device", timeout)
		}
	}
}

// ReadUntilPrompt reads until the device shows its prompt again.
func (s *Shell) ReadUntilPrompt(timeout time.Duration) (string, error) {
	output, err := s.ReadUntil(s.atPrompt, timeout)
	if err != nil {
		return output, err
	}
	s.remember(output)
	return output, nil
}

// SawPrompt records the prompt ending output the caller already read, so
// Prepare does not wait for another one.
func (s *Shell) SawPrompt(output string) bool {
	if !s.atPrompt(output) {
		return false
	}
	s.remember(output)
	return true
}

func (s *Shell) atPrompt(text string) bool {
	return IsPrompt(text) && strings.HasPrefix(LastLine(text), s.hostname)
}

func (s *Shell) remember(output string) {
	s.prompt = LastLine(output)
	if s.hostname == "" {
		s.hostname = Hostname(s.prompt)
	}
}

// Prepare gets the CLI ready for show commands: it waits for the first prompt
// unless one was already seen, enters privileged mode when the dialect needs
// it and turns paging off.
func (s *Shell) Prepare(dialect platform.Platform, enablePassword string, timeout time.Duration) error {
	if s.prompt == "" {
		if _, err := s.ReadUntilPrompt(timeout); err != nil {
			return errors.Wrap(err, "waiting for the initial prompt")
		}
	}

	if dialect.EnableRequired && strings.HasSuffix(s.prompt, UserPrompt) {
		if err := s.enable(enablePassword, timeout); err != nil {
			return err
		}
	}

	if dialect.PagingCommand != "" {
		if _, err := s.Run(dialect.PagingCommand, timeout); err != nil {
			return errors.Wrap(err, "disabling paging")
		}
	}
	return nil
}

func (s *Shell) enable(password string, timeout time.Duration) error {
	promptOrPassword := func(text string) bool {
		return IsPasswordPrompt(text) || s.atPrompt(text)
	}

	if err := s.Send("enable"); err != nil {
		return err
	}
	output, err := s.ReadUntil(promptOrPassword, timeout)
	if err != nil {
		return errors.Wrap(err, "entering enable mode")
	}

	if IsPasswordPrompt(output) {
		if err := s.Send(password); err != nil {
			return err
		}
		output, err = s.ReadUntil(promptOrPassword, timeout)
		if err != nil {
			return errors.Wrap(err, "entering enable mode")
		}
		if IsPasswordPrompt(output) {
			return errors.New("enable password rejected")
		}
	}

	s.remember(output)
	if !strings.HasSuffix(s.prompt, PrivilegedPrompt) {
		return errors.Errorf("entering enable mode failed, prompt is %s", s.prompt)
	}
	return nil
}

// Run sends one command and returns its cleaned output.
func (s *Shell) Run(command string, timeout time.Duration) (string, error) {
	if err := s.Send(command); err != nil {
		return "", err
	}

	raw, err := s.ReadUntilPrompt(timeout)
	if err != nil {
		return "", err
	}
	return CleanOutput(raw, command), nil
}

// Close stops reading from the device. It does not close the stream.
func (s *Shell) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}
