package orchestrator

import (
	"time"

	"github.com/cloudfoundry/netbackup/config"
)

// DeviceSession is an open CLI session on one device. Close must be safe to
// call once on every session returned by a SessionOpener.
//
//go:generate counterfeiter -o fakes/fake_device_session.go . DeviceSession
type DeviceSession interface {
	Run(command string, timeout time.Duration) (string, error)
	Close() error
}

// SessionOpener opens a session, returning AuthFailure or ConnectionFailure
// when the device cannot be logged into.
//
//go:generate counterfeiter -o fakes/fake_session_opener.go . SessionOpener
type SessionOpener func(device config.Device) (DeviceSession, error)

// CaptureStore persists one command's output and returns where it went and
// how many bytes were written.
//
//go:generate counterfeiter -o fakes/fake_capture_store.go . CaptureStore
type CaptureStore interface {
	Write(deviceType, address, command string, timestamp time.Time, output string) (string, int, error)
}
