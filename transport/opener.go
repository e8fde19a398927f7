package transport

import (
	"time"

	"github.com/cloudfoundry/netbackup/config"
	"github.com/cloudfoundry/netbackup/orchestrator"
	"github.com/cloudfoundry/netbackup/platform"
	"github.com/cloudfoundry/netbackup/ssh"
	"github.com/cloudfoundry/netbackup/telnet"
)

// NewOpener picks SSH or telnet from the device type; "_telnet" types use
// telnet, everything else SSH.
func NewOpener(logger orchestrator.Logger, connectTimeout time.Duration) orchestrator.SessionOpener {
	return func(device config.Device) (orchestrator.DeviceSession, error) {
		switch platform.Lookup(device.Type).Transport {
		case platform.Telnet:
			return telnet.NewDeviceSession(device, logger, connectTimeout)
		default:
			return ssh.NewDeviceSession(device, logger, connectTimeout)
		}
	}
}
