package orchestrator

import (
	"fmt"
	"strings"
	"time"

	"github.com/cloudfoundry/netbackup/config"
	"github.com/cloudfoundry/netbackup/platform"
)

const DefaultCommandTimeout = 300 * time.Second

func NewBackuper(cfg config.BackupConfiguration, openSession SessionOpener, store CaptureStore, executor Executor, logger Logger, nowFunc func() time.Time, commandTimeout time.Duration) *Backuper {
	if commandTimeout <= 0 {
		commandTimeout = DefaultCommandTimeout
	}

	return &Backuper{
		config:         cfg,
		openSession:    openSession,
		store:          store,
		executor:       executor,
		logger:         logger,
		nowFunc:        nowFunc,
		commandTimeout: commandTimeout,
	}
}

// Backuper sweeps devices and groups one at a time. A failure is logged and
// turned into a false return; it never stops the sweep.
type Backuper struct {
	config         config.BackupConfiguration
	openSession    SessionOpener
	store          CaptureStore
	executor       Executor
	logger         Logger
	nowFunc        func() time.Time
	commandTimeout time.Duration
}

// BackupAll backs up every configured group in configuration order and
// reports whether all of them succeeded.
func (b *Backuper) BackupAll() bool {
	return b.BackupGroups(b.config.GroupNames())
}

func (b *Backuper) BackupGroups(groupNames []string) bool {
	var executables [][]Executable
	for _, groupName := range groupNames {
		executables = append(executables, []Executable{NewGroupBackupExecutable(b, groupName)})
	}

	if err := ConvertErrors(b.executor.Run(executables)); err != nil {
		b.logger.Debug(LogTag, "%s", err)
		return false
	}
	return true
}

// BackupGroup backs up every device of a group in declared order. It is true
// only when every device succeeded.
func (b *Backuper) BackupGroup(groupName string) bool {
	group, found := b.config.Group(groupName)
	if !found {
		err := NewConfigurationError(nil, fmt.Sprintf("Group %s not found in configuration", groupName))
		b.logger.Error(LogTag, "%s", err)
		return false
	}

	targets := group.Targets()
	b.logger.Info(LogTag, "Backing up group %s (%d devices)", group.Name, len(targets))

	var executables [][]Executable
	for _, device := range targets {
		executables = append(executables, []Executable{NewDeviceBackupExecutable(b, device)})
	}

	errs := b.executor.Run(executables)
	if len(errs) > 0 {
		b.logger.Warn(LogTag, "Group %s: %d of %d devices failed", group.Name, len(errs), len(targets))
		b.logger.Debug(LogTag, "Group %s: %s", group.Name, ConvertErrors(errs))
		return false
	}

	b.logger.Info(LogTag, "Group %s backed up successfully", group.Name)
	return true
}

// BackupDevice is true only when the session opened and every command was
// captured. Files written before a failing command are kept.
func (b *Backuper) BackupDevice(device config.Device) (succeeded bool) {
	defer func() {
		if r := recover(); r != nil {
			b.logFailure(device, NewOtherFailure(nil, fmt.Sprintf("unexpected error: %v", r)))
			succeeded = false
		}
	}()

	if err := b.backupDevice(device); err != nil {
		b.logFailure(device, err)
		return false
	}
	return true
}

func (b *Backuper) backupDevice(device config.Device) error {
	if strings.TrimSpace(device.Address) == "" {
		return NewConfigurationError(nil, "device address must not be empty")
	}

	commands := device.Commands
	if len(commands) == 0 {
		commands = platform.DefaultCommands(device.Type)
	}

	b.logger.Info(LogTag, "Connecting to %s", device.Address)
	session, err := b.openSession(device)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Close(); err != nil {
			b.logger.Debug(LogTag, "Closing session to %s: %s", device.Address, err)
		}
	}()

	timestamp := b.nowFunc()
	b.logger.Info(LogTag, "Starting config backup of %s", device.Address)
	for _, command := range commands {
		b.logger.Debug(LogTag, "Running '%s' on %s", command, device.Address)
		output, err := session.Run(command, b.commandTimeout)
		if err != nil {
			return NewOtherFailure(err, fmt.Sprintf("command '%s' failed", command))
		}

		backupPath, size, err := b.store.Write(device.Type, device.Address, command, timestamp, output)
		if err != nil {
			return NewOtherFailure(err, fmt.Sprintf("saving output of '%s' failed", command))
		}
		b.logger.Info(LogTag, "Saved %s output to %s (%d bytes)", command, backupPath, size)
	}

	b.logger.Info(LogTag, "Finished backing up %s", device.Address)
	return nil
}

func (b *Backuper) logFailure(device config.Device, err error) {
	switch OutcomeOf(err) {
	case AuthFailureOutcome:
		b.logger.Error(LogTag, "Authentication failed for %s: %s", device.Address, err)
	case ConnectionFailureOutcome:
		transport := strings.ToUpper(string(platform.Lookup(device.Type).Transport))
		b.logger.Error(LogTag, "%s connection failed for %s. Check if %s is enabled: %s", transport, device.Address, transport, err)
	case ConfigurationErrorOutcome:
		b.logger.Error(LogTag, "Configuration error for device '%s': %s", device.Address, err)
	default:
		b.logger.Error(LogTag, "Error backing up %s: %s", device.Address, err)
	}
}
