package orchestrator

import (
	"github.com/pkg/errors"

	"github.com/cloudfoundry/netbackup/config"
)

//go:generate counterfeiter -o fakes/fake_executor.go . Executor
type Executor interface {
	Run([][]Executable) []error
}

//go:generate counterfeiter -o fakes/fake_executable.go . Executable
type Executable interface {
	Execute() error
}

type DeviceBackupExecutable struct {
	backuper *Backuper
	device   config.Device
}

func NewDeviceBackupExecutable(backuper *Backuper, device config.Device) Executable {
	return DeviceBackupExecutable{backuper: backuper, device: device}
}

func (e DeviceBackupExecutable) Execute() error {
	if !e.backuper.BackupDevice(e.device) {
		return errors.Errorf("backup of device %s failed", e.device.Address)
	}
	return nil
}

type GroupBackupExecutable struct {
	backuper  *Backuper
	groupName string
}

func NewGroupBackupExecutable(backuper *Backuper, groupName string) Executable {
	return GroupBackupExecutable{backuper: backuper, groupName: groupName}
}

func (e GroupBackupExecutable) Execute() error {
	if !e.backuper.BackupGroup(e.groupName) {
		return errors.Errorf("backup of group %s failed", e.groupName)
	}
	return nil
}
