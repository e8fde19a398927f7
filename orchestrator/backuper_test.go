package orchestrator_test

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cloudfoundry/netbackup/capture"
	"github.com/cloudfoundry/netbackup/config"
	"github.com/cloudfoundry/netbackup/executor"
	"github.com/cloudfoundry/netbackup/orchestrator"
	"github.com/cloudfoundry/netbackup/orchestrator/fakes"
)

var _ = Describe("Backuper", func() {
	var (
		b         *orchestrator.Backuper
		cfg       config.BackupConfiguration
		opener    *fakes.FakeSessionOpener
		session   *fakes.FakeDeviceSession
		store     *fakes.FakeCaptureStore
		logger    *fakes.FakeLogger
		timestamp time.Time
		nowCalls  int
	)

	errorMessages := func() []string {
		var messages []string
		for i := 0; i < logger.ErrorCallCount(); i++ {
			_, msg, args := logger.ErrorArgsForCall(i)
			messages = append(messages, fmt.Sprintf(msg, args...))
		}
		return messages
	}

	debugMessages := func() []string {
		var messages []string
		for i := 0; i < logger.DebugCallCount(); i++ {
			_, msg, args := logger.DebugArgsForCall(i)
			messages = append(messages, fmt.Sprintf(msg, args...))
		}
		return messages
	}

	BeforeEach(func() {
		cfg = config.New("backups",
			config.DeviceGroup{
				Name:      "CORE",
				Type:      "cisco_xe",
				Addresses: []string{"10.0.0.1", "10.0.0.2"},
				Username:  "admin",
				Password:  "secret",
				Commands:  []string{"show running-config", "show version"},
			},
			config.DeviceGroup{
				Name:      "EDGE",
				Type:      "cisco_ios",
				Addresses: []string{"10.0.1.1"},
			},
		)

		session = new(fakes.FakeDeviceSession)
		session.RunStub = func(command string, _ time.Duration) (string, error) {
			return "output of " + command, nil
		}
		opener = new(fakes.FakeSessionOpener)
		opener.Returns(session, nil)
		store = new(fakes.FakeCaptureStore)
		store.WriteReturns("backups/cisco_xe/file.txt", 42, nil)
		logger = new(fakes.FakeLogger)

		timestamp = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		nowCalls = 0
	})

	JustBeforeEach(func() {
		nowFunc := func() time.Time {
			nowCalls++
			return timestamp.Add(time.Duration(nowCalls-1) * time.Second)
		}
		b = orchestrator.NewBackuper(cfg, opener.Spy, store, executor.NewSerialExecutor(), logger, nowFunc, 0)
	})

	Describe("BackupDevice", func() {
		var (
			device    config.Device
			succeeded bool
		)

		BeforeEach(func() {
			device = config.Device{
				Address:  "10.0.0.1",
				Type:     "cisco_xe",
				Username: "admin",
				Password: "secret",
				Commands: []string{"show running-config", "show version", "show ip interface brief"},
			}
		})

		JustBeforeEach(func() {
			succeeded = b.BackupDevice(device)
		})

		It("succeeds", func() {
			Expect(succeeded).To(BeTrue())
			Expect(errorMessages()).To(BeEmpty())
		})

		It("opens one session for the device", func() {
			Expect(opener.CallCount()).To(Equal(1))
			Expect(opener.ArgsForCall(0)).To(Equal(device))
		})

		It("runs every command in order with the default read timeout", func() {
			Expect(session.RunCallCount()).To(Equal(3))
			for i, expected := range device.Commands {
				command, timeout := session.RunArgsForCall(i)
				Expect(command).To(Equal(expected))
				Expect(timeout).To(Equal(orchestrator.DefaultCommandTimeout))
			}
		})

		It("stores every output with one timestamp taken for the device", func() {
			Expect(store.WriteCallCount()).To(Equal(3))
			for i, expected := range device.Commands {
				deviceType, address, command, ts, output := store.WriteArgsForCall(i)
				Expect(deviceType).To(Equal("cisco_xe"))
				Expect(address).To(Equal("10.0.0.1"))
				Expect(command).To(Equal(expected))
				Expect(ts).To(Equal(timestamp))
				Expect(output).To(Equal("output of " + expected))
			}
			Expect(nowCalls).To(Equal(1))
		})

		It("closes the session", func() {
			Expect(session.CloseCallCount()).To(Equal(1))
		})

		It("logs the saved files", func() {
			var infos []string
			for i := 0; i < logger.InfoCallCount(); i++ {
				tag, msg, args := logger.InfoArgsForCall(i)
				Expect(tag).To(Equal(orchestrator.LogTag))
				infos = append(infos, fmt.Sprintf(msg, args...))
			}
			Expect(infos).To(ContainElement("Connecting to 10.0.0.1"))
			Expect(infos).To(ContainElement("Saved show version output to backups/cisco_xe/file.txt (42 bytes)"))
			Expect(infos).To(ContainElement("Finished backing up 10.0.0.1"))
		})

		Context("when no commands are given", func() {
			BeforeEach(func() {
				device.Commands = nil
			})

			It("runs exactly one default command", func() {
				Expect(succeeded).To(BeTrue())
				Expect(session.RunCallCount()).To(Equal(1))
				command, _ := session.RunArgsForCall(0)
				Expect(command).To(Equal("show running-config"))
				Expect(store.WriteCallCount()).To(Equal(1))
			})
		})

		Context("when the credentials are rejected", func() {
			BeforeEach(func() {
				opener.Returns(nil, orchestrator.NewAuthFailure(errors.New("ssh: unable to authenticate"), "authentication failed"))
			})

			It("fails and logs an authentication failure", func() {
				Expect(succeeded).To(BeFalse())
				Expect(errorMessages()).To(ConsistOf(HavePrefix("Authentication failed for 10.0.0.1")))
				Expect(store.WriteCallCount()).To(Equal(0))
			})
		})

		Context("when the connection cannot be established", func() {
			BeforeEach(func() {
				opener.Returns(nil, orchestrator.NewConnectionFailure(errors.New("connection refused"), "dial failed"))
			})

			It("fails and tells the operator to check the transport", func() {
				Expect(succeeded).To(BeFalse())
				Expect(errorMessages()).To(ConsistOf(HavePrefix("SSH connection failed for 10.0.0.1. Check if SSH is enabled")))
			})

			Context("and the device is reached over telnet", func() {
				BeforeEach(func() {
					device.Type = "cisco_ios_telnet"
				})

				It("names telnet in the log line", func() {
					Expect(errorMessages()).To(ConsistOf(HavePrefix("TELNET connection failed for 10.0.0.1. Check if TELNET is enabled")))
				})
			})
		})

		Context("when opening the session fails with an unclassified error", func() {
			BeforeEach(func() {
				opener.Returns(nil, errors.New("something odd"))
			})

			It("logs it as a generic backup error", func() {
				Expect(succeeded).To(BeFalse())
				Expect(errorMessages()).To(ConsistOf("Error backing up 10.0.0.1: something odd"))
			})
		})

		Context("when a command fails", func() {
			BeforeEach(func() {
				session.RunStub = nil
				session.RunReturnsOnCall(0, "config", nil)
				session.RunReturnsOnCall(1, "", errors.New("timed out waiting for prompt"))
			})

			It("fails, keeps the earlier capture and skips the remaining commands", func() {
				Expect(succeeded).To(BeFalse())
				Expect(store.WriteCallCount()).To(Equal(1))
				Expect(session.RunCallCount()).To(Equal(2))
				Expect(errorMessages()).To(ConsistOf(
					"Error backing up 10.0.0.1: command 'show version' failed: timed out waiting for prompt",
				))
			})

			It("still closes the session", func() {
				Expect(session.CloseCallCount()).To(Equal(1))
			})
		})

		Context("when the output cannot be saved", func() {
			BeforeEach(func() {
				store.WriteReturns("", 0, errors.New("disk full"))
			})

			It("fails", func() {
				Expect(succeeded).To(BeFalse())
				Expect(errorMessages()).To(ConsistOf(ContainSubstring("saving output of 'show running-config' failed: disk full")))
				Expect(session.CloseCallCount()).To(Equal(1))
			})
		})

		Context("when closing the session fails", func() {
			BeforeEach(func() {
				session.CloseReturns(errors.New("already closed"))
			})

			It("still succeeds", func() {
				Expect(succeeded).To(BeTrue())
				Expect(errorMessages()).To(BeEmpty())
			})
		})

		Context("when the address is empty", func() {
			BeforeEach(func() {
				device.Address = " "
			})

			It("fails without dialing", func() {
				Expect(succeeded).To(BeFalse())
				Expect(opener.CallCount()).To(Equal(0))
				Expect(errorMessages()).To(ConsistOf(HavePrefix("Configuration error for device ' '")))
			})
		})

		Context("when the session panics", func() {
			BeforeEach(func() {
				session.RunStub = func(string, time.Duration) (string, error) {
					panic("nil pointer")
				}
			})

			It("recovers and fails", func() {
				Expect(succeeded).To(BeFalse())
				Expect(errorMessages()).To(ConsistOf("Error backing up 10.0.0.1: unexpected error: nil pointer"))
			})
		})
	})

	Describe("BackupGroup", func() {
		var (
			groupName string
			succeeded bool
		)

		BeforeEach(func() {
			groupName = "CORE"
		})

		JustBeforeEach(func() {
			succeeded = b.BackupGroup(groupName)
		})

		It("backs up every device once, in declared order", func() {
			Expect(succeeded).To(BeTrue())
			Expect(opener.CallCount()).To(Equal(2))
			Expect(opener.ArgsForCall(0).Address).To(Equal("10.0.0.1"))
			Expect(opener.ArgsForCall(1).Address).To(Equal("10.0.0.2"))
			Expect(opener.ArgsForCall(0).Username).To(Equal("admin"))
			Expect(store.WriteCallCount()).To(Equal(4))
		})

		Context("when one device fails", func() {
			BeforeEach(func() {
				opener.ReturnsOnCall(0, nil, orchestrator.NewAuthFailure(nil, "authentication failed"))
				opener.ReturnsOnCall(1, session, nil)
			})

			It("still backs up the other devices and fails", func() {
				Expect(succeeded).To(BeFalse())
				Expect(opener.CallCount()).To(Equal(2))
				Expect(store.WriteCallCount()).To(Equal(2))

				Expect(logger.WarnCallCount()).To(Equal(1))
				_, msg, args := logger.WarnArgsForCall(0)
				Expect(fmt.Sprintf(msg, args...)).To(Equal("Group CORE: 1 of 2 devices failed"))
			})

			It("logs the collected failures at debug level", func() {
				Expect(debugMessages()).To(ContainElement(
					"Group CORE: 1 backup failed:\n  1. backup of device 10.0.0.1 failed"))
			})
		})

		Context("when the group is unknown", func() {
			BeforeEach(func() {
				groupName = "MISSING"
			})

			It("fails without contacting any device", func() {
				Expect(succeeded).To(BeFalse())
				Expect(opener.CallCount()).To(Equal(0))
				Expect(errorMessages()).To(ConsistOf("Group MISSING not found in configuration"))
			})
		})
	})

	Describe("BackupAll", func() {
		It("backs up every group in configuration order", func() {
			Expect(b.BackupAll()).To(BeTrue())

			var addresses []string
			for i := 0; i < opener.CallCount(); i++ {
				addresses = append(addresses, opener.ArgsForCall(i).Address)
			}
			Expect(addresses).To(Equal([]string{"10.0.0.1", "10.0.0.2", "10.0.1.1"}))
		})

		It("uses the platform default command for groups without commands", func() {
			Expect(b.BackupAll()).To(BeTrue())

			_, _, command, _, _ := store.WriteArgsForCall(4)
			Expect(command).To(Equal("show running-config"))
		})

		Context("when a group fails", func() {
			BeforeEach(func() {
				opener.Stub = func(device config.Device) (orchestrator.DeviceSession, error) {
					if device.Address == "10.0.0.2" {
						return nil, orchestrator.NewConnectionFailure(nil, "dial failed")
					}
					return session, nil
				}
			})

			It("attempts every group and fails", func() {
				Expect(b.BackupAll()).To(BeFalse())
				Expect(opener.CallCount()).To(Equal(3))
			})

			It("logs the failed groups as one collected error", func() {
				b.BackupAll()
				Expect(debugMessages()).To(ContainElement(
					"1 backup failed:\n  1. backup of group CORE failed"))
			})
		})
	})

	Context("with a real capture store", func() {
		var root string

		BeforeEach(func() {
			root = filepath.Join(GinkgoT().TempDir(), "backups")
			cfg = config.New(root,
				config.DeviceGroup{
					Name:      "GOOD",
					Type:      "cisco_xe",
					Addresses: []string{"10.0.0.1", "10.0.0.2"},
					Commands:  []string{"show version"},
				},
				config.DeviceGroup{
					Name:      "MIXED",
					Type:      "cisco_ios",
					Addresses: []string{"10.0.1.1", "10.0.1.2"},
					Commands:  []string{"show running-config"},
				},
			)

			opener.Stub = func(device config.Device) (orchestrator.DeviceSession, error) {
				if device.Address == "10.0.1.1" {
					return nil, orchestrator.NewAuthFailure(nil, "authentication failed")
				}
				return session, nil
			}
		})

		JustBeforeEach(func() {
			realStore := capture.NewStore(root)
			Expect(realStore.EnsureRoot()).To(Succeed())
			b = orchestrator.NewBackuper(cfg, opener.Spy, realStore, executor.NewSerialExecutor(), logger, func() time.Time { return timestamp }, time.Minute)
		})

		It("fails overall but keeps a file for every device that succeeded", func() {
			Expect(b.BackupAll()).To(BeFalse())

			Expect(filepath.Join(root, "cisco_xe", "10.0.0.1_show_version_20240101_120000.txt")).To(BeAnExistingFile())
			Expect(filepath.Join(root, "cisco_xe", "10.0.0.2_show_version_20240101_120000.txt")).To(BeAnExistingFile())
			Expect(filepath.Join(root, "cisco_ios", "10.0.1.2_show_running-config_20240101_120000.txt")).To(BeAnExistingFile())
			Expect(filepath.Join(root, "cisco_ios", "10.0.1.1_show_running-config_20240101_120000.txt")).NotTo(BeAnExistingFile())

			contents, err := os.ReadFile(filepath.Join(root, "cisco_xe", "10.0.0.1_show_version_20240101_120000.txt"))
			Expect(err).NotTo(HaveOccurred())
			Expect(string(contents)).To(Equal("output of show version"))
		})

		It("passes the configured read timeout to the session", func() {
			b.BackupAll()
			_, timeout := session.RunArgsForCall(0)
			Expect(timeout).To(Equal(time.Minute))
		})
	})
})
