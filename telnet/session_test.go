package telnet_test

import (
	"net"
	"time"

	boshlog "github.com/cloudfoundry/bosh-utils/logger"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cloudfoundry/netbackup/config"
	"github.com/cloudfoundry/netbackup/orchestrator"
	"github.com/cloudfoundry/netbackup/telnet"
	"github.com/cloudfoundry/netbackup/testdevice"
)

var _ = Describe("DeviceSession", func() {
	var (
		device  *testdevice.Device
		server  *testdevice.TelnetServer
		target  config.Device
		session orchestrator.DeviceSession
		openErr error
	)

	BeforeEach(func() {
		device = testdevice.NewDevice("lab-sw1")
		device.EnablePassword = "enable-secret"
		device.Outputs["show running-config"] = "Building configuration...\n\nhostname lab-sw1\nend\n"

		server = testdevice.NewTelnetServer(device, "admin", "secret", GinkgoWriter)

		target = config.Device{
			Address:        "127.0.0.1",
			Port:           server.Port,
			Type:           "cisco_ios_telnet",
			Username:       "admin",
			Password:       "secret",
			EnablePassword: "enable-secret",
		}
	})

	JustBeforeEach(func() {
		logger := boshlog.NewWriterLogger(boshlog.LevelDebug, GinkgoWriter)
		session, openErr = telnet.NewDeviceSession(target, logger, 5*time.Second)
	})

	AfterEach(func() {
		if session != nil {
			session.Close()
		}
		server.Close()
	})

	It("logs in and prepares the CLI", func() {
		Expect(openErr).NotTo(HaveOccurred())
		Expect(device.Received()).To(Equal([]string{"enable", "enable-secret", "terminal length 0"}))
	})

	It("captures command output", func() {
		Expect(openErr).NotTo(HaveOccurred())

		output, err := session.Run("show running-config", 5*time.Second)
		Expect(err).NotTo(HaveOccurred())
		Expect(output).To(Equal("Building configuration...\n\nhostname lab-sw1\nend"))
	})

	Context("when the credentials are wrong", func() {
		BeforeEach(func() {
			target.Password = "wrong"
		})

		It("fails with an AuthFailure", func() {
			Expect(openErr).To(BeAssignableToTypeOf(orchestrator.AuthFailure{}))
			Expect(openErr).To(MatchError("authentication failed for admin: device rejected the login"))
			Expect(device.Received()).To(BeEmpty())
		})
	})

	Context("when nothing listens on the port", func() {
		BeforeEach(func() {
			listener, err := net.Listen("tcp", "127.0.0.1:0")
			Expect(err).NotTo(HaveOccurred())
			target.Port = listener.Addr().(*net.TCPAddr).Port
			listener.Close()
		})

		It("fails with a ConnectionFailure", func() {
			Expect(openErr).To(BeAssignableToTypeOf(orchestrator.ConnectionFailure{}))
			Expect(session).To(BeNil())
		})
	})

	Context("when the device never asks for a login", func() {
		var listener net.Listener

		BeforeEach(func() {
			var err error
			listener, err = net.Listen("tcp", "127.0.0.1:0")
			Expect(err).NotTo(HaveOccurred())
			go func() {
				conn, err := listener.Accept()
				if err == nil {
					time.Sleep(2 * time.Second)
					conn.Close()
				}
			}()
			target.Port = listener.Addr().(*net.TCPAddr).Port
		})

		AfterEach(func() {
			listener.Close()
		})

		It("fails with a ConnectionFailure", func() {
			Expect(openErr).To(BeAssignableToTypeOf(orchestrator.ConnectionFailure{}))
			Expect(openErr).To(MatchError(ContainSubstring("no login prompt")))
		})
	})
})
