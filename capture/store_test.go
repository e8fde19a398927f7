package capture_test

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/cloudfoundry/netbackup/capture"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Store", func() {
	var root string
	var store Store
	var timestamp time.Time

	BeforeEach(func() {
		root = filepath.Join(GinkgoT().TempDir(), "backups")
		store = NewStore(root)
		timestamp = time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)
	})

	Describe("FileName", func() {
		It("combines address, command and timestamp", func() {
			Expect(FileName("10.0.0.1", "show version", timestamp)).To(Equal("10.0.0.1_show_version_20240101_120000.txt"))
		})

		It("never produces a path separator", func() {
			Expect(FileName("10.0.0.1", "show run | include interface Gi1/0/1", timestamp)).
				To(Equal("10.0.0.1_show_run_|_include_interface_Gi1-0-1_20240101_120000.txt"))
		})
	})

	Describe("EnsureRoot", func() {
		It("creates the directory", func() {
			Expect(store.EnsureRoot()).To(Succeed())
			Expect(root).To(BeADirectory())
		})

		It("is idempotent", func() {
			Expect(store.EnsureRoot()).To(Succeed())
			Expect(store.EnsureRoot()).To(Succeed())
		})

		Context("when the root is a file", func() {
			BeforeEach(func() {
				Expect(os.WriteFile(root, []byte("x"), 0600)).To(Succeed())
			})

			It("fails", func() {
				Expect(store.EnsureRoot()).To(MatchError(ContainSubstring("is not a directory")))
			})
		})
	})

	Describe("Write", func() {
		It("writes the output under a directory named after the device type", func() {
			path, size, err := store.Write("cisco_xe", "10.0.0.1", "show version", timestamp, "Cisco IOS XE Software")

			Expect(err).NotTo(HaveOccurred())
			Expect(path).To(Equal(filepath.Join(root, "cisco_xe", "10.0.0.1_show_version_20240101_120000.txt")))
			contents, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(contents)).To(Equal("Cisco IOS XE Software"))
			Expect(size).To(Equal(len("Cisco IOS XE Software")))
		})

		It("writes a distinct file for a capture taken in a different second", func() {
			first, _, err := store.Write("cisco_xe", "10.0.0.1", "show version", timestamp, "first")
			Expect(err).NotTo(HaveOccurred())
			second, _, err := store.Write("cisco_xe", "10.0.0.1", "show version", timestamp.Add(time.Second), "second")
			Expect(err).NotTo(HaveOccurred())

			Expect(second).NotTo(Equal(first))
			Expect(first).To(BeAnExistingFile())
			Expect(second).To(BeAnExistingFile())
		})

		It("replaces a capture taken in the same second", func() {
			_, _, err := store.Write("cisco_xe", "10.0.0.1", "show version", timestamp, "first")
			Expect(err).NotTo(HaveOccurred())
			path, _, err := store.Write("cisco_xe", "10.0.0.1", "show version", timestamp, "second")
			Expect(err).NotTo(HaveOccurred())

			contents, _ := os.ReadFile(path)
			Expect(string(contents)).To(Equal("second"))
		})

		DescribeTable("refuses device types that would leave the backup root",
			func(deviceType string) {
				path, _, err := store.Write(deviceType, "10.0.0.1", "show version", timestamp, "x")
				Expect(err).To(MatchError(ContainSubstring("cannot be used as a directory name")))
				Expect(path).To(BeEmpty())
				Expect(filepath.Join(filepath.Dir(root), "escaped")).NotTo(BeADirectory())
			},
			Entry("parent reference with a separator", "../escaped"),
			Entry("parent reference", ".."),
			Entry("nested path", "cisco_xe/escaped"),
			Entry("backslash", `..\escaped`),
			Entry("empty", ""),
		)

		Context("when the device type directory cannot be created", func() {
			BeforeEach(func() {
				Expect(os.MkdirAll(root, 0750)).To(Succeed())
				Expect(os.WriteFile(filepath.Join(root, "cisco_xe"), []byte("x"), 0600)).To(Succeed())
			})

			It("fails", func() {
				_, _, err := store.Write("cisco_xe", "10.0.0.1", "show version", timestamp, "out")
				Expect(err).To(MatchError(ContainSubstring("failed creating device type directory")))
			})
		})
	})
})
