package capture

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/cloudfoundry/netbackup/counter"
)

const TimestampFormat = "20060102_150405"

var commandReplacer = strings.NewReplacer(" ", "_", "/", "-", `\`, "-")

// Store writes captures under <root>/<device type>/.
type Store struct {
	root string
}

func NewStore(root string) Store {
	return Store{root: root}
}

func (s Store) Root() string {
	return s.root
}

// EnsureRoot creates the backup root directory if it is missing.
func (s Store) EnsureRoot() error {
	fileInfo, err := os.Stat(s.root)
	if err == nil && !fileInfo.IsDir() {
		return errors.Errorf("backup root %s is not a directory", s.root)
	}

	if err := os.MkdirAll(s.root, 0750); err != nil {
		return errors.Wrapf(err, "failed creating backup root directory %s", s.root)
	}
	return nil
}

// IsDirectoryName reports whether name stays a single directory directly
// under the backup root.
func IsDirectoryName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

// Write stores output and returns the path of the file it wrote and the
// number of bytes in it. A capture taken in the same second for the same
// device and command replaces the previous one.
func (s Store) Write(deviceType, address, command string, timestamp time.Time, output string) (string, int, error) {
	if !IsDirectoryName(deviceType) {
		return "", 0, errors.Errorf("device type %q cannot be used as a directory name", deviceType)
	}

	deviceDir := filepath.Join(s.root, deviceType)
	if err := os.MkdirAll(deviceDir, 0750); err != nil {
		return "", 0, errors.Wrapf(err, "failed creating device type directory %s", deviceDir)
	}

	backupPath := filepath.Join(deviceDir, FileName(address, command, timestamp))
	file, err := os.OpenFile(backupPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0640)
	if err != nil {
		return "", 0, errors.Wrapf(err, "failed creating %s", backupPath)
	}

	countWriter := counter.NewCountWriter(file)
	_, err = io.WriteString(countWriter, output)
	closeErr := file.Close()
	if err != nil {
		return "", 0, errors.Wrapf(err, "failed writing %s", backupPath)
	}
	if closeErr != nil {
		return "", 0, errors.Wrapf(closeErr, "failed closing %s", backupPath)
	}
	return backupPath, countWriter.Count(), nil
}

func FileName(address, command string, timestamp time.Time) string {
	return fmt.Sprintf("%s_%s_%s.txt", address, commandReplacer.Replace(command), timestamp.Format(TimestampFormat))
}
