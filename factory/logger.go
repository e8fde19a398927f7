package factory

import (
	"io"
	"os"

	boshlog "github.com/cloudfoundry/bosh-utils/logger"
	"github.com/pkg/errors"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// BuildLogger logs to stdout and appends to logFile. An empty logFile logs
// to stdout only. The returned closer releases the log file.
func BuildLogger(debug bool, logFile string) (boshlog.Logger, io.Closer, error) {
	if logFile == "" {
		return BuildLoggerWithCustomWriter(os.Stdout, debug), nopCloser{}, nil
	}

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0640)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed opening log file %s", logFile)
	}
	return BuildLoggerWithCustomWriter(io.MultiWriter(os.Stdout, file), debug), file, nil
}

func BuildLoggerWithCustomWriter(w io.Writer, debug bool) boshlog.Logger {
	if debug {
		return boshlog.NewWriterLogger(boshlog.LevelDebug, w)
	}
	return boshlog.NewWriterLogger(boshlog.LevelInfo, w)
}
