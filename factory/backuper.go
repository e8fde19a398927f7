package factory

import (
	"time"

	boshlog "github.com/cloudfoundry/bosh-utils/logger"

	"github.com/cloudfoundry/netbackup/capture"
	"github.com/cloudfoundry/netbackup/config"
	"github.com/cloudfoundry/netbackup/executor"
	"github.com/cloudfoundry/netbackup/orchestrator"
	"github.com/cloudfoundry/netbackup/ssh"
	"github.com/cloudfoundry/netbackup/transport"
)

func BuildBackuper(cfg config.BackupConfiguration, logger boshlog.Logger) (*orchestrator.Backuper, error) {
	return BuildBackuperWithOpener(cfg, logger, transport.NewOpener(logger, ssh.DefaultConnectTimeout))
}

// BuildBackuperWithOpener makes sure the backup root exists before wiring
// the backuper.
func BuildBackuperWithOpener(cfg config.BackupConfiguration, logger boshlog.Logger, openSession orchestrator.SessionOpener) (*orchestrator.Backuper, error) {
	store := capture.NewStore(cfg.BackupRootDirectory)
	if err := store.EnsureRoot(); err != nil {
		return nil, err
	}
	logger.Debug(orchestrator.LogTag, "Writing captures under %s", store.Root())

	return orchestrator.NewBackuper(
		cfg,
		openSession,
		store,
		executor.NewSerialExecutor(),
		logger,
		time.Now,
		orchestrator.DefaultCommandTimeout,
	), nil
}
