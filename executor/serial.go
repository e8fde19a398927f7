package executor

import "github.com/cloudfoundry/netbackup/orchestrator"

func NewSerialExecutor() SerialExecutor {
	return SerialExecutor{}
}

// SerialExecutor runs every executable one after another, batch by batch.
// A failed device or group must not keep the rest of the network from being
// backed up, so it keeps going after a failure and reports every error, in
// execution order, once the sweep is over. Only one device session is ever
// open at a time.
type SerialExecutor struct {
}

func (s SerialExecutor) Run(executablesList [][]orchestrator.Executable) []error {
	var errs []error
	for _, executables := range executablesList {
		for _, executable := range executables {
			if err := executable.Execute(); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errs
}

var _ orchestrator.Executor = SerialExecutor{}
