package orchestrator

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type customError struct {
	error
}

type ConfigurationError customError
type AuthFailure customError
type ConnectionFailure customError
type OtherFailure customError

func wrap(cause error, message string) error {
	if cause == nil {
		return errors.New(message)
	}
	return errors.Wrap(cause, message)
}

func NewConfigurationError(cause error, message string) ConfigurationError {
	return ConfigurationError{wrap(cause, message)}
}

func NewAuthFailure(cause error, message string) AuthFailure {
	return AuthFailure{wrap(cause, message)}
}

func NewConnectionFailure(cause error, message string) ConnectionFailure {
	return ConnectionFailure{wrap(cause, message)}
}

func NewOtherFailure(cause error, message string) OtherFailure {
	return OtherFailure{wrap(cause, message)}
}

type Outcome int

const (
	Success Outcome = iota
	AuthFailureOutcome
	ConnectionFailureOutcome
	OtherFailureOutcome
	ConfigurationErrorOutcome
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "Success"
	case AuthFailureOutcome:
		return "AuthFailure"
	case ConnectionFailureOutcome:
		return "ConnectionFailure"
	case ConfigurationErrorOutcome:
		return "ConfigurationError"
	default:
		return "OtherFailure"
	}
}

// OutcomeOf classifies a device error. Untyped errors are OtherFailure.
func OutcomeOf(err error) Outcome {
	switch err.(type) {
	case nil:
		return Success
	case AuthFailure:
		return AuthFailureOutcome
	case ConnectionFailure:
		return ConnectionFailureOutcome
	case ConfigurationError:
		return ConfigurationErrorOutcome
	default:
		return OtherFailureOutcome
	}
}

// ConvertErrors turns the failures collected during a sweep into one error,
// or nil when nothing failed.
func ConvertErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return Error(errs)
}

// Error is the list of failed backups of a sweep, in the order they ran.
type Error []error

func (err Error) Error() string {
	return err.PrettyError(false)
}

// PrettyError numbers every failure. With includeStacktrace each failure is
// printed with the stack recorded by github.com/pkg/errors.
func (err Error) PrettyError(includeStacktrace bool) string {
	if len(err) == 0 {
		return ""
	}

	noun := "backup"
	if len(err) > 1 {
		noun = "backups"
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "%d %s failed:", len(err), noun)
	for index, failure := range err {
		if includeStacktrace {
			fmt.Fprintf(&builder, "\n  %d. %+v", index+1, failure)
		} else {
			fmt.Fprintf(&builder, "\n  %d. %s", index+1, failure)
		}
	}
	return builder.String()
}
