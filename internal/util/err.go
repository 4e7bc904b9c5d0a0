package util

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type BatchCmdError = int

// general
const (
	ErrorSuccess BatchCmdError = 0
	ErrorGeneric BatchCmdError = 1
)

// configuration and input
const (
	ErrorBadConfig     BatchCmdError = 2
	ErrorMissingScript BatchCmdError = 3
	ErrorGlobSyntax    BatchCmdError = 4
	ErrorNoInputs      BatchCmdError = 5
)

// filesystem
const (
	ErrorIo BatchCmdError = 6
)

// submission
const (
	ErrorSubmitParse  BatchCmdError = 7
	ErrorSubmitFailed BatchCmdError = 8
)

var kindNames = map[BatchCmdError]string{
	ErrorGeneric:       "Error",
	ErrorBadConfig:     "BadConfig",
	ErrorMissingScript: "MissingScript",
	ErrorGlobSyntax:    "GlobSyntax",
	ErrorNoInputs:      "NoInputs",
	ErrorIo:            "Io",
	ErrorSubmitParse:   "SubmitParse",
	ErrorSubmitFailed:  "SubmitFailed",
}

// KindName returns the failure kind printed in front of a diagnostic.
func KindName(code BatchCmdError) string {
	if name, ok := kindNames[code]; ok {
		return name
	}
	return kindNames[ErrorGeneric]
}

type BatchError struct {
	Code    BatchCmdError
	Message string
	Err     error
}

func (e *BatchError) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return KindName(e.Code)
	}
}

func (e *BatchError) Unwrap() error {
	return e.Err
}

func NewBatchErr(code BatchCmdError, msg string) *BatchError {
	return &BatchError{Code: code, Message: msg}
}

func NewBatchErrf(code BatchCmdError, format string, a ...any) *BatchError {
	return &BatchError{Code: code, Message: fmt.Sprintf(format, a...)}
}

func WrapBatchErr(code BatchCmdError, msg string, err error) *BatchError {
	return &BatchError{Code: code, Message: msg, Err: err}
}

// ErrorCode extracts the exit code carried by err. Errors that are not
// BatchErrors map to ErrorGeneric.
func ErrorCode(err error) BatchCmdError {
	if err == nil {
		return ErrorSuccess
	}
	var batchErr *BatchError
	if errors.As(err, &batchErr) {
		return batchErr.Code
	}
	return ErrorGeneric
}

// RunAndHandleExit executes cmd and terminates the process with the exit code
// of the returned error. Exactly one diagnostic line is written on failure.
func RunAndHandleExit(cmd *cobra.Command) {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	err := cmd.Execute()
	if err == nil {
		os.Exit(ErrorSuccess)
	}

	var batchErr *BatchError
	if !errors.As(err, &batchErr) {
		// cobra reports flag and argument problems as plain errors
		batchErr = WrapBatchErr(ErrorBadConfig, "invalid argument", err)
	}
	log.Errorf("%s: %v", KindName(batchErr.Code), batchErr)
	os.Exit(batchErr.Code)
}
