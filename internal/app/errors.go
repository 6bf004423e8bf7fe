package app

import (
	"gratia-output/internal/shared/svcerrors"
)

// Startup errors
const (
	codeInvalidConfig = "CFG_1000"
	codeLockHeld      = "RUN_9000"
)

// errInvalidConfig returns an error for configuration that cannot be loaded or validated.
func errInvalidConfig(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidConfig, msg, cause)
}

// errLockHeld returns an error when another instance holds the process lock.
func errLockHeld(cause error) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeLockHeld, "another gratia-output run is in progress", cause)
}
