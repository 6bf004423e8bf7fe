package drainers

import (
	"fmt"

	"gratia-output/internal/shared/svcerrors"
)

// Drainer errors
const (
	codeInternalQueueListFailed   = "DRN_9000"
	codeInternalQueueLockFailed   = "DRN_9001"
	codeInternalQueueRemoveFailed = "DRN_9002"
	codeInternalQueueUnlockFailed = "DRN_9003"
)

// errInternalQueueListFailed returns an error when the queue cannot be enumerated.
func errInternalQueueListFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalErrorWithMessage(codeInternalQueueListFailed, "failed to list queue entries", cause)
}

func errInternalQueueLockFailed(name string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalErrorWithMessage(codeInternalQueueLockFailed, fmt.Sprintf("failed to lock queue entry %s", name), cause)
}

func errInternalQueueRemoveFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalErrorWithMessage(codeInternalQueueRemoveFailed, "failed to remove queue entries", cause)
}

func errInternalQueueUnlockFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalErrorWithMessage(codeInternalQueueUnlockFailed, "failed to unlock queue entries", cause)
}
