package dispatchers

import (
	"gratia-output/internal/shared/svcerrors"
)

// Dispatcher errors
const (
	codeInternalHandshakeFailed         = "DSP_9000"
	codeInternalSearchOutstandingFailed = "DSP_9001"
	codeInternalSubmitFailed            = "DSP_9002"
	codeInternalFinalizeFailed          = "DSP_9003"
)

func errInternalHandshakeFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalErrorWithMessage(codeInternalHandshakeFailed, "sink handshake failed", cause)
}

func errInternalSearchOutstandingFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalErrorWithMessage(codeInternalSearchOutstandingFailed, "failed to search outstanding records", cause)
}

func errInternalSubmitFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalErrorWithMessage(codeInternalSubmitFailed, "failed to submit usage record", cause)
}

func errInternalFinalizeFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalErrorWithMessage(codeInternalFinalizeFailed, "failed to finalize bundle", cause)
}
