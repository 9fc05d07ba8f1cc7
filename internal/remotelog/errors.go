package remotelog

import "fmt"

// ProviderError represents a failed interaction with the remote log
// provider.
//
// The response body is carried verbatim because provider errors are
// only diagnosable from it (quota, scope, revoked token); status codes
// alone are not enough.
type ProviderError struct {
	// Code identifies the failed operation category.
	Code ProviderErrorCode

	// Message is a human-readable description.
	Message string

	// StatusCode is the HTTP status, 0 for transport-level failures.
	StatusCode int

	// Body is the raw response body, empty for transport failures.
	Body string
}

// ProviderErrorCode categorizes provider errors.
type ProviderErrorCode string

const (
	// ErrCodeSearchFailed indicates the log search request failed.
	// Fatal to the reconciliation attempt that issued it.
	ErrCodeSearchFailed ProviderErrorCode = "SEARCH_FAILED"

	// ErrCodeCreateFailed indicates log provisioning failed.
	// Fatal: callers must not append against an unconfirmed log id.
	ErrCodeCreateFailed ProviderErrorCode = "CREATE_FAILED"

	// ErrCodeAppendFailed indicates a row append failed.
	// Non-fatal: the dispatcher logs and moves on.
	ErrCodeAppendFailed ProviderErrorCode = "APPEND_FAILED"

	// ErrCodeLoadFailed indicates reading the row range failed.
	ErrCodeLoadFailed ProviderErrorCode = "LOAD_FAILED"

	// ErrCodeNoLogID indicates an append was attempted before the log
	// id was resolved. A precondition failure, distinct from network
	// failure, with the same non-fatal handling.
	ErrCodeNoLogID ProviderErrorCode = "NO_LOG_ID"
)

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status=%d, body=%s)", e.Code, e.Message, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewNoLogIDError returns the precondition error for appends issued
// before locate-or-create has resolved a log id.
func NewNoLogIDError() *ProviderError {
	return &ProviderError{
		Code:    ErrCodeNoLogID,
		Message: "remote log id not resolved; run reconciliation first",
	}
}
