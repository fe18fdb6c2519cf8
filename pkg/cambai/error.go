package cambai

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Lifecycle errors. Each one is terminal and is never retried by the client.
// They are returned wrapped in a *JobError; match them with errors.Is.
var (
	// ErrMissingTaskID means the create response carried no task_id.
	ErrMissingTaskID = errors.New("cambai: no task_id in create response")

	// ErrMissingRunID means the server reported SUCCESS without a run_id.
	ErrMissingRunID = errors.New("cambai: no run_id in successful status response")

	// ErrJobFailed means the server reported the ERROR status.
	ErrJobFailed = errors.New("cambai: job failed with error status")

	// ErrJobTimedOut means the server reported the TIMEOUT status.
	ErrJobTimedOut = errors.New("cambai: job timed out on server")

	// ErrInsufficientCredits means the server reported PAYMENT_REQUIRED.
	ErrInsufficientCredits = errors.New("cambai: payment required, insufficient credits")

	// ErrPollDeadlineExceeded means no terminal status was observed before
	// the client-side polling timeout elapsed.
	ErrPollDeadlineExceeded = errors.New("cambai: job did not complete before polling timeout")
)

// Usage errors, detected before any network call.
var (
	// ErrUnknownJobType is returned for a JobType outside the known set.
	ErrUnknownJobType = errors.New("cambai: unknown job type")

	// ErrBinaryUnsupported is returned when raw bytes are requested for a job
	// type whose result is not an audio payload.
	ErrBinaryUnsupported = errors.New("cambai: raw_bytes output not supported for this job type")

	// ErrInvalidPolling is returned for a non-positive interval or timeout.
	ErrInvalidPolling = errors.New("cambai: invalid polling configuration")

	// ErrInvalidRequest is returned when a request cannot be turned into a
	// request body (wrong request type, non-numeric locator).
	ErrInvalidRequest = errors.New("cambai: invalid request")
)

// JobError describes a lifecycle failure of one task.
type JobError struct {
	// JobType is the job type of the task.
	JobType JobType

	// TaskID is the task identifier, empty when submission failed.
	TaskID ID

	// Status is the last status observed, empty if none was.
	Status TaskStatus

	// Elapsed is the time spent polling before the failure.
	Elapsed time.Duration

	// Err is one of the lifecycle sentinel errors.
	Err error
}

// Error implements the error interface.
func (e *JobError) Error() string {
	switch {
	case errors.Is(e.Err, ErrPollDeadlineExceeded):
		return fmt.Sprintf("%s job %s did not complete within %s (last status %q)",
			e.JobType, e.TaskID, e.Elapsed.Round(time.Millisecond), e.Status)
	case e.TaskID == "":
		return fmt.Sprintf("%s job: %v", e.JobType, e.Err)
	default:
		return fmt.Sprintf("%s job %s: %v", e.JobType, e.TaskID, e.Err)
	}
}

// Unwrap returns the sentinel error.
func (e *JobError) Unwrap() error {
	return e.Err
}

// Error represents a non-2xx response from the CambAI API.
type Error struct {
	// HTTPStatus is the HTTP status code.
	HTTPStatus int `json:"http_status"`

	// Message is the error detail reported by the server.
	Message string `json:"message"`

	// Method and Path identify the failed request.
	Method string `json:"method"`
	Path   string `json:"path"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("cambai: %s %s: %s (http=%d)", e.Method, e.Path, e.Message, e.HTTPStatus)
}

// IsUnauthorized returns true if the API key was rejected.
func (e *Error) IsUnauthorized() bool {
	return e.HTTPStatus == http.StatusUnauthorized || e.HTTPStatus == http.StatusForbidden
}

// IsPaymentRequired returns true if the account has no credits left.
func (e *Error) IsPaymentRequired() bool {
	return e.HTTPStatus == http.StatusPaymentRequired
}

// IsRateLimit returns true if this is a rate limit error.
func (e *Error) IsRateLimit() bool {
	return e.HTTPStatus == http.StatusTooManyRequests
}

// IsServerError returns true if this is a server-side error.
func (e *Error) IsServerError() bool {
	return e.HTTPStatus >= http.StatusInternalServerError
}

// AsError extracts *Error from an error.
//
// Example:
//
//	if e, ok := cambai.AsError(err); ok && e.IsUnauthorized() {
//	    // Ask for a new API key
//	}
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// AsJobError extracts *JobError from an error.
func AsJobError(err error) (*JobError, bool) {
	var e *JobError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
