package cambai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Submit creates a task of the given job type and returns it.
//
// req must be the request type of the job type (*SpeechRequest for
// JobTextToSpeech and so on). Exactly one HTTP call is made. A create
// response without task_id fails with ErrMissingTaskID.
func (c *Client) Submit(ctx context.Context, jobType JobType, req any) (*Task, error) {
	spec, err := lookupJob(jobType)
	if err != nil {
		return nil, err
	}

	body, err := spec.build(req)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", jobType, err)
	}

	var resp struct {
		TaskID ID `json:"task_id"`
	}
	if err := c.http.requestJSON(ctx, http.MethodPost, spec.createPath(), nil, body, &resp); err != nil {
		return nil, err
	}
	if resp.TaskID == "" {
		return nil, &JobError{JobType: jobType, Err: ErrMissingTaskID}
	}

	c.logger().Debug("cambai task created", "job", jobType, "task_id", resp.TaskID)
	return &Task{ID: resp.TaskID, JobType: jobType}, nil
}

// Status performs one status check of a task without waiting.
func (c *Client) Status(ctx context.Context, jobType JobType, taskID ID) (*PollOutcome, error) {
	spec, err := lookupJob(jobType)
	if err != nil {
		return nil, err
	}
	return c.status(ctx, spec, taskID)
}

func (c *Client) status(ctx context.Context, spec *jobSpec, taskID ID) (*PollOutcome, error) {
	var resp struct {
		Status TaskStatus `json:"status"`
		RunID  ID         `json:"run_id"`
	}
	if err := c.http.requestJSON(ctx, http.MethodGet, spec.statusPath(taskID), nil, nil, &resp); err != nil {
		return nil, err
	}
	out := &PollOutcome{Status: resp.Status}
	if resp.Status == TaskStatusSuccess {
		out.RunID = resp.RunID
	}
	return out, nil
}

// Poll waits for a task to reach a terminal status.
//
// The first check is made immediately, then one every interval, until a
// terminal status is observed or timeout has elapsed since the call. Only a
// SUCCESS outcome is returned; the other terminal statuses and the client
// deadline are reported as a *JobError wrapping ErrJobFailed, ErrJobTimedOut,
// ErrInsufficientCredits or ErrPollDeadlineExceeded.
//
// Cancelling ctx aborts the wait with ctx.Err().
func (c *Client) Poll(ctx context.Context, jobType JobType, taskID ID, interval, timeout time.Duration) (*PollOutcome, error) {
	spec, err := lookupJob(jobType)
	if err != nil {
		return nil, err
	}
	if interval <= 0 || timeout <= 0 {
		return nil, fmt.Errorf("%w: interval=%s timeout=%s", ErrInvalidPolling, interval, timeout)
	}

	log := c.logger().With("job", jobType, "task_id", taskID)
	start := time.Now()
	deadline := start.Add(timeout)

	var last TaskStatus
	fail := func(sentinel error) error {
		return &JobError{
			JobType: jobType,
			TaskID:  taskID,
			Status:  last,
			Elapsed: time.Since(start),
			Err:     sentinel,
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		out, err := c.status(ctx, spec, taskID)
		if err != nil {
			return nil, err
		}
		last = out.Status
		log.Debug("cambai task status", "attempt", attempt, "status", out.Status, "elapsed", time.Since(start))

		switch out.Status {
		case TaskStatusSuccess:
			if out.RunID == "" {
				return nil, fail(ErrMissingRunID)
			}
			return out, nil
		case TaskStatusError:
			return nil, fail(ErrJobFailed)
		case TaskStatusTimeout:
			return nil, fail(ErrJobTimedOut)
		case TaskStatusPaymentRequired:
			return nil, fail(ErrInsufficientCredits)
		}

		if !time.Now().Before(deadline) {
			return nil, fail(ErrPollDeadlineExceeded)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		if !time.Now().Before(deadline) {
			return nil, fail(ErrPollDeadlineExceeded)
		}
	}
}

// IsTerminalError reports whether err is one of the lifecycle errors raised
// by the server status or the polling deadline, as opposed to a transport or
// usage error.
func IsTerminalError(err error) bool {
	for _, target := range []error{
		ErrMissingTaskID, ErrMissingRunID, ErrJobFailed, ErrJobTimedOut,
		ErrInsufficientCredits, ErrPollDeadlineExceeded,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
