package cambai

import (
	"context"
	"fmt"
)

// Run drives one complete job lifecycle: submit, poll until a terminal
// status, then retrieve the result.
//
// The first failure ends the lifecycle and is returned; no partial result is
// returned with it. The result is retrieved exactly once, after SUCCESS.
//
// Example:
//
//	res, err := client.Run(ctx, cambai.JobTextToSpeech, &cambai.SpeechRequest{
//	    Text:     "Hello",
//	    VoiceID:  cambai.LocatorOf(20303),
//	    Language: cambai.LocatorOf(1),
//	}, cambai.RunOptions{Output: cambai.OutputFileURL})
func (c *Client) Run(ctx context.Context, jobType JobType, req any, opts RunOptions) (*Result, error) {
	spec, err := lookupJob(jobType)
	if err != nil {
		return nil, err
	}

	// Local checks run before the submit call.
	output, err := resolveOutput(jobType, spec, opts.Output)
	if err != nil {
		return nil, err
	}
	interval := opts.Interval
	if interval == 0 {
		interval = spec.polling.Interval.Default
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = spec.polling.Timeout.Default
	}
	if interval < 0 || timeout < 0 {
		return nil, fmt.Errorf("%w: interval=%s timeout=%s", ErrInvalidPolling, interval, timeout)
	}

	task, err := c.Submit(ctx, jobType, req)
	if err != nil {
		return nil, err
	}

	outcome, err := c.Poll(ctx, jobType, task.ID, interval, timeout)
	if err != nil {
		return nil, err
	}

	return c.Retrieve(ctx, task, outcome.RunID, output)
}
