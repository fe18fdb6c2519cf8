// Package cambai provides a Go client for the CambAI job API.
//
// Every CambAI generation endpoint follows the same three steps: a create
// call returns a task_id, a status endpoint is polled until the task reaches
// a terminal status, and a result endpoint returns the artifact for the
// run_id reported on success.
//
// # Basic Usage
//
//	client := cambai.NewClient("your-api-key")
//
//	res, err := client.Speech.TextToSpeech(ctx, &cambai.SpeechRequest{
//	    Text:     "Hello from CambAI!",
//	    VoiceID:  cambai.LocatorOf(20303),
//	    Language: cambai.LocatorOf(1),
//	}, cambai.RunOptions{Output: cambai.OutputFileURL})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.AudioURL)
//
// # Step by Step
//
// The lifecycle steps are also available on their own:
//
//	task, err := client.Submit(ctx, cambai.JobDubbing, req)
//	outcome, err := client.Poll(ctx, task.JobType, task.ID, 10*time.Second, 10*time.Minute)
//	res, err := client.Retrieve(ctx, task, outcome.RunID, cambai.OutputFileURL)
//
// # Error Handling
//
// Terminal statuses and the client-side polling deadline are distinct errors:
//
//	switch {
//	case errors.Is(err, cambai.ErrInsufficientCredits):
//	    // Top up the account
//	case errors.Is(err, cambai.ErrPollDeadlineExceeded):
//	    // Retry with a larger RunOptions.Timeout
//	case errors.Is(err, cambai.ErrJobTimedOut), errors.Is(err, cambai.ErrJobFailed):
//	    // The server gave up on the job
//	}
//
// HTTP failures are returned as *Error and are never retried.
//
// For more information, see: https://docs.camb.ai/introduction
package cambai
