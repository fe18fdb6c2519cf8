package cambai

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Retrieve fetches the result of a successful task.
//
// For audio job types output selects the representation: OutputFileURL asks
// the server for a downloadable URL, OutputRawBytes downloads the encoded
// audio into a binary Artifact. Other job types always return their JSON
// result and reject OutputRawBytes with ErrBinaryUnsupported. Exactly one
// HTTP call is made; it is not retried.
func (c *Client) Retrieve(ctx context.Context, task *Task, runID ID, output OutputType) (*Result, error) {
	spec, err := lookupJob(task.JobType)
	if err != nil {
		return nil, err
	}
	output, err = resolveOutput(task.JobType, spec, output)
	if err != nil {
		return nil, err
	}

	res := &Result{
		TaskID:  task.ID,
		RunID:   runID,
		Status:  TaskStatusSuccess,
		JobType: task.JobType,
	}
	if spec.audio {
		res.OutputType = output
	}

	path := spec.resultPath(runID)
	log := c.logger().With("job", task.JobType, "task_id", task.ID, "run_id", runID, "output", output)

	if output == OutputRawBytes {
		data, header, err := c.http.requestRaw(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}
		mimeType := spec.mimeType
		if mimeType == "" {
			mimeType = header.Get("Content-Type")
		}
		res.Artifact = &Artifact{
			Kind:     ArtifactBinary,
			Data:     data,
			MIMEType: mimeType,
			Filename: spec.filename(task.ID),
			Size:     len(data),
		}
		log.Debug("cambai result downloaded", "bytes", len(data))
		return res, nil
	}

	var query url.Values
	if spec.audio {
		query = url.Values{"output_type": {string(OutputFileURL)}}
	}
	data, _, err := c.http.requestRaw(ctx, http.MethodGet, path, query)
	if err != nil {
		return nil, err
	}
	if err := spec.extract(data, res); err != nil {
		return nil, err
	}
	log.Debug("cambai result retrieved")
	return res, nil
}

// resolveOutput applies the job type's default output and rejects raw bytes
// for job types that have no audio payload.
func resolveOutput(jt JobType, spec *jobSpec, output OutputType) (OutputType, error) {
	switch output {
	case "":
		return jt.DefaultOutput(), nil
	case OutputFileURL:
		return output, nil
	case OutputRawBytes:
		if !spec.audio {
			return "", fmt.Errorf("%w: %s", ErrBinaryUnsupported, jt)
		}
		return output, nil
	default:
		return "", fmt.Errorf("%w: unknown output type %q", ErrInvalidRequest, string(output))
	}
}
