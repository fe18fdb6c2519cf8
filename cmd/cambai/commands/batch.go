package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/haivivi/cambai/pkg/cambai"
	"github.com/haivivi/cambai/pkg/cli"
	"github.com/haivivi/cambai/pkg/jsontime"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run many jobs from one file",
	Long: `Run independent jobs concurrently and report one outcome per job.

Each job runs its own submit, poll and retrieve lifecycle; a failing job does
not affect the others. Binary audio is stored in the context's storage, or in
the working directory. Outcomes are printed in file order.

Example batch file (jobs.yaml):
  jobs:
    - name: greeting
      type: tts
      output_type: file_url
      request:
        text: Hello there
        voice_id: 20303
        language: 1
    - name: waves
      type: sound
      interval: 2s
      timeout: 60
      request:
        prompt: ocean waves crashing
        duration: 5

Examples:
  cambai batch -f jobs.yaml --parallel 4 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if inputFile == "" {
			return fmt.Errorf("batch file is required, use -f flag")
		}
		if batchParallel < 1 {
			return fmt.Errorf("--parallel must be at least 1")
		}

		var file batchFile
		if err := cli.LoadRequest(inputFile, &file); err != nil {
			return err
		}
		if len(file.Jobs) == 0 {
			return fmt.Errorf("%s has no jobs", inputFile)
		}

		cctx, err := getContext()
		if err != nil {
			return err
		}
		ctx, cancel := signalContext()
		defer cancel()

		outcomes := runBatch(ctx, cctx, file.Jobs, batchParallel)

		failed := 0
		for _, o := range outcomes {
			if o.Error != "" {
				failed++
			}
		}
		if err := outputResult(outcomes); err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d jobs failed", failed, len(outcomes))
		}
		return nil
	},
}

var batchParallel int

// batchFile is the document read by the batch command.
type batchFile struct {
	Jobs []batchJob `json:"jobs" yaml:"jobs"`
}

// batchJob is one job of a batch file. Request holds the request fields of
// the job type and is decoded once the type is known.
type batchJob struct {
	Name       string            `json:"name" yaml:"name"`
	Type       string            `json:"type" yaml:"type"`
	OutputType string            `json:"output_type,omitempty" yaml:"output_type,omitempty"`
	Interval   jsontime.Duration `json:"interval,omitempty" yaml:"interval,omitempty"`
	Timeout    jsontime.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	Request    map[string]any    `json:"request" yaml:"request"`
}

// batchOutcome is the report of one job. Exactly one of Result and Error is
// set.
type batchOutcome struct {
	Name      string         `json:"name"`
	Lifecycle string         `json:"lifecycle"`
	Result    *cambai.Result `json:"result,omitempty"`
	Error     string         `json:"error,omitempty"`

	// Terminal is set when the job failed with a lifecycle status (or the
	// polling deadline) rather than a transport or usage error.
	Terminal bool   `json:"terminal,omitempty"`
	Elapsed  string `json:"elapsed"`
}

// prepare resolves the job type, the typed request and the run options.
func (j *batchJob) prepare() (cambai.JobType, any, cambai.RunOptions, error) {
	jt, err := cambai.ParseJobType(j.Type)
	if err != nil {
		return "", nil, cambai.RunOptions{}, err
	}
	opts := cambai.RunOptions{
		Output:   cambai.OutputType(j.OutputType),
		Interval: j.Interval.Duration(),
		Timeout:  j.Timeout.Duration(),
	}
	if err := jt.CheckPolling(opts.Interval, opts.Timeout); err != nil {
		return "", nil, cambai.RunOptions{}, err
	}

	req, err := jt.NewRequest()
	if err != nil {
		return "", nil, cambai.RunOptions{}, err
	}
	data, err := json.Marshal(j.Request)
	if err != nil {
		return "", nil, cambai.RunOptions{}, fmt.Errorf("encode request: %w", err)
	}
	if err := json.Unmarshal(data, req); err != nil {
		return "", nil, cambai.RunOptions{}, fmt.Errorf("decode %s request: %w", jt, err)
	}
	return jt, req, opts, nil
}

// runBatch drives every job in its own goroutine, at most parallel at a
// time, and returns the outcomes in job order. A failed job never stops the
// others.
func runBatch(ctx context.Context, cctx *cli.Context, jobs []batchJob, parallel int) []batchOutcome {
	outcomes := make([]batchOutcome, len(jobs))

	var g errgroup.Group
	g.SetLimit(parallel)
	for i := range jobs {
		g.Go(func() error {
			outcomes[i] = runBatchJob(ctx, cctx, i, &jobs[i])
			return nil
		})
	}
	g.Wait()
	return outcomes
}

func runBatchJob(ctx context.Context, cctx *cli.Context, index int, job *batchJob) batchOutcome {
	name := job.Name
	if name == "" {
		name = fmt.Sprintf("job-%d", index+1)
	}
	out := batchOutcome{Name: name, Lifecycle: uuid.NewString()}
	log := slog.Default().With("lifecycle", out.Lifecycle, "name", name)
	start := time.Now()

	fail := func(err error) batchOutcome {
		out.Error = err.Error()
		out.Terminal = cambai.IsTerminalError(err)
		out.Elapsed = cli.FormatDuration(time.Since(start))
		log.Warn("cambai batch job failed", "error", err, "elapsed", out.Elapsed)
		return out
	}

	jt, req, opts, err := job.prepare()
	if err != nil {
		return fail(err)
	}

	res, err := createClient(cctx, log).Run(ctx, jt, req, opts)
	if err != nil {
		return fail(err)
	}
	if a := res.Artifact; a != nil && a.Kind == cambai.ArtifactBinary {
		loc, err := saveArtifact(ctx, cctx, a, "")
		if err != nil {
			return fail(err)
		}
		a.Reference = loc
	}

	out.Result = res
	out.Elapsed = cli.FormatDuration(time.Since(start))
	log.Info("cambai batch job done", "job", jt, "task_id", res.TaskID, "elapsed", out.Elapsed)
	return out
}

func init() {
	batchCmd.Flags().IntVar(&batchParallel, "parallel", 4, "maximum number of jobs running at once")
}
