package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/haivivi/cambai/pkg/cambai"
	"github.com/haivivi/cambai/pkg/cli"
	"github.com/haivivi/cambai/pkg/storage"
)

// jobFlags holds the lifecycle flags shared by every job command.
type jobFlags struct {
	output   string
	interval time.Duration
	timeout  time.Duration
}

func addJobFlags(cmd *cobra.Command, jt cambai.JobType, f *jobFlags) {
	p := jt.Polling()
	cmd.Flags().DurationVar(&f.interval, "interval", 0,
		fmt.Sprintf("wait between status checks, %s to %s (default %s)", p.Interval.Min, p.Interval.Max, p.Interval.Default))
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0,
		fmt.Sprintf("polling budget, %s to %s (default %s)", p.Timeout.Min, p.Timeout.Max, p.Timeout.Default))
	if jt.SupportsRawBytes() {
		cmd.Flags().StringVar(&f.output, "output-type", "", "raw_bytes or file_url (default raw_bytes)")
	}
}

// runOptions validates the flags against the job type's polling ranges.
func (f *jobFlags) runOptions(jt cambai.JobType) (cambai.RunOptions, error) {
	if err := jt.CheckPolling(f.interval, f.timeout); err != nil {
		return cambai.RunOptions{}, err
	}
	return cambai.RunOptions{
		Output:   cambai.OutputType(f.output),
		Interval: f.interval,
		Timeout:  f.timeout,
	}, nil
}

// loadRequest fills req from the -f file, if one was given.
func loadRequest(req any) error {
	if inputFile == "" {
		return nil
	}
	return cli.LoadRequest(inputFile, req)
}

// createClient creates a CambAI API client from context configuration
func createClient(ctx *cli.Context, logger *slog.Logger) *cambai.Client {
	opts := []cambai.Option{cambai.WithLogger(logger)}

	if ctx.BaseURL != "" {
		opts = append(opts, cambai.WithBaseURL(ctx.BaseURL))
	}
	if ctx.Timeout > 0 {
		opts = append(opts, cambai.WithTimeout(ctx.Timeout.Duration()))
	}

	return cambai.NewClient(ctx.APIKey, opts...)
}

// signalContext returns a context cancelled on interrupt.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// runJob drives one lifecycle, stores a binary artifact and prints the result.
func runJob(jt cambai.JobType, req any, f *jobFlags) error {
	cctx, err := getContext()
	if err != nil {
		return err
	}
	opts, err := f.runOptions(jt)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	client := createClient(cctx, slog.Default())
	res, err := client.Run(ctx, jt, req, opts)
	if err != nil {
		return describeError(err)
	}

	if a := res.Artifact; a != nil && a.Kind == cambai.ArtifactBinary {
		loc, err := saveArtifact(ctx, cctx, a, outputFile)
		if err != nil {
			return err
		}
		a.Reference = loc
		cli.PrintSuccess("Saved %s to %s", cli.FormatBytes(int64(a.Size)), loc)
	}

	return outputResult(res)
}

// saveArtifact writes binary audio to path if set, else to the context's
// storage sink, else to the working directory under the suggested filename.
func saveArtifact(ctx context.Context, cctx *cli.Context, a *cambai.Artifact, path string) (string, error) {
	if path != "" {
		if err := cli.OutputBytes(a.Data, path); err != nil {
			return "", err
		}
		return filepath.Abs(path)
	}

	var sink storage.Sink
	if cctx.Storage != nil {
		s, err := cctx.Storage.Open(ctx)
		if err != nil {
			return "", fmt.Errorf("open storage: %w", err)
		}
		sink = s
	} else {
		s, err := storage.NewLocal(".")
		if err != nil {
			return "", err
		}
		sink = s
	}

	if ok, err := sink.Exists(ctx, a.Filename); err == nil && ok {
		cli.PrintWarning("Overwriting existing %s", a.Filename)
	}
	loc, err := sink.Put(ctx, a.Filename, a.MIMEType, bytes.NewReader(a.Data))
	if err != nil {
		return "", fmt.Errorf("store artifact: %w", err)
	}
	return loc, nil
}

// describeError adds a hint to lifecycle failures the user can act on.
func describeError(err error) error {
	if je, ok := cambai.AsJobError(err); ok && errors.Is(err, cambai.ErrPollDeadlineExceeded) {
		return fmt.Errorf("%w (check later with 'cambai status %s %s')", err, je.JobType, je.TaskID)
	}
	if e, ok := cambai.AsError(err); ok {
		switch {
		case e.IsUnauthorized():
			return fmt.Errorf("%w (check the context's api key)", err)
		case e.IsPaymentRequired():
			return fmt.Errorf("%w (top up credits on the CambAI dashboard)", err)
		case e.IsRateLimit():
			return fmt.Errorf("%w (rate limited, retry later)", err)
		}
	}
	return err
}

// parseLocators splits a comma separated list of catalog ids.
func parseLocators(s string) []cambai.Locator {
	var out []cambai.Locator
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, cambai.Locator(part))
		}
	}
	return out
}
