package commands

import (
	"github.com/spf13/cobra"

	"github.com/haivivi/cambai/pkg/cambai"
)

var statusCmd = &cobra.Command{
	Use:   "status <job> <task_id>",
	Short: "Check the status of a task once",
	Long: `Check the status of a submitted task once, without waiting.

<job> is one of tts, sound, voice, dub.

Examples:
  cambai status dub 7f3c2a
  cambai status tts 12345 --jq .status`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		jt, err := cambai.ParseJobType(args[0])
		if err != nil {
			return err
		}
		cctx, err := getContext()
		if err != nil {
			return err
		}
		ctx, cancel := signalContext()
		defer cancel()

		out, err := createClient(cctx, nil).Status(ctx, jt, cambai.ID(args[1]))
		if err != nil {
			return describeError(err)
		}
		return outputResult(out)
	},
}
