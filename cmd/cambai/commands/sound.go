package commands

import (
	"github.com/spf13/cobra"

	"github.com/haivivi/cambai/pkg/cambai"
)

var soundCmd = &cobra.Command{
	Use:   "sound",
	Short: "Text-to-sound service",
}

var (
	soundFlags jobFlags

	soundPrompt   string
	soundDuration float64
)

var soundGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a sound effect from a prompt",
	Long: `Generate a sound effect from a text prompt and wait for the audio.

Examples:
  cambai sound generate --prompt "ocean waves crashing" --duration 5 -o waves.flac
  cambai sound generate --prompt "thunder" --output-type file_url --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var req cambai.SoundRequest
		if err := loadRequest(&req); err != nil {
			return err
		}
		if cmd.Flags().Changed("prompt") {
			req.Prompt = soundPrompt
		}
		if cmd.Flags().Changed("duration") {
			req.Duration = soundDuration
		}

		return runJob(cambai.JobTextToSound, &req, &soundFlags)
	},
}

func init() {
	f := soundGenerateCmd.Flags()
	f.StringVar(&soundPrompt, "prompt", "", "description of the sound")
	f.Float64Var(&soundDuration, "duration", 0, "length in seconds")
	addJobFlags(soundGenerateCmd, cambai.JobTextToSound, &soundFlags)

	soundCmd.AddCommand(soundGenerateCmd)
}
