package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/haivivi/cambai/pkg/cambai"
	"github.com/haivivi/cambai/pkg/cli"
)

var voiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "Text-to-voice service and voice catalog",
}

var (
	voiceFlags jobFlags

	voiceText        string
	voiceDescription string
)

var voiceGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Design a voice from a description",
	Long: `Design a new voice from a text description and wait for the previews.

The result lists preview URLs; raw audio is not available for this job type.

Examples:
  cambai voice generate --text "Welcome to our app." \
    --description "A warm and friendly middle-aged woman with a slight British accent"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var req cambai.VoiceRequest
		if err := loadRequest(&req); err != nil {
			return err
		}
		if cmd.Flags().Changed("text") {
			req.Text = voiceText
		}
		if cmd.Flags().Changed("description") {
			req.VoiceDescription = voiceDescription
		}

		return runJob(cambai.JobTextToVoice, &req, &voiceFlags)
	},
}

var voiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available voices",
	RunE: func(cmd *cobra.Command, args []string) error {
		cctx, err := getContext()
		if err != nil {
			return err
		}
		ctx, cancel := signalContext()
		defer cancel()

		voices, err := createClient(cctx, nil).Voice.List(ctx)
		if err != nil {
			return describeError(err)
		}

		if outputJSON || jqQuery != "" {
			return outputResult(voices)
		}
		if len(voices) == 0 {
			cli.PrintInfo("No voices available")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME")
		for _, v := range voices {
			fmt.Fprintf(w, "%s\t%s\n", v.ID, v.Name)
		}
		return w.Flush()
	},
}

func init() {
	f := voiceGenerateCmd.Flags()
	f.StringVar(&voiceText, "text", "", "sample text spoken by the previews")
	f.StringVar(&voiceDescription, "description", "", "description of the voice")
	addJobFlags(voiceGenerateCmd, cambai.JobTextToVoice, &voiceFlags)

	voiceCmd.AddCommand(voiceGenerateCmd)
	voiceCmd.AddCommand(voiceListCmd)
}
