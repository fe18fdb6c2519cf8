package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/haivivi/cambai/pkg/cambai"
	"github.com/haivivi/cambai/pkg/cli"
)

var dubCmd = &cobra.Command{
	Use:   "dub",
	Short: "End-to-end dubbing service and language catalogs",
	Long: `End-to-end dubbing service.

Example request file (dub.yaml):
  video_url: https://www.youtube.com/watch?v=example
  source_language: 1
  target_languages: [76, 54]`,
}

var (
	dubFlags jobFlags

	dubVideoURL string
	dubSource   string
	dubTargets  string

	dubListTarget bool
)

var dubRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Dub a video into other languages",
	Long: `Dub a video and wait for the dubbed video, audio and transcript URLs.

Dubbing can take many minutes; the default polling budget is 10 minutes.

Examples:
  cambai dub run --video-url https://example.com/v.mp4 --source-language 1 --target-languages 76,54
  cambai dub run -f dub.yaml --timeout 30m --jq .outputVideoUrl`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var req cambai.DubbingRequest
		if err := loadRequest(&req); err != nil {
			return err
		}
		if cmd.Flags().Changed("video-url") {
			req.VideoURL = dubVideoURL
		}
		if cmd.Flags().Changed("source-language") {
			req.SourceLanguage = cambai.Locator(dubSource)
		}
		if cmd.Flags().Changed("target-languages") {
			req.TargetLanguages = parseLocators(dubTargets)
		}

		return runJob(cambai.JobDubbing, &req, &dubFlags)
	},
}

var dubLanguagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List dubbing languages",
	Long: `List the languages media can be dubbed from, or with --target, into.

The ids are used for --language, --source-language and --target-languages.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cctx, err := getContext()
		if err != nil {
			return err
		}
		ctx, cancel := signalContext()
		defer cancel()

		client := createClient(cctx, nil)
		list := client.Dubbing.SourceLanguages
		if dubListTarget {
			list = client.Dubbing.TargetLanguages
		}
		langs, err := list(ctx)
		if err != nil {
			return describeError(err)
		}

		if outputJSON || jqQuery != "" {
			return outputResult(langs)
		}
		if len(langs) == 0 {
			cli.PrintInfo("No languages available")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tLANGUAGE")
		for _, l := range langs {
			fmt.Fprintf(w, "%s\t%s\n", l.ID, l.DisplayName())
		}
		return w.Flush()
	},
}

func init() {
	f := dubRunCmd.Flags()
	f.StringVar(&dubVideoURL, "video-url", "", "URL of the media to dub")
	f.StringVar(&dubSource, "source-language", "", "source language id")
	f.StringVar(&dubTargets, "target-languages", "", "comma separated target language ids")
	addJobFlags(dubRunCmd, cambai.JobDubbing, &dubFlags)

	dubLanguagesCmd.Flags().BoolVar(&dubListTarget, "target", false, "list target languages instead of source languages")

	dubCmd.AddCommand(dubRunCmd)
	dubCmd.AddCommand(dubLanguagesCmd)
}
