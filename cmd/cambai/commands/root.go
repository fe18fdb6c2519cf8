package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/haivivi/cambai/pkg/cli"
)

const appName = "cambai"

var (
	// Global flags
	cfgFile     string
	contextName string
	outputFile  string
	inputFile   string
	outputJSON  bool
	jqQuery     string
	verbose     bool

	// Global configuration
	globalConfig *cli.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cambai",
	Short: "CambAI API CLI tool",
	Long: `CambAI CLI - A command line interface for CambAI's job-based API.

Every job is submitted, polled until it finishes, then retrieved:
  - Text-to-speech (TTS)
  - Text-to-sound
  - Text-to-voice (voice design previews)
  - End-to-end dubbing

Configuration is stored in ~/.giztoy/cambai/ and supports multiple contexts,
similar to kubectl's context management.

Examples:
  # Set up a new context
  cambai config add-context myctx --api-key YOUR_API_KEY

  # Synthesize speech to a file
  cambai -c myctx speech tts --text "Hello" --voice-id 20303 --language 1 -o hello.flac

  # Print only the dubbed video URL
  cambai dub run -f dub.yaml --jq .outputVideoUrl
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "", "", "config file (default is ~/.giztoy/cambai/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&contextName, "context", "c", "", "context name to use")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "output file for audio (default: storage sink or working directory)")
	rootCmd.PersistentFlags().StringVarP(&inputFile, "file", "f", "", "input request file (YAML or JSON, - for stdin)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "output as JSON (for piping)")
	rootCmd.PersistentFlags().StringVar(&jqQuery, "jq", "", "jq expression applied to the result before printing")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(speechCmd)
	rootCmd.AddCommand(soundCmd)
	rootCmd.AddCommand(voiceCmd)
	rootCmd.AddCommand(dubCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(batchCmd)
}

func initConfig() error {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	var err error
	globalConfig, err = cli.LoadConfigWithPath(appName, cfgFile)
	if err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}

// getConfig returns the global configuration
func getConfig() *cli.Config {
	return globalConfig
}

// getContext returns the context configuration to use
func getContext() (*cli.Context, error) {
	cfg := getConfig()
	if cfg == nil {
		return nil, fmt.Errorf("configuration not initialized")
	}

	ctx, err := cfg.ResolveContext(contextName)
	if err != nil {
		if contextName == "" {
			return nil, fmt.Errorf("no context specified. Use -c flag or set a default context with 'cambai config use-context'")
		}
		return nil, err
	}
	if ctx.APIKey == "" {
		return nil, fmt.Errorf("context %q has no api key", ctx.Name)
	}

	return ctx, nil
}

// outputResult prints the result to stdout, filtered by --jq.
func outputResult(result any) error {
	format := cli.FormatYAML
	if outputJSON {
		format = cli.FormatJSON
	}
	if jqQuery != "" && !outputJSON {
		// Scalars selected by a query print bare, anything else as YAML.
		format = cli.FormatRaw
	}
	return cli.Output(result, cli.OutputOptions{
		Format: format,
		Query:  jqQuery,
	})
}
