package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/haivivi/cambai/pkg/cli"
	"github.com/haivivi/cambai/pkg/jsontime"
	"github.com/haivivi/cambai/pkg/storage"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long: `Manage CLI configuration and contexts.

Contexts allow you to manage multiple API configurations,
similar to kubectl's context management.

Configuration is stored in ~/.giztoy/cambai/config.yaml`,
}

var configAddContextCmd = &cobra.Command{
	Use:   "add-context <name>",
	Short: "Add a new context",
	Long: `Add a new context with the specified name.

Binary audio is written to --output-dir, or to an S3 bucket with --s3-bucket.

Example:
  cambai config add-context myctx --api-key YOUR_API_KEY
  cambai config add-context prod --api-key KEY --output-dir ~/cambai-audio
  cambai config add-context minio --api-key KEY --s3-bucket media --s3-endpoint http://localhost:9000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		flags := cmd.Flags()

		apiKey, err := flags.GetString("api-key")
		if err != nil {
			return fmt.Errorf("failed to read 'api-key' flag: %w", err)
		}
		if apiKey == "" {
			return fmt.Errorf("--api-key is required")
		}
		baseURL, err := flags.GetString("base-url")
		if err != nil {
			return fmt.Errorf("failed to read 'base-url' flag: %w", err)
		}
		timeout, err := flags.GetDuration("timeout")
		if err != nil {
			return fmt.Errorf("failed to read 'timeout' flag: %w", err)
		}

		ctx := &cli.Context{
			APIKey:  apiKey,
			BaseURL: baseURL,
			Timeout: jsontime.Duration(timeout),
		}

		dir, _ := flags.GetString("output-dir")
		bucket, _ := flags.GetString("s3-bucket")
		switch {
		case dir != "" && bucket != "":
			return fmt.Errorf("--output-dir and --s3-bucket are mutually exclusive")
		case dir != "":
			ctx.Storage = &cli.StorageConfig{Dir: dir}
		case bucket != "":
			s3cfg := &storage.S3Config{Bucket: bucket}
			s3cfg.Prefix, _ = flags.GetString("s3-prefix")
			s3cfg.Region, _ = flags.GetString("s3-region")
			s3cfg.Endpoint, _ = flags.GetString("s3-endpoint")
			s3cfg.AccessKey, _ = flags.GetString("s3-access-key")
			s3cfg.SecretKey, _ = flags.GetString("s3-secret-key")
			ctx.Storage = &cli.StorageConfig{S3: s3cfg}
		}

		cfg := getConfig()
		if err := cfg.AddContext(name, ctx); err != nil {
			return err
		}

		cli.PrintSuccess("Context %q added successfully", name)
		return nil
	},
}

var configDeleteContextCmd = &cobra.Command{
	Use:   "delete-context <name>",
	Short: "Delete a context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg := getConfig()
		if err := cfg.DeleteContext(name); err != nil {
			return err
		}

		cli.PrintSuccess("Context %q deleted", name)
		return nil
	},
}

var configUseContextCmd = &cobra.Command{
	Use:   "use-context <name>",
	Short: "Set the current context",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		cfg := getConfig()
		if err := cfg.UseContext(name); err != nil {
			return err
		}

		cli.PrintSuccess("Switched to context %q", name)
		return nil
	},
}

var configGetContextCmd = &cobra.Command{
	Use:   "get-context",
	Short: "Display the current context",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()

		if cfg.CurrentContext == "" {
			fmt.Println("No current context set")
			return nil
		}

		fmt.Println(cfg.CurrentContext)
		return nil
	},
}

var configListContextsCmd = &cobra.Command{
	Use:     "list-contexts",
	Aliases: []string{"get-contexts"},
	Short:   "List all contexts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()

		if len(cfg.Contexts) == 0 {
			fmt.Println("No contexts configured")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CURRENT\tNAME\tBASE_URL\tSTORAGE")

		for _, name := range cfg.ListContexts() {
			ctx := cfg.Contexts[name]
			current := ""
			if name == cfg.CurrentContext {
				current = "*"
			}
			baseURL := ctx.BaseURL
			if baseURL == "" {
				baseURL = "(default)"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", current, name, baseURL, ctx.Storage.Describe())
		}

		w.Flush()
		return nil
	},
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "View the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfig()

		fmt.Printf("Config file: %s\n", cfg.Path())
		fmt.Printf("Current context: %s\n", cfg.CurrentContext)
		fmt.Printf("Contexts: %d\n", len(cfg.Contexts))

		if len(cfg.Contexts) > 0 {
			fmt.Println("\nContext details:")
			for _, name := range cfg.ListContexts() {
				ctx := cfg.Contexts[name]
				fmt.Printf("\n  %s:\n", name)
				fmt.Printf("    API Key: %s\n", cli.MaskAPIKey(ctx.APIKey))
				if ctx.BaseURL != "" {
					fmt.Printf("    Base URL: %s\n", ctx.BaseURL)
				}
				if ctx.Timeout > 0 {
					fmt.Printf("    Timeout: %s\n", ctx.Timeout)
				}
				if ctx.Storage != nil {
					fmt.Printf("    Storage: %s\n", ctx.Storage.Describe())
				}
			}
		}

		return nil
	},
}

func init() {
	f := configAddContextCmd.Flags()
	f.String("api-key", "", "API key (required)")
	f.String("base-url", "", "API base URL")
	f.Duration("timeout", 0, "Per-request HTTP timeout")
	f.String("output-dir", "", "Directory for binary audio artifacts")
	f.String("s3-bucket", "", "S3 bucket for binary audio artifacts")
	f.String("s3-prefix", "", "S3 key prefix")
	f.String("s3-region", "", "S3 region")
	f.String("s3-endpoint", "", "S3-compatible endpoint (MinIO, R2)")
	f.String("s3-access-key", "", "S3 access key (default: AWS credential chain)")
	f.String("s3-secret-key", "", "S3 secret key")

	configCmd.AddCommand(configAddContextCmd)
	configCmd.AddCommand(configDeleteContextCmd)
	configCmd.AddCommand(configUseContextCmd)
	configCmd.AddCommand(configGetContextCmd)
	configCmd.AddCommand(configListContextsCmd)
	configCmd.AddCommand(configViewCmd)
}
