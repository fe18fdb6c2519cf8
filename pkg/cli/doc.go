// Package cli provides the configuration and output helpers of the cambai
// command-line tool.
//
// This package includes:
//   - Configuration management (kubectl-style contexts)
//   - Output formatting (JSON, YAML, raw) with optional jq filtering
//   - Request file loading (YAML/JSON)
//
// Configuration is stored in ~/.giztoy/<app>/config.yaml.
//
// Example usage:
//
//	cfg, err := cli.LoadConfig("cambai")
//
//	ctx, err := cfg.ResolveContext("")
//
//	cli.Output(result, cli.OutputOptions{
//	    Format: cli.FormatJSON,
//	    Query:  ".audioUrl",
//	})
package cli
