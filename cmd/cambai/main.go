// Package main provides the CambAI CLI tool.
//
// Usage:
//
//	cambai [flags] <service> <command> [args]
//
// Services:
//
//	speech   - Text-to-speech jobs
//	sound    - Text-to-sound jobs
//	voice    - Text-to-voice jobs and the voice catalog
//	dub      - End-to-end dubbing jobs and the language catalogs
//	status   - One status check of a submitted task
//	batch    - Run many jobs from one file
//	config   - Configuration management
//
// Configuration:
//
//	The CLI stores configuration in ~/.giztoy/cambai/
//	Use 'cambai config' commands to manage contexts.
package main

import (
	"fmt"
	"os"

	"github.com/haivivi/cambai/cmd/cambai/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
