// Package main provides the entry point for the interview agent CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "interview_agent",
	Short: "Adaptive Interview Agent",
	Long:  "Interview Agent runs adaptive, competency-scored interviews (case, first-round screening, technical) against a model-backed interviewer, via REST API or interactive terminal.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
