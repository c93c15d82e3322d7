package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-agent/internal/caselib"
)

var casesLibraryDir string

var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "List the interview material library",
	Long:  `Loads and validates every material file in the library directory and prints one line per entry.`,
	RunE:  runCases,
}

func init() {
	casesCmd.Flags().StringVar(&casesLibraryDir, "library", "", "Directory of interview material files (required)")
	if err := casesCmd.MarkFlagRequired("library"); err != nil {
		panic(fmt.Sprintf("failed to mark library flag as required: %v", err))
	}
	rootCmd.AddCommand(casesCmd)
}

func runCases(_ *cobra.Command, _ []string) error {
	library, err := caselib.Load(casesLibraryDir)
	if err != nil {
		return err
	}

	entries := library.List()
	if len(entries) == 0 {
		fmt.Println("No material found.")
		return nil
	}

	for _, entry := range entries {
		fmt.Printf("%-24s %-12s %s\n", entry.ID, entry.InterviewType, entry.Title)
	}
	fmt.Printf("\n%d material file(s)\n", len(entries))
	return nil
}
