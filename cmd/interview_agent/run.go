package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-agent/internal/caselib"
	"github.com/jonathan/interview-agent/internal/observability"
	"github.com/jonathan/interview-agent/internal/session"
	"github.com/jonathan/interview-agent/internal/types"
)

var (
	runConfigPath   string
	runCaseID       string
	runLibraryDir   string
	runMaterialPath string
	runCandidateID  string
	runAPIKey       string
	runVerbose      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive interview in the terminal",
	Long: `Starts one interview session and conducts it turn by turn on stdin/stdout.
The interview ends when the agent closes it or on EOF, and prints the competency summary.`,
	RunE: runInterview,
}

func init() {
	runCmd.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	runCmd.Flags().StringVar(&runCaseID, "case", "", "Material id from the library (requires --library)")
	runCmd.Flags().StringVar(&runLibraryDir, "library", "", "Directory of interview material files")
	runCmd.Flags().StringVarP(&runMaterialPath, "material", "m", "", "Path to a single material file (mutually exclusive with --case)")
	runCmd.Flags().StringVar(&runCandidateID, "candidate", "", "Candidate identifier recorded on the session")
	runCmd.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print per-turn scoring state")
	rootCmd.AddCommand(runCmd)
}

func runInterview(cmd *cobra.Command, _ []string) error {
	if runCaseID == "" && runMaterialPath == "" {
		return fmt.Errorf("either --case or --material is required")
	}
	if runCaseID != "" && runMaterialPath != "" {
		return fmt.Errorf("--case and --material are mutually exclusive")
	}

	cfg, err := mergedConfig(cmd, runConfigPath, cliOverrides{
		library: runLibraryDir,
		apiKey:  runAPIKey,
	})
	if err != nil {
		return err
	}
	if cfg.Verbose {
		runVerbose = true
	}

	spec, err := resolveSpec(cfg.LibraryDir)
	if err != nil {
		return err
	}

	o, err := buildOracle(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = o.Close() }()

	engine := session.NewEngine(o)
	printer := observability.NewPrinter(os.Stdout)
	ctx := context.Background()

	state, err := engine.Start(ctx, spec, runCandidateID)
	if err != nil {
		return fmt.Errorf("failed to start interview: %w", err)
	}

	fmt.Printf("=== %s ===\n\n", spec.Title)
	if runVerbose {
		printer.PrintSpec(spec)
		fmt.Println()
	}
	fmt.Printf("Interviewer: %s\n\n", state.LastInterviewerMessage())

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for !state.IsComplete {
		fmt.Print("You: ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			continue
		}

		state, err = engine.Respond(ctx, state.SessionID, answer)
		if err != nil {
			return fmt.Errorf("turn failed: %w", err)
		}

		fmt.Printf("\nInterviewer: %s\n\n", state.LastInterviewerMessage())
		if runVerbose {
			printer.PrintTurn(state)
			fmt.Println()
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	summary, err := engine.Summary(state.SessionID)
	if err != nil {
		return fmt.Errorf("failed to build summary: %w", err)
	}
	printer.PrintSummary(summary)
	return nil
}

// resolveSpec builds the interview spec from either a library id or a
// single material file.
func resolveSpec(libraryDir string) (*types.InterviewSpec, error) {
	if runMaterialPath != "" {
		material, err := caselib.LoadFile(runMaterialPath)
		if err != nil {
			return nil, err
		}
		return caselib.BuildSpec(material)
	}

	if libraryDir == "" {
		return nil, fmt.Errorf("--case requires --library (or library_dir in config)")
	}
	library, err := caselib.Load(libraryDir)
	if err != nil {
		return nil, err
	}
	return library.BuildSpec(runCaseID)
}
