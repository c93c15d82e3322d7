package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/interview-agent/internal/config"
	"github.com/jonathan/interview-agent/internal/oracle"
	"github.com/jonathan/interview-agent/internal/server"
	"github.com/jonathan/interview-agent/internal/session"
)

var (
	serveConfigPath string
	servePort       int
	serveLibraryDir string
	serveAPIKey     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for creating interview sessions, submitting candidate answers, and reading summaries.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveLibraryDir, "library", "", "Directory of interview material files (optional)")
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := mergedConfig(cmd, serveConfigPath, cliOverrides{
		port:    servePort,
		library: serveLibraryDir,
		apiKey:  serveAPIKey,
	})
	if err != nil {
		return err
	}

	o, err := buildOracle(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = o.Close() }()

	engine := session.NewEngine(o)

	srv, err := server.New(server.Config{
		Port:       cfg.Port,
		LibraryDir: cfg.LibraryDir,
	}, engine)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// cliOverrides carries flag values shared by commands that build a
// config: flags set explicitly take priority over file values.
type cliOverrides struct {
	port    int
	library string
	apiKey  string
}

// mergedConfig loads an optional config file and applies CLI overrides.
func mergedConfig(cmd *cobra.Command, path string, overrides cliOverrides) (*config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	if cmd.Flags().Changed("port") || (cfg.Port == 0 && overrides.port != 0) {
		cfg.Port = overrides.port
	}
	if cmd.Flags().Changed("library") {
		cfg.LibraryDir = overrides.library
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = overrides.apiKey
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// buildOracle creates the Gemini-backed judgment oracle from config.
func buildOracle(cfg *config.Config) (*oracle.Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY or pass --api-key)")
	}

	oracleCfg := oracle.DefaultConfig()
	if cfg.AssessModel != "" {
		oracleCfg.Models[oracle.StageAssess] = cfg.AssessModel
	}
	if cfg.RespondModel != "" {
		oracleCfg.Models[oracle.StageRespond] = cfg.RespondModel
	}
	if cfg.Temperature > 0 {
		oracleCfg.Temperature = float32(cfg.Temperature)
	}

	return oracle.NewGemini(context.Background(), oracleCfg, cfg.APIKey)
}
