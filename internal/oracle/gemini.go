package oracle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/jonathan/interview-agent/internal/prompts"
)

// Stage identifies which judgment a model serves. The two stages can
// run on different models: assessment needs reasoning depth, response
// needs conversational quality at lower latency.
type Stage string

// Oracle stages
const (
	StageAssess  Stage = "assess"
	StageRespond Stage = "respond"
)

// Config holds the model selection and call policy for the Gemini
// oracle.
type Config struct {
	Models      map[Stage]string
	Temperature float32
	// Timeout bounds each individual model call.
	Timeout time.Duration
	// MaxAttempts bounds retries on transport errors. Parse failures
	// are not retried; they degrade.
	MaxAttempts int
}

// DefaultConfig returns the standard model assignment.
func DefaultConfig() *Config {
	return &Config{
		Models: map[Stage]string{
			StageAssess:  "gemini-2.5-pro",
			StageRespond: "gemini-2.5-flash",
		},
		Temperature: 0.3,
		Timeout:     45 * time.Second,
		MaxAttempts: 2,
	}
}

// Model returns the model for a stage, falling back to any configured
// model when the stage has none.
func (c *Config) Model(stage Stage) string {
	if model, ok := c.Models[stage]; ok {
		return model
	}
	for _, model := range c.Models {
		return model
	}
	return ""
}

// Gemini implements Oracle on the Gemini API.
type Gemini struct {
	client *genai.Client
	config *Config
}

// NewGemini creates a Gemini-backed oracle.
func NewGemini(ctx context.Context, config *Config, apiKey string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{client: client, config: config}, nil
}

// Assess implements Oracle.
func (g *Gemini) Assess(ctx context.Context, req AssessmentRequest) (*Assessment, error) {
	prompt, err := prompts.BuildAssessment(req.Spec, req.Scores, req.Transcript, req.Phase)
	if err != nil {
		return nil, fmt.Errorf("failed to build assessment prompt: %w", err)
	}

	text, err := g.generateJSON(ctx, StageAssess, prompt)
	if err != nil {
		return nil, err
	}
	return ParseAssessment(text, req.Spec), nil
}

// Respond implements Oracle.
func (g *Gemini) Respond(ctx context.Context, req ResponseRequest) (*Response, error) {
	prompt, err := prompts.BuildResponse(req.Spec, req.Transcript, req.Directive, req.Constraint, req.Phase)
	if err != nil {
		return nil, fmt.Errorf("failed to build response prompt: %w", err)
	}

	text, err := g.generateJSON(ctx, StageRespond, prompt)
	if err != nil {
		return nil, err
	}
	return ParseResponse(text), nil
}

// Close releases resources held by the underlying client.
func (g *Gemini) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

func (g *Gemini) generateJSON(ctx context.Context, stage Stage, prompt string) (string, error) {
	modelName := g.config.Model(stage)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for stage %s", stage)
	}

	model := g.client.GenerativeModel(modelName)
	model.SetTemperature(g.config.Temperature)
	model.ResponseMIMEType = "application/json"

	attempts := g.config.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}

		callCtx := ctx
		var cancel context.CancelFunc
		if g.config.Timeout > 0 {
			callCtx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		}

		resp, err := model.GenerateContent(callCtx, genai.Text(prompt))
		if cancel != nil {
			cancel()
		}
		if err != nil {
			lastErr = err
			continue
		}

		text, err := extractText(resp)
		if err != nil {
			lastErr = err
			continue
		}
		return text, nil
	}

	return "", fmt.Errorf("%s stage failed after %d attempts: %w", stage, attempts, lastErr)
}

// extractText pulls the text parts out of a Gemini response.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var out string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out += string(text)
		}
	}
	if out == "" {
		return "", fmt.Errorf("no text parts in response")
	}
	return out, nil
}

var _ Oracle = (*Gemini)(nil)
