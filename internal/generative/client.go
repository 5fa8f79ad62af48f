package generative

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	openai "github.com/sashabaranov/go-openai"

	"github.com/finlearn/finlearn/internal/inference"
)

// TextGenerationClient is the contract for an external text-generation
// collaborator. Implementations must support a JSON-structured
// response mode when expectJSON is set.
type TextGenerationClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, expectJSON bool) (string, error)
}

// CollaboratorUnavailableError covers network failures, timeouts, and
// missing credentials from the text-generation collaborator. It is
// always recovered locally via the deterministic fallback and never
// surfaced to callers.
type CollaboratorUnavailableError struct {
	Reason string
	Err    error
}

func (e *CollaboratorUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("collaborator unavailable: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("collaborator unavailable: %s", e.Reason)
}

func (e *CollaboratorUnavailableError) Unwrap() error {
	return e.Err
}

// Config holds text-generation provider settings.
type Config struct {
	Provider    string // "openai" or "anthropic"
	APIKey      string // empty means the generative path is unconfigured
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration // per-call bound before falling back
}

// DefaultConfig returns settings tuned for structured analysis output.
func DefaultConfig() Config {
	return Config{
		Provider:    "openai",
		Model:       openai.GPT4oMini,
		Temperature: 0.3,
		MaxTokens:   1500,
		Timeout:     8 * time.Second,
	}
}

// NewClient constructs a provider client from config. Returns nil when
// no API key is configured: an unconfigured collaborator is a normal
// condition, and callers detect it up front instead of attempting a
// call.
func NewClient(cfg Config, logger *slog.Logger, inferenceLogger *inference.Logger) TextGenerationClient {
	if cfg.APIKey == "" {
		logger.Info("no text-generation credentials configured, generative path disabled")
		return nil
	}

	switch cfg.Provider {
	case "anthropic":
		logger.Info("using anthropic text-generation client", "model", cfg.Model)
		return &anthropicClient{client: anthropic.NewClient(option.WithAPIKey(cfg.APIKey)), cfg: cfg, inferenceLogger: inferenceLogger}
	default:
		logger.Info("using openai text-generation client", "model", cfg.Model)
		return &openaiClient{client: openai.NewClient(cfg.APIKey), cfg: cfg, inferenceLogger: inferenceLogger}
	}
}

type openaiClient struct {
	client          *openai.Client
	cfg             Config
	inferenceLogger *inference.Logger
}

func (c *openaiClient) Complete(ctx context.Context, systemPrompt, userPrompt string, expectJSON bool) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}

	if expectJSON {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(callCtx, req)
	latency := time.Since(start)

	tokens := 0
	if err == nil {
		tokens = resp.Usage.TotalTokens
	}
	c.inferenceLogger.LogCall(ctx, "openai", c.cfg.Model, operationFromContext(ctx), tokens, latency, err)

	if err != nil {
		return "", &CollaboratorUnavailableError{Reason: "openai call failed", Err: err}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &CollaboratorUnavailableError{Reason: fmt.Sprintf("empty response from model %s", c.cfg.Model)}
	}

	return resp.Choices[0].Message.Content, nil
}

type anthropicClient struct {
	client          anthropic.Client
	cfg             Config
	inferenceLogger *inference.Logger
}

func (c *anthropicClient) Complete(ctx context.Context, systemPrompt, userPrompt string, expectJSON bool) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	// Anthropic has no dedicated JSON mode; the instruction rides in
	// the system prompt instead.
	if expectJSON {
		systemPrompt += "\n\nRespond with a single raw JSON object and nothing else."
	}

	req := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.cfg.Model),
		MaxTokens:   int64(c.cfg.MaxTokens),
		Temperature: anthropic.Float(float64(c.cfg.Temperature)),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	start := time.Now()
	resp, err := c.client.Messages.New(callCtx, req)
	latency := time.Since(start)

	tokens := 0
	if err == nil {
		tokens = int(resp.Usage.InputTokens + resp.Usage.OutputTokens)
	}
	c.inferenceLogger.LogCall(ctx, "anthropic", c.cfg.Model, operationFromContext(ctx), tokens, latency, err)

	if err != nil {
		return "", &CollaboratorUnavailableError{Reason: "anthropic call failed", Err: err}
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == "text" {
			content = block.Text
			break
		}
	}

	if content == "" {
		return "", &CollaboratorUnavailableError{Reason: fmt.Sprintf("no text content from model %s", c.cfg.Model)}
	}

	return content, nil
}

type operationKey struct{}

// WithOperation tags the context with the logical operation name so
// provider clients can attribute inference logs.
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, operationKey{}, operation)
}

func operationFromContext(ctx context.Context) string {
	if op, ok := ctx.Value(operationKey{}).(string); ok {
		return op
	}
	return "unknown"
}
