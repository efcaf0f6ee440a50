package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/revrost/go-openrouter"

	"github.com/claude/planfit/internal/models"
)

// Config carries the gateway settings. Chat and media are separate vendors
// with separate credentials: ChatAPIKey authenticates the OpenRouter chat
// client, MediaAPIKey is sent to MediaBaseURL for image and speech requests.
// PlanModels and TextModels are ordered fallback chains: models are tried in
// sequence and the first success short-circuits.
type Config struct {
	ChatAPIKey   string
	MediaAPIKey  string
	MediaBaseURL string
	PlanModels   []string
	TextModels   []string
	ImageModel   string
	ImageSize    string
	SpeechModel  string
	Voice        string
}

// chatCompleter abstracts the chat-completion client so tests can stub the
// vendor away.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openrouter.ChatCompletionRequest) (openrouter.ChatCompletionResponse, error)
}

// Client is the AI gateway. Chat completions go through OpenRouter; image
// and speech requests hit the vendor REST endpoints directly.
type Client struct {
	chat chatCompleter
	http *http.Client
	cfg  Config
	log  *slog.Logger
}

// New creates a gateway client. The credentials are held in memory only and
// never logged.
func New(cfg Config, log *slog.Logger) *Client {
	return &Client{
		chat: openrouter.NewClient(cfg.ChatAPIKey),
		http: &http.Client{Timeout: 120 * time.Second},
		cfg:  cfg,
		log:  log,
	}
}

// planWire is the schema-constrained completion payload.
type planWire struct {
	Summary models.PlanSummary `json:"summary"`
	Blocks  []models.Block     `json:"blocks"`
}

// GeneratePlan requests a structured single-day plan. Each configured plan
// model is tried in order (later attempts use a compact prompt); a response
// that cannot be decoded into the expected structure fails with
// ErrSchemaViolation rather than degrading silently.
func (c *Client) GeneratePlan(ctx context.Context, req models.PlanRequest) (*models.WorkoutPlan, error) {
	var lastErr error
	for i, model := range c.cfg.PlanModels {
		text, err := c.completeJSON(ctx, model, planUserPrompt(req, i > 0))
		if err != nil {
			lastErr = err
			c.log.Warn("plan model failed, trying next", "model", model, "error", err)
			continue
		}

		var wire planWire
		if err := json.Unmarshal([]byte(text), &wire); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
		}
		plan := &models.WorkoutPlan{
			CreatedAt: time.Now().UTC(),
			Request:   req,
			Summary:   wire.Summary,
			Blocks:    wire.Blocks,
		}
		if err := plan.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
		}
		return plan, nil
	}
	return nil, fmt.Errorf("plan generation: all models failed: %w", lastErr)
}

func (c *Client) completeJSON(ctx context.Context, model, user string) (string, error) {
	resp, err := c.chat.CreateChatCompletion(ctx, openrouter.ChatCompletionRequest{
		Model:     model,
		MaxTokens: 2500,
		Messages: []openrouter.ChatCompletionMessage{
			{Role: openrouter.ChatMessageRoleSystem, Content: openrouter.Content{Text: planSystemPrompt}},
			{Role: openrouter.ChatMessageRoleUser, Content: openrouter.Content{Text: user}},
		},
		ResponseFormat: &openrouter.ChatCompletionResponseFormat{
			Type: openrouter.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openrouter.ChatCompletionResponseFormatJSONSchema{
				Name:   planSchemaName,
				Schema: planSchema,
				Strict: true,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion (%s): %w", model, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion (%s): no choices", model)
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content.Text)
	if text == "" {
		return "", fmt.Errorf("chat completion (%s): empty response", model)
	}
	return text, nil
}

// MotivationText generates a short pep talk. The configured text models form
// an ordered fallback chain; if every model fails the call fails with
// ErrSpeechGeneration.
func (c *Client) MotivationText(ctx context.Context, req models.PlanRequest, summary models.PlanSummary) (string, error) {
	var lastErr error
	for _, model := range c.cfg.TextModels {
		resp, err := c.chat.CreateChatCompletion(ctx, openrouter.ChatCompletionRequest{
			Model:     model,
			MaxTokens: 300,
			Messages: []openrouter.ChatCompletionMessage{
				{Role: openrouter.ChatMessageRoleSystem, Content: openrouter.Content{Text: motivationSystemPrompt}},
				{Role: openrouter.ChatMessageRoleUser, Content: openrouter.Content{Text: motivationUserPrompt(req, summary)}},
			},
		})
		if err != nil {
			lastErr = err
			c.log.Warn("motivation model failed, trying next", "model", model, "error", err)
			continue
		}
		if len(resp.Choices) > 0 {
			if text := strings.TrimSpace(resp.Choices[0].Message.Content.Text); text != "" {
				return text, nil
			}
		}
		lastErr = fmt.Errorf("empty response from %s", model)
	}
	return "", fmt.Errorf("%w: %v", ErrSpeechGeneration, lastErr)
}

// GenerateImage requests one illustration for a single exercise. No
// batching, no automatic retry; any vendor failure is ErrImageGeneration.
func (c *Client) GenerateImage(ctx context.Context, exercise string, req models.PlanRequest) ([]byte, error) {
	body := map[string]any{
		"model":           c.cfg.ImageModel,
		"prompt":          imagePrompt(exercise, req),
		"size":            c.cfg.ImageSize,
		"n":               1,
		"response_format": "b64_json",
	}

	raw, err := c.post(ctx, "/images/generations", "application/json", body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageGeneration, err)
	}

	var resp struct {
		Data []struct {
			B64JSON string `json:"b64_json"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", ErrImageGeneration, err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, fmt.Errorf("%w: no image in response for %q", ErrImageGeneration, exercise)
	}

	img, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding image data: %v", ErrImageGeneration, err)
	}
	return img, nil
}

// Speech synthesizes MP3 audio from text. A failure here is distinct from
// ErrSpeechGeneration: the text stage already succeeded, so callers treat it
// as a partial success.
func (c *Client) Speech(ctx context.Context, text, voice string) ([]byte, error) {
	if voice == "" {
		voice = c.cfg.Voice
	}
	body := map[string]any{
		"model":           c.cfg.SpeechModel,
		"voice":           voice,
		"input":           text,
		"response_format": "mp3",
	}

	audio, err := c.post(ctx, "/audio/speech", "audio/mpeg", body)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("speech synthesis: empty audio response")
	}
	return audio, nil
}

func (c *Client) post(ctx context.Context, path, accept string, body map[string]any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.cfg.MediaBaseURL, "/")+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.MediaAPIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", accept)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: reading body: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, truncate(data, 300))
	}
	return data, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// Compile-time check: the OpenRouter client satisfies chatCompleter.
var _ chatCompleter = (*openrouter.Client)(nil)
