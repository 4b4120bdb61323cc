package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/finance-tracker/personal-finance/internal/application/adapter"
)

const (
	defaultGeminiModel       = "gemini-2.5-flash-lite"
	defaultGeminiTemperature = 0.2
	defaultGeminiTimeout     = 5 * time.Second
	sourceAI                 = "ai"
)

// GeminiConfig configures the Gemini suggester. Zero values fall back to
// defaults.
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// GeminiSuggester implements adapter.CategorySuggester using Google Gemini.
type GeminiSuggester struct {
	cfg GeminiConfig
}

// NewGeminiSuggester creates a new Gemini suggester.
func NewGeminiSuggester(cfg GeminiConfig) *GeminiSuggester {
	if cfg.Model == "" {
		cfg.Model = defaultGeminiModel
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = defaultGeminiTemperature
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultGeminiTimeout
	}
	return &GeminiSuggester{cfg: cfg}
}

// IsAvailable reports whether an API key is configured.
func (s *GeminiSuggester) IsAvailable() bool {
	return s.cfg.APIKey != ""
}

// Suggest asks Gemini to pick one of categories for description.
func (s *GeminiSuggester) Suggest(ctx context.Context, description string, categories []string) (*adapter.CategorySuggestion, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.cfg.Model)
	model.SetTemperature(float32(s.cfg.Temperature))
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildSuggestPrompt(description, categories)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	return parseSuggestion(text, categories)
}

func buildSuggestPrompt(description string, categories []string) string {
	var sb strings.Builder

	sb.WriteString("You categorize personal expenses.\n")
	sb.WriteString("Pick exactly one category key from this list:\n")
	for _, c := range categories {
		sb.WriteString("- " + c + "\n")
	}
	sb.WriteString("\nExpense description: ")
	sb.WriteString(fmt.Sprintf("%q", description))
	sb.WriteString(`

Respond with a JSON object only:
{"category": "<key from the list>", "confidence": 0.0-1.0}
Use "other" when nothing fits.
`)

	return sb.String()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok && text != "" {
			return string(text), nil
		}
	}
	return "", fmt.Errorf("no text content in response")
}

type geminiSuggestion struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// parseSuggestion decodes the model's JSON answer. Keys outside categories
// are rejected so the caller can fall back.
func parseSuggestion(text string, categories []string) (*adapter.CategorySuggestion, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var raw geminiSuggestion
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	key := strings.ToLower(strings.TrimSpace(raw.Category))
	for _, c := range categories {
		if c == key {
			return &adapter.CategorySuggestion{
				Category:   key,
				Confidence: clampConfidence(raw.Confidence),
				Source:     sourceAI,
			}, nil
		}
	}
	return nil, fmt.Errorf("gemini returned unknown category %q", raw.Category)
}

func clampConfidence(c float64) float64 {
	switch {
	case c < 0:
		return 0
	case c > 1:
		return 1
	default:
		return c
	}
}
