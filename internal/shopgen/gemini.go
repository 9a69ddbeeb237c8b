package shopgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rajlakheradev-creator/habitctl/internal/constants"
	"github.com/rajlakheradev-creator/habitctl/internal/logger"
	"github.com/rajlakheradev-creator/habitctl/internal/models"
)

// GeminiClient generates shop listings through the Generative Language API.
// Responses are requested in JSON mode and validated strictly; anything that
// does not satisfy the listing contract is reported as an error so the
// caller can fall back.
type GeminiClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// GeminiConfig holds client configuration.
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// DefaultGeminiConfig returns sensible defaults for the given API key.
func DefaultGeminiConfig(apiKey string) GeminiConfig {
	return GeminiConfig{
		APIKey:  apiKey,
		BaseURL: constants.GeneratorBaseURL,
		Model:   constants.GeneratorModel,
		Timeout: constants.GeneratorTimeout,
	}
}

// NewGeminiClient creates a client with default configuration.
func NewGeminiClient(apiKey string) *GeminiClient {
	return NewGeminiClientWithConfig(DefaultGeminiConfig(apiKey))
}

// NewGeminiClientWithConfig creates a client with custom configuration.
func NewGeminiClientWithConfig(config GeminiConfig) *GeminiClient {
	model := strings.TrimSpace(config.Model)
	if model == "" {
		model = constants.GeneratorModel
	}
	baseURL := strings.TrimSpace(config.BaseURL)
	if baseURL == "" {
		baseURL = constants.GeneratorBaseURL
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = constants.GeneratorTimeout
	}

	return &GeminiClient{
		apiKey:  config.APIKey,
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type geminiRequest struct {
	Contents          []geminiContent        `json:"contents"`
	SystemInstruction *geminiContent         `json:"systemInstruction,omitempty"`
	GenerationConfig  geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// itemDescriptor is the wire shape the model is asked to produce.
type itemDescriptor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Icon        string `json:"icon"`
}

const systemPrompt = `You are the inventory generator for a cyberpunk-themed habit tracker's
"Black Market" shop. You respond with a JSON array only, no prose.`

// Generate asks the model for exactly count item descriptors themed around
// the user's current habits.
func (c *GeminiClient) Generate(ctx context.Context, count int, habitNames []string) ([]models.Item, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("generator API key not configured")
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.httpClient.Timeout)
		defer cancel()
	}

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: buildPrompt(count, habitNames)}},
			},
		},
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: systemPrompt}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:      1.0,
			ResponseMimeType: "application/json",
		},
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	var lastErr error
	for attempt := 0; attempt <= constants.GeneratorMaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Duration(1<<uint(attempt-1)) * time.Second):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		text, retryable, err := c.doRequest(ctx, url, reqBody)
		if err != nil {
			if !retryable {
				return nil, err
			}
			lastErr = err
			continue
		}

		items, err := parseListing(text, count)
		if err != nil {
			// A malformed completion will not get better by resending
			// the identical request.
			return nil, err
		}

		logger.Debug("Generated shop listing", "items", len(items), "model", c.model)
		return items, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

// doRequest performs one generateContent call and extracts the completion
// text. The second return value reports whether the failure is retryable.
func (c *GeminiClient) doRequest(ctx context.Context, url string, reqBody geminiRequest) (string, bool, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", false, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return "", false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", true, fmt.Errorf("rate limit exceeded (429)")
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", false, fmt.Errorf("failed to parse response: %w", err)
	}
	if parsed.Error != nil {
		return "", false, fmt.Errorf("API error: %s", parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", false, fmt.Errorf("no completion returned")
	}

	var text strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}

	return strings.TrimSpace(text.String()), false, nil
}

func buildPrompt(count int, habitNames []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate exactly %d shop items as a JSON array. ", count)
	fmt.Fprintf(&b, "Each element must be an object with keys: "+
		`"name" (short item name), "description" (one sentence starting with "Grants"), `+
		`"price" (integer between %d and %d), "icon" (a single emoji). `,
		constants.MinItemPrice, constants.MaxItemPrice)
	if len(habitNames) > 0 {
		fmt.Fprintf(&b, "Theme some items around the user's current directives: %s.",
			strings.Join(habitNames, ", "))
	} else {
		b.WriteString("The user has no directives yet; use generic cyberpunk gear.")
	}
	return b.String()
}

// parseListing decodes the completion text into Items and enforces the
// listing contract. Descriptors get fresh ids; the model is not trusted to
// produce unique ones.
func parseListing(text string, count int) ([]models.Item, error) {
	var descriptors []itemDescriptor
	if err := json.Unmarshal([]byte(text), &descriptors); err != nil {
		return nil, fmt.Errorf("%w: completion is not a JSON array: %v", ErrBadListing, err)
	}

	items := make([]models.Item, 0, len(descriptors))
	for _, d := range descriptors {
		items = append(items, models.Item{
			ID:          uuid.New().String(),
			Name:        d.Name,
			Description: d.Description,
			Price:       d.Price,
			Icon:        d.Icon,
		})
	}

	if err := ValidateListing(items, count); err != nil {
		return nil, err
	}

	return items, nil
}
