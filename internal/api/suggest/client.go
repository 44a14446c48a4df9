package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/lucasmn/fueltrack/internal/models"
)

// Suggestion is one AI-generated economy tip.
type Suggestion struct {
	Type        string `json:"type"` // economy | performance | tip
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Client calls an OpenAI-compatible chat completions endpoint to turn
// the user's recent refueling history into 2-3 economy suggestions.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *zap.Logger
}

// UpstreamError carries the upstream HTTP status so rate limit and quota
// responses can be relayed with their own statuses.
type UpstreamError struct {
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("suggestion upstream returned %d", e.StatusCode)
}

// NewClient creates the suggestion client.
func NewClient(baseURL, apiKey, model string, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

const systemPrompt = `You are a vehicle fuel economy expert. Analyze the user's refueling data and provide 2-3 practical, personalized fuel saving suggestions.

Rules:
- Be specific and ground every suggestion in the user's actual data
- Use friendly, direct language
- Consider the fuel types in use
- Compare the vehicle's consumption against expected averages
- Suggest practical driving, maintenance or fuel-choice improvements
- Each suggestion needs a short title (max 30 chars) and description (max 100 chars)
- Classify each suggestion as "economy" (money), "performance" (consumption) or "tip" (general)`

// chat completions request/response, OpenAI wire format.
type chatRequest struct {
	Model      string        `json:"model"`
	Messages   []chatMessage `json:"messages"`
	Tools      []chatTool    `json:"tools"`
	ToolChoice any           `json:"tool_choice"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatTool struct {
	Type     string       `json:"type"`
	Function chatFunction `json:"function"`
}

type chatFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			ToolCalls []struct {
				Function struct {
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"message"`
	} `json:"choices"`
}

var suggestionSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"suggestions": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"type": {"type": "string", "enum": ["economy", "performance", "tip"]},
					"title": {"type": "string"},
					"description": {"type": "string"}
				},
				"required": ["type", "title", "description"],
				"additionalProperties": false
			},
			"minItems": 2,
			"maxItems": 3
		}
	},
	"required": ["suggestions"],
	"additionalProperties": false
}`)

// FallbackSuggestion is returned when fewer than two records exist, so
// there is no consumption trend to analyze yet.
func FallbackSuggestion() []Suggestion {
	return []Suggestion{{
		Type:        "tip",
		Title:       "Keep logging",
		Description: "Log more refuelings to receive personalized fuel saving suggestions.",
	}}
}

// Suggest builds the analysis context from the records (date descending,
// at most 20) and asks the upstream model for suggestions.
func (c *Client) Suggest(ctx context.Context, records []*models.FuelRecord, vehicle *models.Vehicle) ([]Suggestion, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("suggestion api key not configured")
	}
	if len(records) < 2 {
		return FallbackSuggestion(), nil
	}

	userPrompt := c.buildPrompt(records, vehicle)

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Tools: []chatTool{{
			Type: "function",
			Function: chatFunction{
				Name:        "provide_fuel_suggestions",
				Description: "Returns fuel economy suggestions",
				Parameters:  suggestionSchema,
			},
		}},
		ToolChoice: map[string]any{
			"type":     "function",
			"function": map[string]string{"name": "provide_fuel_suggestions"},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal suggestion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build suggestion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call suggestion api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Suggestion upstream failed", zap.Int("status", resp.StatusCode))
		return nil, &UpstreamError{StatusCode: resp.StatusCode}
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("decode suggestion response: %w", err)
	}

	if len(chatResp.Choices) == 0 || len(chatResp.Choices[0].Message.ToolCalls) == 0 {
		return nil, fmt.Errorf("suggestion response has no tool call")
	}

	var parsed struct {
		Suggestions []Suggestion `json:"suggestions"`
	}
	args := chatResp.Choices[0].Message.ToolCalls[0].Function.Arguments
	if err := json.Unmarshal([]byte(args), &parsed); err != nil {
		return nil, fmt.Errorf("parse suggestion arguments: %w", err)
	}
	if len(parsed.Suggestions) == 0 {
		return nil, fmt.Errorf("suggestion response is empty")
	}

	return parsed.Suggestions, nil
}

// buildPrompt condenses the record set into the aggregate context the
// model is asked to reason over.
func (c *Client) buildPrompt(records []*models.FuelRecord, vehicle *models.Vehicle) string {
	stats := models.ComputeFuelStats(records)

	fuelTypes := make([]string, 0, 2)
	seen := map[string]bool{}
	for _, r := range records {
		if !seen[r.FuelType] {
			seen[r.FuelType] = true
			fuelTypes = append(fuelTypes, r.FuelType)
		}
	}

	var avgPrice float64
	for _, r := range records {
		avgPrice += r.PricePerLiter
	}
	avgPrice = models.Round2(avgPrice / float64(len(records)))

	vehicleName := "vehicle"
	if vehicle != nil {
		vehicleName = strings.TrimSpace(fmt.Sprintf("%s %s",
			strOrEmpty(vehicle.Brand), firstNonEmpty(strOrEmpty(vehicle.Model), vehicle.Name)))
	}

	avgKml := "unknown"
	if stats.AvgKmPerLiter != nil {
		avgKml = fmt.Sprintf("%.2f", *stats.AvgKmPerLiter)
	}

	recent := records
	if len(recent) > 5 {
		recent = recent[:5]
	}
	recentJSON, _ := json.Marshal(recent)

	return fmt.Sprintf(`User data:
- Vehicle: %s
- Average consumption: %s km/L
- Average price paid: %.2f/L
- Total spent: %.2f
- Liters refueled: %.2f
- Fuel types used: %s
- Number of records: %d

Latest refuelings: %s

Provide personalized fuel saving suggestions.`,
		vehicleName, avgKml, avgPrice, stats.TotalSpent, stats.TotalLiters,
		strings.Join(fuelTypes, ", "), stats.RecordCount, recentJSON)
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
