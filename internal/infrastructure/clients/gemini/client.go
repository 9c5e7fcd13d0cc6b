package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/domain/entities"
	"github.com/zatekoja/Facilityonboardingautomation/backend/internal/domain/providers"
	"github.com/zatekoja/Facilityonboardingautomation/backend/pkg/config"
	"github.com/zatekoja/Facilityonboardingautomation/backend/pkg/retry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// defaultCooldown is the pause between the extract and organize calls,
// which otherwise trip upstream rate limits back to back.
const defaultCooldown = 5 * time.Second

// Client implements the Gemini-backed classifier and validator providers.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	limiter    *tokenBucket
	cooldown   time.Duration
}

// NewClient creates a new Gemini client.
func NewClient(cfg *config.GeminiConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	limiter := newTokenBucket(cfg.RateLimitRPM, cfg.RateLimitBurst)

	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		limiter:  limiter,
		cooldown: defaultCooldown,
	}, nil
}

type contentPart struct {
	Text string `json:"text"`
}

type contentBlock struct {
	Parts []contentPart `json:"parts"`
}

type generateRequest struct {
	Contents []contentBlock `json:"contents"`
}

type candidate struct {
	Content contentBlock `json:"content"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

// ClassifyServiceUnits runs the two-pass classification: extract the units
// from the skeleton CSV text, then organize them into the seven category
// arrays.
func (c *Client) ClassifyServiceUnits(ctx context.Context, table string) (*entities.ClassifiedUnits, error) {
	extracted, err := c.generate(ctx, "extract_units", fmt.Sprintf(extractServiceUnitsPrompt, table))
	if err != nil {
		return nil, fmt.Errorf("extract service units: %w", err)
	}

	payload := extractJSONPayload(extracted)
	if payload == "" {
		return nil, fmt.Errorf("extract service units: %w", providers.ErrClassifierEmptyResponse)
	}

	var units []json.RawMessage
	if err := json.Unmarshal([]byte(payload), &units); err != nil {
		return nil, fmt.Errorf("extract service units: expected a JSON array: %w", err)
	}
	if len(units) == 0 {
		return nil, errors.New("extract service units: no units in response")
	}

	// Cool down before the second call
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(c.cooldown):
	}

	organizePrompt := fmt.Sprintf(organizeServiceUnitsPrompt, payload)

	var classified entities.ClassifiedUnits
	err = retry.DoWithLog(ctx, retry.ModelConfig(), "gemini", func() error {
		organized, err := c.generate(ctx, "organize_units", organizePrompt)
		if err != nil {
			return err
		}
		body := extractJSONPayload(organized)
		if body == "" {
			return providers.ErrClassifierEmptyResponse
		}
		classified = entities.ClassifiedUnits{}
		return json.Unmarshal([]byte(body), &classified)
	}, func(attempt int, err error, nextDelay time.Duration) {
		log.Warn().Err(err).Int("attempt", attempt).Dur("next_delay", nextDelay).Msg("retrying service unit organization")
	})
	if err != nil {
		return nil, fmt.Errorf("organize service units: %w", err)
	}

	return &classified, nil
}

// ValidateUsers cleans and validates the personnel table, returning the
// valid records and the rejected ones.
func (c *Client) ValidateUsers(ctx context.Context, table string) (*entities.UserValidation, error) {
	quoted, err := json.Marshal(table)
	if err != nil {
		return nil, err
	}

	response, err := c.generate(ctx, "validate_users", fmt.Sprintf(validateUsersPrompt, quoted))
	if err != nil {
		return nil, fmt.Errorf("validate users: %w", err)
	}

	payload := extractJSONPayload(response)
	if payload == "" {
		return nil, fmt.Errorf("validate users: %w", providers.ErrClassifierEmptyResponse)
	}

	var validation entities.UserValidation
	if err := json.Unmarshal([]byte(payload), &validation); err != nil {
		return nil, fmt.Errorf("validate users: invalid JSON in response: %w", err)
	}

	return &validation, nil
}

// generate sends one prompt and returns the first non-empty candidate text.
func (c *Client) generate(ctx context.Context, operation, prompt string) (string, error) {
	if c.limiter != nil {
		waitStart := time.Now()
		if err := c.limiter.Wait(ctx); err != nil {
			recordGeminiMetric(ctx, c.model, operation, 0, 0, err)
			return "", err
		}
		recordGeminiRateLimitWait(ctx, c.model, time.Since(waitStart))
	}

	body, err := json.Marshal(generateRequest{
		Contents: []contentBlock{
			{Parts: []contentPart{{Text: prompt}}},
		},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordGeminiMetric(ctx, c.model, operation, 0, time.Since(start), err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		recordGeminiMetric(ctx, c.model, operation, resp.StatusCode, time.Since(start), fmt.Errorf("status %d", resp.StatusCode))
		return "", fmt.Errorf("gemini request failed with status %d", resp.StatusCode)
	}

	var envelope generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		recordGeminiMetric(ctx, c.model, operation, resp.StatusCode, time.Since(start), err)
		return "", err
	}

	var text string
	for _, cand := range envelope.Candidates {
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				text = part.Text
				break
			}
		}
		if text != "" {
			break
		}
	}

	if text == "" {
		recordGeminiMetric(ctx, c.model, operation, resp.StatusCode, time.Since(start), providers.ErrClassifierEmptyResponse)
		return "", providers.ErrClassifierEmptyResponse
	}

	recordGeminiMetric(ctx, c.model, operation, resp.StatusCode, time.Since(start), nil)
	return text, nil
}

// extractJSONPayload pulls a JSON object or array out of a model response,
// tolerating markdown fences and prose around the JSON.
func extractJSONPayload(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	// Quick path: already looks like pure JSON
	if (strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}")) ||
		(strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]")) {
		return text
	}

	// Strip common markdown fences if present
	if strings.HasPrefix(text, "```") {
		parts := strings.Split(text, "```")
		if len(parts) >= 3 {
			inner := strings.TrimSpace(strings.Join(parts[1:len(parts)-1], "```"))
			if inner != "" {
				text = inner
			}
		}
	}

	// Fallback: find the first JSON bracket and the last closer
	start := -1
	for _, idx := range []int{strings.Index(text, "{"), strings.Index(text, "[")} {
		if idx == -1 {
			continue
		}
		if start == -1 || idx < start {
			start = idx
		}
	}
	if start == -1 {
		return text
	}

	end := strings.LastIndex(text, "}")
	if arrEnd := strings.LastIndex(text, "]"); arrEnd > end {
		end = arrEnd
	}
	if end == -1 || end <= start {
		return text
	}

	return text[start : end+1]
}

func newTokenBucket(rpm int, burst int) *tokenBucket {
	if rpm == 0 {
		rpm = 60
	}
	if rpm < 0 {
		return nil
	}
	if burst <= 0 {
		burst = 5
	}
	return newTokenBucketWithRate(rpm, burst)
}

type tokenBucket struct {
	tokens chan struct{}
}

func newTokenBucketWithRate(rpm int, burst int) *tokenBucket {
	bucket := &tokenBucket{
		tokens: make(chan struct{}, burst),
	}

	for i := 0; i < burst; i++ {
		bucket.tokens <- struct{}{}
	}

	interval := time.Minute / time.Duration(rpm)
	if interval <= 0 {
		interval = time.Millisecond
	}

	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			select {
			case bucket.tokens <- struct{}{}:
			default:
			}
		}
	}()

	return bucket
}

func (b *tokenBucket) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.tokens:
		return nil
	}
}

type geminiMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
	rateLimitWait   metric.Float64Histogram
}

var geminiMetricsInit = false
var geminiMetricsSet geminiMetrics

func ensureGeminiMetrics() {
	if geminiMetricsInit {
		return
	}
	meter := otel.Meter("github.com/zatekoja/Facilityonboardingautomation/backend/gemini")

	requestCount, err := meter.Int64Counter(
		"ai.gemini.request.count",
		metric.WithDescription("Number of Gemini requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.gemini.request.duration",
		metric.WithDescription("Gemini request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.gemini.request.errors",
		metric.WithDescription("Number of Gemini request errors"),
	)
	if err != nil {
		return
	}
	rateLimitWait, err := meter.Float64Histogram(
		"ai.gemini.rate_limit.wait",
		metric.WithDescription("Time spent waiting for the Gemini rate limiter in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}

	geminiMetricsSet = geminiMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
		rateLimitWait:   rateLimitWait,
	}
	geminiMetricsInit = true
}

func recordGeminiMetric(ctx context.Context, model, operation string, statusCode int, duration time.Duration, err error) {
	ensureGeminiMetrics()
	if !geminiMetricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", model),
		attribute.String("ai.operation", operation),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	geminiMetricsSet.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	geminiMetricsSet.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		geminiMetricsSet.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

func recordGeminiRateLimitWait(ctx context.Context, model string, wait time.Duration) {
	ensureGeminiMetrics()
	if !geminiMetricsInit {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", model),
	}
	geminiMetricsSet.rateLimitWait.Record(ctx, float64(wait.Milliseconds()), metric.WithAttributes(attrs...))
}
