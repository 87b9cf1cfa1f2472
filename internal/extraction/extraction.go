// Package extraction reads trade confirmations and daily summaries out of screenshots
// using a vision model. It only produces raw records; normalize turns them into events.
package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/ndewijer/Trade-Journal-Backend/internal/apperrors"
	"github.com/ndewijer/Trade-Journal-Backend/internal/model"
)

// Client defines the interface for extracting a raw record from an image.
// This interface enables dependency injection and testing with mock implementations.
type Client interface {
	Extract(ctx context.Context, image []byte, mimeType string) (model.RawRecord, error)
}

// KeyFunc returns the API key to use for the next call.
type KeyFunc func(ctx context.Context) (string, error)

// GeminiClient extracts records with the Gemini API.
type GeminiClient struct {
	model   string
	keyFunc KeyFunc
	limiter *rate.Limiter

	mu     sync.Mutex
	key    string
	client *genai.Client
}

// NewGeminiClient creates a client for the given model. Calls are throttled to
// ratePerMinute requests; keyFunc is consulted on every call so a rotated key
// takes effect without a restart.
func NewGeminiClient(model string, ratePerMinute int, keyFunc KeyFunc) *GeminiClient {
	if ratePerMinute <= 0 {
		ratePerMinute = 1
	}
	return &GeminiClient{
		model:   model,
		keyFunc: keyFunc,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(ratePerMinute)), 1),
	}
}

const prompt = `You read screenshots from a brokerage app.
Classify the image as TRADE_CONFIRMATION (a single closed trade) or DAILY_SUMMARY (an account's day summary)
and return the fields you can read. Dates as YYYY-MM-DD. Amounts as plain numbers without currency symbols.
For a TRADE_CONFIRMATION: ticker, costAtOpen, creditAtClose, changeValue, changePercentage.
For a DAILY_SUMMARY: changeValue, changePercentage, endOfDayBalance.
Leave out fields that are not visible. If the image is neither, set imageType to UNKNOWN.`

// responseSchema constrains the model to the RawRecord shape.
var responseSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"imageType": {
			Type: genai.TypeString,
			Enum: []string{"TRADE_CONFIRMATION", "DAILY_SUMMARY", "UNKNOWN"},
		},
		"date":             {Type: genai.TypeString, Description: "Trade or statement date, YYYY-MM-DD."},
		"ticker":           {Type: genai.TypeString},
		"costAtOpen":       {Type: genai.TypeNumber},
		"creditAtClose":    {Type: genai.TypeNumber},
		"changeValue":      {Type: genai.TypeNumber, Description: "Signed dollar profit or loss."},
		"changePercentage": {Type: genai.TypeNumber, Description: "Signed percent profit or loss."},
		"endOfDayBalance":  {Type: genai.TypeNumber},
	},
	Required: []string{"imageType"},
}

// Extract sends the image to the model and decodes its JSON answer.
func (c *GeminiClient) Extract(ctx context.Context, image []byte, mimeType string) (model.RawRecord, error) {
	client, err := c.genaiClient(ctx)
	if err != nil {
		return model.RawRecord{}, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return model.RawRecord{}, fmt.Errorf("%w: %v", apperrors.ErrExtractionUnavailable, err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(prompt),
			genai.NewPartFromBytes(image, mimeType),
		}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema,
	}

	resp, err := client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return model.RawRecord{}, fmt.Errorf("%w: %v", apperrors.ErrExtractionUnavailable, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return model.RawRecord{}, apperrors.ErrEmptyExtraction
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}

	return ParseResponse(text.String())
}

// genaiClient returns a client for the current key, rebuilding it when the key changed.
func (c *GeminiClient) genaiClient(ctx context.Context) (*genai.Client, error) {
	key, err := c.keyFunc(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExtractionUnavailable, err)
	}
	if key == "" {
		return nil, fmt.Errorf("%w: no API key configured", apperrors.ErrExtractionUnavailable)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil && c.key == key {
		return c.client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrExtractionUnavailable, err)
	}
	c.client = client
	c.key = key
	return client, nil
}

// ParseResponse decodes the model's JSON text into a RawRecord.
// Numbers are kept as json.Number so normalization sees exactly what the model wrote.
// Models sometimes wrap JSON in a markdown fence; that is stripped first.
func ParseResponse(text string) (model.RawRecord, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)
	if text == "" {
		return model.RawRecord{}, apperrors.ErrEmptyExtraction
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()

	var record model.RawRecord
	if err := dec.Decode(&record); err != nil {
		return model.RawRecord{}, fmt.Errorf("%w: %v", apperrors.ErrEmptyExtraction, err)
	}
	if strings.TrimSpace(record.ImageType) == "" {
		return model.RawRecord{}, fmt.Errorf("%w: missing imageType", apperrors.ErrEmptyExtraction)
	}
	return record, nil
}
