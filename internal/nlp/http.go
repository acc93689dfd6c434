package nlp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/voyagetravel/voyage-backend/internal/model"
)

// HTTPClassifier calls the NLP service's intent endpoint.
type HTTPClassifier struct {
	client *resty.Client
}

// NewHTTPClassifier creates a classifier against the NLP service base URL.
func NewHTTPClassifier(baseURL string, timeout time.Duration) *HTTPClassifier {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	return &HTTPClassifier{client: c}
}

type intentRequest struct {
	Utterance string `json:"utterance"`
}

type intentResponse struct {
	TravelRelated bool `json:"travelRelated"`
}

// Classify implements IntentClassifier.
func (c *HTTPClassifier) Classify(ctx context.Context, utterance string) (Intent, error) {
	reqBody := intentRequest{Utterance: utterance}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(&reqBody).
		Post("/v1/intent")
	if err != nil {
		return "", fmt.Errorf("intent request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("intent service status %d: %s", resp.StatusCode(), resp.String())
	}

	var out intentResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("decode intent response: %w", err)
	}
	if out.TravelRelated {
		return IntentTripPlanning, nil
	}
	return IntentOffTopic, nil
}

// HTTPExtractor calls the NLP service's slot extraction endpoint.
type HTTPExtractor struct {
	client *resty.Client
}

// NewHTTPExtractor creates an extractor against the NLP service base URL.
func NewHTTPExtractor(baseURL string, timeout time.Duration) *HTTPExtractor {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	return &HTTPExtractor{client: c}
}

type extractRequest struct {
	Utterance  string          `json:"utterance"`
	PriorSlots model.TripSlots `json:"priorSlots"`
}

// Extract implements SlotExtractor. The backend's raw payload is normalized
// here so sentinel placeholders never leak into the core model.
func (e *HTTPExtractor) Extract(ctx context.Context, utterance string, prior model.TripSlots) (model.TripSlots, error) {
	reqBody := extractRequest{Utterance: utterance, PriorSlots: prior}

	resp, err := e.client.R().
		SetContext(ctx).
		SetBody(&reqBody).
		Post("/v1/extract")
	if err != nil {
		return model.TripSlots{}, fmt.Errorf("extract request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return model.TripSlots{}, fmt.Errorf("extract service status %d: %s", resp.StatusCode(), resp.String())
	}

	var raw RawSlots
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return model.TripSlots{}, fmt.Errorf("decode extract response: %w", err)
	}
	return Normalize(raw), nil
}
