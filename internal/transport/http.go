package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPEstimator calls the external transport pricing service.
type HTTPEstimator struct {
	client *resty.Client
}

// NewHTTPEstimator creates a primary estimator against the transport service
// base URL.
func NewHTTPEstimator(baseURL string, timeout time.Duration) *HTTPEstimator {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	return &HTTPEstimator{client: c}
}

type estimateRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	People      int    `json:"people"`
}

type estimateResponse struct {
	Amount float64 `json:"amount"`
}

// Estimate implements Estimator.
func (e *HTTPEstimator) Estimate(ctx context.Context, origin, destination string, people int) (float64, error) {
	reqBody := estimateRequest{Origin: origin, Destination: destination, People: people}

	resp, err := e.client.R().
		SetContext(ctx).
		SetBody(&reqBody).
		Post("/v1/transport/estimate")
	if err != nil {
		return 0, fmt.Errorf("transport request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return 0, fmt.Errorf("transport service status %d: %s", resp.StatusCode(), resp.String())
	}

	var out estimateResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return 0, fmt.Errorf("decode transport response: %w", err)
	}
	return out.Amount, nil
}
