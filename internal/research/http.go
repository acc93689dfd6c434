package research

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPProvider calls the destination research service.
type HTTPProvider struct {
	client *resty.Client
}

// NewHTTPProvider creates a provider against the research service base URL.
func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	return &HTTPProvider{client: c}
}

type textResponse struct {
	Text string `json:"text"`
}

func (p *HTTPProvider) post(ctx context.Context, path string, body interface{}) (string, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(path)
	if err != nil {
		return "", fmt.Errorf("research request %s: %w", path, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("research service status %d on %s: %s", resp.StatusCode(), path, resp.String())
	}

	var out textResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("decode research response: %w", err)
	}
	return out.Text, nil
}

// BudgetInfo implements Provider.
func (p *HTTPProvider) BudgetInfo(ctx context.Context, destination string, days, people int) (string, error) {
	return p.post(ctx, "/v1/research/budget", map[string]interface{}{
		"destination": destination,
		"days":        days,
		"people":      people,
	})
}

// SafetyAdvisory implements Provider.
func (p *HTTPProvider) SafetyAdvisory(ctx context.Context, destination string) (string, error) {
	return p.post(ctx, "/v1/research/advisory", map[string]interface{}{
		"destination": destination,
	})
}

// Weather implements Provider.
func (p *HTTPProvider) Weather(ctx context.Context, destination string, start *time.Time) (string, error) {
	body := map[string]interface{}{"destination": destination}
	if start != nil {
		body["startDate"] = start.Format("2006-01-02")
	}
	return p.post(ctx, "/v1/research/weather", body)
}

// TravelDocuments implements Provider.
func (p *HTTPProvider) TravelDocuments(ctx context.Context, origin, destination string) (string, error) {
	return p.post(ctx, "/v1/research/documents", map[string]interface{}{
		"origin":      origin,
		"destination": destination,
	})
}
