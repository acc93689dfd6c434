package otp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const fast2smsBaseURL = "https://www.fast2sms.com"

// Fast2SMSSender delivers codes over the Fast2SMS bulk SMS API using the
// promotional quick route, which needs no registered sender ID.
type Fast2SMSSender struct {
	client *resty.Client
}

// NewFast2SMSSender creates a sender with the given API key.
func NewFast2SMSSender(apiKey string, timeout time.Duration) *Fast2SMSSender {
	c := resty.New().
		SetBaseURL(fast2smsBaseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("authorization", apiKey).
		SetTimeout(timeout)
	return &Fast2SMSSender{client: c}
}

// newFast2SMSSenderAt is the test seam for pointing at a stub server.
func newFast2SMSSenderAt(baseURL, apiKey string, timeout time.Duration) *Fast2SMSSender {
	s := NewFast2SMSSender(apiKey, timeout)
	s.client.SetBaseURL(baseURL)
	return s
}

type fast2smsRequest struct {
	Route    string `json:"route"`
	Message  string `json:"message"`
	Language string `json:"language"`
	Flash    int    `json:"flash"`
	Numbers  string `json:"numbers"`
}

type fast2smsResponse struct {
	Return    bool   `json:"return"`
	MessageID string `json:"message_id"`
	Message   string `json:"message"`
}

// SendCode implements Sender.
func (f *Fast2SMSSender) SendCode(ctx context.Context, phone, code string, validFor time.Duration) error {
	reqBody := fast2smsRequest{
		Route:    "q",
		Message:  fmt.Sprintf("Your Voyage verification code is %s. Valid for %d minutes. Do not share.", code, int(validFor.Minutes())),
		Language: "english",
		Flash:    0,
		Numbers:  phone,
	}

	resp, err := f.client.R().
		SetContext(ctx).
		SetBody(&reqBody).
		Post("/dev/bulkV2")
	if err != nil {
		return fmt.Errorf("fast2sms request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("fast2sms status %d: %s", resp.StatusCode(), resp.String())
	}

	var out fast2smsResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return fmt.Errorf("decode fast2sms response: %w", err)
	}
	if !out.Return {
		return fmt.Errorf("fast2sms rejected message: %s", out.Message)
	}
	return nil
}
