package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const twilioBaseURL = "https://api.twilio.com"

// TwilioSender delivers SMS and WhatsApp messages over the Twilio REST API.
type TwilioSender struct {
	client       *resty.Client
	accountSID   string
	fromSMS      string
	fromWhatsApp string // full "whatsapp:+1..." form
}

// NewTwilioSender creates a sender authenticated with the account SID and
// auth token. fromSMS is the E.164 sending number; fromWhatsApp carries the
// "whatsapp:" prefix Twilio requires.
func NewTwilioSender(accountSID, authToken, fromSMS, fromWhatsApp string, timeout time.Duration) *TwilioSender {
	c := resty.New().
		SetBaseURL(twilioBaseURL).
		SetBasicAuth(accountSID, authToken).
		SetTimeout(timeout)
	return &TwilioSender{
		client:       c,
		accountSID:   accountSID,
		fromSMS:      fromSMS,
		fromWhatsApp: fromWhatsApp,
	}
}

// newTwilioSenderAt is the test seam for pointing at a stub server.
func newTwilioSenderAt(baseURL, accountSID, authToken, fromSMS, fromWhatsApp string, timeout time.Duration) *TwilioSender {
	s := NewTwilioSender(accountSID, authToken, fromSMS, fromWhatsApp, timeout)
	s.client.SetBaseURL(baseURL)
	return s
}

type twilioResponse struct {
	SID     string `json:"sid"`
	Status  string `json:"status"`
	Message string `json:"message"` // error detail on failures
}

// SendSMS implements MessageSender.
func (t *TwilioSender) SendSMS(ctx context.Context, to, body string) (string, error) {
	return t.send(ctx, t.fromSMS, to, body)
}

// SendWhatsApp implements MessageSender. Twilio requires the whatsapp:
// prefix on both sides of the message.
func (t *TwilioSender) SendWhatsApp(ctx context.Context, to, body string) (string, error) {
	return t.send(ctx, t.fromWhatsApp, "whatsapp:"+to, body)
}

func (t *TwilioSender) send(ctx context.Context, from, to, body string) (string, error) {
	resp, err := t.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"To":   to,
			"From": from,
			"Body": body,
		}).
		Post(fmt.Sprintf("/2010-04-01/Accounts/%s/Messages.json", t.accountSID))
	if err != nil {
		return "", fmt.Errorf("twilio request: %w", err)
	}

	var out twilioResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("decode twilio response: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("twilio status %d: %s", resp.StatusCode(), out.Message)
	}
	return out.SID, nil
}
