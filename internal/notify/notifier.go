// Package notify fans security alerts out over a traveler's enabled
// channels: SMS and WhatsApp through Twilio, email through SMTP. Channel
// failures are reported per channel, never escalated.
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/voyagetravel/voyage-backend/internal/metrics"
	"github.com/voyagetravel/voyage-backend/internal/model"
)

// MessageSender delivers short-form messages. Implementations return the
// provider's message id.
type MessageSender interface {
	SendSMS(ctx context.Context, to, body string) (string, error)
	SendWhatsApp(ctx context.Context, to, body string) (string, error)
}

// EmailSender delivers a multipart mail with HTML and plain text bodies.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, htmlBody, textBody string) error
}

// ChannelResult reports one delivery attempt.
type ChannelResult struct {
	Channel   string `json:"channel"`
	Recipient string `json:"recipient"`
	Delivered bool   `json:"delivered"`
	Detail    string `json:"detail,omitempty"`
}

// Notifier routes alerts by the user's channel preferences. Either sender may
// be nil when its credentials are not configured; affected channels then
// report a configuration failure instead of delivering.
type Notifier struct {
	messenger MessageSender
	email     EmailSender
	logger    zerolog.Logger
}

// NewNotifier wires a notifier.
func NewNotifier(messenger MessageSender, email EmailSender, logger zerolog.Logger) *Notifier {
	return &Notifier{
		messenger: messenger,
		email:     email,
		logger:    logger.With().Str("component", "notifier").Logger(),
	}
}

// SendSecurityAlert attempts every enabled channel the profile has an address
// for and returns one result per attempt. Channels are enabled unless the
// profile opts out explicitly.
func (n *Notifier) SendSecurityAlert(ctx context.Context, alert model.SecurityAlert, user model.UserProfile) []ChannelResult {
	var results []ChannelResult
	prefs := user.Preferences
	short := shortMessage(alert)

	if enabled(prefs.SMSEnabled) && user.PhoneNumber != nil {
		results = append(results, n.sendSMS(ctx, *user.PhoneNumber, short))
	}

	if enabled(prefs.WhatsAppEnabled) {
		number := prefs.WhatsAppNumber
		if number == nil {
			number = user.PhoneNumber
		}
		if number != nil {
			results = append(results, n.sendWhatsApp(ctx, *number, short))
		}
	}

	if enabled(prefs.EmailEnabled) && user.Email != nil {
		html, text := emailBodies(alert)
		results = append(results, n.sendEmail(ctx, *user.Email, emailSubject(alert), html, text))
	}

	return results
}

func (n *Notifier) sendSMS(ctx context.Context, to, body string) ChannelResult {
	r := ChannelResult{Channel: "sms", Recipient: to}
	if n.messenger == nil {
		r.Detail = "sms sender not configured"
		metrics.NotificationsTotal.WithLabelValues("sms", "unconfigured").Inc()
		return r
	}
	sid, err := n.messenger.SendSMS(ctx, to, body)
	if err != nil {
		r.Detail = err.Error()
		metrics.NotificationsTotal.WithLabelValues("sms", "failed").Inc()
		n.logger.Warn().Err(err).Str("to", to).Msg("sms alert delivery failed")
		return r
	}
	r.Delivered, r.Detail = true, sid
	metrics.NotificationsTotal.WithLabelValues("sms", "delivered").Inc()
	return r
}

func (n *Notifier) sendWhatsApp(ctx context.Context, to, body string) ChannelResult {
	r := ChannelResult{Channel: "whatsapp", Recipient: to}
	if n.messenger == nil {
		r.Detail = "whatsapp sender not configured"
		metrics.NotificationsTotal.WithLabelValues("whatsapp", "unconfigured").Inc()
		return r
	}
	sid, err := n.messenger.SendWhatsApp(ctx, to, body)
	if err != nil {
		r.Detail = err.Error()
		metrics.NotificationsTotal.WithLabelValues("whatsapp", "failed").Inc()
		n.logger.Warn().Err(err).Str("to", to).Msg("whatsapp alert delivery failed")
		return r
	}
	r.Delivered, r.Detail = true, sid
	metrics.NotificationsTotal.WithLabelValues("whatsapp", "delivered").Inc()
	return r
}

func (n *Notifier) sendEmail(ctx context.Context, to, subject, html, text string) ChannelResult {
	r := ChannelResult{Channel: "email", Recipient: to}
	if n.email == nil {
		r.Detail = "smtp credentials not configured"
		metrics.NotificationsTotal.WithLabelValues("email", "unconfigured").Inc()
		return r
	}
	if err := n.email.SendEmail(ctx, to, subject, html, text); err != nil {
		r.Detail = err.Error()
		metrics.NotificationsTotal.WithLabelValues("email", "failed").Inc()
		n.logger.Warn().Err(err).Str("to", to).Msg("email alert delivery failed")
		return r
	}
	r.Delivered = true
	metrics.NotificationsTotal.WithLabelValues("email", "delivered").Inc()
	return r
}

// enabled treats an absent preference as opted in.
func enabled(pref *bool) bool {
	return pref == nil || *pref
}
