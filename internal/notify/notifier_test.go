package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/voyagetravel/voyage-backend/internal/model"
)

type fakeMessenger struct {
	smsTo, smsBody string
	waTo, waBody   string
	smsErr, waErr  error
	smsCalls       int
	waCalls        int
}

func (f *fakeMessenger) SendSMS(_ context.Context, to, body string) (string, error) {
	f.smsCalls++
	f.smsTo, f.smsBody = to, body
	if f.smsErr != nil {
		return "", f.smsErr
	}
	return "SM123", nil
}

func (f *fakeMessenger) SendWhatsApp(_ context.Context, to, body string) (string, error) {
	f.waCalls++
	f.waTo, f.waBody = to, body
	if f.waErr != nil {
		return "", f.waErr
	}
	return "WA456", nil
}

type fakeEmailSender struct {
	to, subject string
	html, text  string
	err         error
	calls       int
}

func (f *fakeEmailSender) SendEmail(_ context.Context, to, subject, htmlBody, textBody string) error {
	f.calls++
	f.to, f.subject = to, subject
	f.html, f.text = htmlBody, textBody
	return f.err
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func testAlert() model.SecurityAlert {
	return model.SecurityAlert{
		Severity:       "high",
		Title:          "Civil unrest reported",
		Message:        "Avoid the old town area until further notice.",
		Location:       "Barcelona",
		ActionRequired: "Confirm your safety in the app",
	}
}

func fullProfile() model.UserProfile {
	return model.UserProfile{
		UserID:      "u-1",
		PhoneNumber: strPtr("+919876543210"),
		Email:       strPtr("traveler@example.com"),
	}
}

func TestNotifier_AllChannelsDeliver(t *testing.T) {
	messenger := &fakeMessenger{}
	email := &fakeEmailSender{}
	n := NewNotifier(messenger, email, zerolog.Nop())

	results := n.SendSecurityAlert(context.Background(), testAlert(), fullProfile())

	require.Len(t, results, 3)
	require.Equal(t, "sms", results[0].Channel)
	require.Equal(t, "whatsapp", results[1].Channel)
	require.Equal(t, "email", results[2].Channel)
	for _, r := range results {
		require.True(t, r.Delivered, "channel %s", r.Channel)
	}

	require.Equal(t, "+919876543210", messenger.smsTo)
	require.Equal(t, "+919876543210", messenger.waTo)
	require.Equal(t, "traveler@example.com", email.to)
	require.Equal(t, "SM123", results[0].Detail)
	require.Equal(t, "WA456", results[1].Detail)

	require.Contains(t, messenger.smsBody, "HIGH ALERT: Civil unrest reported")
	require.Contains(t, messenger.smsBody, "Location: Barcelona")
	require.Contains(t, messenger.smsBody, "Action: Confirm your safety in the app")
	require.Contains(t, messenger.smsBody, "- Voyage Security Team")
	require.Equal(t, "HIGH Security Alert: Civil unrest reported", email.subject)
	require.Contains(t, email.html, "<h2>Civil unrest reported</h2>")
	require.Contains(t, email.text, "SECURITY ALERT - HIGH PRIORITY")
}

func TestNotifier_WhatsAppNumberOverride(t *testing.T) {
	messenger := &fakeMessenger{}
	n := NewNotifier(messenger, nil, zerolog.Nop())

	user := fullProfile()
	user.Email = nil
	user.Preferences.WhatsAppNumber = strPtr("+918888888888")

	n.SendSecurityAlert(context.Background(), testAlert(), user)

	require.Equal(t, "+919876543210", messenger.smsTo)
	require.Equal(t, "+918888888888", messenger.waTo)
}

func TestNotifier_OptOutsSkipChannels(t *testing.T) {
	messenger := &fakeMessenger{}
	email := &fakeEmailSender{}
	n := NewNotifier(messenger, email, zerolog.Nop())

	user := fullProfile()
	user.Preferences.SMSEnabled = boolPtr(false)
	user.Preferences.EmailEnabled = boolPtr(false)

	results := n.SendSecurityAlert(context.Background(), testAlert(), user)

	require.Len(t, results, 1)
	require.Equal(t, "whatsapp", results[0].Channel)
	require.Zero(t, messenger.smsCalls)
	require.Zero(t, email.calls)
}

func TestNotifier_NoContactInfo(t *testing.T) {
	messenger := &fakeMessenger{}
	n := NewNotifier(messenger, &fakeEmailSender{}, zerolog.Nop())

	results := n.SendSecurityAlert(context.Background(), testAlert(), model.UserProfile{UserID: "u-2"})

	require.Empty(t, results)
	require.Zero(t, messenger.smsCalls)
	require.Zero(t, messenger.waCalls)
}

func TestNotifier_UnconfiguredSenders(t *testing.T) {
	n := NewNotifier(nil, nil, zerolog.Nop())

	results := n.SendSecurityAlert(context.Background(), testAlert(), fullProfile())

	require.Len(t, results, 3)
	for _, r := range results {
		require.False(t, r.Delivered, "channel %s", r.Channel)
		require.Contains(t, r.Detail, "not configured")
	}
}

func TestNotifier_ChannelFailureIsIsolated(t *testing.T) {
	messenger := &fakeMessenger{smsErr: errors.New("twilio status 429: rate limited")}
	email := &fakeEmailSender{}
	n := NewNotifier(messenger, email, zerolog.Nop())

	results := n.SendSecurityAlert(context.Background(), testAlert(), fullProfile())

	require.Len(t, results, 3)
	require.False(t, results[0].Delivered)
	require.Contains(t, results[0].Detail, "rate limited")
	require.True(t, results[1].Delivered)
	require.True(t, results[2].Delivered)
}

func TestShortMessage_OmitsEmptyAction(t *testing.T) {
	alert := testAlert()
	alert.ActionRequired = ""

	msg := shortMessage(alert)

	require.NotContains(t, msg, "Action:")
	require.Contains(t, msg, "HIGH ALERT: Civil unrest reported")
}

func TestEmailBodies_EscapeHTML(t *testing.T) {
	alert := testAlert()
	alert.Title = "Protests near <Market> & station"

	html, text := emailBodies(alert)

	require.Contains(t, html, "Protests near &lt;Market&gt; &amp; station")
	require.NotContains(t, html, "<Market>")
	require.Contains(t, text, "Protests near <Market> & station")
}
