package factory

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/voyagetravel/voyage-backend/internal/config"
	"github.com/voyagetravel/voyage-backend/internal/notify"
	"github.com/voyagetravel/voyage-backend/internal/otp"
)

const twilioTimeout = 15 * time.Second

// NewAlertNotifier wires the multi-channel alert notifier. Either sender may
// come back nil when its credentials are absent; the notifier reports those
// channels as unconfigured instead of failing.
func NewAlertNotifier(cfg *config.Config, log zerolog.Logger) *notify.Notifier {
	var messenger notify.MessageSender
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		messenger = notify.NewTwilioSender(
			cfg.TwilioAccountSID,
			cfg.TwilioAuthToken,
			cfg.TwilioPhoneNumber,
			cfg.TwilioWhatsAppNumber,
			twilioTimeout,
		)
	} else {
		log.Warn().Msg("Twilio credentials not configured; SMS and WhatsApp alerts disabled")
	}

	var email notify.EmailSender
	if cfg.SMTPEmail != "" && cfg.SMTPPassword != "" {
		email = notify.NewSMTPSender(
			cfg.SMTPHost,
			cfg.SMTPPort,
			cfg.SMTPEmail,
			cfg.SMTPPassword,
			cfg.FromEmail,
			cfg.FromName,
		)
	} else {
		log.Warn().Msg("SMTP credentials not configured; email alerts disabled")
	}

	return notify.NewNotifier(messenger, email, log)
}

// NewOTPSender returns the SMS delivery backend for verification codes, or
// nil when no API key is configured; the OTP service then logs codes instead.
func NewOTPSender(cfg *config.Config, log zerolog.Logger) otp.Sender {
	if cfg.Fast2SMSAPIKey == "" {
		log.Warn().Msg("Fast2SMS not configured; verification codes will be logged, not delivered")
		return nil
	}
	return otp.NewFast2SMSSender(cfg.Fast2SMSAPIKey, 10*time.Second)
}
