// Package otp issues and verifies one-time passcodes for phone sign-in.
// Codes live in process memory; a restart invalidates outstanding codes,
// which is acceptable for their ten minute lifetime.
package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/voyagetravel/voyage-backend/internal/metrics"
)

const (
	codeLength  = 6
	validity    = 10 * time.Minute
	maxAttempts = 3
)

// Sender delivers a code to a normalized ten digit phone number.
type Sender interface {
	SendCode(ctx context.Context, phone, code string, validFor time.Duration) error
}

type entry struct {
	code      string
	createdAt time.Time
	expiresAt time.Time
	attempts  int
	verified  bool
}

// Service generates, stores, and verifies codes. Entries are keyed by the
// caller-supplied identifier verbatim; send and verify must use the same
// spelling of the phone number.
type Service struct {
	mu      sync.Mutex
	entries map[string]*entry

	sender Sender
	nowFn  func() time.Time
	logger zerolog.Logger
}

// NewService wires an OTP service. sender may be nil; codes are then logged
// for development instead of delivered.
func NewService(sender Sender, logger zerolog.Logger) *Service {
	return &Service{
		entries: make(map[string]*entry),
		sender:  sender,
		nowFn:   time.Now,
		logger:  logger.With().Str("component", "otp").Logger(),
	}
}

// Send issues a fresh code for the phone number, replacing any outstanding
// one, and returns the user-facing confirmation. Delivery failures degrade to
// logging the code; the code is stored either way so verification still works.
func (s *Service) Send(ctx context.Context, phone string) string {
	code := generateCode()

	delivered := false
	if s.sender != nil {
		if clean, ok := normalizePhone(phone); ok {
			if err := s.sender.SendCode(ctx, clean, code, validity); err != nil {
				metrics.CollaboratorFailures.WithLabelValues("sms_sender").Inc()
				s.logger.Warn().Err(err).Str("phone", phone).Msg("sms delivery failed, falling back to logged code")
			} else {
				delivered = true
			}
		} else {
			s.logger.Warn().Str("phone", phone).Msg("phone number not in deliverable format")
		}
	}

	if delivered {
		metrics.OTPSendsTotal.WithLabelValues("sms").Inc()
	} else {
		metrics.OTPSendsTotal.WithLabelValues("console").Inc()
		s.logger.Info().Str("phone", phone).Str("code", code).
			Msg("development mode: verification code logged, not delivered")
	}

	now := s.nowFn()
	s.mu.Lock()
	s.entries[phone] = &entry{
		code:      code,
		createdAt: now,
		expiresAt: now.Add(validity),
	}
	s.mu.Unlock()

	return fmt.Sprintf("OTP sent to %s", phone)
}

// Verify checks a submitted code. Codes are single use, expire after ten
// minutes, and allow three attempts before a fresh one must be requested.
func (s *Service) Verify(phone, code string) (bool, string) {
	ok, msg, outcome := s.verify(phone, code)
	metrics.OTPVerifiesTotal.WithLabelValues(outcome).Inc()
	return ok, msg
}

func (s *Service) verify(phone, code string) (bool, string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[phone]
	if !ok {
		return false, "No OTP found. Please request a new one.", "missing"
	}
	if e.verified {
		return false, "OTP already used. Please request a new one.", "used"
	}
	if s.nowFn().After(e.expiresAt) {
		delete(s.entries, phone)
		return false, "OTP expired. Please request a new one.", "expired"
	}
	if e.attempts >= maxAttempts {
		delete(s.entries, phone)
		return false, fmt.Sprintf("Maximum attempts (%d) exceeded. Please request a new OTP.", maxAttempts), "exhausted"
	}

	e.attempts++
	if e.code != code {
		return false, fmt.Sprintf("Invalid OTP. %d attempts remaining.", maxAttempts-e.attempts), "invalid"
	}

	e.verified = true
	return true, "OTP verified successfully", "verified"
}

// RunSweeper drops expired entries on an interval until ctx is cancelled.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sweep(); n > 0 {
				s.logger.Debug().Int("expired", n).Msg("swept expired verification codes")
			}
		}
	}
}

func (s *Service) sweep() int {
	now := s.nowFn()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for phone, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, phone)
			removed++
		}
	}
	return removed
}

func generateCode() string {
	max := big.NewInt(1)
	for i := 0; i < codeLength; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		// crypto/rand only fails when the platform's entropy source is
		// broken; no sane fallback exists.
		panic(fmt.Sprintf("otp: entropy source unavailable: %v", err))
	}
	return fmt.Sprintf("%0*d", codeLength, n)
}

// normalizePhone strips the +91 country prefix and separators, returning the
// bare ten digit number, or false when the input cannot be delivered to.
func normalizePhone(phone string) (string, bool) {
	clean := strings.NewReplacer("+91", "", "+", "", "-", "", " ", "").Replace(phone)
	if len(clean) != 10 {
		return "", false
	}
	for _, r := range clean {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return clean, true
}
