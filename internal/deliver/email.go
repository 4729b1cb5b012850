// Package deliver pushes finished newsletter content to review and delivery
// channels: preview email and the CRM the sends go out from.
package deliver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"facet/internal/logger"
)

// ErrEmailUnavailable indicates the email sender has no API key configured.
var ErrEmailUnavailable = errors.New("deliver: email sender not configured")

// SendResult reports the outcome for one recipient.
type SendResult struct {
	Recipient string `json:"recipient"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// EmailConfig holds preview email settings.
type EmailConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
	BaseURL   string // Overridable for tests; defaults to the SendGrid API
}

// EmailSender sends rendered previews through the SendGrid v3 API.
type EmailSender struct {
	rest      *resty.Client
	fromEmail string
	fromName  string
	log       zerolog.Logger
}

// NewEmailSender builds an EmailSender. Returns ErrEmailUnavailable when no
// API key is set.
func NewEmailSender(cfg EmailConfig) (*EmailSender, error) {
	if cfg.APIKey == "" {
		return nil, ErrEmailUnavailable
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.sendgrid.com"
	}

	rest := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(15*time.Second).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json")

	return &EmailSender{
		rest:      rest,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		log:       logger.With("deliver"),
	}, nil
}

type mailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type mailRequest struct {
	Personalizations []struct {
		To []mailAddress `json:"to"`
	} `json:"personalizations"`
	From    mailAddress `json:"from"`
	Subject string      `json:"subject"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

// SendPreview emails the rendered newsletter to each recipient in turn.
// Recipients are isolated from each other: one failure is recorded and the
// loop continues, so the caller always gets a full per-recipient report.
func (s *EmailSender) SendPreview(ctx context.Context, recipients []string, subject, html string) []SendResult {
	results := make([]SendResult, 0, len(recipients))
	for _, recipient := range recipients {
		err := s.sendOne(ctx, recipient, subject, html)
		result := SendResult{Recipient: recipient, Success: err == nil}
		if err != nil {
			result.Error = err.Error()
			s.log.Warn().Err(err).Str("recipient", recipient).Msg("preview send failed")
		}
		results = append(results, result)
	}
	return results
}

func (s *EmailSender) sendOne(ctx context.Context, recipient, subject, html string) error {
	body := mailRequest{
		From:    mailAddress{Email: s.fromEmail, Name: s.fromName},
		Subject: subject,
	}
	body.Personalizations = []struct {
		To []mailAddress `json:"to"`
	}{{To: []mailAddress{{Email: recipient}}}}
	body.Content = []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	}{{Type: "text/html", Value: html}}

	resp, err := s.rest.R().
		SetContext(ctx).
		SetBody(body).
		Post("/v3/mail/send")
	if err != nil {
		return fmt.Errorf("sending to %s: %w", recipient, err)
	}
	if resp.IsError() {
		return fmt.Errorf("sending to %s: provider returned %s", recipient, resp.Status())
	}
	return nil
}
