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
	"facet/internal/textproc"
)

// ErrCRMUnavailable indicates the CRM client has no credentials configured.
var ErrCRMUnavailable = errors.New("deliver: crm not configured")

// CRMConfig holds CRM API credentials.
type CRMConfig struct {
	BaseURL string
	AppID   string
	APIKey  string
}

// CRMMessage is a newsletter draft pushed into the CRM as an email message
// object, ready for a campaign send.
type CRMMessage struct {
	Name      string `json:"name"` // Internal message name, e.g. "June 2026 Newsletter"
	Subject   string `json:"subject"`
	HTML      string `json:"html"`
	FromEmail string `json:"from_email"`
	FromName  string `json:"from_name"`
}

// crmResponse mirrors the CRM's create-object envelope.
type crmResponse struct {
	Code int `json:"code"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// CRMClient creates email message objects over the CRM's REST API.
type CRMClient struct {
	rest *resty.Client
	log  zerolog.Logger
}

// NewCRMClient builds a CRMClient. Returns ErrCRMUnavailable when credentials
// are missing.
func NewCRMClient(cfg CRMConfig) (*CRMClient, error) {
	if cfg.BaseURL == "" || cfg.AppID == "" || cfg.APIKey == "" {
		return nil, ErrCRMUnavailable
	}

	rest := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(20*time.Second).
		SetHeader("Api-Appid", cfg.AppID).
		SetHeader("Api-Key", cfg.APIKey)

	return &CRMClient{rest: rest, log: logger.With("crm")}, nil
}

// PushMessage creates the message in the CRM and returns its object ID. A
// plain-text body is derived from the HTML so the CRM stores both parts.
func (c *CRMClient) PushMessage(ctx context.Context, msg CRMMessage) (string, error) {
	if msg.Name == "" || msg.HTML == "" {
		return "", fmt.Errorf("crm message requires a name and an html body")
	}

	form := map[string]string{
		"alias":          msg.Name,
		"subject":        msg.Subject,
		"type":           "e-mail",
		"from":           "custom",
		"send_out_name":  msg.FromName,
		"reply_to_email": msg.FromEmail,
		"message_body":   msg.HTML,
		"text_body":      textproc.HTMLToText(msg.HTML),
	}

	var parsed crmResponse
	resp, err := c.rest.R().
		SetContext(ctx).
		SetFormData(form).
		SetResult(&parsed).
		Post("/1/message")
	if err != nil {
		return "", fmt.Errorf("pushing message to crm: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("pushing message to crm: provider returned %s", resp.Status())
	}
	if parsed.Data.ID == "" {
		return "", fmt.Errorf("crm accepted the message but returned no object id")
	}

	c.log.Info().Str("message_id", parsed.Data.ID).Str("name", msg.Name).Msg("message pushed to crm")
	return parsed.Data.ID, nil
}
