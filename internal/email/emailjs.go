// Package email dispatches notifications through the EmailJS REST API.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hirendodiya515/roller-management-system/internal/models"
)

const defaultEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// Params is the template parameter bag an EmailJS template consumes.
type Params struct {
	Title   string `json:"title"`
	Message string `json:"message"` // HTML body
	Name    string `json:"name"`
	Email   string `json:"email"`    // reply-to
	ToEmail string `json:"to_email"` // semicolon-joined recipient list
}

// Emailer attempts a single delivery. No retries are performed on failure.
type Emailer interface {
	Send(ctx context.Context, cfg *models.NotificationConfig, params Params) error
}

// EmailJSClient implements Emailer against the EmailJS HTTP API.
type EmailJSClient struct {
	Endpoint   string
	HTTPClient *http.Client
}

func NewEmailJSClient() *EmailJSClient {
	return &EmailJSClient{
		Endpoint:   defaultEndpoint,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type sendRequest struct {
	ServiceID      string `json:"service_id"`
	TemplateID     string `json:"template_id"`
	UserID         string `json:"user_id"` // public key
	AccessToken    string `json:"accessToken,omitempty"`
	TemplateParams Params `json:"template_params"`
}

func (c *EmailJSClient) Send(ctx context.Context, cfg *models.NotificationConfig, params Params) error {
	body, err := json.Marshal(sendRequest{
		ServiceID:      cfg.ServiceID,
		TemplateID:     cfg.TemplateID,
		UserID:         cfg.PublicKey,
		AccessToken:    cfg.PrivateKey,
		TemplateParams: params,
	})
	if err != nil {
		return fmt.Errorf("encode emailjs request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("emailjs returned %d: %s", resp.StatusCode, snippet)
	}
	return nil
}
