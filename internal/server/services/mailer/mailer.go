package mailer

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"learnhub/internal/core"
)

//go:embed "templates"
var templateFS embed.FS

// DefaultEndpoint is the SMTP2GO send API
const DefaultEndpoint = "https://api.smtp2go.com/v3/email/send"

// ErrNotConfigured is returned by Send when no API key is set
var ErrNotConfigured = errors.New("mailer: no SMTP2GO API key configured")

type Mailer struct {
	apiKey     string
	sender     string
	endpoint   string
	client     *http.Client
	logger     *core.Logger
	attempts   int
	retryDelay time.Duration
}

// Option configures a Mailer
type Option func(*Mailer)

// WithEndpoint overrides the SMTP2GO API URL
func WithEndpoint(endpoint string) Option {
	return func(m *Mailer) { m.endpoint = endpoint }
}

// WithHTTPClient overrides the HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(m *Mailer) { m.client = client }
}

// WithRetry sets how often a send is attempted and the pause between tries
func WithRetry(attempts int, delay time.Duration) Option {
	return func(m *Mailer) {
		m.attempts = attempts
		m.retryDelay = delay
	}
}

// SMTP2GO API request structure
type SMTP2GORequest struct {
	APIKey   string   `json:"api_key"`
	To       []string `json:"to"`
	Sender   string   `json:"sender"`
	Subject  string   `json:"subject"`
	TextBody string   `json:"text_body"`
	HtmlBody string   `json:"html_body"`
	Headers  []Header `json:"custom_headers,omitempty"`
}

// Header is a custom email header
type Header struct {
	Header string `json:"header"`
	Value  string `json:"value"`
}

// SMTP2GO API response structure
type SMTP2GOResponse struct {
	RequestID string `json:"request_id"`
	Data      struct {
		Succeeded int    `json:"succeeded"`
		Failed    int    `json:"failed"`
		EmailID   string `json:"email_id"`
		Error     string `json:"error"`
	} `json:"data"`
}

func New(apiKey, sender string, logger *core.Logger, opts ...Option) *Mailer {
	m := &Mailer{
		apiKey:     apiKey,
		sender:     sender,
		endpoint:   DefaultEndpoint,
		client:     &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
		attempts:   3,
		retryDelay: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.attempts < 1 {
		m.attempts = 1
	}
	return m
}

// Configured reports whether the mailer can send
func (m *Mailer) Configured() bool {
	return m.apiKey != ""
}

// Message is a rendered email
type Message struct {
	Subject  string
	TextBody string
	HTMLBody string
}

// Render executes the subject, plainBody and htmlBody templates of
// templateFile with data
func Render(templateFile string, data any) (*Message, error) {
	tmpl, err := template.New("email").ParseFS(templateFS, "templates/"+templateFile)
	if err != nil {
		return nil, err
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		return nil, err
	}

	plainBody := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(plainBody, "plainBody", data); err != nil {
		return nil, err
	}

	htmlBody := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(htmlBody, "htmlBody", data); err != nil {
		return nil, err
	}

	return &Message{
		Subject:  subject.String(),
		TextBody: plainBody.String(),
		HTMLBody: htmlBody.String(),
	}, nil
}

// Send renders templateFile with data and delivers it to recipient,
// retrying transient failures. replyTo, when set, becomes the Reply-To
// header.
func (m *Mailer) Send(ctx context.Context, recipient, replyTo, templateFile string, data any) error {
	if !m.Configured() {
		return ErrNotConfigured
	}

	msg, err := Render(templateFile, data)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", templateFile, err)
	}

	request := SMTP2GORequest{
		APIKey:   m.apiKey,
		To:       []string{recipient},
		Sender:   m.sender,
		Subject:  msg.Subject,
		TextBody: msg.TextBody,
		HtmlBody: msg.HTMLBody,
	}
	if replyTo != "" {
		request.Headers = []Header{{Header: "Reply-To", Value: replyTo}}
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	for i := 1; i <= m.attempts; i++ {
		err = m.sendViaAPI(ctx, jsonData)
		if err == nil {
			m.logger.Debug("Email sent", "template", templateFile, "attempt", i)
			return nil
		}

		m.logger.Warn("SMTP2GO attempt failed", "attempt", i, "error", err)

		if i == m.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(m.retryDelay):
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", m.attempts, err)
}

func (m *Mailer) sendViaAPI(ctx context.Context, jsonData []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API request failed with status: %d", resp.StatusCode)
	}

	var response SMTP2GOResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if response.Data.Failed > 0 || response.Data.Error != "" {
		return fmt.Errorf("SMTP2GO rejected message: %s", response.Data.Error)
	}

	return nil
}
