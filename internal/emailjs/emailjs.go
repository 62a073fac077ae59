// Package emailjs relays template-based messages through the EmailJS REST API.
//
// The client mirrors the browser SDK's send call: a service, a template, the
// template parameters and the account's public key. An optional access token
// (the account's private key) authorises calls made from a server.
package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultEndpoint is the public EmailJS API origin.
	DefaultEndpoint = "https://api.emailjs.com"

	sendPath   = "/api/v1.0/email/send"
	libVersion = "go-portfolio/1.0"
)

// ErrMissingCredentials is returned when the service, template or public key is empty.
var ErrMissingCredentials = errors.New("emailjs: service id, template id and public key are required")

// Error is a rejection reported by the provider.
type Error struct {
	Status int
	Text   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("emailjs: status %d: %s", e.Status, e.Text)
}

// Response is the provider's answer to an accepted send.
type Response struct {
	Status int
	Text   string
}

// Credentials select the account, service and template used for every send.
type Credentials struct {
	ServiceID   string
	TemplateID  string
	PublicKey   string
	AccessToken string
}

// Config configures a Client.
type Config struct {
	Endpoint    string
	Credentials Credentials
	// Timeout bounds a single send. Zero means no timeout.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client sends messages through EmailJS.
type Client struct {
	endpoint string
	creds    Credentials
	http     *http.Client
	tracer   trace.Tracer
}

type sendRequest struct {
	LibVersion     string         `json:"lib_version"`
	UserID         string         `json:"user_id"`
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	TemplateParams map[string]any `json:"template_params"`
	AccessToken    string         `json:"accessToken,omitempty"`
}

// New constructs a Client.
func New(cfg Config) (*Client, error) {
	c := cfg.Credentials
	if c.ServiceID == "" || c.TemplateID == "" || c.PublicKey == "" {
		return nil, ErrMissingCredentials
	}

	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		endpoint: endpoint,
		creds:    c,
		http:     httpClient,
		tracer:   otel.Tracer("github.com/RahulKumar035/portfolio/internal/emailjs"),
	}, nil
}

// Send relays params through the configured template.
func (c *Client) Send(ctx context.Context, params map[string]any) error {
	_, err := c.SendTemplate(ctx, c.creds.ServiceID, c.creds.TemplateID, params)
	return err
}

// SendTemplate relays params through an explicit service and template,
// authenticating with the configured keys.
func (c *Client) SendTemplate(ctx context.Context, serviceID, templateID string, params map[string]any) (Response, error) {
	ctx, span := c.tracer.Start(ctx, "emailjs.send")
	defer span.End()
	span.SetAttributes(
		attribute.String("emailjs.service_id", serviceID),
		attribute.String("emailjs.template_id", templateID),
	)

	body, err := json.Marshal(sendRequest{
		LibVersion:     libVersion,
		UserID:         c.creds.PublicKey,
		ServiceID:      serviceID,
		TemplateID:     templateID,
		TemplateParams: params,
		AccessToken:    c.creds.AccessToken,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode failed")
		return Response{}, fmt.Errorf("emailjs: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+sendPath, bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		return Response{}, fmt.Errorf("emailjs: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failed")
		return Response{}, fmt.Errorf("emailjs: send: %w", err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		return Response{}, fmt.Errorf("emailjs: read response: %w", err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode != http.StatusOK {
		perr := &Error{Status: resp.StatusCode, Text: strings.TrimSpace(string(text))}
		span.RecordError(perr)
		span.SetStatus(codes.Error, "rejected")
		return Response{}, perr
	}

	span.SetStatus(codes.Ok, "sent")
	return Response{Status: resp.StatusCode, Text: strings.TrimSpace(string(text))}, nil
}
