// Package baas talks to the hosted backend's auth and object storage REST APIs.
package baas

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrNotFound is returned when the backend answers 404.
var ErrNotFound = errors.New("baas: not found")

// ErrUnauthorized is returned when the backend rejects credentials or a token.
var ErrUnauthorized = errors.New("baas: unauthorized")

// Config holds connection settings.
type Config struct {
	URL        string
	ServiceKey string
	Bucket     string
	Timeout    time.Duration
}

// Client is a thin REST client. Calls are not retried.
type Client struct {
	http       *resty.Client
	baseURL    string
	serviceKey string
	bucket     string
	logger     *zap.Logger
}

// APIError carries a non-2xx backend answer.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("baas: status %d: %s", e.Status, e.Message)
}

// Unwrap maps auth and not-found statuses onto the package sentinels.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

// New builds a client for the backend at cfg.URL.
func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	baseURL := strings.TrimRight(cfg.URL, "/")
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("apikey", cfg.ServiceKey).
		SetHeader("Accept", "application/json")

	return &Client{
		http:       httpClient,
		baseURL:    baseURL,
		serviceKey: cfg.ServiceKey,
		bucket:     cfg.Bucket,
		logger:     logger,
	}
}

// errorBody covers the error shapes returned by the auth and storage services.
type errorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
	Message          string `json:"message"`
}

func apiError(resp *resty.Response) *APIError {
	var body errorBody
	_ = json.Unmarshal(resp.Body(), &body)
	message := firstNonEmpty(body.ErrorDescription, body.Msg, body.Message, body.Error, http.StatusText(resp.StatusCode()))
	return &APIError{Status: resp.StatusCode(), Message: message}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
