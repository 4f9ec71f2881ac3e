package tracker

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNotFound is returned for 404 responses. For assessments it means none has been generated yet.
var ErrNotFound = errors.New("tracker: not found")

// Config defines tracker API client settings
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	UserAgent  string
}

// Client talks to the job tracking backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
}

// APIError is a non-404 error response from the backend
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("tracker: %s %s: API error (%d)", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("tracker: %s %s: API error (%d): %s", e.Method, e.Path, e.StatusCode, e.Detail)
}

// Temporary reports whether retrying the same request later may succeed.
func (e *APIError) Temporary() bool {
	return e.StatusCode >= http.StatusInternalServerError || e.StatusCode == http.StatusTooManyRequests
}

// LinkRequest is the body of POST /opportunities/from-link
type LinkRequest struct {
	Link string `json:"link"`
}

// UploadFile is one file part of a profile generation request
type UploadFile struct {
	Name    string
	Content []byte
}

// ProfileGenerationRequest is sent as multipart form data
type ProfileGenerationRequest struct {
	Files       []UploadFile
	Links       []string
	Description string
}

// errorBody matches FastAPI's {"detail": ...} error responses
type errorBody struct {
	Detail any `json:"detail"`
}
