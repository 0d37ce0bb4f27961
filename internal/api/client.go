// Package api implements the HTTP client for the remote document Q&A
// service. All endpoints carry the session identifier in the User-ID
// header; an empty identifier is valid and simply sent as an empty header.
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the base URL for the Q&A service.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 60 * time.Second

	// maxResponseSize caps how much of a response body is read.
	maxResponseSize = 10 * 1024 * 1024

	userIDHeader = "User-ID"
)

// Error represents a non-success response from the service.
// Message holds the server-supplied "message" field when present.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error (status %d)", e.StatusCode)
}

// StartSessionResponse is the response from GET /start-session.
type StartSessionResponse struct {
	UserID string `json:"user_id"`
}

// AskRequest is the request body for POST /ask.
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse is the response from POST /ask. All fields are optional on
// the wire; absent collections decode as nil.
type AskResponse struct {
	Response    string   `json:"response"`
	Citations   []string `json:"citations"`
	Suggestions []string `json:"suggestions"`
}

// suggestResponse is the response from GET /ask?query=.
type suggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// UploadResponse is the response from POST /upload.
type UploadResponse struct {
	Message string `json:"message"`
}

// Client is an HTTP client for the Q&A service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new client for the service at baseURL.
// A zero timeout falls back to DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// StartSession requests a new session identifier from the service.
func (c *Client) StartSession() (string, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/start-session", nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	body, err := c.do(req)
	if err != nil {
		return "", err
	}

	var result StartSessionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	if result.UserID == "" {
		return "", fmt.Errorf("no user_id in response")
	}

	return result.UserID, nil
}

// Ask sends a question and returns the answer together with citations and
// follow-up suggestions.
func (c *Client) Ask(userID, question string) (*AskResponse, error) {
	jsonData, err := json.Marshal(AskRequest{Question: question})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/ask", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(userIDHeader, userID)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var result AskResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	return &result, nil
}

// Suggest looks up follow-up suggestions for a partial question.
// A nil slice means the service returned none.
func (c *Client) Suggest(userID, query string) ([]string, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/ask?query="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set(userIDHeader, userID)

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var result suggestResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	return result.Suggestions, nil
}

// Upload sends a document to the service for indexing as a multipart form
// with a single "file" field. Returns the server's status message.
func (c *Client) Upload(userID, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("closing form: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set(userIDHeader, userID)

	body, err := c.do(req)
	if err != nil {
		return "", err
	}

	var result UploadResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}

	return result.Message, nil
}

// GetFile retrieves an indexed file by name and returns its raw contents.
func (c *Client) GetFile(userID, name string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/files/"+url.PathEscape(name), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set(userIDHeader, userID)

	return c.do(req)
}

// do sends the request and returns the response body, converting
// non-success statuses into *Error.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, newError(resp.StatusCode, body)
	}

	return body, nil
}

// newError extracts the server's "message" field when the error body is
// JSON, so callers can surface it to the user.
func newError(statusCode int, body []byte) *Error {
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)
	return &Error{StatusCode: statusCode, Message: payload.Message}
}
