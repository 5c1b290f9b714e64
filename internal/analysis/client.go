package analysis

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
)

// DefaultBaseURL is the local development default for the analysis service.
const DefaultBaseURL = "http://127.0.0.1:5000"

// ErrNoText is returned when the submitted text is empty or whitespace-only.
// No request is sent in that case.
var ErrNoText = errors.New("no text to analyze")

// ServiceError is an application-level failure reported by the service,
// either as a non-2xx status or as an "error" field in the response body.
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// TransportError means the service could not be reached at all.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("analysis service unreachable at %s: %v (check that the service is running and the backend URL is correct)", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Client talks to the analysis service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at baseURL. An empty baseURL
// falls back to DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// request is the body of an analyze call.
type request struct {
	Text       string   `json:"text"`
	Vocabulary []string `json:"vocabulary"`
}

// response is the service's answer. All result fields are optional.
type response struct {
	Emotions      map[string]float64 `json:"emotions"`
	Keywords      []string           `json:"keywords"`
	TermRelevance []TermScore        `json:"term_relevance"`
	Error         string             `json:"error"`
}

// Analyze submits text and a vocabulary for analysis and returns the
// structured result. Empty text returns ErrNoText without a network call.
func (c *Client) Analyze(ctx context.Context, text string, vocabulary []string) (Result, error) {
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrNoText
	}

	body, err := json.Marshal(request{Text: text, Vocabulary: vocabulary})
	if err != nil {
		return Result{}, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Result{}, &TransportError{URL: c.baseURL, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, &TransportError{URL: c.baseURL, Err: err}
	}

	var apiResp response
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if err := json.Unmarshal(respBody, &apiResp); err != nil || apiResp.Error == "" {
			return Result{}, &ServiceError{Message: "Unknown error"}
		}
		return Result{}, &ServiceError{Message: apiResp.Error}
	}

	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return Result{}, fmt.Errorf("unmarshaling response: %w", err)
	}

	// The service reports some failures with a 200 and an error field.
	if apiResp.Error != "" {
		return Result{}, &ServiceError{Message: apiResp.Error}
	}

	result := Result{
		Emotions:      apiResp.Emotions,
		Keywords:      apiResp.Keywords,
		TermRelevance: apiResp.TermRelevance,
	}
	if result.Emotions == nil {
		result.Emotions = map[string]float64{}
	}

	return result, nil
}
