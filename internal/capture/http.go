package capture

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// InsecureEndpointError means the transcriber endpoint is not a secure
// origin. Capture over an insecure origin is refused per attempt, before any
// state change.
type InsecureEndpointError struct {
	URL string
}

func (e *InsecureEndpointError) Error() string {
	return fmt.Sprintf("speech capture requires an https or local transcriber endpoint, got %s (serve the transcriber over https or run it on this machine, or type your feedback instead)", e.URL)
}

// SecureEndpoint reports whether rawURL qualifies as a secure origin for
// capture: https, or a local-machine host over any scheme.
func SecureEndpoint(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Scheme == "https" {
		return true
	}

	host := u.Hostname()
	if host == "localhost" || host == "127.0.0.1" || host == "::1" {
		return true
	}
	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return true
	}
	return false
}

// Client requests transcripts from a remote transcription service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a transcriber client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		// Dictation can legitimately take a while; the context handles
		// user cancellation.
		httpClient: &http.Client{Timeout: 2 * time.Minute},
	}
}

// Precondition refuses capture when the endpoint is not a secure origin.
func (c *Client) Precondition() error {
	if !SecureEndpoint(c.baseURL) {
		return &InsecureEndpointError{URL: c.baseURL}
	}
	return nil
}

// transcribeResponse is the transcriber's answer.
type transcribeResponse struct {
	Transcript string `json:"transcript"`
	Error      string `json:"error"`
}

// Transcribe asks the service to capture and transcribe one utterance.
func (c *Client) Transcribe(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transcribe", strings.NewReader("{}"))
	if err != nil {
		return "", &Error{Reason: ReasonOther, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &Error{Reason: ReasonNetwork, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Reason: ReasonNetwork, Err: err}
	}

	var tr transcribeResponse
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		reason := ReasonOther
		switch resp.StatusCode {
		case http.StatusForbidden:
			reason = ReasonPermissionDenied
		case http.StatusNotFound:
			reason = ReasonNoMicrophone
		case http.StatusServiceUnavailable:
			reason = ReasonServiceUnavailable
		}
		msg := resp.Status
		if json.Unmarshal(body, &tr) == nil && tr.Error != "" {
			msg = tr.Error
		}
		return "", &Error{Reason: reason, Err: fmt.Errorf("transcriber: %s", msg)}
	}

	if err := json.Unmarshal(body, &tr); err != nil {
		return "", &Error{Reason: ReasonOther, Err: fmt.Errorf("unmarshaling transcript: %w", err)}
	}
	if tr.Error != "" {
		return "", &Error{Reason: ReasonOther, Err: fmt.Errorf("transcriber: %s", tr.Error)}
	}

	return strings.TrimSpace(tr.Transcript), nil
}
