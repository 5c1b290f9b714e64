package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAnalyzeSuccess(t *testing.T) {
	var gotReq request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/analyze" {
			t.Errorf("path = %q, want /analyze", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(response{
			Emotions: map[string]float64{"joy": 0.8},
			Keywords: []string{"good flow"},
			TermRelevance: []TermScore{
				{Term: "Clarity", Relevance: 0.6},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	result, err := c.Analyze(context.Background(), "good flow", []string{"Clarity"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if gotReq.Text != "good flow" {
		t.Errorf("sent text = %q", gotReq.Text)
	}
	if len(gotReq.Vocabulary) != 1 || gotReq.Vocabulary[0] != "Clarity" {
		t.Errorf("sent vocabulary = %v", gotReq.Vocabulary)
	}
	if result.Emotions["joy"] != 0.8 {
		t.Errorf("emotions = %v", result.Emotions)
	}
	if len(result.Keywords) != 1 || result.Keywords[0] != "good flow" {
		t.Errorf("keywords = %v", result.Keywords)
	}
}

func TestAnalyzeMissingFieldsDefaultEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	result, err := NewClient(srv.URL).Analyze(context.Background(), "hi there", nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.Emotions == nil {
		t.Error("emotions should default to an empty map")
	}
	if len(result.Keywords) != 0 || len(result.TermRelevance) != 0 {
		t.Errorf("result = %+v, want empty", result)
	}
}

func TestAnalyzeErrorFieldOn200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "model overloaded"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Analyze(context.Background(), "some text", nil)

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("err = %v, want *ServiceError", err)
	}
	if svcErr.Message != "model overloaded" {
		t.Errorf("message = %q", svcErr.Message)
	}
}

func TestAnalyzeNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "No text provided"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Analyze(context.Background(), "some text", nil)

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("err = %v, want *ServiceError", err)
	}
	if svcErr.Message != "No text provided" {
		t.Errorf("message = %q", svcErr.Message)
	}
}

func TestAnalyzeUnparseableErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>boom</html>"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Analyze(context.Background(), "some text", nil)

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("err = %v, want *ServiceError", err)
	}
	if svcErr.Message != "Unknown error" {
		t.Errorf("message = %q, want %q", svcErr.Message, "Unknown error")
	}
}

func TestAnalyzeEmptyTextNoRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := c.Analyze(context.Background(), text, nil); !errors.Is(err, ErrNoText) {
			t.Errorf("Analyze(%q) err = %v, want ErrNoText", text, err)
		}
	}
	if called {
		t.Error("empty text must not issue a network request")
	}
}

func TestAnalyzeTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // server gone: connection refused

	_, err := NewClient(srv.URL).Analyze(context.Background(), "some text", nil)

	var transErr *TransportError
	if !errors.As(err, &transErr) {
		t.Fatalf("err = %v, want *TransportError", err)
	}
}
