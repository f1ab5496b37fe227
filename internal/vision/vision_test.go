package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAvailable(t *testing.T) {
	if NewClassifier("", "").Available() {
		t.Error("classifier without a key must not report available")
	}
	if !NewClassifier("sk-test", "").Available() {
		t.Error("classifier with a key must report available")
	}
}

func TestDescribeUnconfigured(t *testing.T) {
	c := NewClassifier("", "")
	if _, err := c.Describe(context.Background(), []byte("jpeg"), ""); err == nil {
		t.Fatal("expected error when no API key is set")
	}
}

func TestDescribe(t *testing.T) {
	frame := []byte{0xff, 0xd8, 0xff, 0xe0} // jpeg magic

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-api-key"); got != "sk-test" {
			t.Errorf("missing api key header, got %q", got)
		}
		if got := r.Header.Get("anthropic-version"); got == "" {
			t.Error("missing anthropic-version header")
		}

		body, _ := io.ReadAll(r.Body)
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Content []struct {
					Type   string `json:"type"`
					Text   string `json:"text"`
					Source struct {
						Type      string `json:"type"`
						MediaType string `json:"media_type"`
						Data      string `json:"data"`
					} `json:"source"`
				} `json:"content"`
			} `json:"messages"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if req.Model != "test-model" {
			t.Errorf("unexpected model: %q", req.Model)
		}
		if len(req.Messages) != 1 || len(req.Messages[0].Content) != 2 {
			t.Fatalf("expected one message with image+text blocks, got %+v", req.Messages)
		}
		img := req.Messages[0].Content[0]
		if img.Type != "image" || img.Source.MediaType != "image/jpeg" {
			t.Errorf("unexpected image block: %+v", img)
		}
		if img.Source.Data != base64.StdEncoding.EncodeToString(frame) {
			t.Error("image bytes not base64-encoded as sent")
		}
		if txt := req.Messages[0].Content[1]; txt.Type != "text" || txt.Text != DefaultPrompt {
			t.Errorf("unexpected text block: %+v", txt)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"model": "test-model",
			"content": [
				{"type": "text", "text": "Pikachu. "},
				{"type": "text", "text": "An electric mouse."}
			]
		}`))
	}))
	defer server.Close()

	c := NewClassifier("sk-test", "test-model")
	c.SetEndpoint(server.URL)

	text, err := c.Describe(context.Background(), frame, "")
	if err != nil {
		t.Fatalf("Describe failed: %v", err)
	}
	if text != "Pikachu. An electric mouse." {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestDescribeAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"type": "rate_limit_error"}}`))
	}))
	defer server.Close()

	c := NewClassifier("sk-test", "test-model")
	c.SetEndpoint(server.URL)

	if _, err := c.Describe(context.Background(), []byte("jpeg"), "what is this"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
