package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Complete(t *testing.T) {
	var gotReq chatRequest
	var gotAuth string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"choices": [{"message": {"role": "assistant", "content": "  Dale agua fresca.  "}}]
		}`))
	}))
	defer ts.Close()

	c, err := NewClient(Config{APIKey: "sk-test", BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	reply, err := c.Complete(context.Background(), "eres un vet", "mi perro tiene calor", 0.3)
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if reply != "Dale agua fresca." {
		t.Fatalf("expected trimmed reply, got %q", reply)
	}

	if gotAuth != "Bearer sk-test" {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}
	if gotReq.Model != defaultModel {
		t.Fatalf("expected default model %s, got %s", defaultModel, gotReq.Model)
	}
	if gotReq.Temperature != 0.3 {
		t.Fatalf("expected temperature forwarded, got %v", gotReq.Temperature)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Fatalf("expected system+user messages, got %+v", gotReq.Messages)
	}
}

func TestClient_Complete_NoChoices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer ts.Close()

	c, err := NewClient(Config{APIKey: "sk-test", BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}

	if _, err := c.Complete(context.Background(), "sys", "user", 0.4); err != ErrEmptyReply {
		t.Fatalf("expected ErrEmptyReply, got %v", err)
	}
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Config{}); err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
