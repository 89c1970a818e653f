package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func completionBody(content string) string {
	payload := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	data, _ := json.Marshal(payload)
	return string(data)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{APIKey: "key", BaseURL: server.URL, Model: "test-model"})
}

func TestCompleteReturnsContent(t *testing.T) {
	var gotBody chatCompletionRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer key" {
			t.Errorf("authorization header = %q", auth)
		}
		w.Write([]byte(completionBody("expanded query text")))
	})

	content, err := client.Complete(context.Background(), Request{
		SystemPrompt: "system",
		UserPrompt:   "user",
		MaxTokens:    300,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if content != "expanded query text" {
		t.Errorf("content = %q", content)
	}
	if gotBody.MaxTokens != 300 {
		t.Errorf("max_tokens = %d, want 300", gotBody.MaxTokens)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" {
		t.Errorf("unexpected messages: %+v", gotBody.Messages)
	}
}

func TestCompleteJSONOutputSetsResponseFormat(t *testing.T) {
	var gotBody chatCompletionRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(completionBody(`{"ok":true}`)))
	})

	if _, err := client.Complete(context.Background(), Request{UserPrompt: "u", JSONOutput: true}); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if gotBody.ResponseFormat["type"] != jsonResponseType {
		t.Errorf("response_format = %v", gotBody.ResponseFormat)
	}
}

func TestCompleteHTTPErrorSurfaces(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})

	_, err := client.Complete(context.Background(), Request{UserPrompt: "u"})
	if err == nil {
		t.Fatal("expected error on 503 response")
	}
	if !strings.Contains(err.Error(), "http 503") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCompleteEmptyContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"message":{"content":""},"finish_reason":"content_filter"}]}`))
	})

	_, err := client.Complete(context.Background(), Request{UserPrompt: "u"})
	if err == nil {
		t.Fatal("expected empty content error")
	}
	if !strings.Contains(err.Error(), "content_filter") {
		t.Errorf("finish reason missing from error: %v", err)
	}
}

func TestCompleteDeltaFallback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[{"delta":{"content":"from delta"}}]}`))
	})

	content, err := client.Complete(context.Background(), Request{UserPrompt: "u"})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if content != "from delta" {
		t.Errorf("content = %q", content)
	}
}

func TestCompleteRequiresPromptAndKey(t *testing.T) {
	client := NewClient(Config{APIKey: "key"})
	if _, err := client.Complete(context.Background(), Request{}); err == nil {
		t.Error("expected error for empty prompt")
	}
	client = NewClient(Config{})
	if _, err := client.Complete(context.Background(), Request{UserPrompt: "u"}); err == nil {
		t.Error("expected error for missing api key")
	}
}

func TestHealthCheck(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(completionBody(`{"ok":true}`)))
	})
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck failed: %v", err)
	}
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Atmosphere []int `json:"atmosphere"`
	}
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"direct", `{"atmosphere":[0,1]}`, false},
		{"code fence", "```json\n{\"atmosphere\":[0,1]}\n```", false},
		{"prose wrapped", `Here you go: {"atmosphere":[0,1]} hope that helps`, false},
		{"empty", "", true},
		{"garbage", "no json here at all", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var target payload
			err := DecodeJSON(tc.content, &target)
			if tc.wantErr != (err != nil) {
				t.Fatalf("DecodeJSON error = %v, wantErr %v", err, tc.wantErr)
			}
			if !tc.wantErr && len(target.Atmosphere) != 2 {
				t.Errorf("decoded payload = %+v", target)
			}
		})
	}
}
