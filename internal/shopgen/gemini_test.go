package shopgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func completionResponse(t *testing.T, text string) string {
	t.Helper()
	resp := map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"parts": []map[string]string{{"text": text}},
				},
			},
		},
	}
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("failed to marshal fixture: %v", err)
	}
	return string(data)
}

func listingJSON(count int) string {
	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < count; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `{"name":"Item %d","description":"Grants a boost.","price":%d,"icon":"🔮"}`,
			i, 50+i*10)
	}
	b.WriteString("]")
	return b.String()
}

func testClient(serverURL string) *GeminiClient {
	return NewGeminiClientWithConfig(GeminiConfig{
		APIKey:  "test-key",
		BaseURL: serverURL,
		Model:   "test-model",
		Timeout: 5 * time.Second,
	})
}

func TestGeminiGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if !strings.Contains(r.URL.Path, "test-model:generateContent") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key in query")
		}

		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.GenerationConfig.ResponseMimeType != "application/json" {
			t.Errorf("expected JSON response mode, got %q", req.GenerationConfig.ResponseMimeType)
		}
		prompt := req.Contents[0].Parts[0].Text
		if !strings.Contains(prompt, "exercise") {
			t.Errorf("prompt should mention habit names, got: %s", prompt)
		}

		fmt.Fprint(w, completionResponse(t, listingJSON(6)))
	}))
	defer server.Close()

	items, err := testClient(server.URL).Generate(context.Background(), 6, []string{"exercise", "read"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(items) != 6 {
		t.Fatalf("expected 6 items, got %d", len(items))
	}
	for i, item := range items {
		if item.ID == "" {
			t.Errorf("item %d missing generated id", i)
		}
		if item.Name == "" || item.Price < 50 {
			t.Errorf("item %d not populated: %+v", i, item)
		}
	}
}

func TestGeminiGenerateRetriesOn429(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, completionResponse(t, listingJSON(3)))
	}))
	defer server.Close()

	items, err := testClient(server.URL).Generate(context.Background(), 3, nil)
	if err != nil {
		t.Fatalf("Generate failed after retry: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("expected 3 items, got %d", len(items))
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("expected 2 calls, got %d", got)
	}
}

func TestGeminiGenerateRejectsBadListing(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"not json", "totally not json"},
		{"wrong count", listingJSON(4)},
		{"price out of range", `[{"name":"X","description":"Grants x.","price":9999,"icon":"🔮"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, completionResponse(t, tt.text))
			}))
			defer server.Close()

			_, err := testClient(server.URL).Generate(context.Background(), 6, nil)
			if err == nil {
				t.Fatal("expected error for bad listing")
			}
		})
	}
}

func TestGeminiGenerateBadListingIsErrBadListing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, completionResponse(t, "not json at all"))
	}))
	defer server.Close()

	_, err := testClient(server.URL).Generate(context.Background(), 6, nil)
	if !errors.Is(err, ErrBadListing) {
		t.Errorf("expected ErrBadListing, got %v", err)
	}
}

func TestGeminiGenerateServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := testClient(server.URL).Generate(context.Background(), 6, nil)
	if err == nil {
		t.Fatal("expected error for server failure")
	}
}

func TestGeminiGenerateRequiresAPIKey(t *testing.T) {
	client := NewGeminiClient("")
	if _, err := client.Generate(context.Background(), 6, nil); err == nil {
		t.Fatal("expected error with empty api key")
	}
}
