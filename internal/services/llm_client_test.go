package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func llmServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("missing bearer auth, got %q", got)
		}
		response := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(response)
	}))
}

func TestGenerateTemplateStripsFencesAndValidates(t *testing.T) {
	server := llmServer(t, "```html\n<div>{{line_items}}{{totals}}</div>\n```")
	defer server.Close()

	client := NewLLMClient(server.URL, "test-key", "test-model")
	html, err := client.GenerateTemplate(context.Background(), "make it blue", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "```") {
		t.Errorf("code fence not stripped: %s", html)
	}
	if !strings.Contains(html, "{{line_items}}") {
		t.Errorf("tokens lost: %s", html)
	}
}

func TestGenerateTemplateRejectsMissingTokens(t *testing.T) {
	server := llmServer(t, "<div>pretty but useless</div>")
	defer server.Close()

	client := NewLLMClient(server.URL, "test-key", "test-model")
	if _, err := client.GenerateTemplate(context.Background(), "make it blue", ""); err == nil {
		t.Fatal("expected error for template without required tokens")
	}
}

func TestChatSurfacesUpstreamErrorVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer server.Close()

	client := NewLLMClient(server.URL, "test-key", "test-model")
	_, err := client.GenerateTemplate(context.Background(), "prompt", "")
	if err == nil {
		t.Fatal("expected upstream error")
	}
	if !strings.Contains(err.Error(), "429") || !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("upstream status and body must be surfaced, got %v", err)
	}
}

func TestParseReceipt(t *testing.T) {
	payload := `{"date":"2026-03-02","amount":89.90,"description":"Hall rental March","category":"venue-rental","hasVAT":true,"vatRate":19,"vendor":"Sporthalle Nord","invoiceNumber":"SH-1042","invoiceDate":"2026-03-01"}`
	server := llmServer(t, "```json\n"+payload+"\n```")
	defer server.Close()

	client := NewLLMClient(server.URL, "test-key", "test-model")
	fields, err := client.ParseReceipt(context.Background(), "aW1hZ2U=", "image/jpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fields.Category != "venue-rental" || fields.Amount != 89.90 {
		t.Errorf("unexpected fields: %+v", fields)
	}
	if fields.VATRate == nil || *fields.VATRate != 19 {
		t.Errorf("vat rate not parsed: %+v", fields.VATRate)
	}
}

func TestParseReceiptRejectsBadCategoryAndRate(t *testing.T) {
	cases := []string{
		`{"date":"2026-03-02","amount":10,"category":"groceries"}`,
		`{"date":"2026-03-02","amount":10,"category":"other","hasVAT":true,"vatRate":16}`,
	}
	for _, payload := range cases {
		server := llmServer(t, payload)
		client := NewLLMClient(server.URL, "test-key", "test-model")
		if _, err := client.ParseReceipt(context.Background(), "aW1hZ2U=", "image/jpeg"); err == nil {
			t.Errorf("expected validation error for %s", payload)
		}
		server.Close()
	}
}
