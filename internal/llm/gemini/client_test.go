package gemini

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resume-screener/internal/llm"
)

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	client, err := NewClient("test-key", "gemini-2.5-flash", time.Second)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	client.baseURL = serverURL
	return client
}

func candidateBody(text string) string {
	escaped := strings.ReplaceAll(text, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	escaped = strings.ReplaceAll(escaped, "\n", `\n`)
	return `{"candidates":[{"content":{"parts":[{"text":"` + escaped + `"}]}}]}`
}

func TestAnalyzeStructuredResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("missing api key header, got %q", got)
		}
		if !strings.Contains(r.URL.Path, "gemini-2.5-flash:generateContent") {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(candidateBody(`{"overall_score": 75, "summary": "ok", "strengths": [], "weaknesses": [], "missing_keywords": [], "improvement_suggestions": []}`)))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result := client.Analyze(context.Background(), "resume", "Cloud Engineer")

	if result.Kind() != llm.KindStructured {
		t.Fatalf("expected structured result, got %v", result.Kind())
	}
	s, _ := result.Structured()
	if s.OverallScore != 75 || s.Summary != "ok" {
		t.Fatalf("unexpected fields: %+v", s)
	}
}

func TestAnalyzePromptContainsRoleAndResume(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.Write([]byte(candidateBody(`{}`)))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	client.Analyze(context.Background(), "worked on kubernetes clusters", "Platform Engineer")

	if !strings.Contains(gotBody, "Platform Engineer") {
		t.Fatalf("prompt missing target role: %s", gotBody)
	}
	if !strings.Contains(gotBody, "worked on kubernetes clusters") {
		t.Fatalf("prompt missing resume text: %s", gotBody)
	}
}

func TestAnalyzeNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result := client.Analyze(context.Background(), "resume", "Cloud Engineer")

	if result.Kind() != llm.KindError {
		t.Fatalf("expected error-shaped result, got %v", result.Kind())
	}
	s, _ := result.Structured()
	if s.Summary != "Gemini returned no candidates." {
		t.Fatalf("unexpected summary %q", s.Summary)
	}
	if s.OverallScore != 0 {
		t.Fatalf("expected score 0, got %d", s.OverallScore)
	}
}

func TestAnalyzeAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"API key invalid","status":"PERMISSION_DENIED"}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result := client.Analyze(context.Background(), "resume", "Cloud Engineer")

	if result.Kind() != llm.KindError {
		t.Fatalf("expected error-shaped result, got %v", result.Kind())
	}
	s, _ := result.Structured()
	if !strings.Contains(s.Summary, "Gemini API error:") {
		t.Fatalf("expected error prefix in summary, got %q", s.Summary)
	}
	if !strings.Contains(s.Summary, "API key invalid") {
		t.Fatalf("expected error text in summary, got %q", s.Summary)
	}
}

func TestAnalyzeTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := newTestClient(t, server.URL)
	result := client.Analyze(context.Background(), "resume", "Cloud Engineer")

	if result.Kind() != llm.KindError {
		t.Fatalf("expected error-shaped result, got %v", result.Kind())
	}
	s, _ := result.Structured()
	if !strings.HasPrefix(s.Summary, "Gemini API error:") {
		t.Fatalf("expected error prefix, got %q", s.Summary)
	}
}

func TestAnalyzeRawFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(candidateBody("no json here, just prose")))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	result := client.Analyze(context.Background(), "resume", "Cloud Engineer")

	raw, ok := result.Raw()
	if !ok {
		t.Fatalf("expected raw result, got kind %v", result.Kind())
	}
	if raw != "no json here, just prose" {
		t.Fatalf("expected verbatim text, got %q", raw)
	}
}

func TestNewClientRequiresKeyAndModel(t *testing.T) {
	if _, err := NewClient("", "gemini-2.5-flash", time.Second); err == nil {
		t.Fatalf("expected error for missing key")
	}
	if _, err := NewClient("key", "", time.Second); err == nil {
		t.Fatalf("expected error for missing model")
	}
}
