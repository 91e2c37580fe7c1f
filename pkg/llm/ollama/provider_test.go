package ollama

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-dashboard-be/pkg/llm"
)

func TestChatStreamAccumulatesChunks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-ndjson")
		w.Write([]byte(`{"message":{"role":"assistant","content":"Hel"},"done":false}` + "\n"))
		w.Write([]byte(`{"message":{"role":"assistant","content":"lo "},"done":false}` + "\n"))
		w.Write([]byte(`{"message":{"role":"assistant","content":"world"},"done":true}` + "\n"))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "test-model")

	var got []string
	full, err := p.ChatStream(context.Background(), []llm.Message{{Role: "user", Content: "hi"}}, func(chunk string) error {
		got = append(got, chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("ChatStream returned error: %v", err)
	}

	if full != "Hello world" {
		t.Errorf("assembled answer = %q, want %q", full, "Hello world")
	}
	if len(got) != 3 {
		t.Errorf("handler called %d times, want 3", len(got))
	}
}

func TestChatStreamReturnsPartialOnBrokenStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-ndjson")
		w.Write([]byte(`{"message":{"role":"assistant","content":"Hel"},"done":false}` + "\n"))
		w.Write([]byte(`{"message":{"role":"assistant","content":"lo "},"done":false}` + "\n"))
		w.Write([]byte("{not json\n"))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "test-model")

	var streamed string
	full, err := p.ChatStream(context.Background(), []llm.Message{{Role: "user", Content: "hi"}}, func(chunk string) error {
		streamed += chunk
		return nil
	})
	if err == nil {
		t.Fatal("expected error for a broken stream")
	}
	if full != "Hello " {
		t.Errorf("partial answer = %q, want %q", full, "Hello ")
	}
	if streamed != full {
		t.Errorf("handler saw %q, return value was %q; they must match", streamed, full)
	}
}

func TestChatStreamHandlerErrorAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message":{"role":"assistant","content":"a"},"done":false}` + "\n"))
		w.Write([]byte(`{"message":{"role":"assistant","content":"b"},"done":true}` + "\n"))
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "test-model")

	calls := 0
	_, err := p.ChatStream(context.Background(), []llm.Message{{Role: "user", Content: "hi"}}, func(chunk string) error {
		calls++
		return context.Canceled
	})
	if err == nil {
		t.Fatal("expected handler error to surface")
	}
	if calls != 1 {
		t.Errorf("handler called %d times after abort, want 1", calls)
	}
}

func TestChatStreamErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "missing")

	_, err := p.ChatStream(context.Background(), []llm.Message{{Role: "user", Content: "hi"}}, nil)
	if err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
