package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestGet_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		if r.URL.Query().Get("week") != "2024-01-05" || r.Header.Get("X-Test") != "1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := New(Options{RetryCount: 3, RetryWait: time.Millisecond, RetryMaxWait: 5 * time.Millisecond})
	body, err := c.Get(context.Background(), srv.URL, map[string]string{"week": "2024-01-05"}, map[string]string{"X-Test": "1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != "ok" || atomic.LoadInt32(&calls) != 3 {
		t.Fatalf("unexpected body=%q calls=%d", body, calls)
	}
}

func TestGet_ClientErrorNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(Options{RetryCount: 3, RetryWait: time.Millisecond})
	_, err := c.Get(context.Background(), srv.URL, nil, nil)

	var he *HTTPError
	if !errors.As(err, &he) || he.StatusCode != http.StatusNotFound {
		t.Fatalf("expected HTTPError 404, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("4xx must not be retried, got %d calls", calls)
	}
}

func TestGet_EmptyURL(t *testing.T) {
	if _, err := New(Options{}).Get(context.Background(), " ", nil, nil); err == nil {
		t.Fatalf("expected error for empty url")
	}
}
