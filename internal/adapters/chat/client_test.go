package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	perr "faqrelay/internal/platform/errors"
)

func TestDoSetsAuthHeaders(t *testing.T) {
	var gotAuth, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, Token: "tok123"})
	resp, err := c.Do(context.Background(), http.MethodGet, "/api/v4/users/me", nil)
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	_ = resp.Body.Close()

	if gotAuth != "Bearer tok123" {
		t.Fatalf("Authorization = %q, want %q", gotAuth, "Bearer tok123")
	}
	if gotUA != "faqrelay" {
		t.Fatalf("User-Agent = %q, want %q", gotUA, "faqrelay")
	}
}

func TestDoMapsStatusesToCodes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		code   perr.ErrorCode
	}{
		{name: "not found", status: http.StatusNotFound, code: perr.ErrorCodeNotFound},
		{name: "unauthorized", status: http.StatusUnauthorized, code: perr.ErrorCodeUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, code: perr.ErrorCodeUnauthorized},
		{name: "server error", status: http.StatusInternalServerError, code: perr.ErrorCodeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := NewClient(Options{BaseURL: srv.URL})
			_, err := c.Do(context.Background(), http.MethodGet, "/x", nil)
			if err == nil {
				t.Fatalf("Do returned nil error for status %d", tt.status)
			}
			if !perr.IsCode(err, tt.code) {
				t.Fatalf("error code = %v, want %v (err %v)", perr.CodeOf(err), tt.code, err)
			}
		})
	}
}

func TestDoRetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL, MaxRetries: 1})
	var slept time.Duration
	c.sleep = func(d time.Duration) { slept = d }

	resp, err := c.Do(context.Background(), http.MethodGet, "/x", nil)
	if err != nil {
		t.Fatalf("Do failed after retry: %v", err)
	}
	_ = resp.Body.Close()

	if got := calls.Load(); got != 2 {
		t.Fatalf("calls = %d, want 2", got)
	}
	if slept != time.Second {
		t.Fatalf("slept = %v, want %v", slept, time.Second)
	}
}

func TestDoRateLimitExhausted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})
	c.sleep = func(time.Duration) {}

	_, err := c.Do(context.Background(), http.MethodGet, "/x", nil)
	if !perr.IsCode(err, perr.ErrorCodeTooManyRequests) {
		t.Fatalf("error = %v, want too many requests", err)
	}
}

func TestNotifierDeliverPrefixes(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b := make([]byte, 1024)
		n, _ := r.Body.Read(b)
		gotBody = string(b[:n])
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"p1"}`))
	}))
	defer srv.Close()

	n := NewNotifier(NewClient(Options{BaseURL: srv.URL}), "[faq-bot]")
	if err := n.Deliver(context.Background(), "room-1", "hello"); err != nil {
		t.Fatalf("Deliver failed: %v", err)
	}
	if !strings.Contains(gotBody, `"[faq-bot] hello"`) {
		t.Fatalf("post body missing prefixed message: %s", gotBody)
	}
}

func TestResolverCachesHits(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u1","username":"alice"}`))
	}))
	defer srv.Close()

	r := NewResolver(NewClient(Options{BaseURL: srv.URL}))
	for range 2 {
		u, err := r.Resolve(context.Background(), "alice")
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if u.ID != "u1" {
			t.Fatalf("user id = %q, want u1", u.ID)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("gateway calls = %d, want 1 (second hit should come from cache)", got)
	}
}

func TestRetryAfterParsing(t *testing.T) {
	now := time.Date(2025, 9, 3, 13, 0, 0, 0, time.UTC)

	h := http.Header{}
	h.Set("Retry-After", "3")
	if got := retryAfter(h, now); got != 3*time.Second {
		t.Fatalf("seconds form = %v, want 3s", got)
	}

	h.Set("Retry-After", now.Add(5*time.Second).Format(http.TimeFormat))
	if got := retryAfter(h, now); got != 5*time.Second {
		t.Fatalf("date form = %v, want 5s", got)
	}

	h.Set("Retry-After", "garbage")
	if got := retryAfter(h, now); got != 0 {
		t.Fatalf("garbage form = %v, want 0", got)
	}
}
