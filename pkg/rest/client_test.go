package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRequestDecodesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/vehicle" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"plate":"ABC1234"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)

	var out struct {
		Plate string `json:"plate"`
	}
	if err := c.Get(context.Background(), "/api/vehicle", &out); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out.Plate != "ABC1234" {
		t.Errorf("plate = %q", out.Plate)
	}
}

func TestRequestSurfacesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	err := c.Post(context.Background(), "/api/vehicle", map[string]string{"plate": ""}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if StatusOf(err) != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", StatusOf(err))
	}
}

func TestRequestTimeoutIsDistinguishable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 50*time.Millisecond)
	err := c.Get(context.Background(), "/slow", nil)
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

func TestRetryResolvesAfterFailures(t *testing.T) {
	calls := 0
	fn := func(ctx context.Context) (string, error) {
		calls++
		if calls <= 2 {
			return "", errors.New("transient")
		}
		return "ok", nil
	}

	start := time.Now()
	got, err := Retry(context.Background(), 3, 100*time.Millisecond, fn)
	elapsed := time.Since(start)

	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if got != "ok" {
		t.Errorf("result = %q", got)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	// Two waits: 100ms then 200ms.
	if elapsed < 290*time.Millisecond {
		t.Errorf("elapsed %v, want >= ~300ms", elapsed)
	}
	if elapsed > time.Second {
		t.Errorf("elapsed %v, backoff too long", elapsed)
	}
}

func TestRetryRethrowsLastError(t *testing.T) {
	boom := errors.New("still broken")
	fn := func(ctx context.Context) (int, error) { return 0, boom }

	_, err := Retry(context.Background(), 3, time.Millisecond, fn)
	if !errors.Is(err, boom) {
		t.Errorf("expected last error, got %v", err)
	}
}

func TestRetryStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fn := func(ctx context.Context) (int, error) { return 0, errors.New("transient") }
	_, err := Retry(ctx, 5, 10*time.Second, fn)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
