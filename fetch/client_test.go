package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aykans/runkit/fetch"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestGet(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hello" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte("world"))
	})

	c, err := fetch.New(fetch.Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := c.Get(context.Background(), "/hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	if string(resp.Body) != "world" {
		t.Errorf("expected 'world', got %q", resp.Body)
	}
}

func TestDefaultHeadersAndQuery(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Tool") != "runkit" {
			t.Errorf("expected default header, got %q", r.Header.Get("X-Tool"))
		}
		if r.URL.Query().Get("q") != "term" {
			t.Errorf("expected query param, got %q", r.URL.Query().Get("q"))
		}
		w.WriteHeader(http.StatusOK)
	})

	c, _ := fetch.New(fetch.Config{
		BaseURL: srv.URL,
		Headers: map[string]string{"X-Tool": "runkit"},
	})
	_, err := c.Do(context.Background(), fetch.Request{
		Path:  "/search",
		Query: map[string]string{"q": "term"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestJSON(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"runkit","count":3}`))
	})

	c, _ := fetch.New(fetch.Config{BaseURL: srv.URL})
	var out struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	if err := c.JSON(context.Background(), "/data", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Name != "runkit" || out.Count != 3 {
		t.Errorf("unexpected decode: %+v", out)
	}
}

func TestText(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("plain text"))
	})

	c, _ := fetch.New(fetch.Config{BaseURL: srv.URL})
	got, err := c.Text(context.Background(), "/file.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "plain text" {
		t.Errorf("expected 'plain text', got %q", got)
	}
}

func TestNotFoundClassification(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	c, _ := fetch.New(fetch.Config{BaseURL: srv.URL})
	resp, err := c.Get(context.Background(), "/missing")
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if !fetch.IsNotFound(err) {
		t.Errorf("expected not-found classification, got %v", err)
	}
	if resp == nil || resp.StatusCode != 404 {
		t.Error("expected response alongside typed error")
	}
}

func TestServerErrorRetryable(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	c, _ := fetch.New(fetch.Config{BaseURL: srv.URL})
	_, err := c.Get(context.Background(), "/flaky")
	if err == nil {
		t.Fatal("expected error for 502")
	}
	if !fetch.IsRetryable(err) {
		t.Errorf("expected retryable classification, got %v", err)
	}
}

func TestConnectionError(t *testing.T) {
	c, _ := fetch.New(fetch.Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second})
	_, err := c.Get(context.Background(), "/")
	if err == nil {
		t.Fatal("expected connection error")
	}
	if !fetch.IsConnection(err) {
		t.Errorf("expected connection classification, got %v", err)
	}
}

func TestAbsoluteURLBypassesBase(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("direct"))
	})

	c, _ := fetch.New(fetch.Config{BaseURL: "https://unused.example.com"})
	got, err := c.Text(context.Background(), srv.URL+"/abs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "direct" {
		t.Errorf("expected 'direct', got %q", got)
	}
}
