package nexus

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Options{APIKey: "secret", BaseURL: server.URL, HTTPClient: server.Client()})
}

func TestModSuccess(t *testing.T) {
	t.Parallel()

	var gotPath, gotKey, gotAccept string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("apikey")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Foo","summary":"Bar","version":"1.0"}`))
	})

	mod, err := client.Mod(context.Background(), 123)
	if err != nil {
		t.Fatalf("Mod: %v", err)
	}
	want := Mod{ID: 123, Name: "Foo", Summary: "Bar", Link: "https://www.nexusmods.com/stardewvalley/mods/123"}
	if diff := cmp.Diff(want, mod); diff != "" {
		t.Fatalf("Mod mismatch (-want +got):\n%s", diff)
	}
	if gotPath != "/games/stardewvalley/mods/123.json" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotKey != "secret" || gotAccept != "application/json" {
		t.Fatalf("unexpected headers apikey=%q accept=%q", gotKey, gotAccept)
	}
}

func TestModDefaultsMissingFields(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name":""}`))
	})

	mod, err := client.Mod(context.Background(), 7)
	if err != nil {
		t.Fatalf("Mod: %v", err)
	}
	if mod.Name != UnknownName || mod.Summary != NoSummary {
		t.Fatalf("expected defaults, got %+v", mod)
	}
}

func TestModStatusError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	_, err := client.Mod(context.Background(), 999)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", statusErr.Code)
	}
}

func TestModMalformedBody(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	if _, err := client.Mod(context.Background(), 1); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestModMissingAPIKey(t *testing.T) {
	t.Parallel()

	client := NewClient(Options{APIKey: "  "})
	if _, err := client.Mod(context.Background(), 1); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestNewClientDefaults(t *testing.T) {
	t.Parallel()

	client := NewClient(Options{SiteURL: "https://example.test/", Game: "terraria"})
	if got := client.Link(5); got != "https://example.test/terraria/mods/5" {
		t.Fatalf("unexpected link %q", got)
	}
	if client.baseURL != DefaultBaseURL {
		t.Fatalf("unexpected base url %q", client.baseURL)
	}
	if client.http.Timeout != DefaultTimeout {
		t.Fatalf("unexpected timeout %v", client.http.Timeout)
	}
}
