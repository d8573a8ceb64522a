package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Monika-msk/vtu-internyet/internal/subscribers"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := subscribers.NewFileStore(filepath.Join(t.TempDir(), "subscribers.csv"))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewServer(store, logger).Router())
	t.Cleanup(srv.Close)
	return srv
}

func postSubscribe(t *testing.T, srv *httptest.Server, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/subscribe", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST /subscribe: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp, decoded
}

func TestSubscribe_NewAddress(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postSubscribe(t, srv, `{"email": "a@x.com"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["message"] != "Subscribed" {
		t.Errorf("message = %v, want Subscribed", body["message"])
	}
}

func TestSubscribe_DuplicateAddress(t *testing.T) {
	srv := newTestServer(t)

	postSubscribe(t, srv, `{"email": "a@x.com"}`)
	resp, body := postSubscribe(t, srv, `{"email": "A@X.COM"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if body["message"] != "Already subscribed" {
		t.Errorf("message = %v, want Already subscribed", body["message"])
	}
}

func TestSubscribe_InvalidAddress(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := postSubscribe(t, srv, `{"email": "not-an-address"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	resp, _ = postSubscribe(t, srv, `{broken json`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for bad JSON", resp.StatusCode)
	}
}

func TestSubscribersCSV_RoundTrip(t *testing.T) {
	srv := newTestServer(t)

	postSubscribe(t, srv, `{"email": "a@x.com"}`)

	resp, err := http.Get(srv.URL + "/subscribers.csv")
	if err != nil {
		t.Fatalf("GET /subscribers.csv: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	csv := string(data)
	if !strings.HasPrefix(csv, "email,created_at_iso") {
		t.Errorf("csv missing header: %q", csv)
	}
	if !strings.Contains(csv, "a@x.com") {
		t.Errorf("csv missing subscriber: %q", csv)
	}
}
