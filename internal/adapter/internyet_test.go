package adapter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Monika-msk/vtu-internyet/internal/model"
)

func newTestAdapter(srv *httptest.Server) *InternyetAdapter {
	return NewInternyetAdapter(srv.URL, srv.Client())
}

func fetchKind(t *testing.T, err error) model.FetchErrorKind {
	t.Helper()
	var fe *model.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *model.FetchError, got %T: %v", err, err)
	}
	return fe.Kind
}

func TestFetchPage_Success(t *testing.T) {
	payload := `{
		"success": true,
		"data": {
			"data": [
				{
					"id": 42,
					"title": "Backend Intern",
					"company": {"name": "Acme Systems"},
					"city": {"name": "Bengaluru"},
					"type": "Paid",
					"stipend": 5000,
					"slug": "backend-intern-acme"
				},
				{
					"id": "43",
					"title": "QA Intern",
					"company": {"name": "Initech"}
				}
			],
			"last_page": 3,
			"total": 55
		}
	}`
	var gotPage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	page, err := newTestAdapter(srv).FetchPage(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPage != "2" {
		t.Errorf("expected page query 2, got %q", gotPage)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	if page.LastPage != 3 {
		t.Errorf("expected last_page 3, got %d", page.LastPage)
	}
	if page.Total != 55 {
		t.Errorf("expected total 55, got %d", page.Total)
	}
	if page.Items[0].Title != "Backend Intern" {
		t.Errorf("unexpected first item title %q", page.Items[0].Title)
	}
	if page.Items[0].Company == nil || page.Items[0].Company.Name != "Acme Systems" {
		t.Errorf("unexpected first item company %+v", page.Items[0].Company)
	}
}

func TestFetchPage_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": false, "message": "rate limited"}`))
	}))
	defer srv.Close()

	_, err := newTestAdapter(srv).FetchPage(context.Background(), 1)
	if kind := fetchKind(t, err); kind != model.FetchApplication {
		t.Errorf("expected application error, got %s", kind)
	}
}

func TestFetchPage_MissingDataEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	_, err := newTestAdapter(srv).FetchPage(context.Background(), 1)
	if kind := fetchKind(t, err); kind != model.FetchApplication {
		t.Errorf("expected application error, got %s", kind)
	}
}

func TestFetchPage_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{not valid json`))
	}))
	defer srv.Close()

	_, err := newTestAdapter(srv).FetchPage(context.Background(), 1)
	if kind := fetchKind(t, err); kind != model.FetchDecode {
		t.Errorf("expected decode error, got %s", kind)
	}
}

func TestFetchPage_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestAdapter(srv).FetchPage(context.Background(), 1)
	if kind := fetchKind(t, err); kind != model.FetchTransport {
		t.Errorf("expected transport error, got %s", kind)
	}
}

func TestFetchPage_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed before use

	_, err := NewInternyetAdapter(srv.URL, &http.Client{}).FetchPage(context.Background(), 1)
	if kind := fetchKind(t, err); kind != model.FetchTransport {
		t.Errorf("expected transport error, got %s", kind)
	}
}
