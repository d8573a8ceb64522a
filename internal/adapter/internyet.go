package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Monika-msk/vtu-internyet/internal/model"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// envelope is the top-level upstream response shape. Anything that deviates
// from it is treated as an application-level fetch failure.
type envelope struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Data    *envelopeData `json:"data"`
}

type envelopeData struct {
	Data     []model.RawListing `json:"data"`
	LastPage int                `json:"last_page"`
	Total    int                `json:"total"`
}

// InternyetAdapter fetches internship pages from the VTU Internyet API.
type InternyetAdapter struct {
	baseURL string
	client  *http.Client
}

// NewInternyetAdapter creates an adapter for the listing API rooted at baseURL
// (e.g. "https://vtuapi.internyet.in/api/v1/internships").
func NewInternyetAdapter(baseURL string, client *http.Client) *InternyetAdapter {
	return &InternyetAdapter{
		baseURL: baseURL,
		client:  client,
	}
}

var _ model.PageFetcher = (*InternyetAdapter)(nil)

// FetchPage retrieves a single page of raw listings. Failures are returned as
// *model.FetchError so the caller can log the kind and degrade to end-of-data.
func (a *InternyetAdapter) FetchPage(ctx context.Context, page int) (*model.Page, error) {
	url := fmt.Sprintf("%s?page=%d", a.baseURL, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &model.FetchError{Kind: model.FetchTransport, Page: page, Err: err}
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, &model.FetchError{Kind: model.FetchTransport, Page: page, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &model.FetchError{
			Kind: model.FetchTransport,
			Page: page,
			Err:  fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &model.FetchError{Kind: model.FetchDecode, Page: page, Err: err}
	}

	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = "unknown error"
		}
		return nil, &model.FetchError{
			Kind: model.FetchApplication,
			Page: page,
			Err:  fmt.Errorf("upstream reported failure: %s", msg),
		}
	}
	if env.Data == nil {
		return nil, &model.FetchError{
			Kind: model.FetchApplication,
			Page: page,
			Err:  fmt.Errorf("missing data envelope"),
		}
	}

	return &model.Page{
		Items:    env.Data.Data,
		LastPage: env.Data.LastPage,
		Total:    env.Data.Total,
	}, nil
}
