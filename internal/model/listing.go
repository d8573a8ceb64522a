package model

import (
	"context"
	"time"
)

// Listing is the normalized representation of one internship posting.
type Listing struct {
	ID              string    // upstream-assigned, stable across runs
	Title           string    // required (normalizer rejects without it)
	Company         string    // required
	Location        string    // city name, may be empty
	Description     string    // trimmed, capped at 500 chars
	WorkMode        string    // e.g. "Remote", "On-site"
	Type            string    // free text, usually "Paid" or "Free"
	Duration        string    // formatted with a "months" suffix when present
	Deadline        string    // opaque date text, never parsed
	Stipend         string    // display string, see normalize.stipendDisplay
	HasJobOffer     bool
	JobOfferPackage string
	Link            string    // absolute URL built from slug or bare base URL
	ObservedAt      time.Time // our clock at normalization time
}

// Page is one decoded page of the upstream listing feed.
type Page struct {
	Items    []RawListing
	LastPage int
	Total    int
}

// RawListing mirrors one item of the upstream API response. Every field is
// optional; the normalizer decides what survives.
type RawListing struct {
	ID              any       `json:"id"`
	Title           string    `json:"title"`
	Company         *NamedRef `json:"company"`
	City            *NamedRef `json:"city"`
	Description     string    `json:"description"`
	WorkMode        string    `json:"workMode"`
	Duration        string    `json:"duration"`
	Deadline        string    `json:"deadline"`
	Type            string    `json:"type"`
	Stipend         any       `json:"stipend"`
	InternshipFee   any       `json:"internship_fee"`
	IsJobOffer      any       `json:"is_job_offer"`
	JobOfferPackage string    `json:"job_offer_package"`
	Slug            string    `json:"slug"`
}

// NamedRef is a nested object that only contributes its name.
type NamedRef struct {
	Name string `json:"name"`
}

// PageFetcher retrieves one page of upstream listings.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int) (*Page, error)
}

// SeenStore loads and persists the set of already-reported listing IDs.
type SeenStore interface {
	Load() *SeenState
	Save(state *SeenState) error
}

// Mailer delivers one message to one recipient.
type Mailer interface {
	Send(to, subject, htmlBody string) error
}

// SubscriberSource supplies the current list of notification recipients.
type SubscriberSource interface {
	Subscribers(ctx context.Context) ([]string, error)
}

// SeenState is the durable set of listing IDs already reported, plus the time
// it was last written. It only ever grows within a run.
type SeenState struct {
	ids         map[string]struct{}
	LastUpdated time.Time
}

// NewSeenState returns an empty state stamped with now.
func NewSeenState() *SeenState {
	return &SeenState{
		ids:         make(map[string]struct{}),
		LastUpdated: time.Now(),
	}
}

// Has reports whether the listing ID has been seen before.
func (s *SeenState) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Add records a listing ID as seen.
func (s *SeenState) Add(id string) {
	s.ids[id] = struct{}{}
}

// Len returns the number of seen IDs.
func (s *SeenState) Len() int {
	return len(s.ids)
}

// IDs returns the seen IDs in unspecified order.
func (s *SeenState) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	return out
}
