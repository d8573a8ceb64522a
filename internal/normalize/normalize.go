// Package normalize maps raw upstream items into the internal Listing schema.
// It is pure: no network access, no state, deterministic apart from the
// ObservedAt clock.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/Monika-msk/vtu-internyet/internal/model"
)

// DescriptionLimit caps the stored description length, in characters.
const DescriptionLimit = 500

// Normalizer converts raw items into Listings against a fixed website base URL.
type Normalizer struct {
	websiteBaseURL string
	now            func() time.Time
}

// New returns a normalizer that builds listing links under websiteBaseURL
// (e.g. "https://vtu.internyet.in/internships").
func New(websiteBaseURL string) *Normalizer {
	return &Normalizer{
		websiteBaseURL: strings.TrimRight(websiteBaseURL, "/"),
		now:            time.Now,
	}
}

// Normalize converts one raw item into a Listing. The second return value is
// false when the item is rejected: a listing without both a title and a
// company name contributes nothing to the batch. Every other missing field
// degrades to its zero value instead of failing.
func (n *Normalizer) Normalize(raw model.RawListing) (model.Listing, bool) {
	title := strings.TrimSpace(raw.Title)

	var company string
	if raw.Company != nil {
		company = strings.TrimSpace(raw.Company.Name)
	}
	if title == "" || company == "" {
		return model.Listing{}, false
	}

	var location string
	if raw.City != nil {
		location = strings.TrimSpace(raw.City.Name)
	}

	description := strings.TrimSpace(raw.Description)
	if runes := []rune(description); len(runes) > DescriptionLimit {
		description = string(runes[:DescriptionLimit])
	}

	duration := strings.TrimSpace(raw.Duration)
	if duration != "" {
		duration = duration + " months"
	}

	link := n.websiteBaseURL
	if slug := strings.TrimSpace(raw.Slug); slug != "" {
		link = n.websiteBaseURL + "/" + slug
	}

	listingType := strings.TrimSpace(raw.Type)

	return model.Listing{
		ID:              scalarString(raw.ID),
		Title:           title,
		Company:         company,
		Location:        location,
		Description:     description,
		WorkMode:        strings.TrimSpace(raw.WorkMode),
		Type:            listingType,
		Duration:        duration,
		Deadline:        strings.TrimSpace(raw.Deadline),
		Stipend:         stipendDisplay(raw, listingType),
		HasJobOffer:     truthy(raw.IsJobOffer),
		JobOfferPackage: strings.TrimSpace(raw.JobOfferPackage),
		Link:            link,
		ObservedAt:      n.now(),
	}, true
}

// stipendDisplay builds the stipend display string with a three-tier fallback:
// a concrete amount (stipend or internship fee) wins over the type-derived
// "Paid"/"Free" labels, and anything else is empty.
func stipendDisplay(raw model.RawListing, listingType string) string {
	amount := scalarString(raw.Stipend)
	if amount == "" {
		amount = scalarString(raw.InternshipFee)
	}
	if amount != "" {
		return "₹" + amount
	}
	switch listingType {
	case "Paid":
		return "Paid"
	case "Free":
		return "Free"
	}
	return ""
}

// scalarString renders an upstream scalar (number or string) as a string.
// JSON numbers arrive as float64; integral values print without a decimal.
func scalarString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case int:
		return fmt.Sprintf("%d", t)
	case int64:
		return fmt.Sprintf("%d", t)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}

// truthy interprets the upstream is_job_offer flag, which shows up as 0/1,
// a bool, or a string depending on the serializer in front of it.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		s := strings.TrimSpace(strings.ToLower(t))
		return s != "" && s != "0" && s != "false"
	default:
		return false
	}
}
