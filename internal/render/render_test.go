package render

import (
	"strings"
	"testing"
	"time"

	"github.com/Monika-msk/vtu-internyet/internal/model"
)

func sampleListing() model.Listing {
	return model.Listing{
		ID:              "42",
		Title:           "Backend Intern",
		Company:         "Acme Systems",
		Location:        "Bengaluru",
		Description:     "Work on Go services.",
		WorkMode:        "Remote",
		Type:            "Paid",
		Duration:        "3 months",
		Deadline:        "2026-09-15",
		Stipend:         "₹5000",
		HasJobOffer:     true,
		JobOfferPackage: "6 LPA",
		Link:            "https://vtu.internyet.in/internships/backend-intern-acme",
		ObservedAt:      time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC),
	}
}

func TestRender_NewListings(t *testing.T) {
	r := New("https://vtu.internyet.in/internships")

	msg, err := r.Render([]model.Listing{sampleListing()})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if !strings.Contains(msg.Subject, "1 New VTU Internship(s)") {
		t.Errorf("subject = %q, want count announcement", msg.Subject)
	}
	for _, want := range []string{
		"Backend Intern",
		"Acme Systems",
		"Bengaluru",
		"₹5000",
		"3 months",
		"Remote",
		"Deadline: 2026-09-15",
		"Job Offer: 6 LPA",
		"Work on Go services.",
		"backend-intern-acme",
		"ID: 42",
		"2026-08-31T10:00:00Z",
	} {
		if !strings.Contains(msg.HTMLBody, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestRender_EmptyBatch(t *testing.T) {
	r := New("https://vtu.internyet.in/internships")

	msg, err := r.Render(nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	if !strings.Contains(msg.Subject, "No New VTU Internships") {
		t.Errorf("subject = %q, want no-new variant", msg.Subject)
	}
	if !strings.Contains(msg.HTMLBody, "No New VTU Internships Today") {
		t.Error("body missing no-new header")
	}
	if strings.Contains(msg.HTMLBody, `class="internship`) {
		t.Error("empty batch should render no listing sections")
	}
}

func TestRender_PresentationalClasses(t *testing.T) {
	r := New("https://vtu.internyet.in/internships")

	tests := []struct {
		name        string
		mutate      func(*model.Listing)
		wantClass   string
		rejectClass string
	}{
		{"paid type", func(l *model.Listing) { l.Type = "Paid"; l.HasJobOffer = false }, "internship paid", "free"},
		{"free type", func(l *model.Listing) { l.Type = "Free"; l.HasJobOffer = false }, "internship free", "paid"},
		{"job offer", func(l *model.Listing) { l.Type = ""; l.HasJobOffer = true }, "internship job-offer", "paid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := sampleListing()
			tt.mutate(&l)
			msg, err := r.Render([]model.Listing{l})
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if !strings.Contains(msg.HTMLBody, `class="`+tt.wantClass+`"`) {
				t.Errorf("body missing class %q", tt.wantClass)
			}
			if strings.Contains(msg.HTMLBody, tt.rejectClass+`"`) {
				t.Errorf("body unexpectedly contains class %q", tt.rejectClass)
			}
		})
	}
}

func TestRender_OptionalTagsOmitted(t *testing.T) {
	r := New("https://vtu.internyet.in/internships")

	l := sampleListing()
	l.Location = ""
	l.Stipend = ""
	l.Duration = ""
	l.Deadline = ""
	l.HasJobOffer = false

	msg, err := r.Render([]model.Listing{l})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, unwanted := range []string{"📍", "💰", "⏱️", "Deadline:", "Job Offer:"} {
		if strings.Contains(msg.HTMLBody, unwanted) {
			t.Errorf("body should omit %q when field empty", unwanted)
		}
	}
}
