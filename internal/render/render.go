// Package render turns a batch of new listings into an email subject and HTML
// body. Data shaping (listing → template section) is kept separate from the
// template itself so both are testable on their own.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/Monika-msk/vtu-internyet/internal/model"
)

// Message is one rendered notification, ready for dispatch.
type Message struct {
	Subject  string
	HTMLBody string
}

// section is the template-facing view of one listing.
type section struct {
	CSSClass        string
	Title           string
	Company         string
	Location        string
	Stipend         string
	Duration        string
	WorkMode        string
	Deadline        string
	JobOfferPackage string
	Description     string
	Link            string
	ID              string
	ObservedAt      string
}

type page struct {
	HasListings bool
	Count       int
	Sections    []section
	WebsiteURL  string
}

// Renderer builds notification messages. The website URL only appears in the
// footer link.
type Renderer struct {
	websiteURL string
	tmpl       *template.Template
}

// New creates a renderer. It panics if the embedded template fails to parse,
// which can only happen from a source edit.
func New(websiteURL string) *Renderer {
	return &Renderer{
		websiteURL: websiteURL,
		tmpl:       template.Must(template.New("email").Parse(emailTemplate)),
	}
}

// Render produces the message for a batch of new listings. An empty batch
// yields the fixed "no new listings" acknowledgment, which is still sent every
// run so subscribers get a heartbeat on quiet days.
func (r *Renderer) Render(listings []model.Listing) (Message, error) {
	subject := "ℹ️ No New VTU Internships Today"
	if len(listings) > 0 {
		subject = fmt.Sprintf("🚨 %d New VTU Internship(s) Found!", len(listings))
	}

	p := page{
		HasListings: len(listings) > 0,
		Count:       len(listings),
		WebsiteURL:  r.websiteURL,
		Sections:    make([]section, 0, len(listings)),
	}
	for _, l := range listings {
		p.Sections = append(p.Sections, toSection(l))
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, p); err != nil {
		return Message{}, fmt.Errorf("rendering email body: %w", err)
	}
	return Message{Subject: subject, HTMLBody: buf.String()}, nil
}

// toSection maps a listing onto its template view. The CSS class is purely
// presentational: "paid"/"free" follow the listing type and "job-offer" the
// job offer flag.
func toSection(l model.Listing) section {
	classes := []string{"internship"}
	switch l.Type {
	case "Paid":
		classes = append(classes, "paid")
	case "Free":
		classes = append(classes, "free")
	}
	if l.HasJobOffer {
		classes = append(classes, "job-offer")
	}

	jobPackage := ""
	if l.HasJobOffer && l.JobOfferPackage != "" {
		jobPackage = l.JobOfferPackage
	}

	return section{
		CSSClass:        strings.Join(classes, " "),
		Title:           l.Title,
		Company:         l.Company,
		Location:        l.Location,
		Stipend:         l.Stipend,
		Duration:        l.Duration,
		WorkMode:        l.WorkMode,
		Deadline:        l.Deadline,
		JobOfferPackage: jobPackage,
		Description:     l.Description,
		Link:            l.Link,
		ID:              l.ID,
		ObservedAt:      l.ObservedAt.Format(time.RFC3339),
	}
}

const emailTemplate = `<html>
<head>
<style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
    .header { background-color: #4CAF50; color: white; padding: 20px; text-align: center; }
    .internship { border: 1px solid #ddd; margin: 20px 0; padding: 15px; border-radius: 8px; background-color: #fafafa; }
    .title { color: #2196F3; font-size: 18px; font-weight: bold; margin-bottom: 10px; }
    .company { color: #FF9800; font-weight: bold; font-size: 16px; }
    .location { color: #9E9E9E; }
    .description { margin: 10px 0; }
    .details { display: flex; flex-wrap: wrap; gap: 15px; margin: 10px 0; }
    .detail-item { background-color: #e8f5e8; padding: 5px 10px; border-radius: 4px; font-size: 12px; }
    .link { background-color: #4CAF50; color: white; padding: 10px 20px; text-decoration: none; border-radius: 4px; display: inline-block; margin-top: 10px; }
    .footer { margin-top: 30px; padding: 20px; background-color: #f5f5f5; text-align: center; }
    .paid { background-color: #fff3cd; border-left: 4px solid #ffc107; }
    .free { background-color: #d1ecf1; border-left: 4px solid #17a2b8; }
    .job-offer { background-color: #d4edda; border-left: 4px solid #28a745; }
</style>
</head>
<body>
<div class="header">
{{- if .HasListings}}
    <h1>🎉 New VTU Internships Available!</h1>
    <p>Found {{.Count}} new internship(s) that match your criteria</p>
{{- else}}
    <h1>ℹ️ No New VTU Internships Today</h1>
    <p>We didn't find new listings since yesterday. You'll be notified when new ones appear.</p>
{{- end}}
</div>
{{- range .Sections}}
<div class="{{.CSSClass}}">
    <div class="title">{{.Title}}</div>
    <div class="company">🏢 {{.Company}}</div>
    {{- if .Location}}
    <div class="location">📍 {{.Location}}</div>
    {{- end}}
    <div class="details">
        {{- if .Stipend}}
        <span class="detail-item">💰 {{.Stipend}}</span>
        {{- end}}
        {{- if .Duration}}
        <span class="detail-item">⏱️ {{.Duration}}</span>
        {{- end}}
        {{- if .WorkMode}}
        <span class="detail-item">🏠 {{.WorkMode}}</span>
        {{- end}}
        {{- if .Deadline}}
        <span class="detail-item">📅 Deadline: {{.Deadline}}</span>
        {{- end}}
        {{- if .JobOfferPackage}}
        <span class="detail-item">💼 Job Offer: {{.JobOfferPackage}}</span>
        {{- end}}
    </div>
    {{- if .Description}}
    <div class="description">{{.Description}}</div>
    {{- end}}
    <a href="{{.Link}}" class="link" target="_blank">Apply Now 🚀</a>
    <div style="margin-top: 15px; font-size: 11px; color: #666; border-top: 1px solid #ddd; padding-top: 10px;">
        ID: {{.ID}} | Found at: {{.ObservedAt}}
    </div>
</div>
{{- end}}
<div class="footer">
    <p>🤖 This is an automated notification from VTU Internship Watcher</p>
    <p>Visit <a href="{{.WebsiteURL}}">VTU Internyet</a> for more details</p>
    <p style="font-size: 12px; color: #666;">
        💡 Tip: Apply early! Popular internships fill up quickly.
    </p>
</div>
</body>
</html>
`
