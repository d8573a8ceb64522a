// Package subscribers supplies and stores the notification mailing list.
package subscribers

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Monika-msk/vtu-internyet/internal/model"
)

// HTTPSource fetches the subscriber list from a published CSV URL. The CSV
// must carry a header row with an "email" column (case-insensitive).
type HTTPSource struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

// NewHTTPSource creates a source for the CSV at url. An empty url is allowed
// and yields an empty list, which the dispatcher turns into the default
// recipient fallback.
func NewHTTPSource(url string, client *http.Client, logger *slog.Logger) *HTTPSource {
	return &HTTPSource{url: url, client: client, logger: logger}
}

var _ model.SubscriberSource = (*HTTPSource)(nil)

// Subscribers fetches and parses the CSV. Malformed rows are skipped; only a
// transport failure or a missing email column is an error.
func (s *HTTPSource) Subscribers(ctx context.Context) ([]string, error) {
	if s.url == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching subscribers: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching subscribers: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching subscribers: unexpected status %d", resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1 // rows may be ragged, we skip the bad ones

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing subscribers csv: %w", err)
	}
	return extractEmails(records, s.logger)
}

// extractEmails pulls addresses out of parsed CSV rows. The header decides
// which column holds them; afterwards any field containing "@" counts.
func extractEmails(records [][]string, logger *slog.Logger) ([]string, error) {
	if len(records) == 0 {
		return nil, nil
	}

	emailIdx := -1
	for i, h := range records[0] {
		if strings.EqualFold(strings.TrimSpace(h), "email") {
			emailIdx = i
			break
		}
	}
	if emailIdx < 0 {
		return nil, fmt.Errorf("subscribers csv missing %q header", "email")
	}

	var emails []string
	for _, row := range records[1:] {
		if len(row) <= emailIdx {
			continue
		}
		email := strings.TrimSpace(row[emailIdx])
		if email == "" || !strings.Contains(email, "@") {
			continue
		}
		emails = append(emails, email)
	}
	logger.Debug("subscribers loaded", "count", len(emails))
	return emails, nil
}
