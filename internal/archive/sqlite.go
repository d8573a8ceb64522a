// Package archive keeps a local history of every listing the watcher has
// reported, so reported listings can be browsed later. It plays no part in
// deduplication; the seen-state file owns that.
package archive

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Monika-msk/vtu-internyet/internal/model"
)

// SQLiteArchive stores reported listings in a SQLite database.
type SQLiteArchive struct {
	db *sql.DB
}

// Open opens (or creates) the archive database at dbPath and ensures the
// listings table exists.
func Open(dbPath string) (*SQLiteArchive, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening archive db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging archive db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS listings (
		id                TEXT PRIMARY KEY,
		title             TEXT NOT NULL,
		company           TEXT NOT NULL,
		location          TEXT,
		description       TEXT,
		work_mode         TEXT,
		type              TEXT,
		duration          TEXT,
		deadline          TEXT,
		stipend           TEXT,
		has_job_offer     INTEGER NOT NULL DEFAULT 0,
		job_offer_package TEXT,
		link              TEXT,
		observed_at       DATETIME NOT NULL
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating listings table: %w", err)
	}

	return &SQLiteArchive{db: db}, nil
}

// Record stores reported listings. Re-recording an ID is a no-op, so a crash
// between archive write and state persistence cannot corrupt history.
func (a *SQLiteArchive) Record(listings []model.Listing) error {
	for _, l := range listings {
		_, err := a.db.Exec(
			`INSERT OR IGNORE INTO listings
			 (id, title, company, location, description, work_mode, type, duration,
			  deadline, stipend, has_job_offer, job_offer_package, link, observed_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			l.ID, l.Title, l.Company, l.Location, l.Description, l.WorkMode, l.Type,
			l.Duration, l.Deadline, l.Stipend, boolToInt(l.HasJobOffer),
			l.JobOfferPackage, l.Link, l.ObservedAt,
		)
		if err != nil {
			return fmt.Errorf("recording listing %s: %w", l.ID, err)
		}
	}
	return nil
}

// Recent returns up to limit listings, newest first.
func (a *SQLiteArchive) Recent(limit int) ([]model.Listing, error) {
	rows, err := a.db.Query(
		`SELECT id, title, company, location, description, work_mode, type, duration,
		        deadline, stipend, has_job_offer, job_offer_package, link, observed_at
		 FROM listings ORDER BY observed_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent listings: %w", err)
	}
	defer rows.Close()

	var listings []model.Listing
	for rows.Next() {
		var l model.Listing
		var jobOffer int
		var observedAt time.Time
		err := rows.Scan(&l.ID, &l.Title, &l.Company, &l.Location, &l.Description,
			&l.WorkMode, &l.Type, &l.Duration, &l.Deadline, &l.Stipend,
			&jobOffer, &l.JobOfferPackage, &l.Link, &observedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning listing row: %w", err)
		}
		l.HasJobOffer = jobOffer != 0
		l.ObservedAt = observedAt
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating listing rows: %w", err)
	}
	return listings, nil
}

// Count returns how many listings have been archived.
func (a *SQLiteArchive) Count() (int, error) {
	var count int
	if err := a.db.QueryRow("SELECT COUNT(*) FROM listings").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting archived listings: %w", err)
	}
	return count, nil
}

// Close closes the underlying database connection.
func (a *SQLiteArchive) Close() error {
	return a.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
