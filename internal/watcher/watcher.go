// Package watcher owns one full check cycle:
// fetch pages → normalize → detect new → render → dispatch → persist state.
package watcher

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Monika-msk/vtu-internyet/internal/model"
	"github.com/Monika-msk/vtu-internyet/internal/normalize"
	"github.com/Monika-msk/vtu-internyet/internal/notifier"
	"github.com/Monika-msk/vtu-internyet/internal/render"
)

// Recorder archives listings that were reported. Optional.
type Recorder interface {
	Record(listings []model.Listing) error
}

// Watcher wires the pipeline's collaborators together.
type Watcher struct {
	fetcher     model.PageFetcher
	normalizer  *normalize.Normalizer
	store       model.SeenStore
	renderer    *render.Renderer
	dispatcher  *notifier.Dispatcher
	subscribers model.SubscriberSource
	recorder    Recorder // may be nil
	pageDelay   time.Duration
	logger      *slog.Logger
}

// New creates a watcher. recorder may be nil when no archive is configured.
func New(
	fetcher model.PageFetcher,
	normalizer *normalize.Normalizer,
	store model.SeenStore,
	renderer *render.Renderer,
	dispatcher *notifier.Dispatcher,
	subscribers model.SubscriberSource,
	recorder Recorder,
	pageDelay time.Duration,
	logger *slog.Logger,
) *Watcher {
	return &Watcher{
		fetcher:     fetcher,
		normalizer:  normalizer,
		store:       store,
		renderer:    renderer,
		dispatcher:  dispatcher,
		subscribers: subscribers,
		recorder:    recorder,
		pageDelay:   pageDelay,
		logger:      logger,
	}
}

// Report summarizes one run for logs and tests.
type Report struct {
	Pages       int
	Fetched     int // normalized listings across all pages
	New         int
	Sent        int
	Recipients  int
	FetchFailed model.FetchErrorKind // empty when pagination terminated cleanly
	Persisted   bool
}

// Run executes one check cycle. It returns an error only when nothing useful
// could be done (no data fetched); everything downstream is best-effort and
// reported through the Report.
func (w *Watcher) Run(ctx context.Context) (*Report, error) {
	report := &Report{}

	batch := w.fetchAll(ctx, report)
	report.Fetched = len(batch)
	if len(batch) == 0 {
		// Nothing fetched: abort before the detector so the seen state is
		// left exactly as it was. The next scheduled run is the retry.
		w.logger.Warn("no listings fetched, skipping run", "pages", report.Pages)
		return report, errors.New("no listings fetched")
	}

	state := w.store.Load()
	before := state.Len()
	fresh := Detect(batch, state)
	report.New = len(fresh)
	w.logger.Info("change detection complete",
		"fetched", len(batch),
		"previously_seen", before,
		"new", len(fresh),
	)

	msg, err := w.renderer.Render(fresh)
	if err != nil {
		return report, err
	}

	subs, err := w.subscribers.Subscribers(ctx)
	if err != nil {
		// Fall through with an empty list; the dispatcher's default-recipient
		// fallback keeps the run observable.
		w.logger.Error("loading subscribers failed", "error", err)
		subs = nil
	}

	report.Sent, report.Recipients = w.dispatcher.Dispatch(msg, subs)

	if w.recorder != nil && len(fresh) > 0 {
		if err := w.recorder.Record(fresh); err != nil {
			w.logger.Error("archiving listings failed", "error", err)
		}
	}

	// Persist exactly once per run, after dispatch. Per-recipient delivery
	// failures do not block this.
	if err := w.store.Save(state); err != nil {
		w.logger.Error("persisting seen state failed", "error", err)
	} else {
		report.Persisted = true
	}

	return report, nil
}

// fetchAll walks the paginated feed from page 1, normalizing as it goes. It
// stops at the declared last page, an empty page, or any fetch failure, which
// is logged and treated as end-of-data. Successful page fetches are paced by
// pageDelay to bound request rate.
func (w *Watcher) fetchAll(ctx context.Context, report *Report) []model.Listing {
	var batch []model.Listing

	for page := 1; ; page++ {
		pageData, err := w.fetcher.FetchPage(ctx, page)
		if err != nil {
			var fe *model.FetchError
			if errors.As(err, &fe) {
				report.FetchFailed = fe.Kind
			}
			w.logger.Error("page fetch failed, stopping pagination", "page", page, "error", err)
			break
		}
		report.Pages++

		if len(pageData.Items) == 0 {
			w.logger.Info("empty page, stopping pagination", "page", page)
			break
		}

		kept := 0
		for _, raw := range pageData.Items {
			if listing, ok := w.normalizer.Normalize(raw); ok {
				batch = append(batch, listing)
				kept++
			}
		}
		w.logger.Info("page fetched",
			"page", page,
			"items", len(pageData.Items),
			"kept", kept,
			"last_page", pageData.LastPage,
		)

		if page >= pageData.LastPage {
			break
		}

		select {
		case <-ctx.Done():
			w.logger.Info("run cancelled during pagination", "page", page)
			return batch
		case <-time.After(w.pageDelay):
		}
	}

	return batch
}
