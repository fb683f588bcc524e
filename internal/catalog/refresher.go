package catalog

import (
	"context"
	"log"
	"time"

	"github.com/frabrice/insightium/internal/models"
)

// Source fetches the full upstream collection for one kind.
type Source interface {
	FetchKind(ctx context.Context, kind models.Kind) ([]models.MediaItem, error)
}

// Store receives mirrored items.
type Store interface {
	UpsertItems(items []models.MediaItem) error
}

// Refresher periodically mirrors the upstream Content API into the local
// store. An unavailable upstream skips the cycle with a log line; there
// is no retry inside a cycle.
type Refresher struct {
	source   Source
	store    Store
	interval time.Duration
}

func NewRefresher(source Source, store Store, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Refresher{source: source, store: store, interval: interval}
}

// Run refreshes once immediately, then on every tick until ctx is done.
func (r *Refresher) Run(ctx context.Context) {
	r.RefreshOnce(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.RefreshOnce(ctx)
		}
	}
}

// RefreshOnce mirrors every collection a single time.
func (r *Refresher) RefreshOnce(ctx context.Context) {
	for _, kind := range models.Kinds() {
		items, err := r.source.FetchKind(ctx, kind)
		if err != nil {
			log.Printf("Catalog refresh: %s skipped: %v", kind, err)
			continue
		}
		now := time.Now()
		for i := range items {
			items[i].FetchedAt = now
		}
		if err := r.store.UpsertItems(items); err != nil {
			log.Printf("Catalog refresh: storing %s failed: %v", kind, err)
			continue
		}
		log.Printf("Catalog refresh: %s updated (%d items)", kind, len(items))
	}
}
