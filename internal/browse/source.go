// Package browse produces incremental folder listings from local
// storage or a remote share, classifies entries into folders and
// tracks, and enriches remote tracks with metadata on demand.
package browse

import (
	"context"

	"github.com/tunebridge/tunebridge/internal/model"
)

// Source lists one data source. Entries emits items as they become
// available and closes both channels when the listing ends; at most one
// terminal error is delivered on the second channel. Entries already
// emitted stay valid when an error follows: emission is incremental,
// not transactional. Cancelling the context stops the producer promptly
// and nothing is delivered afterwards.
type Source interface {
	Entries(ctx context.Context, folder string) (<-chan model.FileEntry, <-chan error)

	// TrackDetails fills in metadata for a placeholder track. It never
	// fails: the worst case is the placeholder coming back unchanged.
	TrackDetails(ctx context.Context, track model.TrackEntry) model.TrackEntry
}

// produce runs fn on its own goroutine and wires its emissions to a
// listing channel pair. The emit callback returns false once the
// consumer is gone; producers check it between emissions.
func produce(ctx context.Context, fn func(emit func(model.FileEntry) bool) error) (<-chan model.FileEntry, <-chan error) {
	entries := make(chan model.FileEntry)
	errs := make(chan error, 1)
	go func() {
		defer close(errs)
		defer close(entries)
		emit := func(entry model.FileEntry) bool {
			select {
			case entries <- entry:
				return true
			case <-ctx.Done():
				return false
			}
		}
		err := fn(emit)
		if err == nil || ctx.Err() != nil {
			return
		}
		errs <- err
	}()
	return entries, errs
}

// Collect drains a listing into a slice, returning early on error or
// cancellation. Entries received before the failure are kept.
func Collect(ctx context.Context, src Source, folder string) ([]model.FileEntry, error) {
	entries, errs := src.Entries(ctx, folder)
	var out []model.FileEntry
	for entry := range entries {
		out = append(out, entry)
	}
	if err := <-errs; err != nil {
		return out, err
	}
	return out, ctx.Err()
}
