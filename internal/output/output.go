// Package output renders CLI results for humans or machines.
package output

import (
	"github.com/tunebridge/tunebridge/internal/browse"
	"github.com/tunebridge/tunebridge/internal/model"
)

// Printer renders output to stdout.
type Printer interface {
	Print(v any) error
}

// EntriesResult carries a folder listing.
type EntriesResult struct {
	Source  string            `json:"source"`
	Folder  string            `json:"folder"`
	Entries []model.FileEntry `json:"entries"`
}

// ConnectionsResult carries the saved share connections.
type ConnectionsResult struct {
	Connections []model.Connection `json:"connections"`
}

// TrackResult carries one enriched track.
type TrackResult struct {
	Track model.TrackEntry `json:"track"`
}

// URLResult carries a streaming URL.
type URLResult struct {
	URL string `json:"url"`
}

// SourceResult carries the active data source selection.
type SourceResult struct {
	Active browse.ActiveSource `json:"active"`
}
