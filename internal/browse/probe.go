package browse

import (
	"context"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/tunebridge/tunebridge/internal/model"
)

// StreamURLBuilder hands out loopback URLs for remote paths, starting
// the gateway as a side effect.
type StreamURLBuilder interface {
	StreamingURL(smbPath, connectionID string) (string, error)
}

// TrackMeta is what the extraction engine reads out of a stream.
type TrackMeta struct {
	Title      string
	Artist     string
	Album      string
	DurationMS int64
}

// Extractor reads tag metadata from a URL. It is driven entirely
// through the loopback streaming URL and never touches the share
// directly.
type Extractor interface {
	Extract(ctx context.Context, url string) (TrackMeta, error)
}

// Probe enriches remote placeholder tracks by round-tripping through
// the streaming gateway. Failures are absorbed: a bad file degrades to
// filename-based display instead of breaking the folder view.
type Probe struct {
	log       *zap.Logger
	gateway   StreamURLBuilder
	extractor Extractor
}

// NewProbe builds a metadata probe.
func NewProbe(gateway StreamURLBuilder, extractor Extractor, log *zap.Logger) *Probe {
	if log == nil {
		log = zap.NewNop()
	}
	return &Probe{log: log, gateway: gateway, extractor: extractor}
}

// Enrich returns the track with metadata filled in, or a valid fallback
// carrying the filename as title when anything goes wrong. It never
// returns an error.
func (p *Probe) Enrich(ctx context.Context, connectionID string, track model.TrackEntry) model.TrackEntry {
	url, err := p.gateway.StreamingURL(track.Path, connectionID)
	if err != nil {
		p.log.Warn("streaming unavailable, keeping placeholder",
			zap.String("path", track.Path), zap.Error(err))
		return fallbackTrack(track)
	}

	meta, err := p.extractor.Extract(ctx, url)
	if err != nil {
		p.log.Debug("metadata extraction failed",
			zap.String("path", track.Path), zap.Error(err))
		return fallbackTrack(track)
	}

	enriched := fallbackTrack(track)
	if strings.TrimSpace(meta.Title) != "" {
		enriched.Title = meta.Title
	}
	enriched.Artist = meta.Artist
	enriched.Album = meta.Album
	enriched.DurationMS = meta.DurationMS
	return enriched
}

// fallbackTrack keeps identity fields and the filename-derived title,
// zeroing everything else.
func fallbackTrack(track model.TrackEntry) model.TrackEntry {
	name := path.Base(strings.TrimSuffix(track.Path, "/"))
	return model.TrackEntry{
		Title: strings.TrimSuffix(name, path.Ext(name)),
		Path:  track.Path,
		URI:   track.URI,
	}
}
