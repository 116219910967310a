package browse

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/tcolgate/mp3"
	"go.uber.org/zap"
)

// maxExtractBytes caps how much of a stream the extractor pulls. Tags
// sit at the front of the file; the frame scan for duration needs the
// whole thing, so the cap is generous but bounded.
const maxExtractBytes = 64 << 20

// HTTPExtractor reads tag metadata and duration from an HTTP stream.
type HTTPExtractor struct {
	log    *zap.Logger
	client *http.Client
}

// NewHTTPExtractor builds the default extraction engine.
func NewHTTPExtractor(timeout time.Duration, log *zap.Logger) *HTTPExtractor {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &HTTPExtractor{
		log:    log,
		client: &http.Client{Timeout: timeout},
	}
}

// Extract fetches the URL and parses tags and duration out of the
// body. A missing or unreadable tag block is not fatal; the duration
// scan runs regardless.
func (e *HTTPExtractor) Extract(ctx context.Context, url string) (TrackMeta, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return TrackMeta{}, err
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return TrackMeta{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return TrackMeta{}, fmt.Errorf("extract: %s returned %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxExtractBytes))
	if err != nil {
		return TrackMeta{}, err
	}

	var meta TrackMeta
	if parsed, err := tag.ReadFrom(bytes.NewReader(data)); err == nil {
		meta.Title = strings.TrimSpace(parsed.Title())
		meta.Artist = strings.TrimSpace(parsed.Artist())
		meta.Album = strings.TrimSpace(parsed.Album())
	} else {
		e.log.Debug("no readable tags", zap.String("url", url), zap.Error(err))
	}
	meta.DurationMS = scanDuration(bytes.NewReader(data))
	return meta, nil
}

// scanDuration walks the MPEG frames and sums their durations.
// Undecodable input yields zero.
func scanDuration(r io.Reader) int64 {
	decoder := mp3.NewDecoder(r)
	var frame mp3.Frame
	var skipped int
	total := time.Duration(0)
	for {
		if err := decoder.Decode(&frame, &skipped); err != nil {
			break
		}
		total += frame.Duration()
	}
	return total.Milliseconds()
}
