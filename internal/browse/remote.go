package browse

import (
	"context"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/tunebridge/tunebridge/internal/model"
	"github.com/tunebridge/tunebridge/internal/smb"
	"github.com/tunebridge/tunebridge/pkg/vpath"
)

// audioExt is the one audio format this player streams. The gateway's
// fixed MIME type relies on this filter.
const audioExt = ".mp3"

// ShareClient is the slice of the smb client the remote lister needs.
type ShareClient interface {
	RootURL() string
	Stat(ctx context.Context, smbPath string) (smb.PathInfo, error)
	List(ctx context.Context, smbPath string) ([]smb.RawEntry, error)
}

// TrackEnricher fills in metadata for a remote placeholder track.
type TrackEnricher interface {
	Enrich(ctx context.Context, connectionID string, track model.TrackEntry) model.TrackEntry
}

// RemoteSource lists a remote share. Listing is cheap: tracks come out
// as placeholders and metadata is probed lazily per track, so a large
// folder renders without waiting on the network once per file.
type RemoteSource struct {
	log          *zap.Logger
	client       ShareClient
	connectionID string
	enricher     TrackEnricher
}

// NewRemoteSource builds a lister for one connection's share.
func NewRemoteSource(client ShareClient, connectionID string, enricher TrackEnricher, log *zap.Logger) *RemoteSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &RemoteSource{
		log:          log,
		client:       client,
		connectionID: connectionID,
		enricher:     enricher,
	}
}

// Entries lists a remote folder. Emission order: the ".." parent entry
// first (when the target is below the share root), then folders, then
// tracks, each group sorted case-insensitively. A folder that no longer
// exists yields an empty listing, not an error. Exactly one attempt is
// made; no retries.
func (r *RemoteSource) Entries(ctx context.Context, folder string) (<-chan model.FileEntry, <-chan error) {
	return produce(ctx, func(emit func(model.FileEntry) bool) error {
		target := folder
		if target == "" {
			target = r.client.RootURL()
		}

		info, err := r.client.Stat(ctx, target)
		if err != nil {
			return err
		}
		if !info.Exists || !info.IsDir {
			// the folder disappeared between navigations; a designed
			// empty result, not a failure
			return nil
		}

		root := r.client.RootURL()
		if !vpath.SameFolder(target, root) {
			if parent, ok := vpath.Parent(target); ok {
				if !emit(model.ParentFolder(parent)) {
					return nil
				}
			}
		}

		children, err := r.client.List(ctx, target)
		if err != nil {
			return err
		}

		for _, child := range children {
			if !child.Dir {
				continue
			}
			entry := model.FolderEntry{
				Title: child.Name,
				Path:  child.CanonicalPath,
				URI:   child.CanonicalPath,
			}
			if !emit(entry) {
				return nil
			}
		}
		for _, child := range children {
			if child.Dir || !strings.EqualFold(path.Ext(child.Name), audioExt) {
				continue
			}
			placeholder := model.TrackEntry{
				Title: strings.TrimSuffix(child.Name, path.Ext(child.Name)),
				Path:  child.CanonicalPath,
				URI:   child.CanonicalPath,
			}
			if !emit(placeholder) {
				return nil
			}
		}
		return nil
	})
}

// TrackDetails probes metadata for a placeholder through the gateway.
func (r *RemoteSource) TrackDetails(ctx context.Context, track model.TrackEntry) model.TrackEntry {
	if r.enricher == nil {
		return track
	}
	return r.enricher.Enrich(ctx, r.connectionID, track)
}
