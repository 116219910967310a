package browse

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dhowden/tag"
	"go.uber.org/zap"

	"github.com/tunebridge/tunebridge/internal/model"
)

// LocalSource lists on-device music storage. Unlike the remote lister
// it emits tracks before subfolders, and tracks come out with tag
// metadata already filled in: local reads are cheap, so there is no
// placeholder stage.
type LocalSource struct {
	log  *zap.Logger
	root string
}

// NewLocalSource builds a lister rooted at the local music directory.
func NewLocalSource(root string, log *zap.Logger) *LocalSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &LocalSource{log: log, root: filepath.Clean(root)}
}

// Root returns the configured local root.
func (l *LocalSource) Root() string { return l.root }

// Entries lists a local folder. Emission order: the ".." parent entry
// (when below the root), then direct-child tracks sorted by title,
// then the distinct immediate subfolders that contain audio, sorted.
// A missing folder yields an empty listing.
func (l *LocalSource) Entries(ctx context.Context, folder string) (<-chan model.FileEntry, <-chan error) {
	return produce(ctx, func(emit func(model.FileEntry) bool) error {
		target := l.root
		if folder != "" {
			target = filepath.Clean(folder)
		}

		info, err := os.Stat(target)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return localFault(err)
		}
		if !info.IsDir() {
			return nil
		}

		if target != l.root {
			parent := filepath.Dir(target)
			if parent != target {
				if !emit(model.FolderEntry{Title: "..", Path: parent, URI: "folder://" + parent}) {
					return nil
				}
			}
		}

		tracks, subfolders, err := l.scanFolder(ctx, target)
		if err != nil {
			return err
		}

		for _, track := range tracks {
			if !emit(track) {
				return nil
			}
		}
		for _, sub := range subfolders {
			entry := model.FolderEntry{
				Title: filepath.Base(sub),
				Path:  sub,
				URI:   "folder://" + sub,
			}
			if !emit(entry) {
				return nil
			}
		}
		return nil
	})
}

// scanFolder walks the subtree under target once, keeping direct-child
// audio files as tracks and recording which immediate subfolders hold
// audio further down.
func (l *LocalSource) scanFolder(ctx context.Context, target string) ([]model.TrackEntry, []string, error) {
	var tracks []model.TrackEntry
	subfolderSet := map[string]struct{}{}

	err := filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			l.log.Debug("walk error", zap.String("path", path), zap.Error(err))
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), audioExt) {
			return nil
		}

		rel, err := filepath.Rel(target, path)
		if err != nil {
			return nil
		}
		if dir, _, nested := strings.Cut(rel, string(filepath.Separator)); nested {
			subfolderSet[filepath.Join(target, dir)] = struct{}{}
			return nil
		}

		tracks = append(tracks, l.buildTrack(path))
		return nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, nil, err
		}
		return nil, nil, localFault(err)
	}

	sort.SliceStable(tracks, func(i, j int) bool {
		return strings.ToLower(tracks[i].Title) < strings.ToLower(tracks[j].Title)
	})
	subfolders := make([]string, 0, len(subfolderSet))
	for sub := range subfolderSet {
		subfolders = append(subfolders, sub)
	}
	sort.Strings(subfolders)
	return tracks, subfolders, nil
}

// buildTrack reads tags from a local file, falling back to filename
// conventions when the file carries none.
func (l *LocalSource) buildTrack(path string) model.TrackEntry {
	track := model.TrackEntry{
		Path: path,
		URI:  "file://" + path,
	}

	title, artist, album := readLocalTags(path)
	if title == "" {
		name := filepath.Base(path)
		title = strings.TrimSuffix(name, filepath.Ext(name))
		if before, after, found := strings.Cut(title, " - "); found && artist == "" {
			artist = strings.TrimSpace(before)
			title = strings.TrimSpace(after)
		}
	}
	if album == "" {
		if dir := filepath.Dir(path); dir != "." {
			album = filepath.Base(dir)
		}
	}

	track.Title = title
	track.Artist = artist
	track.Album = album
	return track
}

func readLocalTags(path string) (title, artist, album string) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", ""
	}
	defer f.Close()
	meta, err := tag.ReadFrom(f)
	if err != nil {
		return "", "", ""
	}
	return strings.TrimSpace(meta.Title()), strings.TrimSpace(meta.Artist()), strings.TrimSpace(meta.Album())
}

// TrackDetails fills in the duration lazily; everything else was
// already populated at listing time.
func (l *LocalSource) TrackDetails(_ context.Context, track model.TrackEntry) model.TrackEntry {
	if track.DurationMS > 0 {
		return track
	}
	f, err := os.Open(track.Path)
	if err != nil {
		return track
	}
	defer f.Close()
	track.DurationMS = scanDuration(f)
	return track
}

// localFault classifies a local filesystem error: OS-level permission
// refusals get their own kind, everything else is a generic I/O fault.
func localFault(err error) *model.Fault {
	if errors.Is(err, fs.ErrPermission) {
		return &model.Fault{Kind: model.SecurityDenied, Message: model.SecurityDenied.UserMessage(), Err: err}
	}
	return &model.Fault{Kind: model.IOFailure, Message: model.IOFailure.UserMessage(), Err: err}
}
