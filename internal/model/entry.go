// Package model holds the shared data types of the browsing core.
package model

// FileEntry is the closed set of items a listing can emit. The URI is
// the stable identity used for diffing and for matching a tapped item
// against a listed one: equal URIs mean the same logical file, even
// across relisting.
type FileEntry interface {
	EntryTitle() string
	EntryPath() string
	EntryURI() string

	sealed()
}

// FolderEntry is a navigable directory, including the ".." parent item.
type FolderEntry struct {
	Title string `json:"title"`
	Path  string `json:"path"`
	URI   string `json:"uri"`
}

// TrackEntry is a playable audio file. A placeholder track has only
// Title, Path and URI set; the remaining fields are filled in lazily by
// the metadata probe.
type TrackEntry struct {
	Title      string `json:"title"`
	Path       string `json:"path"`
	URI        string `json:"uri"`
	Artist     string `json:"artist,omitempty"`
	Album      string `json:"album,omitempty"`
	AlbumID    int64  `json:"albumId,omitempty"`
	ArtworkURI string `json:"artworkUri,omitempty"`
	DurationMS int64  `json:"durationMs"`
}

func (f FolderEntry) EntryTitle() string { return f.Title }
func (f FolderEntry) EntryPath() string  { return f.Path }
func (f FolderEntry) EntryURI() string   { return f.URI }
func (FolderEntry) sealed()              {}

func (t TrackEntry) EntryTitle() string { return t.Title }
func (t TrackEntry) EntryPath() string  { return t.Path }
func (t TrackEntry) EntryURI() string   { return t.URI }
func (TrackEntry) sealed()              {}

// ParentFolder builds the ".." navigation entry for a parent path.
func ParentFolder(parentPath string) FolderEntry {
	return FolderEntry{Title: "..", Path: parentPath, URI: parentPath}
}
