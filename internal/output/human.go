package output

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"

	"github.com/tunebridge/tunebridge/internal/model"
)

// HumanPrinter prints human-readable output.
type HumanPrinter struct{}

// Print renders human output.
func (HumanPrinter) Print(v any) error {
	switch data := v.(type) {
	case EntriesResult:
		return printEntries(data)
	case ConnectionsResult:
		return printConnections(data)
	case TrackResult:
		return printTrack(data)
	case URLResult:
		_, err := fmt.Fprintln(os.Stdout, data.URL)
		return err
	case SourceResult:
		return printSource(data)
	default:
		_, err := fmt.Fprintln(os.Stdout, "ok")
		return err
	}
}

func printEntries(result EntriesResult) error {
	if len(result.Entries) == 0 {
		_, err := fmt.Fprintln(os.Stdout, "(empty)")
		return err
	}
	rows := pterm.TableData{{"TYPE", "TITLE", "ARTIST", "ALBUM", "LEN"}}
	for _, entry := range result.Entries {
		switch e := entry.(type) {
		case model.FolderEntry:
			rows = append(rows, []string{"dir", e.Title, "", "", ""})
		case model.TrackEntry:
			rows = append(rows, []string{"track", e.Title, e.Artist, e.Album, formatDuration(e.DurationMS)})
		}
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func printConnections(result ConnectionsResult) error {
	if len(result.Connections) == 0 {
		_, err := fmt.Fprintln(os.Stdout, "(no connections)")
		return err
	}
	rows := pterm.TableData{{"NICKNAME", "HOST", "SHARE", "USER", "ID"}}
	for _, conn := range result.Connections {
		user := conn.Username
		if conn.Anonymous() {
			user = "(anonymous)"
		}
		rows = append(rows, []string{conn.Nickname, conn.Host, conn.SharePath, user, conn.ID})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

func printTrack(result TrackResult) error {
	track := result.Track
	rows := pterm.TableData{
		{"Title", track.Title},
		{"Artist", track.Artist},
		{"Album", track.Album},
		{"Length", formatDuration(track.DurationMS)},
		{"URI", track.URI},
	}
	return pterm.DefaultTable.WithData(rows).Render()
}

func printSource(result SourceResult) error {
	if result.Active.ConnectionID != "" {
		_, err := fmt.Fprintf(os.Stdout, "%s (%s)\n", result.Active.Kind, result.Active.ConnectionID)
		return err
	}
	_, err := fmt.Fprintln(os.Stdout, string(result.Active.Kind))
	return err
}

func formatDuration(ms int64) string {
	if ms <= 0 {
		return ""
	}
	total := ms / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
