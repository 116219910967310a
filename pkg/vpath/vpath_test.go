package vpath

import "testing"

func TestShareRoot(t *testing.T) {
	tests := []struct {
		host     string
		share    string
		expected string
	}{
		{"nas.local", "music", "smb://nas.local/music/"},
		{"nas.local", "/music/", "smb://nas.local/music/"},
		{"nas.local", "Multimedia//Audio", "smb://nas.local/Multimedia/Audio/"},
		{"192.168.1.10", "", "smb://192.168.1.10/"},
		{"nas", "///a///b///", "smb://nas/a/b/"},
	}
	for _, test := range tests {
		if got := ShareRoot(test.host, test.share); got != test.expected {
			t.Fatalf("ShareRoot(%q, %q) = %q, want %q", test.host, test.share, got, test.expected)
		}
	}
}

func TestStreamPathRoundTrip(t *testing.T) {
	paths := []string{
		"smb://nas.local/music/track.mp3",
		"smb://nas.local/music/Some Artist/Some Album/01 - Intro.mp3",
		"smb://nas.local/ミュージック/アルバム/曲.mp3",
		"smb://192.168.1.10/share/a/b/c/d/e/deep.mp3",
	}
	for _, p := range paths {
		sp := StreamPath("conn-1", p)
		id, back, err := ParseStreamPath(sp)
		if err != nil {
			t.Fatalf("ParseStreamPath(%q): %v", sp, err)
		}
		if id != "conn-1" {
			t.Fatalf("connection id %q, want conn-1", id)
		}
		if back != p {
			t.Fatalf("round trip %q -> %q", p, back)
		}
	}
}

func TestStreamingURL(t *testing.T) {
	url := StreamingURL(8080, "abc", "smb://nas/music/x.mp3")
	expected := "http://127.0.0.1:8080/stream/abc/nas/music/x.mp3"
	if url != expected {
		t.Fatalf("got %q, want %q", url, expected)
	}
}

func TestParseStreamPathErrors(t *testing.T) {
	if _, _, err := ParseStreamPath("/other/abc/x"); err != ErrNotStream {
		t.Fatalf("expected ErrNotStream, got %v", err)
	}
	if _, _, err := ParseStreamPath("/stream/onlyid"); err != ErrMalformed {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if _, _, err := ParseStreamPath("/stream//path"); err != ErrMalformed {
		t.Fatalf("expected ErrMalformed for empty id, got %v", err)
	}
}

func TestParent(t *testing.T) {
	tests := []struct {
		path     string
		expected string
		ok       bool
	}{
		{"smb://nas/music/rock/", "smb://nas/music/", true},
		{"smb://nas/music/rock", "smb://nas/music/", true},
		{"smb://nas/music/", "smb://nas/", true},
		{"smb://nas/", "", false},
		{"smb://nas", "", false},
	}
	for _, test := range tests {
		got, ok := Parent(test.path)
		if ok != test.ok || got != test.expected {
			t.Fatalf("Parent(%q) = (%q, %t), want (%q, %t)", test.path, got, ok, test.expected, test.ok)
		}
	}
}

func TestSameFolder(t *testing.T) {
	if !SameFolder("smb://nas/music/", "smb://nas/music") {
		t.Fatalf("expected trailing slash to be ignored")
	}
	if SameFolder("smb://nas/music/", "smb://nas/video/") {
		t.Fatalf("expected different folders")
	}
}
