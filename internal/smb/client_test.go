package smb

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	smb2 "github.com/hirochachacha/go-smb2"
	"go.uber.org/zap"

	"github.com/tunebridge/tunebridge/internal/model"
)

func testClient(sharePath string) *Client {
	return NewClient(model.Connection{
		ID:        "c1",
		Nickname:  "test",
		Host:      "nas.local",
		SharePath: sharePath,
	}, zap.NewNop())
}

func TestRelPath(t *testing.T) {
	tests := []struct {
		sharePath string
		smbPath   string
		expected  string
	}{
		{"music", "smb://nas.local/music/rock/song.mp3", `rock\song.mp3`},
		{"music", "smb://nas.local/music/", ""},
		{"music", "smb://nas.local/music", ""},
		{"Share/Audio", "smb://nas.local/Share/Audio/a.mp3", `Audio\a.mp3`},
	}
	for i, test := range tests {
		c := testClient(test.sharePath)
		got, err := c.relPath(test.smbPath)
		if err != nil {
			t.Fatalf("case %d: %v", i, err)
		}
		if got != test.expected {
			t.Fatalf("case %d: relPath(%q) = %q, want %q", i, test.smbPath, got, test.expected)
		}
	}
}

func TestRelPathRejectsForeignPaths(t *testing.T) {
	c := testClient("music")
	if _, err := c.relPath("http://evil/x"); err == nil {
		t.Fatalf("expected error for non-smb path")
	}
	_, err := c.relPath("smb://nas.local/other/x.mp3")
	var fault *model.Fault
	if !errors.As(err, &fault) || fault.Kind != model.ShareOrPathNotFound {
		t.Fatalf("expected ShareOrPathNotFound, got %v", err)
	}
}

func TestShareName(t *testing.T) {
	if got := testClient("music").shareName(); got != "music" {
		t.Fatalf("shareName = %q", got)
	}
	if got := testClient("/Share/Audio/").shareName(); got != "Share" {
		t.Fatalf("shareName = %q", got)
	}
}

func TestTranslateKeepsCancellation(t *testing.T) {
	c := testClient("music")
	if got := c.translate(context.Canceled); got != context.Canceled {
		t.Fatalf("cancellation was reclassified: %v", got)
	}
	wrapped := fmt.Errorf("op failed: %w", context.DeadlineExceeded)
	if got := c.translate(wrapped); !errors.Is(got, context.DeadlineExceeded) {
		t.Fatalf("deadline was reclassified: %v", got)
	}
}

func TestTranslateResponseError(t *testing.T) {
	c := testClient("music")
	err := c.translate(&smb2.ResponseError{Code: statusLogonFailure})
	var fault *model.Fault
	if !errors.As(err, &fault) {
		t.Fatalf("expected fault, got %v", err)
	}
	if fault.Kind != model.Authentication {
		t.Fatalf("kind = %v", fault.Kind)
	}
	if fault.Status != statusLogonFailure {
		t.Fatalf("status = 0x%08x", fault.Status)
	}
}

func TestTranslateNetError(t *testing.T) {
	c := testClient("music")
	opErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	err := c.translate(opErr)
	var fault *model.Fault
	if !errors.As(err, &fault) || fault.Kind != model.HostNotFound {
		t.Fatalf("expected HostNotFound, got %v", err)
	}
}

func TestTranslateUnknownError(t *testing.T) {
	c := testClient("music")
	err := c.translate(errors.New("weird"))
	var fault *model.Fault
	if !errors.As(err, &fault) || fault.Kind != model.Unclassified {
		t.Fatalf("expected Unclassified, got %v", err)
	}
}

func TestPoolReusesAndReplaces(t *testing.T) {
	pool := NewPool(zap.NewNop())
	conn := model.Connection{ID: "c1", Host: "nas", SharePath: "music"}

	a := pool.For(conn)
	b := pool.For(conn)
	if a != b {
		t.Fatalf("expected pooled client to be reused")
	}

	conn.Password = "changed"
	c := pool.For(conn)
	if c == a {
		t.Fatalf("expected edited descriptor to rebuild the client")
	}

	pool.Drop("c1")
	d := pool.For(conn)
	if d == c {
		t.Fatalf("expected dropped client to be rebuilt")
	}
}
