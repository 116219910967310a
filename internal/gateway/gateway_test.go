package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/tunebridge/tunebridge/internal/model"
)

type fakeConnections map[string]model.Connection

func (f fakeConnections) GetByID(id string) (model.Connection, bool) {
	conn, ok := f[id]
	return conn, ok
}

func fixedOpen(payload string, err error) OpenFunc {
	return func(_ context.Context, _ model.Connection, _ string) (io.ReadCloser, int64, error) {
		if err != nil {
			return nil, 0, err
		}
		return io.NopCloser(strings.NewReader(payload)), int64(len(payload)), nil
	}
}

func testConnections() fakeConnections {
	return fakeConnections{
		"c1": {ID: "c1", Host: "nas.local", SharePath: "music"},
	}
}

func TestEnsureStartedConcurrent(t *testing.T) {
	g := New(zap.NewNop(), testConnections(), fixedOpen("", nil), Config{Port: -1})
	// a negative preferred port forces the fallback bind, which uses an
	// OS-assigned port and keeps tests away from fixed ports
	defer g.Close()

	const callers = 16
	var wg sync.WaitGroup
	ports := make(chan int, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := g.EnsureStarted(); err != nil {
				t.Errorf("ensure started: %v", err)
				return
			}
			ports <- g.Port()
		}()
	}
	wg.Wait()
	close(ports)

	first := 0
	for port := range ports {
		if first == 0 {
			first = port
		}
		if port != first {
			t.Fatalf("observed two ports: %d and %d", first, port)
		}
	}
	if !g.Running() {
		t.Fatalf("gateway not running after EnsureStarted")
	}
}

func TestStreamingURLStartsServer(t *testing.T) {
	g := New(zap.NewNop(), testConnections(), fixedOpen("abc", nil), Config{Port: -1})
	defer g.Close()

	url, err := g.StreamingURL("smb://nas.local/music/a b.mp3", "c1")
	if err != nil {
		t.Fatalf("streaming url: %v", err)
	}
	if !g.Running() {
		t.Fatalf("StreamingURL did not start the gateway")
	}
	expected := fmt.Sprintf("http://127.0.0.1:%d/stream/c1/nas.local/music/a b.mp3", g.Port())
	if url != expected {
		t.Fatalf("url = %q, want %q", url, expected)
	}

	resp, err := http.Get(strings.ReplaceAll(url, " ", "%20"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "abc" {
		t.Fatalf("body = %q", body)
	}
}

func TestServeStreamsFile(t *testing.T) {
	g := New(zap.NewNop(), testConnections(), fixedOpen("hello bytes", nil), Config{})

	req := httptest.NewRequest(http.MethodGet, "/stream/c1/nas.local/music/song.mp3", nil)
	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "audio/mpeg" {
		t.Fatalf("content type = %q", got)
	}
	if got := rec.Header().Get("Content-Length"); got != "11" {
		t.Fatalf("content length = %q", got)
	}
	if rec.Body.String() != "hello bytes" {
		t.Fatalf("body = %q", rec.Body.String())
	}
}

func TestServeRouting(t *testing.T) {
	g := New(zap.NewNop(), testConnections(), fixedOpen("x", nil), Config{})

	tests := []struct {
		path     string
		expected int
	}{
		{"/other/c1/x", http.StatusNotFound},
		{"/stream/justid", http.StatusBadRequest},
		{"/stream/missing/nas.local/music/a.mp3", http.StatusNotFound},
	}
	for _, test := range tests {
		rec := httptest.NewRecorder()
		g.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, test.path, nil))
		if rec.Code != test.expected {
			t.Fatalf("GET %s = %d, want %d", test.path, rec.Code, test.expected)
		}
	}
}

func TestServeFailureMapping(t *testing.T) {
	tests := []struct {
		kind     model.ErrorKind
		expected int
	}{
		{model.ShareOrPathNotFound, http.StatusNotFound},
		{model.Authentication, http.StatusForbidden},
		{model.PermissionDenied, http.StatusForbidden},
		{model.TransientNetwork, http.StatusBadGateway},
		{model.HostNotFound, http.StatusBadGateway},
		{model.Unclassified, http.StatusBadGateway},
	}
	for _, test := range tests {
		fault := &model.Fault{Kind: test.kind, Message: "raw detail", Status: 0xC000006D}
		g := New(zap.NewNop(), testConnections(), fixedOpen("", fault), Config{})
		rec := httptest.NewRecorder()
		g.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stream/c1/nas.local/music/a.mp3", nil))
		if rec.Code != test.expected {
			t.Fatalf("kind %v = %d, want %d", test.kind, rec.Code, test.expected)
		}
		if strings.Contains(rec.Body.String(), "0xc000006d") || strings.Contains(rec.Body.String(), "C000006D") {
			t.Fatalf("raw status leaked into body: %q", rec.Body.String())
		}
	}
}

func TestServeUnclassifiedError(t *testing.T) {
	g := New(zap.NewNop(), testConnections(), fixedOpen("", errors.New("boom")), Config{})
	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stream/c1/nas.local/music/a.mp3", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestServeHead(t *testing.T) {
	g := New(zap.NewNop(), testConnections(), fixedOpen("payload", nil), Config{})
	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/stream/c1/nas.local/music/a.mp3", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("HEAD returned a body")
	}
	if got := rec.Header().Get("Content-Length"); got != "7" {
		t.Fatalf("content length = %q", got)
	}
}
