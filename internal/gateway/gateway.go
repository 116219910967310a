// Package gateway re-exposes remote-share files over a loopback HTTP
// server so components that only speak HTTP (the metadata prober and
// the playback engine) can read them. Security relies entirely on the
// loopback bind: there is no auth and no TLS, and the single route
// family carries no credentials, only connection ids.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tunebridge/tunebridge/internal/model"
	"github.com/tunebridge/tunebridge/pkg/vpath"
)

// DefaultPort is the preferred listening port.
const DefaultPort = 8080

// audioMIMEType is fixed for every response. Every streamed file is
// known a priori to be the one supported audio format, so there is no
// per-file sniffing.
const audioMIMEType = "audio/mpeg"

// Connections resolves a connection id to its descriptor. A lookup may
// race a delete and come back absent; that is a normal outcome.
type Connections interface {
	GetByID(id string) (model.Connection, bool)
}

// OpenFunc opens a remote file for reading and returns its size.
type OpenFunc func(ctx context.Context, conn model.Connection, smbPath string) (io.ReadCloser, int64, error)

// Config configures the gateway.
type Config struct {
	// Port is the preferred port. Zero means DefaultPort. If the
	// preferred port is taken, the gateway falls back once to an
	// OS-assigned port and keeps it for the life of the process.
	Port int
}

// Gateway is the loopback streaming server. It is constructed once at
// process start and passed to everything that builds streaming URLs;
// EnsureStarted is cheap and idempotent, so any component may call it
// without caring about startup order.
type Gateway struct {
	log         *zap.Logger
	connections Connections
	open        OpenFunc
	config      Config

	mu      sync.Mutex
	running bool
	port    int
	ln      net.Listener
	srv     *http.Server
}

// New creates a stopped gateway.
func New(log *zap.Logger, connections Connections, open OpenFunc, cfg Config) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	return &Gateway{
		log:         log,
		connections: connections,
		open:        open,
		config:      cfg,
	}
}

// EnsureStarted binds the listener if it is not already bound. It is
// safe to call from any number of goroutines; exactly one bind happens
// and every caller observes the running server. A bind failure is not
// fatal to the process: the gateway stays stopped and the error tells
// the caller streaming is unavailable.
func (g *Gateway) EnsureStarted() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		return nil
	}

	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", g.config.Port))
	if err != nil {
		g.log.Warn("preferred port unavailable, falling back",
			zap.Int("port", g.config.Port), zap.Error(err))
		ln, err = net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			g.log.Error("gateway bind failed", zap.Error(err))
			return fmt.Errorf("gateway: bind: %w", err)
		}
	}

	g.ln = ln
	g.port = ln.Addr().(*net.TCPAddr).Port
	g.srv = &http.Server{Handler: g}
	g.running = true

	go func(srv *http.Server, ln net.Listener) {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.log.Warn("gateway server stopped", zap.Error(err))
		}
	}(g.srv, ln)

	g.log.Info("gateway listening", zap.Int("port", g.port))
	return nil
}

// Running reports whether the listener is bound.
func (g *Gateway) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}

// Port returns the bound port, or the configured one while stopped.
func (g *Gateway) Port() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		return g.port
	}
	return g.config.Port
}

// StreamingURL builds the loopback URL for a remote path, starting the
// server first so callers never need to. The error reports that
// streaming is unavailable; the URL format itself never fails.
func (g *Gateway) StreamingURL(smbPath, connectionID string) (string, error) {
	err := g.EnsureStarted()
	return vpath.StreamingURL(g.Port(), connectionID, smbPath), err
}

// Close shuts the server down. Only the daemon calls this, at teardown.
func (g *Gateway) Close() error {
	g.mu.Lock()
	srv := g.srv
	g.srv = nil
	g.ln = nil
	g.running = false
	g.mu.Unlock()
	if srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// ServeHTTP handles one streaming request. It runs on its own request
// goroutine and may block on remote reads; many of these run
// concurrently, also alongside directory listings on the same session.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	connectionID, smbPath, err := vpath.ParseStreamPath(r.URL.Path)
	switch {
	case errors.Is(err, vpath.ErrNotStream):
		http.Error(w, "not found", http.StatusNotFound)
		return
	case errors.Is(err, vpath.ErrMalformed):
		http.Error(w, "bad request: malformed stream path", http.StatusBadRequest)
		return
	}

	conn, ok := g.connections.GetByID(connectionID)
	if !ok {
		g.log.Warn("unknown connection id", zap.String("connection", connectionID))
		http.Error(w, "unknown connection", http.StatusNotFound)
		return
	}

	stream, size, err := g.open(r.Context(), conn, smbPath)
	if err != nil {
		g.writeFailure(w, smbPath, err)
		return
	}
	defer stream.Close()

	w.Header().Set("Content-Type", audioMIMEType)
	w.Header().Set("Content-Length", fmt.Sprintf("%d", size))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.Copy(w, stream); err != nil {
		// client went away or the share dropped mid-stream; headers
		// are already out, so just log
		g.log.Debug("stream aborted", zap.String("path", smbPath), zap.Error(err))
	}
}

// writeFailure maps a classified fault onto an HTTP status. The body
// carries the kind's message, never the raw protocol code.
func (g *Gateway) writeFailure(w http.ResponseWriter, smbPath string, err error) {
	status := http.StatusInternalServerError
	message := "internal error"

	var fault *model.Fault
	if errors.As(err, &fault) {
		message = fault.Kind.UserMessage()
		switch fault.Kind {
		case model.ShareOrPathNotFound:
			status = http.StatusNotFound
		case model.Authentication, model.PermissionDenied:
			status = http.StatusForbidden
		default:
			status = http.StatusBadGateway
		}
	} else if errors.Is(err, context.Canceled) {
		// request aborted by the client; the status barely matters
		status = http.StatusInternalServerError
		message = "request cancelled"
	}

	g.log.Warn("stream open failed",
		zap.String("path", smbPath),
		zap.Int("status", status),
		zap.Error(err),
	)
	http.Error(w, message, status)
}
