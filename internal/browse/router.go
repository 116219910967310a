package browse

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tunebridge/tunebridge/internal/model"
	"github.com/tunebridge/tunebridge/internal/smb"
)

// SourceKind selects which data source listings run against.
type SourceKind string

const (
	// SourceLocal browses on-device storage.
	SourceLocal SourceKind = "local"
	// SourceRemote browses a registered remote share.
	SourceRemote SourceKind = "smb"
)

// ActiveSource is the externally-persisted "where am I browsing"
// state: a kind plus, for remote, the connection id.
type ActiveSource struct {
	Kind         SourceKind `json:"kind"`
	ConnectionID string     `json:"connectionId,omitempty"`
}

// ActiveSourceReader exposes the persisted selection.
type ActiveSourceReader interface {
	ActiveSource() ActiveSource
}

// ConnectionLookup resolves connection ids; absence is a normal
// outcome, not an error.
type ConnectionLookup interface {
	GetByID(id string) (model.Connection, bool)
}

// Router picks the source a request operates on. It is a thin seam:
// one local source, and remote sources built per lookup so descriptor
// edits take effect immediately (sessions are still pooled below).
type Router struct {
	log      *zap.Logger
	settings ActiveSourceReader
	registry ConnectionLookup
	pool     *smb.Pool
	local    *LocalSource
	probe    *Probe
}

// NewRouter wires the source selection seam.
func NewRouter(settings ActiveSourceReader, registry ConnectionLookup, pool *smb.Pool, local *LocalSource, probe *Probe, log *zap.Logger) *Router {
	if log == nil {
		log = zap.NewNop()
	}
	return &Router{
		log:      log,
		settings: settings,
		registry: registry,
		pool:     pool,
		local:    local,
		probe:    probe,
	}
}

// Active returns the source selected by the persisted active-source
// state. A remote selection whose connection was deleted reports a
// not-found fault; callers treat it like any other listing failure.
func (r *Router) Active(_ context.Context) (Source, error) {
	selection := r.settings.ActiveSource()
	switch selection.Kind {
	case SourceRemote:
		return r.Remote(selection.ConnectionID)
	case SourceLocal, "":
		return r.local, nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", selection.Kind)
	}
}

// Remote builds the lister for a specific registered connection.
func (r *Router) Remote(connectionID string) (Source, error) {
	conn, ok := r.registry.GetByID(connectionID)
	if !ok {
		return nil, &model.Fault{
			Kind:    model.ShareOrPathNotFound,
			Message: fmt.Sprintf("connection %s is not registered", connectionID),
		}
	}
	client := r.pool.For(conn)
	return NewRemoteSource(client, conn.ID, r.probe, r.log.With(zap.String("connection", conn.ID))), nil
}

// Local returns the on-device source directly.
func (r *Router) Local() Source { return r.local }
