package browse

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/tunebridge/tunebridge/internal/model"
	"github.com/tunebridge/tunebridge/internal/smb"
)

type fakeSettings struct{ selection ActiveSource }

func (f fakeSettings) ActiveSource() ActiveSource { return f.selection }

type fakeRegistry map[string]model.Connection

func (f fakeRegistry) GetByID(id string) (model.Connection, bool) {
	conn, ok := f[id]
	return conn, ok
}

func newRouter(selection ActiveSource, registry fakeRegistry) *Router {
	local := NewLocalSource("/music", zap.NewNop())
	pool := smb.NewPool(zap.NewNop())
	return NewRouter(fakeSettings{selection}, registry, pool, local, nil, zap.NewNop())
}

func TestRouterSelectsLocal(t *testing.T) {
	router := newRouter(ActiveSource{Kind: SourceLocal}, fakeRegistry{})
	src, err := router.Active(context.Background())
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if _, ok := src.(*LocalSource); !ok {
		t.Fatalf("expected local source, got %T", src)
	}
}

func TestRouterDefaultsToLocal(t *testing.T) {
	router := newRouter(ActiveSource{}, fakeRegistry{})
	src, err := router.Active(context.Background())
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if _, ok := src.(*LocalSource); !ok {
		t.Fatalf("expected local source, got %T", src)
	}
}

func TestRouterSelectsRemote(t *testing.T) {
	registry := fakeRegistry{
		"c1": {ID: "c1", Host: "nas.local", SharePath: "music"},
	}
	router := newRouter(ActiveSource{Kind: SourceRemote, ConnectionID: "c1"}, registry)
	src, err := router.Active(context.Background())
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if _, ok := src.(*RemoteSource); !ok {
		t.Fatalf("expected remote source, got %T", src)
	}
}

func TestRouterDeletedConnection(t *testing.T) {
	router := newRouter(ActiveSource{Kind: SourceRemote, ConnectionID: "gone"}, fakeRegistry{})
	_, err := router.Active(context.Background())
	var fault *model.Fault
	if !errors.As(err, &fault) || fault.Kind != model.ShareOrPathNotFound {
		t.Fatalf("expected not-found fault, got %v", err)
	}
}
