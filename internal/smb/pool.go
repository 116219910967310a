package smb

import (
	"context"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/tunebridge/tunebridge/internal/model"
)

// Pool hands out one client per connection id so sessions are shared
// between listing, probing, and gateway streaming. A client is rebuilt
// when its descriptor changed, so edits take effect on the next lookup.
type Pool struct {
	log *zap.Logger

	mu      sync.Mutex
	clients map[string]*Client
}

// NewPool creates an empty client pool.
func NewPool(log *zap.Logger) *Pool {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pool{log: log, clients: map[string]*Client{}}
}

// For returns the pooled client for a connection, creating or
// replacing it as needed.
func (p *Pool) For(conn model.Connection) *Client {
	p.mu.Lock()
	defer p.mu.Unlock()
	if existing, ok := p.clients[conn.ID]; ok {
		if existing.Connection() == conn {
			return existing
		}
		existing.Close()
	}
	client := NewClient(conn, p.log.With(zap.String("connection", conn.ID)))
	p.clients[conn.ID] = client
	return client
}

// Open opens a remote file through the pooled client for a connection.
func (p *Pool) Open(ctx context.Context, conn model.Connection, smbPath string) (io.ReadCloser, int64, error) {
	return p.For(conn).OpenRead(ctx, smbPath)
}

// Drop closes and forgets the client for a connection id, typically
// after the connection was deleted.
func (p *Pool) Drop(connectionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if client, ok := p.clients[connectionID]; ok {
		client.Close()
		delete(p.clients, connectionID)
	}
}

// Close tears down every pooled session.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, client := range p.clients {
		client.Close()
		delete(p.clients, id)
	}
}
