package knowledge

import (
	"context"
	"sync"

	"scout/internal/capability"
	"scout/internal/tools"
)

// Provider is the knowledge provider backed by a local SQLite note
// store. The database file is opened lazily on first use.
type Provider struct {
	target tools.Target

	mu    sync.Mutex
	store *Store
}

// NewProvider builds a provider for target. Construction performs no I/O;
// the database path comes from the target option "path".
func NewProvider(target tools.Target) *Provider {
	return &Provider{target: target}
}

func (p *Provider) Capabilities() []capability.Capability {
	return []capability.Capability{capability.Knowledge}
}

func (p *Provider) getStore() (*Store, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.store == nil {
		// A failed open is not cached: the path may become usable
		// later (mounted volume, directory created after startup).
		store, err := OpenStore(p.target.Options["path"])
		if err != nil {
			return nil, err
		}
		p.store = store
	}
	return p.store, nil
}

func (p *Provider) CheckHealth(ctx context.Context) capability.HealthStatus {
	store, err := p.getStore()
	if err != nil {
		return capability.Unhealthy(err)
	}
	if err := store.Ping(ctx); err != nil {
		return capability.Unhealthy(err)
	}
	return capability.Healthy()
}

func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.store != nil {
		err := p.store.Close()
		p.store = nil
		return err
	}
	return nil
}

// SearchNotes returns notes whose topic or body matches query.
func (p *Provider) SearchNotes(ctx context.Context, query string, limit int) ([]capability.Note, error) {
	store, err := p.getStore()
	if err != nil {
		return nil, err
	}
	return store.Search(ctx, query, limit)
}

// SaveNote stores a note and returns it with its assigned ID.
func (p *Provider) SaveNote(ctx context.Context, topic, body string) (*capability.Note, error) {
	store, err := p.getStore()
	if err != nil {
		return nil, err
	}
	return store.Save(ctx, topic, body)
}
