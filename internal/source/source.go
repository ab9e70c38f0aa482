package source

import (
	"context"
	"fmt"

	"SecNewsRadar/internal/domain"
)

// FeedRef identifies a single feed inside a catalog group.
type FeedRef struct {
	Title string
	URL   string
}

// Request carries all parameters required to fetch one feed group.
type Request struct {
	GroupName string
	Category  string
	Feeds     []FeedRef
}

// Source captures a single fetch strategy implementation (RSS/Atom for
// now; anything that yields raw entries fits).
type Source interface {
	Name() string
	Fetch(ctx context.Context, req Request) ([]domain.RawEntry, error)
}

// Registry keeps a mapping from strategy names to their implementations.
type Registry struct {
	sources map[string]Source
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: map[string]Source{}}
}

// Register adds or replaces a source implementation.
func (r *Registry) Register(src Source) {
	if r.sources == nil {
		r.sources = map[string]Source{}
	}
	r.sources[src.Name()] = src
}

// Resolve returns a source by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Source, error) {
	if src, ok := r.sources[name]; ok {
		return src, nil
	}
	return nil, fmt.Errorf("source %s is not registered", name)
}
