package source

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/kokoro/pkg/model"
	"github.com/urfave/cli/v3"
)

// Registry keeps the ordered source list. The order is the rotation order of
// the aggregator's cursor.
type Registry struct {
	sources []Source
}

// NewRegistry creates a registry with the given sources in rotation order
func NewRegistry(sources ...Source) *Registry {
	return &Registry{sources: sources}
}

// Sources returns the ordered source list
func (r *Registry) Sources() []Source {
	return r.sources
}

// Lookup returns the source with the given name
func (r *Registry) Lookup(name model.SourceName) (Source, error) {
	for _, s := range r.sources {
		if s.Name() == name {
			return s, nil
		}
	}
	return nil, goerr.Wrap(ErrSourceNotFound, "no such source", goerr.V("name", name))
}

// Flags returns all source flags combined
func (r *Registry) Flags() []cli.Flag {
	var flags []cli.Flag
	for _, s := range r.sources {
		if sourceFlags := s.Flags(); sourceFlags != nil {
			flags = append(flags, sourceFlags...)
		}
	}
	return flags
}

// Init initializes every source. A failing source is returned as an error so
// the caller can decide; the local source never fails Init (it falls back to
// its built-in list).
func (r *Registry) Init(ctx context.Context) error {
	for _, s := range r.sources {
		if err := s.Init(ctx); err != nil {
			return goerr.Wrap(err, "failed to initialize source", goerr.V("name", s.Name()))
		}
	}
	return nil
}
