// Package holidays loads extra special days from configured upstream feeds.
package holidays

import (
	"context"
	"fmt"
	"strings"

	"UploadTimeAdvisor/internal/domain"
)

// Request carries all parameters required to load one source.
type Request struct {
	SourceName string
	URL        string
	Options    map[string]string
}

// Loader captures a single strategy implementation (ICS feed, HTML table, etc.).
type Loader interface {
	Name() string
	Load(ctx context.Context, req Request) ([]domain.HolidayEntry, error)
}

// Registry keeps a mapping from loader kinds to their implementations.
type Registry struct {
	loaders map[string]Loader
}

// NewRegistry builds a registry holding the given loaders.
func NewRegistry(loaders ...Loader) *Registry {
	r := &Registry{loaders: map[string]Loader{}}
	for _, l := range loaders {
		r.Register(l)
	}
	return r
}

// Register adds or replaces a loader implementation.
func (r *Registry) Register(loader Loader) {
	if r.loaders == nil {
		r.loaders = map[string]Loader{}
	}
	r.loaders[loader.Name()] = loader
}

// Resolve returns a loader by kind or an error if it is absent.
func (r *Registry) Resolve(kind string) (Loader, error) {
	if loader, ok := r.loaders[kind]; ok {
		return loader, nil
	}
	return nil, fmt.Errorf("holiday loader %s is not registered", kind)
}

// kindForName marks election days; everything else is a public holiday.
func kindForName(name string) domain.HolidayKind {
	if strings.Contains(name, "선거") {
		return domain.HolidayKindElection
	}
	return domain.HolidayKindHoliday
}
