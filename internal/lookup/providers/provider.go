package providers

import (
	"context"
	"fmt"
	"sort"

	"ninlookup/internal/lookup/models"
)

// Provider names recognized by configuration.
const (
	NameMock     = "mock"
	NameVerifyMe = "verifyme"
	NameMetaMap  = "metamap"
	NameSeamfix  = "seamfix"
	NameMono     = "mono"
)

// Provider is the contract every identity backend implements.
//
// Lookup never returns a Go error: every failure, including configuration and transport
// problems, is reported as a Failure result so the caller persists it like any other outcome.
type Provider interface {
	// Name is the configuration name of the adapter; it is persisted on each record.
	Name() string

	Lookup(ctx context.Context, input models.Input) Result
}

// Registry maps provider names to adapters.
// Not safe for concurrent mutation; register everything during initialization.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider keyed by its name. Duplicate names are rejected.
func (r *Registry) Register(p Provider) error {
	name := p.Name()
	if name == "" {
		return fmt.Errorf("provider name is required")
	}
	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("provider %s already registered", name)
	}
	r.providers[name] = p
	return nil
}

func (r *Registry) Get(name string) (Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// Names returns the registered provider names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
