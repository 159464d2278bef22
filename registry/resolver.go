package registry

import (
	"log/slog"
	"time"
)

// Resolver maps a province and a date to the set of code editions legally in
// force. It never fails: jurisdictions or dates with no coverage resolve to an
// empty list.
type Resolver struct {
	registry Registry
	logger   *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithResolverLogger sets a custom logger.
// Default is slog.Default().
func WithResolverLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
	}
}

// NewResolver creates a resolver over the given registry.
func NewResolver(registry Registry, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		registry: registry,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the names of the editions in force for the province on the
// given date: the provincial edition first (if any), then one edition per
// national family in the registry's fixed order. At most one edition per
// family is returned; when intervals overlap, the edition with the latest
// effective date not exceeding asOf wins, which also resolves open-ended
// current editions.
func (r *Resolver) Resolve(province string, asOf time.Time) []string {
	var names []string

	if family, ok := r.registry.FamilyForProvince(province); ok {
		if name, found := r.pick(family.Code, asOf); found {
			names = append(names, name)
		}
	} else {
		r.logger.Debug("no provincial code family mapped", "province", province)
	}

	for _, family := range r.registry.NationalFamilies() {
		if name, found := r.pick(family.Code, asOf); found {
			names = append(names, name)
		}
	}

	return names
}

func (r *Resolver) pick(familyCode string, asOf time.Time) (string, bool) {
	editions := r.registry.Editions(familyCode)

	best := -1
	for i := range editions {
		if !editions[i].InForce(asOf) {
			continue
		}
		if best < 0 || editions[i].Effective.After(editions[best].Effective) {
			best = i
		}
	}

	if best < 0 {
		return "", false
	}
	return editions[best].Name(), true
}
