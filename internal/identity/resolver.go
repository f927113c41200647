package identity

import (
	"context"
	"log"
)

// Identity is the author written into headers.
type Identity struct {
	Name  string
	Email string
}

// Resolver prefers configured values and falls back to Lookup for anything missing.
// Nothing is cached: every call may run the lookup again.
type Resolver struct {
	Author string
	Email  string
	Lookup Lookup
}

// Resolve never fails; unresolved attributes come back empty.
func (r *Resolver) Resolve(ctx context.Context, dir string) Identity {
	return Identity{
		Name:  r.resolve(ctx, dir, AttrName, r.Author),
		Email: r.resolve(ctx, dir, AttrEmail, r.Email),
	}
}

// Name resolves only the author name.
func (r *Resolver) Name(ctx context.Context, dir string) string {
	return r.resolve(ctx, dir, AttrName, r.Author)
}

func (r *Resolver) resolve(ctx context.Context, dir string, attr Attribute, configured string) string {
	if configured != "" {
		return configured
	}
	if r.Lookup == nil {
		return ""
	}
	value, err := r.Lookup.Lookup(ctx, dir, attr)
	if err != nil {
		log.Printf("Warning: failed to resolve author %s: %v", attr, err)
		return ""
	}
	return value
}
