package storage

import (
	"context"
	"errors"
	"strings"

	"github.com/resman-simple/apperrors"
	"github.com/resman-simple/models"
)

// Resolver maps a client-supplied identifier to exactly one stored object.
// Exact names hit the store's stat primitive directly; anything else falls
// back to a substring scan over the bucket listing, which keeps lookup by a
// UUID or timestamp fragment working. The scan is linear and the first match
// wins.
type Resolver struct {
	store ObjectStore
}

// NewResolver creates a resolver over an object store.
func NewResolver(store ObjectStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the object the identifier names, with its access URL filled
// in. Absence is reported as (nil, nil) — it is a valid outcome, not an
// error. Store failures come back wrapped as apperrors.ErrStorage and must
// not be conflated with absence.
func (r *Resolver) Resolve(ctx context.Context, identifier string) (*models.ObjectInfo, error) {
	info, err := r.store.Stat(ctx, identifier)
	if err == nil {
		return r.withURL(ctx, info)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	// Not an exact name: scan the listing for the first substring match.
	objects, err := r.store.List(ctx, "")
	if err != nil {
		return nil, err
	}

	for _, obj := range objects {
		if strings.Contains(obj.Name, identifier) {
			return r.withURL(ctx, obj)
		}
	}

	return nil, nil
}

func (r *Resolver) withURL(ctx context.Context, info models.ObjectInfo) (*models.ObjectInfo, error) {
	url, err := r.store.AccessURL(ctx, info.Name)
	if err != nil {
		return nil, err
	}
	info.URL = url
	return &info, nil
}
