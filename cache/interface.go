package cache

import (
	"context"
	"encoding/json"

	"omdb_proxy/lookup"
)

// Service defines the interface for lookup cache operations
type Service interface {
	Get(ctx context.Context, key Key) (json.RawMessage, bool, error)
	Set(ctx context.Context, key Key, body json.RawMessage) error
}

// Key is tagged with the lookup kind, so an identifier and a title with the
// same text are stored separately.
type Key struct {
	Kind  lookup.Kind
	Value string
}

// KeyFor returns the cache key of a lookup query.
func KeyFor(q lookup.Query) Key {
	return Key{Kind: q.Kind, Value: q.Value}
}

func (k Key) String() string {
	return k.Kind.String() + ":" + k.Value
}
