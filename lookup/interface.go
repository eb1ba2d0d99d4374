package lookup

import (
	"context"
	"encoding/json"
)

// Service fetches movie metadata from an upstream API.
type Service interface {
	Lookup(ctx context.Context, q Query) (json.RawMessage, error)
}
