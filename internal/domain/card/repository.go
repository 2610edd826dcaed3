package card

import (
	"context"
)

// Repository is the read-only table of card definitions, built once at
// process start. Implementations must be safe for concurrent readers
// without locking.
type Repository interface {
	Get(ctx context.Context, id string) (*Card, error)
	List(ctx context.Context) ([]*Card, error)
}
