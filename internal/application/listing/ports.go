package listing

import (
	"context"

	"github.com/baechuer/real-time-ressys/services/listing-service/internal/domain"
)

// EventQuerier answers the two reads a listing needs. Both must apply the
// exact same predicate for a given FilterSet.
type EventQuerier interface {
	CountEvents(ctx context.Context, f domain.FilterSet) (int, error)
	ListEvents(ctx context.Context, f domain.FilterSet, sort domain.SortMode, p domain.PageRequest) ([]*domain.Event, error)
}

type EventStore interface {
	EventQuerier
	WithReadSnapshot(ctx context.Context, fn func(q EventQuerier) error) error
}
