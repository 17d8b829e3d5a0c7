package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/baechuer/real-time-ressys/services/listing-service/internal/application/listing"
	"github.com/baechuer/real-time-ressys/services/listing-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/listing-service/internal/metrics"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Repo struct {
	db *sql.DB
	q  dbtx
}

func New(db *sql.DB) *Repo { return &Repo{db: db, q: db} }

var _ listing.EventStore = (*Repo)(nil)

// CountEvents returns how many events match f. Paging does not apply.
func (r *Repo) CountEvents(ctx context.Context, f domain.FilterSet) (int, error) {
	q, args, err := buildCountQuery(f)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	var total int
	err = r.q.QueryRowContext(ctx, q, args...).Scan(&total)
	metrics.ObserveStoreQuery("count", time.Since(start), err)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return total, nil
}

// ListEvents returns one page of events matching f in the requested order.
func (r *Repo) ListEvents(ctx context.Context, f domain.FilterSet, sort domain.SortMode, p domain.PageRequest) ([]*domain.Event, error) {
	q, args, err := buildPageQuery(f, sort, p)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := r.q.QueryContext(ctx, q, args...)
	if err != nil {
		metrics.ObserveStoreQuery("page", time.Since(start), err)
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	out, err := scanEvents(rows)
	metrics.ObserveStoreQuery("page", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return out, nil
}

// Ping backs the readiness probe.
func (r *Repo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func scanEvents(rows *sql.Rows) ([]*domain.Event, error) {
	out := []*domain.Event{}
	for rows.Next() {
		var e domain.Event
		var modality, pricing string
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Summary, &e.Description, &e.StartDate, &e.EndDate,
			&e.PhotoURL, &e.City, &e.Region, &modality, &pricing, &e.Category,
		); err != nil {
			return nil, err
		}
		e.Modality = domain.EventModality(modality)
		e.Pricing = domain.PricingModality(pricing)
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
