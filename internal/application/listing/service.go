package listing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/baechuer/real-time-ressys/services/listing-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/listing-service/internal/metrics"
	zlog "github.com/rs/zerolog/log"
)

type Config struct {
	// FailSoft degrades a failed store query to an empty result instead of
	// returning SERVER_ERROR.
	FailSoft bool
	// SnapshotReads runs count and page in one read-only snapshot.
	SnapshotReads bool
	// Location is used to read YYYY-MM-DD interval bounds.
	Location *time.Location
}

type Service struct {
	store EventStore
	cfg   Config
}

func New(store EventStore, cfg Config) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Service{store: store, cfg: cfg}
}

// ErrorInfo is the client-facing error descriptor of a listing.
type ErrorInfo struct {
	Code    domain.ErrCode      `json:"code"`
	Message string              `json:"message"`
	Details []domain.FieldError `json:"details,omitempty"`
}

// Result holds either Data and Pagination, or Error. Never both.
type Result struct {
	Data       []*domain.Event
	Pagination *domain.PaginationInfo
	Error      *ErrorInfo
}

func (r Result) Failed() bool { return r.Error != nil }

func success(items []*domain.Event, p domain.PaginationInfo) Result {
	if items == nil {
		items = []*domain.Event{}
	}
	return Result{Data: items, Pagination: &p}
}

func failure(err error) Result {
	return Result{Error: &ErrorInfo{
		Code:    domain.CodeServerError,
		Message: fmt.Sprintf("internal server error: %v", err),
	}}
}

// List runs one listing: normalize, count, fetch the page, paginate.
func (s *Service) List(ctx context.Context, raw RawFilters, page domain.PageRequest, sort domain.SortMode) Result {
	return s.list(ctx, "list", Normalize(raw, s.cfg.Location), page, sort)
}

func (s *Service) ListByModality(ctx context.Context, m domain.EventModality, page domain.PageRequest, sort domain.SortMode) Result {
	return s.list(ctx, "by_modality", Normalize(RawFilters{Modality: string(m)}, s.cfg.Location), page, sort)
}

func (s *Service) ListByPricing(ctx context.Context, p domain.PricingModality, page domain.PageRequest, sort domain.SortMode) Result {
	return s.list(ctx, "by_pricing", Normalize(RawFilters{Pricing: string(p)}, s.cfg.Location), page, sort)
}

// Search lists events whose name, summary or description contain query.
// A blank query returns an empty first page without touching the store.
func (s *Service) Search(ctx context.Context, query string, page domain.PageRequest, sort domain.SortMode) Result {
	query = strings.TrimSpace(query)
	if query == "" {
		metrics.RecordListing("search", "short_circuit")
		return success(nil, domain.EmptyPagination())
	}
	return s.list(ctx, "search", Normalize(RawFilters{Search: query}, s.cfg.Location), page, sort)
}

func (s *Service) list(ctx context.Context, op string, f domain.FilterSet, page domain.PageRequest, sort domain.SortMode) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			zlog.Error().Str("op", op).Interface("panic", p).Msg("listing panicked")
			res = failure(fmt.Errorf("%v", p))
		}
		outcome := "ok"
		if res.Failed() {
			outcome = "error"
		}
		metrics.RecordListing(op, outcome)
	}()

	var (
		total int
		items []*domain.Event
	)
	run := func(q EventQuerier) error {
		var err error
		if total, err = s.count(ctx, q, f); err != nil {
			return err
		}
		items, err = s.page(ctx, q, f, sort, page)
		return err
	}

	var err error
	if s.cfg.SnapshotReads {
		err = s.store.WithReadSnapshot(ctx, run)
		if err != nil && s.cfg.FailSoft {
			// the snapshot itself could not be opened or committed
			zlog.Warn().Err(err).Str("op", op).Msg("snapshot read failed, degrading to empty result")
			total, items, err = 0, nil, nil
		}
	} else {
		err = run(s.store)
	}
	if err != nil {
		zlog.Error().Err(err).Str("op", op).Msg("listing failed")
		return failure(err)
	}

	return success(items, domain.ComputePagination(total, page.Page, page.Size))
}

func (s *Service) count(ctx context.Context, q EventQuerier, f domain.FilterSet) (int, error) {
	total, err := q.CountEvents(ctx, f)
	if err == nil {
		return total, nil
	}
	if !s.cfg.FailSoft {
		return 0, err
	}
	zlog.Warn().Err(err).Msg("count query failed, reporting zero matches")
	return 0, nil
}

func (s *Service) page(ctx context.Context, q EventQuerier, f domain.FilterSet, sort domain.SortMode, p domain.PageRequest) ([]*domain.Event, error) {
	items, err := q.ListEvents(ctx, f, sort, p)
	if err == nil {
		return items, nil
	}
	if !s.cfg.FailSoft {
		return nil, err
	}
	zlog.Warn().Err(err).Msg("page query failed, returning empty page")
	return []*domain.Event{}, nil
}
