package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baechuer/real-time-ressys/services/listing-service/internal/application/listing"
	"github.com/baechuer/real-time-ressys/services/listing-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/listing-service/internal/transport/http/response"
	"github.com/baechuer/real-time-ressys/services/listing-service/internal/transport/http/validate"
)

// Lister is the listing surface the HTTP layer needs.
type Lister interface {
	List(ctx context.Context, raw listing.RawFilters, page domain.PageRequest, sort domain.SortMode) listing.Result
	ListByModality(ctx context.Context, m domain.EventModality, page domain.PageRequest, sort domain.SortMode) listing.Result
	ListByPricing(ctx context.Context, p domain.PricingModality, page domain.PageRequest, sort domain.SortMode) listing.Result
	Search(ctx context.Context, query string, page domain.PageRequest, sort domain.SortMode) listing.Result
}

type EventsHandler struct {
	svc Lister
}

func NewEventsHandler(svc Lister) *EventsHandler {
	return &EventsHandler{svc: svc}
}

// List serves GET /events with the full filter set.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	q, err := validate.ParseListQuery(r.URL.Query())
	if err != nil {
		response.Err(w, err)
		return
	}

	raw := listing.RawFilters{
		Modality:      q.Modality,
		Pricing:       q.Pricing,
		Search:        q.Search,
		Region:        q.Region,
		Category:      q.Category,
		IntervalStart: q.IntervalStart,
		IntervalEnd:   q.IntervalEnd,
	}
	response.Listing(w, h.svc.List(r.Context(), raw, q.PageRequest(), q.SortMode))
}

func (h *EventsHandler) ByType(w http.ResponseWriter, r *http.Request) {
	m := domain.EventModality(chi.URLParam(r, "type"))
	if !m.Valid() {
		response.Err(w, domain.ErrInvalidQuery("invalid event type", domain.FieldError{
			Field:   "type",
			Message: "must be one of: presencial, online, hibrido",
		}))
		return
	}

	q, err := validate.ParseListQuery(r.URL.Query())
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Listing(w, h.svc.ListByModality(r.Context(), m, q.PageRequest(), q.SortMode))
}

func (h *EventsHandler) ByPricing(w http.ResponseWriter, r *http.Request) {
	p := domain.PricingModality(chi.URLParam(r, "pricing"))
	if !p.Valid() {
		response.Err(w, domain.ErrInvalidQuery("invalid pricing", domain.FieldError{
			Field:   "pricing",
			Message: "must be one of: gratis, pago",
		}))
		return
	}

	q, err := validate.ParseListQuery(r.URL.Query())
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Listing(w, h.svc.ListByPricing(r.Context(), p, q.PageRequest(), q.SortMode))
}

// Search serves GET /events/search?q=. A blank q yields an empty page.
func (h *EventsHandler) Search(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	q, err := validate.ParseListQuery(values)
	if err != nil {
		response.Err(w, err)
		return
	}
	response.Listing(w, h.svc.Search(r.Context(), values.Get("q"), q.PageRequest(), q.SortMode))
}
