package handlers

import (
	"context"
	"net/http"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/real-time-ressys/services/listing-service/internal/application/listing"
	"github.com/baechuer/real-time-ressys/services/listing-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/listing-service/internal/transport/http/response"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	timeout time.Duration
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, timeout: 2 * time.Second}
}

func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	response.Data(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readyz reports ready only when the database answers a ping.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		response.Data(w, http.StatusOK, map[string]string{"status": "ready"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		zlog.Warn().Err(err).Msg("readiness check failed")
		response.JSON(w, http.StatusServiceUnavailable, response.Envelope{
			Error: &listing.ErrorInfo{Code: domain.CodeServerError, Message: "database unavailable"},
		})
		return
	}
	response.Data(w, http.StatusOK, map[string]string{"status": "ready"})
}
