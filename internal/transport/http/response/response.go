package response

import (
	"encoding/json"
	"errors"
	"net/http"

	zlog "github.com/rs/zerolog/log"

	"github.com/baechuer/real-time-ressys/services/listing-service/internal/application/listing"
	"github.com/baechuer/real-time-ressys/services/listing-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/listing-service/internal/transport/http/dto"
)

// Envelope is the body of every listing response. All three keys are always
// written; the unused side is null.
type Envelope struct {
	Data       any                    `json:"data"`
	Pagination *domain.PaginationInfo `json:"pagination"`
	Error      *listing.ErrorInfo     `json:"error"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Error().Err(err).Msg("encode response")
	}
}

func Data(w http.ResponseWriter, status int, data any) {
	JSON(w, status, Envelope{Data: data})
}

// Listing writes a listing result. A failed result maps its error code to
// the HTTP status.
func Listing(w http.ResponseWriter, res listing.Result) {
	if res.Failed() {
		JSON(w, statusFromCode(res.Error.Code), Envelope{Error: res.Error})
		return
	}
	JSON(w, http.StatusOK, Envelope{
		Data:       dto.ToEventResps(res.Data),
		Pagination: res.Pagination,
	})
}

func Err(w http.ResponseWriter, err error) {
	if err == nil {
		JSON(w, http.StatusInternalServerError, Envelope{Error: &listing.ErrorInfo{
			Code:    domain.CodeServerError,
			Message: "unknown error",
		}})
		return
	}

	var ae *domain.AppError
	if errors.As(err, &ae) {
		JSON(w, statusFromCode(ae.Code), Envelope{Error: &listing.ErrorInfo{
			Code:    ae.Code,
			Message: ae.Message,
			Details: ae.Details,
		}})
		return
	}

	// keep details in logs only
	zlog.Error().Err(err).Msg("unhandled error")
	JSON(w, http.StatusInternalServerError, Envelope{Error: &listing.ErrorInfo{
		Code:    domain.CodeServerError,
		Message: "internal server error",
	}})
}

func statusFromCode(code domain.ErrCode) int {
	switch code {
	case domain.CodeInvalidQueryParams:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
