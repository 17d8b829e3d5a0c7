package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/real-time-ressys/services/listing-service/internal/application/listing"
	"github.com/baechuer/real-time-ressys/services/listing-service/internal/domain"
)

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func assertNullKey(t *testing.T, body map[string]any, key string) {
	t.Helper()
	v, ok := body[key]
	assert.True(t, ok, "missing key %q", key)
	assert.Nil(t, v, "key %q should be null", key)
}

func TestErr(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid_query", domain.ErrInvalidQuery("bad page"), http.StatusBadRequest, "INVALID_QUERY_PARAMS"},
		{"server", domain.ErrServer("boom"), http.StatusInternalServerError, "SERVER_ERROR"},
		{"wrapped_app_error", errors.Join(errors.New("ctx"), domain.ErrInvalidQuery("x")), http.StatusBadRequest, "INVALID_QUERY_PARAMS"},
		{"generic_error", errors.New("db crash"), http.StatusInternalServerError, "SERVER_ERROR"},
		{"nil_error", nil, http.StatusInternalServerError, "SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			Err(rr, tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))

			body := decode(t, rr)
			e, ok := body["error"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, e["code"])
			assertNullKey(t, body, "data")
			assertNullKey(t, body, "pagination")
		})
	}

	t.Run("generic_error_hides_details", func(t *testing.T) {
		rr := httptest.NewRecorder()
		Err(rr, errors.New("password=hunter2"))
		assert.NotContains(t, rr.Body.String(), "hunter2")
	})

	t.Run("field_details_are_returned", func(t *testing.T) {
		rr := httptest.NewRecorder()
		Err(rr, domain.ErrInvalidQuery("invalid query parameters",
			domain.FieldError{Field: "page", Message: "must be at least 1"}))

		body := decode(t, rr)
		details := body["error"].(map[string]any)["details"].([]any)
		require.Len(t, details, 1)
		assert.Equal(t, "page", details[0].(map[string]any)["field"])
	})
}

func TestListing(t *testing.T) {
	t.Run("success_writes_data_and_pagination", func(t *testing.T) {
		p := domain.ComputePagination(12, 2, 5)
		rr := httptest.NewRecorder()
		Listing(rr, listing.Result{
			Data:       []*domain.Event{{ID: "a"}, {ID: "b"}},
			Pagination: &p,
		})

		assert.Equal(t, http.StatusOK, rr.Code)
		body := decode(t, rr)
		assert.Len(t, body["data"], 2)
		pg := body["pagination"].(map[string]any)
		assert.EqualValues(t, 2, pg["currentPage"])
		assert.EqualValues(t, 3, pg["totalPages"])
		assert.EqualValues(t, 12, pg["totalItems"])
		assertNullKey(t, body, "error")
	})

	t.Run("empty_success_is_empty_array", func(t *testing.T) {
		p := domain.EmptyPagination()
		rr := httptest.NewRecorder()
		Listing(rr, listing.Result{Data: []*domain.Event{}, Pagination: &p})

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{
			"data": [],
			"pagination": {"currentPage": 1, "totalPages": 0, "previousPage": null, "nextPage": null, "totalItems": 0},
			"error": null
		}`, rr.Body.String())
	})

	t.Run("failure_maps_code_to_status", func(t *testing.T) {
		rr := httptest.NewRecorder()
		Listing(rr, listing.Result{Error: &listing.ErrorInfo{
			Code:    domain.CodeServerError,
			Message: "internal server error: boom",
		}})

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		body := decode(t, rr)
		assertNullKey(t, body, "data")
		assertNullKey(t, body, "pagination")
		assert.Equal(t, "SERVER_ERROR", body["error"].(map[string]any)["code"])
	})
}

func TestData(t *testing.T) {
	rr := httptest.NewRecorder()
	Data(rr, http.StatusOK, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusOK, rr.Code)
	body := decode(t, rr)
	assert.Equal(t, "ok", body["data"].(map[string]any)["status"])
}
