package domain

import (
	"fmt"
	"strings"
)

type ErrCode string

const (
	CodeInvalidQueryParams ErrCode = "INVALID_QUERY_PARAMS"
	CodeServerError        ErrCode = "SERVER_ERROR"
)

// FieldError points a client at the query parameter that was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type AppError struct {
	Code    ErrCode
	Message string
	Details []FieldError
}

func (e *AppError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, d.Field+"="+d.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, strings.Join(parts, ", "))
}

func ErrInvalidQuery(msg string, details ...FieldError) error {
	if details == nil {
		details = []FieldError{}
	}
	return &AppError{Code: CodeInvalidQueryParams, Message: msg, Details: details}
}

func ErrServer(msg string) error { return &AppError{Code: CodeServerError, Message: msg} }
