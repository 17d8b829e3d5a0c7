package validate

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/baechuer/real-time-ressys/services/listing-service/internal/domain"
)

const dateLayout = "2006-01-02"

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("query")
	})
	validate.RegisterStructValidation(listQueryStructLevel, ListQuery{})
}

// ListQuery is the query string of the listing endpoints after parsing.
type ListQuery struct {
	Page          int             `query:"page" validate:"min=1"`
	PageSize      int             `query:"page-size" validate:"min=1,max=100"`
	Search        string          `query:"search"`
	Modality      string          `query:"filter-type" validate:"omitempty,oneof=presencial online hibrido"`
	Pricing       string          `query:"filter-pricing" validate:"omitempty,oneof=gratis pago"`
	Region        string          `query:"filter-region" validate:"max=80"`
	Category      string          `query:"filter-category" validate:"max=80"`
	IntervalStart string          `query:"filter-interval-start" validate:"required_with=IntervalEnd,omitempty,datetime=2006-01-02"`
	IntervalEnd   string          `query:"filter-interval-end" validate:"required_with=IntervalStart,omitempty,datetime=2006-01-02"`
	Sort          string          `query:"sort" validate:"omitempty,oneof=relevance date popularity"`
	SortMode      domain.SortMode `query:"-" validate:"-"`
}

// listQueryStructLevel rejects an interval whose start is after its end.
func listQueryStructLevel(sl validator.StructLevel) {
	q := sl.Current().Interface().(ListQuery)
	if q.IntervalStart == "" || q.IntervalEnd == "" {
		return
	}
	start, err1 := time.Parse(dateLayout, q.IntervalStart)
	end, err2 := time.Parse(dateLayout, q.IntervalEnd)
	if err1 != nil || err2 != nil {
		return
	}
	if start.After(end) {
		sl.ReportError(q.IntervalStart, "filter-interval-start", "IntervalStart", "interval_order", "")
		sl.ReportError(q.IntervalEnd, "filter-interval-end", "IntervalEnd", "interval_order", "")
	}
}

// ParseListQuery reads and checks the listing query string. All problems are
// reported together as one INVALID_QUERY_PARAMS error.
func ParseListQuery(v url.Values) (ListQuery, error) {
	var details []domain.FieldError

	q := ListQuery{
		Search:        v.Get("search"),
		Modality:      strings.TrimSpace(v.Get("filter-type")),
		Pricing:       strings.TrimSpace(v.Get("filter-pricing")),
		Region:        strings.TrimSpace(v.Get("filter-region")),
		Category:      strings.TrimSpace(v.Get("filter-category")),
		IntervalStart: strings.TrimSpace(v.Get("filter-interval-start")),
		IntervalEnd:   strings.TrimSpace(v.Get("filter-interval-end")),
		Sort:          strings.TrimSpace(v.Get("sort")),
	}

	var ok bool
	if q.Page, ok = intParam(v, "page", 1); !ok {
		details = append(details, domain.FieldError{Field: "page", Message: "must be an integer"})
	}
	if q.PageSize, ok = intParam(v, "page-size", domain.DefaultPageSize); !ok {
		details = append(details, domain.FieldError{Field: "page-size", Message: "must be an integer"})
	}
	if len(details) > 0 {
		return ListQuery{}, domain.ErrInvalidQuery("invalid query parameters", details...)
	}

	if err := Struct(q); err != nil {
		return ListQuery{}, err
	}

	q.SortMode, _ = domain.ParseSortMode(q.Sort)
	return q, nil
}

// PageRequest returns the page bounds carried by the query.
func (q ListQuery) PageRequest() domain.PageRequest {
	return domain.PageRequest{Page: q.Page, Size: q.PageSize}
}

func intParam(v url.Values, key string, def int) (int, bool) {
	s := strings.TrimSpace(v.Get(key))
	if s == "" {
		return def, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Struct validates s and converts validator failures to field details.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return domain.ErrInvalidQuery(err.Error())
	}

	details := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, domain.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return domain.ErrInvalidQuery(summary(verrs), details...)
}

func summary(verrs validator.ValidationErrors) string {
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required_with":
			return "filter-interval-start and filter-interval-end must be provided together"
		case "interval_order":
			return "filter-interval-start cannot be after filter-interval-end"
		}
	}
	return "invalid query parameters"
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "must be at most " + fe.Param() + " characters"
		}
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "required_with":
		return "required together with " + pairedField(fe.Field())
	case "interval_order":
		return "invalid date"
	default:
		return "invalid value"
	}
}

func pairedField(field string) string {
	if field == "filter-interval-start" {
		return "filter-interval-end"
	}
	return "filter-interval-start"
}
