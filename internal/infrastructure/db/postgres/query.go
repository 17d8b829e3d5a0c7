package postgres

import (
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/baechuer/real-time-ressys/services/listing-service/internal/domain"
)

const (
	dialectPostgres = "postgres"

	tableEvents        = "event"
	tableViews         = "eventview"
	tableRegistrations = "eventregistration"

	colID          = "id"
	colName        = "name"
	colSummary     = "summary"
	colDescription = "description"
	colStartDate   = "start_date"
	colEndDate     = "end_date"
	colPhotoURL    = "photo_url"
	colCity        = "location_city"
	colRegion      = "location_uf"
	colModality    = "event_type"
	colPricing     = "pricing_type"
	colCategory    = "category"
	colEventID     = "event_id"

	aliasViews         = "v"
	aliasRegistrations = "r"
	aliasViewCount     = "view_count"
	aliasRegCount      = "registration_count"
	aliasTotal         = "total"
)

var eventColumns = []string{
	colID, colName, colSummary, colDescription, colStartDate, colEndDate,
	colPhotoURL, colCity, colRegion, colModality, colPricing, colCategory,
}

func col(name string) exp.IdentifierExpression {
	return goqu.T(tableEvents).Col(name)
}

func selectEventColumns() []any {
	out := make([]any, 0, len(eventColumns))
	for _, c := range eventColumns {
		out = append(out, col(c))
	}
	return out
}

// likePattern turns a search term into a substring pattern, escaping the
// LIKE metacharacters so the term matches literally.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}

// whereExpressions maps every clause of the filter set to a SQL condition.
// Count and page queries both call this, so they always see the same rows.
func whereExpressions(f domain.FilterSet) []exp.Expression {
	preds := f.Predicates()
	out := make([]exp.Expression, 0, len(preds))
	for _, p := range preds {
		switch p := p.(type) {
		case domain.ModalityEquals:
			out = append(out, col(colModality).Eq(string(p.Value)))
		case domain.PricingEquals:
			out = append(out, col(colPricing).Eq(string(p.Value)))
		case domain.RegionContains:
			out = append(out, col(colRegion).ILike(likePattern(p.Term)))
		case domain.CategoryContains:
			out = append(out, col(colCategory).ILike(likePattern(p.Term)))
		case domain.StartWithin:
			out = append(out, goqu.And(
				col(colStartDate).Gte(p.Interval.From),
				col(colStartDate).Lte(p.Interval.To),
			))
		case domain.TextContains:
			pattern := likePattern(p.Term)
			out = append(out, goqu.Or(
				col(colName).ILike(pattern),
				col(colSummary).ILike(pattern),
				col(colDescription).ILike(pattern),
			))
		}
	}
	return out
}

func buildCountQuery(f domain.FilterSet) (string, []any, error) {
	ds := goqu.Dialect(dialectPostgres).
		From(tableEvents).
		Select(goqu.COUNT(goqu.Star()).As(aliasTotal)).
		Where(whereExpressions(f)...).
		Prepared(true)

	q, args, err := ds.ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build count query: %w", err)
	}
	return q, args, nil
}

func buildPageQuery(f domain.FilterSet, sort domain.SortMode, p domain.PageRequest) (string, []any, error) {
	ds := goqu.Dialect(dialectPostgres).
		From(tableEvents).
		Select(selectEventColumns()...).
		Where(whereExpressions(f)...)

	switch sort.Resolve(f) {
	case domain.SortRelevance:
		pattern := likePattern(*f.Search)
		ds = ds.Order(
			containsRank(col(colName), pattern).Desc(),
			containsRank(goqu.COALESCE(col(colSummary), ""), pattern).Desc(),
			containsRank(col(colDescription), pattern).Desc(),
		)
	case domain.SortPopularity:
		ds = joinPopularity(ds).Order(popularityScore().Desc())
	default:
		// date and default share the same ordering
		ds = ds.Order(col(colStartDate).Desc())
	}

	// Stable OFFSET paging needs a total order.
	ds = ds.OrderAppend(col(colID).Asc())

	if p.Size > 0 {
		ds = ds.Limit(uint(p.Size))
	}
	if off := p.Offset(); off > 0 {
		ds = ds.Offset(uint(off))
	}

	q, args, err := ds.Prepared(true).ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build page query: %w", err)
	}
	return q, args, nil
}

// containsRank is true when expr contains the pattern, case-insensitively.
func containsRank(expr exp.Expression, pattern string) exp.LiteralExpression {
	return goqu.L("(? ILIKE ?)", expr, pattern)
}

// joinPopularity attaches per-event view and registration counts. Each side is
// aggregated on its own before the join, so neither count multiplies the other.
func joinPopularity(ds *goqu.SelectDataset) *goqu.SelectDataset {
	views := goqu.Dialect(dialectPostgres).From(tableViews).
		Select(goqu.C(colEventID), goqu.COUNT(goqu.Star()).As(aliasViewCount)).
		GroupBy(goqu.C(colEventID))
	regs := goqu.Dialect(dialectPostgres).From(tableRegistrations).
		Select(goqu.C(colEventID), goqu.COUNT(goqu.Star()).As(aliasRegCount)).
		GroupBy(goqu.C(colEventID))

	return ds.
		LeftJoin(views.As(aliasViews), goqu.On(goqu.T(aliasViews).Col(colEventID).Eq(col(colID)))).
		LeftJoin(regs.As(aliasRegistrations), goqu.On(goqu.T(aliasRegistrations).Col(colEventID).Eq(col(colID))))
}

func popularityScore() exp.LiteralExpression {
	return goqu.L(fmt.Sprintf("COALESCE(?, 0) + %d * COALESCE(?, 0)", domain.RegistrationWeight),
		goqu.T(aliasViews).Col(aliasViewCount),
		goqu.T(aliasRegistrations).Col(aliasRegCount),
	)
}
