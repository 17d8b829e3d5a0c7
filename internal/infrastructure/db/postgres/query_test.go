package postgres

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/real-time-ressys/services/listing-service/internal/domain"
)

func strPtr(s string) *string { return &s }

func fullFilter() domain.FilterSet {
	mod := domain.ModalityOnline
	price := domain.PricingPaid
	return domain.FilterSet{
		Modality: &mod,
		Pricing:  &price,
		Region:   strPtr("SP"),
		Category: strPtr("tech"),
		Search:   strPtr("Summit"),
		Interval: &domain.DateInterval{
			From: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2025, 1, 31, 23, 59, 59, 999999000, time.UTC),
		},
	}
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%summit%", likePattern("summit"))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
	assert.Equal(t, `%a\\b%`, likePattern(`a\b`))
}

func TestBuildCountQuery(t *testing.T) {
	t.Run("no_filters", func(t *testing.T) {
		q, args, err := buildCountQuery(domain.FilterSet{})
		require.NoError(t, err)
		assert.Equal(t, `SELECT COUNT(*) AS "total" FROM "event"`, q)
		assert.Empty(t, args)
	})

	t.Run("all_filters_combined_with_and", func(t *testing.T) {
		f := fullFilter()
		q, args, err := buildCountQuery(f)
		require.NoError(t, err)

		assert.Contains(t, q, `"event"."event_type" = $1`)
		assert.Contains(t, q, `"event"."pricing_type" = $2`)
		assert.Contains(t, q, `"event"."location_uf" ILIKE $3`)
		assert.Contains(t, q, `"event"."category" ILIKE $4`)
		assert.Contains(t, q, `"event"."start_date" >= $5`)
		assert.Contains(t, q, `"event"."start_date" <= $6`)
		assert.Contains(t, q, `("event"."name" ILIKE $7) OR ("event"."summary" ILIKE $8) OR ("event"."description" ILIKE $9)`)
		assert.Contains(t, q, " AND ")
		assert.NotContains(t, q, "LIMIT")
		assert.NotContains(t, q, "ORDER BY")

		assert.Equal(t, []any{
			"online", "pago", "%SP%", "%tech%",
			f.Interval.From, f.Interval.To,
			"%Summit%", "%Summit%", "%Summit%",
		}, args)
	})
}

func TestBuildPageQuery_SharesPredicateWithCount(t *testing.T) {
	f := fullFilter()

	countSQL, countArgs, err := buildCountQuery(f)
	require.NoError(t, err)
	pageSQL, pageArgs, err := buildPageQuery(f, domain.SortDate, domain.PageRequest{Page: 1, Size: 10})
	require.NoError(t, err)

	where := countSQL[len(`SELECT COUNT(*) AS "total" FROM "event"`):]
	assert.Contains(t, pageSQL, where)
	assert.Equal(t, countArgs, pageArgs[:len(countArgs)])
}

func TestBuildPageQuery_Sorts(t *testing.T) {
	page := domain.PageRequest{Page: 1, Size: 10}

	t.Run("default_orders_by_start_desc", func(t *testing.T) {
		q, args, err := buildPageQuery(domain.FilterSet{}, domain.SortDefault, page)
		require.NoError(t, err)
		assert.Contains(t, q, `SELECT "event"."id", "event"."name", "event"."summary"`)
		assert.Contains(t, q, `ORDER BY "event"."start_date" DESC, "event"."id" ASC LIMIT $1`)
		assert.NotContains(t, q, "OFFSET")
		assert.Equal(t, []any{int64(10)}, args)
	})

	t.Run("date_same_as_default", func(t *testing.T) {
		qDate, _, err := buildPageQuery(domain.FilterSet{}, domain.SortDate, page)
		require.NoError(t, err)
		qDefault, _, err := buildPageQuery(domain.FilterSet{}, domain.SortDefault, page)
		require.NoError(t, err)
		assert.Equal(t, qDefault, qDate)
	})

	t.Run("relevance_ranks_name_then_summary_then_description", func(t *testing.T) {
		f := domain.FilterSet{Search: strPtr("summit")}
		q, args, err := buildPageQuery(f, domain.SortRelevance, page)
		require.NoError(t, err)
		assert.Contains(t, q, `ORDER BY ("event"."name" ILIKE $4) DESC, (COALESCE("event"."summary", $5) ILIKE $6) DESC, ("event"."description" ILIKE $7) DESC, "event"."id" ASC`)
		assert.Equal(t, []any{
			"%summit%", "%summit%", "%summit%",
			"%summit%", "", "%summit%", "%summit%",
			int64(10),
		}, args)
	})

	t.Run("relevance_without_search_falls_back_to_date", func(t *testing.T) {
		q, _, err := buildPageQuery(domain.FilterSet{}, domain.SortRelevance, page)
		require.NoError(t, err)
		assert.Contains(t, q, `ORDER BY "event"."start_date" DESC`)
		assert.NotContains(t, q, "ILIKE")
	})

	t.Run("popularity_joins_preaggregated_counts", func(t *testing.T) {
		q, _, err := buildPageQuery(domain.FilterSet{}, domain.SortPopularity, page)
		require.NoError(t, err)
		assert.Contains(t, q, `LEFT JOIN (SELECT "event_id", COUNT(*) AS "view_count" FROM "eventview" GROUP BY "event_id") AS "v"`)
		assert.Contains(t, q, `LEFT JOIN (SELECT "event_id", COUNT(*) AS "registration_count" FROM "eventregistration" GROUP BY "event_id") AS "r"`)
		assert.Contains(t, q, `"v"."event_id" = "event"."id"`)
		assert.Contains(t, q, `ORDER BY COALESCE("v"."view_count", 0) + 2 * COALESCE("r"."registration_count", 0) DESC, "event"."id" ASC`)
	})
}

func TestBuildPageQuery_Offset(t *testing.T) {
	q, args, err := buildPageQuery(domain.FilterSet{}, domain.SortDefault, domain.PageRequest{Page: 3, Size: 20})
	require.NoError(t, err)
	assert.Contains(t, q, "LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{int64(20), int64(40)}, args)
}

func TestBuildPageQuery_HugePageKeepsOffset(t *testing.T) {
	q, args, err := buildPageQuery(domain.FilterSet{}, domain.SortDefault, domain.PageRequest{Page: math.MaxInt, Size: 100})
	require.NoError(t, err)
	assert.Contains(t, q, "LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{int64(100), int64(math.MaxInt)}, args)
}
