package listing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baechuer/real-time-ressys/services/listing-service/internal/domain"
)

func TestNormalize_Enums(t *testing.T) {
	t.Run("valid_values_kept", func(t *testing.T) {
		f := Normalize(RawFilters{Modality: "online", Pricing: "gratis"}, nil)
		require.NotNil(t, f.Modality)
		require.NotNil(t, f.Pricing)
		assert.Equal(t, domain.ModalityOnline, *f.Modality)
		assert.Equal(t, domain.PricingFree, *f.Pricing)
	})

	t.Run("unknown_values_dropped_silently", func(t *testing.T) {
		f := Normalize(RawFilters{Modality: "virtual", Pricing: "donation"}, nil)
		assert.Nil(t, f.Modality)
		assert.Nil(t, f.Pricing)
	})
}

func TestNormalize_Strings(t *testing.T) {
	f := Normalize(RawFilters{Search: "  tech summit  ", Region: " SP ", Category: "   "}, nil)

	require.NotNil(t, f.Search)
	assert.Equal(t, "tech summit", *f.Search)
	require.NotNil(t, f.Region)
	assert.Equal(t, "SP", *f.Region)
	assert.Nil(t, f.Category)

	assert.Nil(t, Normalize(RawFilters{Search: " \t\n"}, nil).Search)
}

func TestNormalize_Interval(t *testing.T) {
	t.Run("both_bounds_expand_to_full_days", func(t *testing.T) {
		f := Normalize(RawFilters{IntervalStart: "2025-03-01", IntervalEnd: "2025-03-05"}, nil)
		require.NotNil(t, f.Interval)
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), f.Interval.From)
		assert.Equal(t, time.Date(2025, 3, 5, 23, 59, 59, 999999000, time.UTC), f.Interval.To)
	})

	t.Run("end_bound_includes_last_millisecond", func(t *testing.T) {
		f := Normalize(RawFilters{IntervalStart: "2025-03-01", IntervalEnd: "2025-03-01"}, nil)
		require.NotNil(t, f.Interval)
		assert.True(t, f.Interval.Contains(time.Date(2025, 3, 1, 23, 59, 59, 999000000, time.UTC)))
		assert.False(t, f.Interval.Contains(time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("single_bound_dropped", func(t *testing.T) {
		assert.Nil(t, Normalize(RawFilters{IntervalStart: "2025-03-01"}, nil).Interval)
		assert.Nil(t, Normalize(RawFilters{IntervalEnd: "2025-03-01"}, nil).Interval)
	})

	t.Run("unparseable_bound_drops_whole_interval", func(t *testing.T) {
		assert.Nil(t, Normalize(RawFilters{IntervalStart: "2025-03-01", IntervalEnd: "03/05/2025"}, nil).Interval)
		assert.Nil(t, Normalize(RawFilters{IntervalStart: "2025-02-30", IntervalEnd: "2025-03-05"}, nil).Interval)
	})

	t.Run("days_read_in_given_location", func(t *testing.T) {
		loc := time.FixedZone("BRT", -3*60*60)
		f := Normalize(RawFilters{IntervalStart: "2025-03-01", IntervalEnd: "2025-03-01"}, loc)
		require.NotNil(t, f.Interval)
		assert.Equal(t, time.Date(2025, 3, 1, 3, 0, 0, 0, time.UTC), f.Interval.From.UTC())
	})
}

func TestNormalize_EmptyInput(t *testing.T) {
	assert.Equal(t, domain.FilterSet{}, Normalize(RawFilters{}, nil))
}
