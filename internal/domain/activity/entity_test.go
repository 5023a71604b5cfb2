//go:build unit

package activity_test

import (
	"strings"
	"testing"
	"time"

	"ticketing-engine/internal/domain/activity"
	"ticketing-engine/internal/pkg/errs"
	"ticketing-engine/tests/common/builder"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.ActivityBuilder)
	errIs  error
}

func TestActivity(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewActivityBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.Equal(t, activity.StatusDraft, actual.Status())
		assert.False(t, actual.AcceptsOrders())
		assert.Equal(t, "Harbour Night Concert", actual.Name())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
	})

	t.Run("info validation", func(t *testing.T) {
		low := decimal.NewFromInt(100)
		high := decimal.NewFromInt(200)
		negative := decimal.NewFromInt(-1)

		runCases(t, []testCase{
			{
				name:   "empty name",
				mutate: func(b *builder.ActivityBuilder) { b.WithName("") },
				errIs:  activity.ErrEmptyName,
			},
			{
				name:   "whitespace name",
				mutate: func(b *builder.ActivityBuilder) { b.WithName("   ") },
				errIs:  activity.ErrEmptyName,
			},
			{
				name:   "maximum length name",
				mutate: func(b *builder.ActivityBuilder) { b.WithName(strings.Repeat("a", activity.MaxNameLength)) },
			},
			{
				name:   "name too long",
				mutate: func(b *builder.ActivityBuilder) { b.WithName(strings.Repeat("a", activity.MaxNameLength+1)) },
				errIs:  activity.ErrNameTooLong,
			},
			{
				name:   "no price range",
				mutate: func(b *builder.ActivityBuilder) { b.WithPriceRange(nil, nil) },
			},
			{
				name:   "equal bounds",
				mutate: func(b *builder.ActivityBuilder) { b.WithPriceRange(&low, &low) },
			},
			{
				name:   "inverted range",
				mutate: func(b *builder.ActivityBuilder) { b.WithPriceRange(&high, &low) },
				errIs:  activity.ErrInvalidPriceRange,
			},
			{
				name:   "negative minimum",
				mutate: func(b *builder.ActivityBuilder) { b.WithPriceRange(&negative, nil) },
				errIs:  errs.ErrValidation,
			},
		})
	})

	t.Run("publish and archive", func(t *testing.T) {
		a, err := builder.NewActivityBuilder().BuildDomain()
		require.NoError(t, err)
		later := a.CreatedAt().Add(time.Hour)

		require.NoError(t, a.Publish(later))
		assert.True(t, a.AcceptsOrders())
		require.NoError(t, a.Publish(later.Add(time.Hour)), "publishing twice is a no-op")
		assert.Equal(t, later, a.UpdatedAt())

		a.Archive(later)
		assert.False(t, a.AcceptsOrders())
		require.ErrorIs(t, a.Publish(later), errs.ErrInvalidActivityState)
	})

	t.Run("update trims and validates", func(t *testing.T) {
		a, err := builder.NewActivityBuilder().BuildDomain()
		require.NoError(t, err)

		info := a.Info()
		info.Name = "  Renamed  "
		require.NoError(t, a.UpdateBasicInfo(info, a.CreatedAt()))
		assert.Equal(t, "Renamed", a.Name())

		info.Name = ""
		require.ErrorIs(t, a.UpdateBasicInfo(info, a.CreatedAt()), activity.ErrEmptyName)
		assert.Equal(t, "Renamed", a.Name())
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewActivityBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
