//go:build unit

package errs_test

import (
	"fmt"
	"testing"

	"ticketing-engine/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	t.Run("direct kind", func(t *testing.T) {
		kind, ok := errs.KindOf(errs.ErrSeatUnavailable)
		require.True(t, ok)
		assert.Equal(t, "SeatUnavailable", kind.Code())
	})

	t.Run("wrapped kind", func(t *testing.T) {
		err := errs.Wrap(errs.ErrCapacityExceeded, "decrease capacity")
		kind, ok := errs.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, errs.ErrCapacityExceeded, kind)
	})

	t.Run("std wrapped kind", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", errs.ErrOrderNotFound)
		kind, ok := errs.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, "OrderNotFound", kind.Code())
	})

	t.Run("specific mark wins over generic not found", func(t *testing.T) {
		miss := errs.Mark(errs.New("no rows"), errs.ErrNotFound)
		err := errs.Mark(errs.Wrap(miss, "lookup"), errs.ErrTimeslotUnavailable)

		kind, ok := errs.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, errs.ErrTimeslotUnavailable, kind)
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("validation helper", func(t *testing.T) {
		err := errs.Validation("name is required")
		kind, ok := errs.KindOf(err)
		require.True(t, ok)
		assert.Equal(t, errs.ErrValidation, kind)
		assert.Equal(t, "name is required", err.Error())
	})

	t.Run("unclassified", func(t *testing.T) {
		_, ok := errs.KindOf(errs.New("boom"))
		assert.False(t, ok)

		_, ok = errs.KindOf(nil)
		assert.False(t, ok)
	})

	t.Run("kinds are distinct", func(t *testing.T) {
		assert.False(t, errs.Is(errs.ErrSeatUnavailable, errs.ErrSeatNotFound))
		assert.False(t, errs.Is(errs.ErrRefundNotFound, errs.ErrNotFound))
	})
}

func TestExtractStackLines(t *testing.T) {
	lines := errs.ExtractStackLines(errs.Wrap(errs.New("root"), "outer"), 3)
	assert.LessOrEqual(t, len(lines), 3)
	assert.Contains(t, lines[0], "outer")
	assert.Nil(t, errs.ExtractStackLines(nil, 3))
}
