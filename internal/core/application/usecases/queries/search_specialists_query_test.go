package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"engage/internal/core/application/usecases/queries"
	"engage/internal/core/domain/services"
	"engage/internal/pkg/errs"
)

func TestNewSearchSpecialistsQuery(t *testing.T) {
	t.Run("should create valid query", func(t *testing.T) {
		query, err := queries.NewSearchSpecialistsQuery(55.75, 37.62, 3, services.SortByDistance, 20)
		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, int64(3), query.CategoryID())
		assert.Equal(t, 20, query.Limit())
	})

	t.Run("should default the limit when non-positive", func(t *testing.T) {
		query, err := queries.NewSearchSpecialistsQuery(55.75, 37.62, 3, services.SortByRating, 0)
		require.NoError(t, err)
		assert.Equal(t, services.DefaultCandidateLimit, query.Limit())
	})

	t.Run("should reject out of range coordinates", func(t *testing.T) {
		_, err := queries.NewSearchSpecialistsQuery(91, 37.62, 3, services.SortByDistance, 10)
		require.Error(t, err)
	})

	t.Run("should reject missing category", func(t *testing.T) {
		_, err := queries.NewSearchSpecialistsQuery(55.75, 37.62, 0, services.SortByDistance, 10)
		require.Error(t, err)
		var required *errs.ValueIsRequiredError
		assert.ErrorAs(t, err, &required)
	})

	t.Run("should reject zero value query", func(t *testing.T) {
		err := queries.SearchSpecialistsQuery{}.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, queries.ErrSearchSpecialistsQueryIsNotConstructed)
	})
}
