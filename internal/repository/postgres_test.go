package repository_test

import (
	"log/slog"
	"regexp"
	"testing"
	"time"

	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/UnknownOlympus/hermes/internal/repository"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	selectPlacesQuery  = regexp.QuoteMeta(`FROM places`)
	insertPlaceQuery   = regexp.QuoteMeta(`INSERT INTO places`)
	updatePlaceQuery   = regexp.QuoteMeta(`UPDATE places`) + `\s+SET\s+name = \$1`
	deletePlaceQuery   = regexp.QuoteMeta(`DELETE FROM places WHERE id = $1;`)
	toggleFavoriteSQL  = regexp.QuoteMeta(`UPDATE places SET is_favorite = $1 WHERE id = $2;`)
	countPlacesQuery   = regexp.QuoteMeta(`SELECT COUNT(*) FROM places;`)
	lockPlacesQuery    = regexp.QuoteMeta(`LOCK TABLE places IN EXCLUSIVE MODE;`)
	placeColumns       = []string{"id", "name", "description", "latitude", "longitude", "category", "marker_color", "is_favorite", "created_at"}
	doloresCoordinates = models.Coordinates{Latitude: 21.1560, Longitude: -100.9318}
)

func newMock(t *testing.T) (pgxmock.PgxPoolIface, *repository.Repository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return mock, repository.NewRepository(mock, slog.Default())
}

func TestMigrate(t *testing.T) {
	t.Parallel()

	t.Run("error - create table", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)

		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS places")).WillReturnError(assert.AnError)

		err := repo.Migrate(t.Context())

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to migrate places schema")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - create table", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)

		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS places")).
			WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

		require.NoError(t, repo.Migrate(t.Context()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFetchPlaces(t *testing.T) {
	t.Parallel()
	createdAt := time.Date(2025, 9, 16, 10, 0, 0, 0, time.UTC)

	t.Run("error - query places", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)

		mock.ExpectQuery(selectPlacesQuery).WillReturnError(assert.AnError)

		places, err := repo.FetchPlaces(t.Context())

		require.Nil(t, places)
		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to query places")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - scan place", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)

		mock.ExpectQuery(selectPlacesQuery).WillReturnRows(
			pgxmock.NewRows(placeColumns).
				AddRow("invalid_id", "Jardín", "", 21.1, -100.9, "plaza", "green", false, createdAt),
		)

		places, err := repo.FetchPlaces(t.Context())

		require.Nil(t, places)
		require.ErrorContains(t, err, "failed to scan place")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - rows error", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)

		mock.ExpectQuery(selectPlacesQuery).WillReturnRows(
			pgxmock.NewRows(placeColumns).
				AddRow(int64(1), "Jardín", "", 21.1, -100.9, "plaza", "green", false, createdAt).
				RowError(0, assert.AnError),
		)

		places, err := repo.FetchPlaces(t.Context())

		require.Nil(t, places)
		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to read row")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - empty table", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)

		mock.ExpectQuery(selectPlacesQuery).WillReturnRows(pgxmock.NewRows(placeColumns))

		places, err := repo.FetchPlaces(t.Context())

		require.NoError(t, err)
		assert.NotNil(t, places)
		assert.Empty(t, places)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - fetch places", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)

		mock.ExpectQuery(selectPlacesQuery).WillReturnRows(
			pgxmock.NewRows(placeColumns).
				AddRow(int64(2), "Mercado", "Antojitos", 21.1575, -100.9305, "restaurante", "orange", true, createdAt).
				AddRow(int64(1), "Jardín", "Nieves", 21.1558, -100.9322, "plaza", "green", false, createdAt),
		)

		places, err := repo.FetchPlaces(t.Context())

		require.NoError(t, err)
		require.Len(t, places, 2)
		assert.Equal(t, models.Place{
			ID:          2,
			Name:        "Mercado",
			Description: "Antojitos",
			Coordinates: models.Coordinates{Latitude: 21.1575, Longitude: -100.9305},
			Category:    "restaurante",
			MarkerColor: "orange",
			Favorite:    true,
			CreatedAt:   createdAt,
		}, places[0])
		assert.Equal(t, int64(1), places[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInsertPlace(t *testing.T) {
	t.Parallel()
	createdAt := time.Date(2025, 9, 16, 10, 0, 0, 0, time.UTC)
	place := models.Place{
		ID:          99,
		Name:        "Museo Casa de Hidalgo",
		Description: "Casa del cura",
		Coordinates: doloresCoordinates,
		Category:    models.CategoryMuseum,
		MarkerColor: models.MarkerBlue,
	}

	t.Run("error - invalid coordinates", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)
		invalid := place
		invalid.Coordinates = models.Coordinates{Latitude: 123, Longitude: 0}

		_, err := repo.InsertPlace(t.Context(), invalid)

		require.ErrorIs(t, err, repository.ErrInvalidCoordinates)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - insert place", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)

		mock.ExpectQuery(insertPlaceQuery).
			WithArgs(place.Name, place.Description, place.Coordinates.Latitude, place.Coordinates.Longitude,
				place.Category, place.MarkerColor, false).
			WillReturnError(assert.AnError)

		_, err := repo.InsertPlace(t.Context(), place)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to insert place")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - store assigns id and timestamp", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)

		mock.ExpectQuery(insertPlaceQuery).
			WithArgs(place.Name, place.Description, place.Coordinates.Latitude, place.Coordinates.Longitude,
				place.Category, place.MarkerColor, false).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), createdAt))

		inserted, err := repo.InsertPlace(t.Context(), place)

		require.NoError(t, err)
		assert.Equal(t, int64(7), inserted.ID)
		assert.Equal(t, createdAt, inserted.CreatedAt)
		assert.Equal(t, place.Name, inserted.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUpdatePlace(t *testing.T) {
	t.Parallel()
	place := models.Place{
		ID:          3,
		Name:        "Jardín Principal",
		Description: "Nieves",
		Coordinates: doloresCoordinates,
		Category:    models.CategorySquare,
		MarkerColor: models.MarkerGreen,
		Favorite:    true,
	}
	args := []any{
		place.Name, place.Description, place.Coordinates.Latitude, place.Coordinates.Longitude,
		place.Category, place.MarkerColor, place.Favorite, place.ID,
	}

	t.Run("error - invalid coordinates", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)
		invalid := place
		invalid.Coordinates.Longitude = 200

		err := repo.UpdatePlace(t.Context(), invalid)

		require.ErrorIs(t, err, repository.ErrInvalidCoordinates)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - update place", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)

		mock.ExpectExec(updatePlaceQuery).WithArgs(args...).WillReturnError(assert.AnError)

		err := repo.UpdatePlace(t.Context(), place)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to update place")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - place not found", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)

		mock.ExpectExec(updatePlaceQuery).WithArgs(args...).WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.UpdatePlace(t.Context(), place)

		require.ErrorIs(t, err, repository.ErrPlaceNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - update place", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)

		mock.ExpectExec(updatePlaceQuery).WithArgs(args...).WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, repo.UpdatePlace(t.Context(), place))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeletePlace(t *testing.T) {
	t.Parallel()
	placeID := int64(5)

	t.Run("error - delete place", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)

		mock.ExpectExec(deletePlaceQuery).WithArgs(placeID).WillReturnError(assert.AnError)

		err := repo.DeletePlace(t.Context(), placeID)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to delete place")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - place not found", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)

		mock.ExpectExec(deletePlaceQuery).WithArgs(placeID).WillReturnResult(pgxmock.NewResult("DELETE", 0))

		err := repo.DeletePlace(t.Context(), placeID)

		require.ErrorIs(t, err, repository.ErrPlaceNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - delete place", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)

		mock.ExpectExec(deletePlaceQuery).WithArgs(placeID).WillReturnResult(pgxmock.NewResult("DELETE", 1))

		require.NoError(t, repo.DeletePlace(t.Context(), placeID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestToggleFavorite(t *testing.T) {
	t.Parallel()
	placeID := int64(4)

	t.Run("error - toggle favorite", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)

		mock.ExpectExec(toggleFavoriteSQL).WithArgs(true, placeID).WillReturnError(assert.AnError)

		err := repo.ToggleFavorite(t.Context(), placeID, false)

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to toggle favorite")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - place not found", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)

		mock.ExpectExec(toggleFavoriteSQL).WithArgs(false, placeID).WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		err := repo.ToggleFavorite(t.Context(), placeID, true)

		require.ErrorIs(t, err, repository.ErrPlaceNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - stores negated flag", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)

		mock.ExpectExec(toggleFavoriteSQL).WithArgs(true, placeID).WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		require.NoError(t, repo.ToggleFavorite(t.Context(), placeID, false))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInsertDefaultPlaces(t *testing.T) {
	t.Parallel()
	createdAt := time.Date(2025, 9, 16, 10, 0, 0, 0, time.UTC)
	lockResult := pgxmock.NewResult("LOCK TABLE", 0)

	t.Run("error - begin transaction", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)

		mock.ExpectBegin().WillReturnError(assert.AnError)

		inserted, err := repo.InsertDefaultPlaces(t.Context())

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to begin seed transaction")
		assert.Zero(t, inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - lock table", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)

		mock.ExpectBegin()
		mock.ExpectExec(lockPlacesQuery).WillReturnError(assert.AnError)
		mock.ExpectRollback()

		inserted, err := repo.InsertDefaultPlaces(t.Context())

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to lock places table")
		assert.Zero(t, inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - count places", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)

		mock.ExpectBegin()
		mock.ExpectExec(lockPlacesQuery).WillReturnResult(lockResult)
		mock.ExpectQuery(countPlacesQuery).WillReturnError(assert.AnError)
		mock.ExpectRollback()

		inserted, err := repo.InsertDefaultPlaces(t.Context())

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to count places")
		assert.Zero(t, inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - table not empty", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)

		mock.ExpectBegin()
		mock.ExpectExec(lockPlacesQuery).WillReturnResult(lockResult)
		mock.ExpectQuery(countPlacesQuery).WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
		mock.ExpectCommit()

		inserted, err := repo.InsertDefaultPlaces(t.Context())

		require.NoError(t, err)
		assert.Zero(t, inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - insert default place rolls back", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)

		mock.ExpectBegin()
		mock.ExpectExec(lockPlacesQuery).WillReturnResult(lockResult)
		mock.ExpectQuery(countPlacesQuery).WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(insertPlaceQuery).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), createdAt))
		mock.ExpectQuery(insertPlaceQuery).WillReturnError(assert.AnError)
		mock.ExpectRollback()

		inserted, err := repo.InsertDefaultPlaces(t.Context())

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to insert default place")
		assert.Zero(t, inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - commit", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)

		mock.ExpectBegin()
		mock.ExpectExec(lockPlacesQuery).WillReturnResult(lockResult)
		mock.ExpectQuery(countPlacesQuery).WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
		for i := range repository.DefaultPlaces() {
			mock.ExpectQuery(insertPlaceQuery).
				WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(i+1), createdAt))
		}
		mock.ExpectCommit().WillReturnError(assert.AnError)

		inserted, err := repo.InsertDefaultPlaces(t.Context())

		require.ErrorIs(t, err, assert.AnError)
		require.ErrorContains(t, err, "failed to commit seed transaction")
		assert.Zero(t, inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - seed empty table in one transaction", func(t *testing.T) {
		t.Parallel()
		mock, repo := newMock(t)
		defaults := repository.DefaultPlaces()

		mock.ExpectBegin()
		mock.ExpectExec(lockPlacesQuery).WillReturnResult(lockResult)
		mock.ExpectQuery(countPlacesQuery).WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
		for i, place := range defaults {
			mock.ExpectQuery(insertPlaceQuery).
				WithArgs(place.Name, place.Description, place.Coordinates.Latitude, place.Coordinates.Longitude,
					place.Category, place.MarkerColor, false).
				WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(i+1), createdAt))
		}
		mock.ExpectCommit()

		inserted, err := repo.InsertDefaultPlaces(t.Context())

		require.NoError(t, err)
		assert.Equal(t, len(defaults), inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDefaultPlaces(t *testing.T) {
	t.Parallel()

	for _, place := range repository.DefaultPlaces() {
		assert.NotEmpty(t, place.Name)
		assert.NotEmpty(t, place.Category)
		assert.True(t, place.Coordinates.Valid(), place.Name)
		assert.Zero(t, place.ID)
	}
}
