package repository

import (
	"context"
	"fmt"

	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/jackc/pgx/v5"
)

const schema = `
	CREATE TABLE IF NOT EXISTS places (
		id           BIGSERIAL PRIMARY KEY,
		name         TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		latitude     DOUBLE PRECISION NOT NULL CHECK (latitude BETWEEN -90 AND 90),
		longitude    DOUBLE PRECISION NOT NULL CHECK (longitude BETWEEN -180 AND 180),
		category     TEXT NOT NULL DEFAULT '',
		marker_color TEXT NOT NULL DEFAULT '',
		is_favorite  BOOLEAN NOT NULL DEFAULT false,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

// Migrate creates the places table when it does not exist yet.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate places schema: %w", err)
	}

	return nil
}

// FetchPlaces returns every stored place, newest first.
func (r *Repository) FetchPlaces(ctx context.Context) ([]models.Place, error) {
	query := `
		SELECT id, name, description, latitude, longitude, category, marker_color, is_favorite, created_at
		FROM places
		ORDER BY created_at DESC, id DESC;
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query places: %w", err)
	}
	defer rows.Close()

	places := []models.Place{}
	for rows.Next() {
		var place models.Place
		if errScan := rows.Scan(
			&place.ID,
			&place.Name,
			&place.Description,
			&place.Coordinates.Latitude,
			&place.Coordinates.Longitude,
			&place.Category,
			&place.MarkerColor,
			&place.Favorite,
			&place.CreatedAt,
		); errScan != nil {
			return nil, fmt.Errorf("failed to scan place: %w", errScan)
		}
		places = append(places, place)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	r.log.DebugContext(ctx, "Places fetched", "count", len(places))

	return places, nil
}

// InsertPlace stores a new place and returns it with the identifier and creation time
// assigned by the database. Any ID or CreatedAt already set on place is ignored.
func (r *Repository) InsertPlace(ctx context.Context, place models.Place) (models.Place, error) {
	return r.insertPlace(ctx, r.db, place)
}

func (r *Repository) insertPlace(ctx context.Context, db rowQuerier, place models.Place) (models.Place, error) {
	if !place.Coordinates.Valid() {
		return models.Place{}, fmt.Errorf("failed to insert place %q: %w", place.Name, ErrInvalidCoordinates)
	}

	query := `
		INSERT INTO places (name, description, latitude, longitude, category, marker_color, is_favorite)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at;
	`

	err := db.QueryRow(ctx, query,
		place.Name,
		place.Description,
		place.Coordinates.Latitude,
		place.Coordinates.Longitude,
		place.Category,
		place.MarkerColor,
		place.Favorite,
	).Scan(&place.ID, &place.CreatedAt)
	if err != nil {
		return models.Place{}, fmt.Errorf("failed to insert place: %w", err)
	}

	r.log.DebugContext(ctx, "Place inserted", "ID", place.ID, "name", place.Name)

	return place, nil
}

// UpdatePlace overwrites the mutable fields of the place identified by place.ID.
// The identifier and creation time are never changed.
func (r *Repository) UpdatePlace(ctx context.Context, place models.Place) error {
	if !place.Coordinates.Valid() {
		return fmt.Errorf("failed to update place %d: %w", place.ID, ErrInvalidCoordinates)
	}

	query := `
		UPDATE places
		SET
			name = $1,
			description = $2,
			latitude = $3,
			longitude = $4,
			category = $5,
			marker_color = $6,
			is_favorite = $7
		WHERE
			id = $8;
	`

	tag, err := r.db.Exec(ctx, query,
		place.Name,
		place.Description,
		place.Coordinates.Latitude,
		place.Coordinates.Longitude,
		place.Category,
		place.MarkerColor,
		place.Favorite,
		place.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update place: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update place %d: %w", place.ID, ErrPlaceNotFound)
	}

	return nil
}

// DeletePlace removes the place identified by placeID.
func (r *Repository) DeletePlace(ctx context.Context, placeID int64) error {
	query := `DELETE FROM places WHERE id = $1;`

	tag, err := r.db.Exec(ctx, query, placeID)
	if err != nil {
		return fmt.Errorf("failed to delete place: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete place %d: %w", placeID, ErrPlaceNotFound)
	}

	return nil
}

// ToggleFavorite stores the negation of current, the flag the caller last observed, for placeID.
func (r *Repository) ToggleFavorite(ctx context.Context, placeID int64, current bool) error {
	query := `UPDATE places SET is_favorite = $1 WHERE id = $2;`

	tag, err := r.db.Exec(ctx, query, !current, placeID)
	if err != nil {
		return fmt.Errorf("failed to toggle favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to toggle favorite of place %d: %w", placeID, ErrPlaceNotFound)
	}

	return nil
}

// CountPlaces returns the number of stored places.
func (r *Repository) CountPlaces(ctx context.Context) (int, error) {
	return countPlaces(ctx, r.db)
}

func countPlaces(ctx context.Context, db rowQuerier) (int, error) {
	var count int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM places;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count places: %w", err)
	}

	return count, nil
}

// InsertDefaultPlaces seeds the built-in landmarks when the table is empty.
// It returns how many places were inserted; zero means the table already had data.
// The check and the inserts run in one transaction holding an exclusive table lock,
// so concurrent seeders insert the defaults once and a failed seed leaves no rows behind.
func (r *Repository) InsertDefaultPlaces(ctx context.Context) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin seed transaction: %w", err)
	}

	inserted, err := r.seed(ctx, tx)
	if err != nil {
		if errRollback := tx.Rollback(ctx); errRollback != nil {
			r.log.WarnContext(ctx, "Failed to roll back seed transaction", "error", errRollback)
		}
		return 0, err
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	if inserted > 0 {
		r.log.InfoContext(ctx, "Default places inserted", "count", inserted)
	}

	return inserted, nil
}

func (r *Repository) seed(ctx context.Context, tx pgx.Tx) (int, error) {
	if _, err := tx.Exec(ctx, `LOCK TABLE places IN EXCLUSIVE MODE;`); err != nil {
		return 0, fmt.Errorf("failed to lock places table: %w", err)
	}

	count, err := countPlaces(ctx, tx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		r.log.DebugContext(ctx, "Places already present, skipping defaults", "count", count)
		return 0, nil
	}

	defaults := DefaultPlaces()
	for _, place := range defaults {
		if _, err = r.insertPlace(ctx, tx, place); err != nil {
			return 0, fmt.Errorf("failed to insert default place %q: %w", place.Name, err)
		}
	}

	return len(defaults), nil
}
