package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Common repository errors.
var (
	ErrPlaceNotFound      = errors.New("place not found")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// Database is the subset of *pgxpool.Pool used by the repository.
// pgxmock.PgxPoolIface satisfies it as well.
type Database interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// rowQuerier is implemented by both Database and pgx.Tx.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository struct {
	db  Database
	log *slog.Logger
}

type Interface interface {
	FetchPlaces(ctx context.Context) ([]models.Place, error)
	InsertPlace(ctx context.Context, place models.Place) (models.Place, error)
	UpdatePlace(ctx context.Context, place models.Place) error
	DeletePlace(ctx context.Context, placeID int64) error
	ToggleFavorite(ctx context.Context, placeID int64, current bool) error
	CountPlaces(ctx context.Context) (int, error)
	InsertDefaultPlaces(ctx context.Context) (int, error)
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
