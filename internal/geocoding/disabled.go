package geocoding

import (
	"context"

	"github.com/UnknownOlympus/hermes/internal/models"
)

type disabledProvider struct{}

func (disabledProvider) Geocode(context.Context, string) (*models.Coordinates, error) {
	return nil, ErrGeocodingDisabled
}
