package geocoding_test

import (
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/hermes/internal/geocoding"
	"github.com/UnknownOlympus/hermes/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

func TestGeocode(t *testing.T) {
	mockClient := mocks.NewGoogleAPIClient(t)
	provider := geocoding.NewGoogleProvider(mockClient, "mx", slog.Default())
	ctx := t.Context()

	request := func(address string) *maps.GeocodingRequest {
		return &maps.GeocodingRequest{Address: address, Region: "mx", Language: "es"}
	}

	t.Run("api returns error", func(t *testing.T) {
		address := "some invalid place"

		mockClient.On("Geocode", ctx, request(address)).Return(nil, assert.AnError).Once()

		_, err := provider.Geocode(ctx, address)

		require.ErrorIs(t, err, assert.AnError)
		mockClient.AssertExpectations(t)
	})

	t.Run("api return empty response", func(t *testing.T) {
		address := "some invalid place"

		mockClient.On("Geocode", ctx, request(address)).Return(nil, nil).Once()

		coords, err := provider.Geocode(ctx, address)

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrEmptyResponse)
		mockClient.AssertExpectations(t)
	})

	t.Run("successful geocoding", func(t *testing.T) {
		address := "Parroquia de Dolores, Dolores Hidalgo, Gto."
		response := []maps.GeocodingResult{
			{Geometry: maps.AddressGeometry{Location: maps.LatLng{Lat: 21.1561, Lng: -100.9316}}},
		}

		mockClient.On("Geocode", ctx, request(address)).Return(response, nil).Once()

		coords, err := provider.Geocode(ctx, address)

		require.NoError(t, err)
		require.NotNil(t, coords)
		require.InEpsilon(t, 21.1561, coords.Latitude, 0.0001)
		require.InEpsilon(t, -100.9316, coords.Longitude, 0.0001)
		mockClient.AssertExpectations(t)
	})
}
