package geocoding_test

import (
	"log/slog"
	"testing"

	"github.com/paper-plateau/meshgrid/internal/geocoding"
	"github.com/paper-plateau/meshgrid/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

func TestGoogleGeocode(t *testing.T) {
	mockClient := mocks.NewGoogleAPIClient(t)
	provider := geocoding.NewGoogleProvider(mockClient, slog.Default())
	ctx := t.Context()

	t.Run("api returns error", func(t *testing.T) {
		query := "some invalid place"
		req := &maps.GeocodingRequest{Address: query, Region: "jp", Language: "ja"}

		mockClient.On("Geocode", ctx, req).Return(nil, assert.AnError).Once()

		_, err := provider.Geocode(ctx, query)

		require.Error(t, err)
		require.ErrorIs(t, err, assert.AnError)
		mockClient.AssertExpectations(t)
	})

	t.Run("api returns empty response", func(t *testing.T) {
		query := "some invalid place"
		req := &maps.GeocodingRequest{Address: query, Region: "jp", Language: "ja"}

		mockClient.On("Geocode", ctx, req).Return(nil, nil).Once()

		coords, err := provider.Geocode(ctx, query)

		require.Nil(t, coords)
		require.ErrorIs(t, err, geocoding.ErrEmptyResponse)
		mockClient.AssertExpectations(t)
	})

	t.Run("successfull geocoding", func(t *testing.T) {
		query := "東京駅"
		req := &maps.GeocodingRequest{Address: query, Region: "jp", Language: "ja"}
		mockReponse := []maps.GeocodingResult{
			{Geometry: maps.AddressGeometry{Location: maps.LatLng{Lat: 35.681236, Lng: 139.767125}}},
		}

		mockClient.On("Geocode", ctx, req).Return(mockReponse, nil).Once()

		coords, err := provider.Geocode(ctx, query)

		require.NoError(t, err)
		require.NotNil(t, coords)
		require.InEpsilon(t, 35.681236, coords.Latitude, 0.01)
		require.InEpsilon(t, 139.767125, coords.Longitude, 0.01)
		mockClient.AssertExpectations(t)
	})
}
