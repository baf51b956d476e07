package geocoding

import (
	"context"

	"github.com/paper-plateau/meshgrid/internal/models"
)

// Provider is an interface that defines a method for geocoding a
// building-search query. The Geocode method takes a context and a
// free-form address or landmark string, and returns the corresponding
// coordinates the mesh resolver anchors on, or an error if any occurs.
type Provider interface {
	Geocode(ctx context.Context, query string) (*models.Coordinates, error)
}
