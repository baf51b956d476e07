package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/paper-plateau/meshgrid/internal/models"
	"golang.org/x/time/rate"
)

// GSIBaseURL -- GSI address search API base URL.
const GSIBaseURL = "https://msearch.gsi.go.jp/address-search/AddressSearch"

// GSIProvider implements geocoding using the address search API of the
// Geospatial Information Authority of Japan. It needs no API key and is
// the natural default for mesh-code work since it only knows Japan.
type GSIProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the GSI API
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

// Common errors for GSI provider.
var (
	ErrGSIEmptyResponse = errors.New("gsi API returned empty response")
	ErrGSIEmptyQuery    = errors.New("gsi provider got empty query")
	ErrGSIInvalidCoords = errors.New("gsi API returned invalid coordinates")
)

// GSI API response: a list of GeoJSON-like features (simplified for the
// geocoding use-case).
type gsiFeature struct {
	Geometry struct {
		Coordinates []float64 `json:"coordinates"` // [lon, lat]
	} `json:"geometry"`
}

// NewGSIProvider creates a new GSI address search provider.
func NewGSIProvider(rateLimit int, log *slog.Logger) *GSIProvider {
	const timeout = 10

	return &GSIProvider{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: GSIBaseURL,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
	}
}

// NewGSIProviderWithClient allows injecting custom HTTP client.
func NewGSIProviderWithClient(
	client HTTPClient,
	limiter *rate.Limiter,
	log *slog.Logger,
) *GSIProvider {
	return &GSIProvider{
		client:  client,
		baseURL: GSIBaseURL,
		log:     log,
		limiter: limiter,
	}
}

// Geocode converts a Japanese address or landmark query into geographic
// coordinates using the GSI address search API.
func (gp *GSIProvider) Geocode(
	ctx context.Context,
	query string,
) (*models.Coordinates, error) {
	const coordsListLength = 2

	// Rate limit
	if err := gp.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	gp.log.DebugContext(ctx, "Geocoding using GSI", "query", query)

	if query == "" {
		return nil, ErrGSIEmptyQuery
	}

	reqURL, err := url.Parse(gp.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	params := reqURL.Query()
	params.Set("q", query)
	reqURL.RawQuery = params.Encode()

	gp.log.DebugContext(ctx, "GSI request URL", "url", reqURL.String())

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		reqURL.String(),
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := gp.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		gp.log.ErrorContext(ctx, "GSI API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("gsi API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	gp.log.DebugContext(ctx, "GSI raw response", "body", string(body))

	var features []gsiFeature
	if err = json.Unmarshal(body, &features); err != nil {
		return nil, fmt.Errorf("failed to decode gsi response: %w", err)
	}

	if len(features) == 0 {
		return nil, ErrGSIEmptyResponse
	}

	coords := features[0].Geometry.Coordinates
	if len(coords) != coordsListLength {
		return nil, ErrGSIInvalidCoords
	}

	lon := coords[0]
	lat := coords[1]

	gp.log.InfoContext(ctx, "GSI found result", "query", query, "lat", lat, "lon", lon)

	return &models.Coordinates{
		Latitude:  lat,
		Longitude: lon,
	}, nil
}
