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
	"strings"
	"time"

	"github.com/paper-plateau/meshgrid/internal/models"
)

// NominatimProvider implements the Provider interface using OpenStreetMap's
// Nominatim API. This is a free geocoding service with usage limits
// (1 request/second for fair use).
type NominatimProvider struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Base URL for the Nominatim API
	log     *slog.Logger // Logger for logging operations
	// userAgent is required by Nominatim usage policy
	userAgent string
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// nominatimResponse represents the JSON response from Nominatim API.
type nominatimResponse struct {
	Lat string `json:"lat"` // Latitude as string
	Lon string `json:"lon"` // Longitude as string
}

// Common errors for Nominatim provider.
var (
	ErrNominatimEmptyResponse = errors.New("nominatim API returned empty response")
	ErrNominatimInvalidCoords = errors.New("nominatim API returned invalid coordinates")
)

const nominatimUserAgent = "Meshgrid-Prefetch-Service/1.0 (https://github.com/paper-plateau/meshgrid)"

// NewNominatimProvider creates a new Nominatim geocoding provider.
// Uses the public Nominatim API endpoint by default.
func NewNominatimProvider(log *slog.Logger) *NominatimProvider {
	const timeout = 10
	return &NominatimProvider{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: "https://nominatim.openstreetmap.org/search",
		log:     log,
		// User-Agent MUST include valid contact info per Nominatim usage policy:
		// https://operations.osmfoundation.org/policies/nominatim/
		userAgent: nominatimUserAgent,
	}
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom
// HTTP client. Useful for testing with mocked HTTP clients.
func NewNominatimProviderWithClient(client HTTPClient, log *slog.Logger) *NominatimProvider {
	return &NominatimProvider{
		client:    client,
		baseURL:   "https://nominatim.openstreetmap.org/search",
		log:       log,
		userAgent: nominatimUserAgent,
	}
}

// Geocode converts a building-search query to geographic coordinates using
// the Nominatim API. It respects Nominatim's usage policy by including a
// User-Agent header.
//
// Uses a progressive fallback strategy for Japanese addresses, which often
// carry block and lot numbers Nominatim cannot match:
// 1. Try the full query
// 2. Try the query without its last component (usually the lot number)
// 3. Try without the last two components
// 4. Try the leading component only (ward or city)
func (np *NominatimProvider) Geocode(ctx context.Context, query string) (*models.Coordinates, error) {
	np.log.DebugContext(ctx, "Geocoding using Nominatim", "query", query)

	queryVariations := np.generateQueryFallbacks(query)

	for idx, variation := range queryVariations {
		coords, err := np.geocodeSingleQuery(ctx, variation)
		if err == nil {
			if idx == 0 {
				np.log.DebugContext(ctx, "Geocoded with full query", "query", variation)
			} else {
				np.log.InfoContext(ctx, "Geocoded using fallback query",
					"original", query,
					"fallback", variation,
					"fallback_level", idx)
			}
			return coords, nil
		}

		// Anything other than an empty result is a hard failure (API error,
		// invalid coordinates) and fallbacks will not help.
		if !errors.Is(err, ErrNominatimEmptyResponse) {
			return nil, err
		}

		np.log.DebugContext(ctx, "Query variation returned no results, trying fallback",
			"variation", variation,
			"fallback_level", idx)
	}

	np.log.WarnContext(
		ctx,
		"All query fallbacks exhausted",
		"query",
		query,
		"variations_tried",
		len(queryVariations),
	)
	return nil, ErrNominatimEmptyResponse
}

// generateQueryFallbacks creates a list of progressively simpler query variations.
func (np *NominatimProvider) generateQueryFallbacks(query string) []string {
	if query == "" {
		return []string{""}
	}

	// Track unique variations and preserve order.
	seen := make(map[string]bool)
	variations := []string{}

	addVariation := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			variations = append(variations, v)
		}
	}

	addVariation(query)

	// Japanese addresses separate components with commas, spaces or
	// full-width spaces depending on the source.
	parts := strings.FieldsFunc(query, func(r rune) bool {
		return r == ',' || r == ' ' || r == '　'
	})
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if len(parts) > 1 {
		// Drop the last component (usually the block/lot number).
		addVariation(strings.Join(parts[:len(parts)-1], " "))

		const lenComponents = 2
		if len(parts) > lenComponents {
			addVariation(strings.Join(parts[:len(parts)-2], " "))
		}

		// Ward or city only.
		addVariation(parts[0])
	}

	return variations
}

// geocodeSingleQuery performs a single geocoding request without fallback logic.
func (np *NominatimProvider) geocodeSingleQuery(ctx context.Context, query string) (*models.Coordinates, error) {
	reqURL, err := url.Parse(np.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	params := reqURL.Query()
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")               // Only need the top result
	params.Set("countrycodes", "jp")       // Mesh codes only cover Japan
	params.Set("accept-language", "ja,en") // Prefer Japanese, fallback to English
	reqURL.RawQuery = params.Encode()

	np.log.DebugContext(ctx, "Nominatim request URL", "url", reqURL.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set required headers per Nominatim usage policy
	req.Header.Set("User-Agent", np.userAgent)
	req.Header.Set("Accept-Language", "ja,en")

	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	np.log.DebugContext(ctx, "Nominatim raw response", "body", string(body))

	var results []nominatimResponse
	if err = json.Unmarshal(body, &results); err != nil {
		np.log.ErrorContext(ctx, "Failed to parse Nominatim response", "error", err, "body", string(body))
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrNominatimEmptyResponse
	}

	np.log.DebugContext(ctx, "Nominatim found result", "lat", results[0].Lat, "lon", results[0].Lon)

	var lat, lon float64
	if _, err = fmt.Sscanf(results[0].Lat, "%f", &lat); err != nil {
		return nil, fmt.Errorf("%w: invalid latitude: %s", ErrNominatimInvalidCoords, results[0].Lat)
	}
	if _, err = fmt.Sscanf(results[0].Lon, "%f", &lon); err != nil {
		return nil, fmt.Errorf("%w: invalid longitude: %s", ErrNominatimInvalidCoords, results[0].Lon)
	}

	return &models.Coordinates{
		Latitude:  lat,
		Longitude: lon,
	}, nil
}
