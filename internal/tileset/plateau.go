// Package tileset resolves regional mesh codes into PLATEAU 3D Tiles
// tileset URLs through the mesh-to-tilesets service. The neighbor set
// produced by the mesh package is the direct input to this client.
package tileset

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/paper-plateau/meshgrid/internal/models"
	"golang.org/x/time/rate"
)

// resolvePath is the endpoint of the mesh-to-tilesets service.
const resolvePath = "/plateau/mesh-to-tilesets"

// Resolver maps mesh codes to the tileset URLs covering their cells.
type Resolver interface {
	ResolveTilesets(ctx context.Context, meshCodes []string, lod int) ([]models.TilesetRef, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Common errors for the PLATEAU resolver.
var (
	ErrNoMeshCodes   = errors.New("plateau resolver got an empty mesh code list")
	ErrEmptyResponse = errors.New("plateau API returned no tilesets")
)

// resolveRequest is the JSON body of a mesh-to-tilesets call.
type resolveRequest struct {
	MeshCodes []string `json:"mesh_codes"`
	LOD       int      `json:"lod"`
}

// resolveResponse mirrors the JSON reply of the mesh-to-tilesets service.
type resolveResponse struct {
	Tilesets []struct {
		MeshCode    string   `json:"mesh_code"`
		TilesetURLs []string `json:"tileset_urls"`
	} `json:"tilesets"`
}

// PlateauResolver implements Resolver against the PLATEAU mesh-to-tilesets
// HTTP service.
type PlateauResolver struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL of the mesh-to-tilesets service
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

// NewPlateauResolver creates a resolver against the given base URL.
func NewPlateauResolver(baseURL string, rateLimit int, log *slog.Logger) *PlateauResolver {
	const timeout = 15

	return &PlateauResolver{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: baseURL,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
	}
}

// NewPlateauResolverWithClient allows injecting a custom HTTP client.
func NewPlateauResolverWithClient(
	client HTTPClient,
	baseURL string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *PlateauResolver {
	return &PlateauResolver{
		client:  client,
		baseURL: baseURL,
		log:     log,
		limiter: limiter,
	}
}

// ResolveTilesets posts the mesh code list to the mesh-to-tilesets service
// and returns one TilesetRef per covered cell. Codes without published
// tilesets (open water, unmapped municipalities) are simply absent from
// the reply.
func (pr *PlateauResolver) ResolveTilesets(
	ctx context.Context,
	meshCodes []string,
	lod int,
) ([]models.TilesetRef, error) {
	if err := pr.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	if len(meshCodes) == 0 {
		return nil, ErrNoMeshCodes
	}

	pr.log.DebugContext(ctx, "Resolving tilesets", "mesh_codes", meshCodes, "lod", lod)

	payload, err := json.Marshal(resolveRequest{MeshCodes: meshCodes, LOD: lod})
	if err != nil {
		return nil, fmt.Errorf("failed to encode resolve request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		pr.baseURL+resolvePath,
		bytes.NewReader(payload),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := pr.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute resolve request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		pr.log.ErrorContext(ctx, "PLATEAU API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("plateau API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var result resolveResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode plateau response: %w", err)
	}

	if len(result.Tilesets) == 0 {
		return nil, ErrEmptyResponse
	}

	refs := make([]models.TilesetRef, 0, len(result.Tilesets))
	for _, ts := range result.Tilesets {
		refs = append(refs, models.TilesetRef{MeshCode: ts.MeshCode, URLs: ts.TilesetURLs})
	}

	pr.log.InfoContext(ctx, "Resolved tilesets", "requested", len(meshCodes), "resolved", len(refs))

	return refs, nil
}
