package tileset_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/paper-plateau/meshgrid/internal/tileset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}
}

func TestPlateauResolver_ResolveTilesets(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	limiter := rate.NewLimiter(rate.Inf, 1)
	meshCodes := []string{"53394611", "53394612"}

	t.Run("successful resolution", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "POST", req.Method)
				assert.Equal(t, "https://tiles.example.jp/plateau/mesh-to-tilesets", req.URL.String())
				assert.Equal(t, "application/json", req.Header.Get("Content-Type"))

				payload, err := io.ReadAll(req.Body)
				require.NoError(t, err)

				var parsed struct {
					MeshCodes []string `json:"mesh_codes"`
					LOD       int      `json:"lod"`
				}
				require.NoError(t, json.Unmarshal(payload, &parsed))
				assert.Equal(t, meshCodes, parsed.MeshCodes)
				assert.Equal(t, 2, parsed.LOD)

				body := `{"tilesets":[
					{"mesh_code":"53394611","tileset_urls":["https://tiles.example.jp/53394611/tileset.json"]},
					{"mesh_code":"53394612","tileset_urls":["https://tiles.example.jp/53394612/tileset.json"]}
				]}`
				return jsonResponse(http.StatusOK, body), nil
			},
		}

		resolver := tileset.NewPlateauResolverWithClient(mockClient, "https://tiles.example.jp", limiter, logger)
		refs, err := resolver.ResolveTilesets(ctx, meshCodes, 2)

		require.NoError(t, err)
		require.Len(t, refs, 2)
		assert.Equal(t, "53394611", refs[0].MeshCode)
		assert.Equal(t, []string{"https://tiles.example.jp/53394611/tileset.json"}, refs[0].URLs)
	})

	t.Run("empty mesh code list", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				t.Fatal("no request expected for an empty mesh code list")
				return nil, nil
			},
		}

		resolver := tileset.NewPlateauResolverWithClient(mockClient, "https://tiles.example.jp", limiter, logger)
		refs, err := resolver.ResolveTilesets(ctx, nil, 2)

		require.Nil(t, refs)
		require.ErrorIs(t, err, tileset.ErrNoMeshCodes)
	})

	t.Run("no tilesets published for the cells", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"tilesets":[]}`), nil
			},
		}

		resolver := tileset.NewPlateauResolverWithClient(mockClient, "https://tiles.example.jp", limiter, logger)
		refs, err := resolver.ResolveTilesets(ctx, meshCodes, 2)

		require.Nil(t, refs)
		require.ErrorIs(t, err, tileset.ErrEmptyResponse)
	})

	t.Run("API error status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusBadGateway, `Bad Gateway`), nil
			},
		}

		resolver := tileset.NewPlateauResolverWithClient(mockClient, "https://tiles.example.jp", limiter, logger)
		refs, err := resolver.ResolveTilesets(ctx, meshCodes, 2)

		require.Nil(t, refs)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "returned status 502")
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `not json`), nil
			},
		}

		resolver := tileset.NewPlateauResolverWithClient(mockClient, "https://tiles.example.jp", limiter, logger)
		refs, err := resolver.ResolveTilesets(ctx, meshCodes, 2)

		require.Nil(t, refs)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode plateau response")
	})

	t.Run("transport error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		resolver := tileset.NewPlateauResolverWithClient(mockClient, "https://tiles.example.jp", limiter, logger)
		refs, err := resolver.ResolveTilesets(ctx, meshCodes, 2)

		require.Nil(t, refs)
		require.ErrorIs(t, err, assert.AnError)
	})
}
