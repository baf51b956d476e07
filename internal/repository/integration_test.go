//go:build integration

package repository_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paper-plateau/meshgrid/internal/models"
	"github.com/paper-plateau/meshgrid/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const anchorsSchema = `
	CREATE TABLE search_anchors (
		anchor_id SERIAL PRIMARY KEY,
		query TEXT NOT NULL,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		mesh_code TEXT,
		tileset_urls TEXT[],
		resolution_attempts INT NOT NULL DEFAULT 0,
		resolution_error TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

func TestRepository_Integration(t *testing.T) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("meshgrid"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, anchorsSchema)
	require.NoError(t, err)

	repo := repository.NewRepository(pool, slog.Default())

	var anchorID int
	err = pool.QueryRow(ctx,
		`INSERT INTO search_anchors (query) VALUES ($1) RETURNING anchor_id`, "東京駅",
	).Scan(&anchorID)
	require.NoError(t, err)

	t.Run("fetch pending anchors sees the new row", func(t *testing.T) {
		anchors, err := repo.FetchPendingAnchors(ctx, 10)
		require.NoError(t, err)
		require.Len(t, anchors, 1)
		assert.Equal(t, anchorID, anchors[0].ID)
		assert.Equal(t, "東京駅", anchors[0].Query)
	})

	t.Run("increment failure keeps the anchor pending", func(t *testing.T) {
		require.NoError(t, repo.IncrementFailureCount(ctx, anchorID, "geocoding failed"))

		anchors, err := repo.FetchPendingAnchors(ctx, 10)
		require.NoError(t, err)
		require.Len(t, anchors, 1)
	})

	t.Run("storing the result completes the anchor", func(t *testing.T) {
		coords := models.Coordinates{Latitude: 35.681236, Longitude: 139.767125}
		urls := []string{"https://tiles.example.jp/53394611/tileset.json"}

		require.NoError(t, repo.UpdateAnchorResult(ctx, anchorID, coords, "53394611", urls))

		anchors, err := repo.FetchPendingAnchors(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, anchors)
	})
}
