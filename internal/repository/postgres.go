package repository

import (
	"context"
	"fmt"

	"github.com/paper-plateau/meshgrid/internal/models"
)

// FetchPendingAnchors retrieves search anchors that still need mesh
// resolution. It returns anchors that have a NULL mesh code, fewer than 5
// resolution attempts and a non-empty query, ordered by creation date and
// limited to the specified count.
//
// Parameters:
// - ctx: The context for the operation, allowing for cancellation and timeout.
// - limit: The maximum number of anchors to retrieve.
//
// Returns:
// - A slice of models.Anchor containing the anchors that match the criteria.
// - An error if the query fails or if there is an issue scanning the results.
func (r *Repository) FetchPendingAnchors(ctx context.Context, limit int) ([]models.Anchor, error) {
	var anchors []models.Anchor
	query := `
		SELECT anchor_id, query
		FROM public.search_anchors
		WHERE
			mesh_code IS NULL
			AND resolution_attempts < 5
			AND query IS NOT NULL AND query <> ''
		ORDER BY created_at ASC
		LIMIT $1;
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending anchors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var anchor models.Anchor
		if errScan := rows.Scan(&anchor.ID, &anchor.Query); errScan != nil {
			return nil, fmt.Errorf("failed to scan pending anchor: %w", errScan)
		}
		r.log.DebugContext(ctx, "A new anchor without a mesh code has been received.",
			"ID", anchor.ID, "Query", anchor.Query)
		anchors = append(anchors, anchor)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return anchors, nil
}

// UpdateAnchorResult stores the resolved coordinates, mesh code and
// tileset URLs for an anchor and clears its resolution error. It returns
// an error if the update fails.
func (r *Repository) UpdateAnchorResult(
	ctx context.Context,
	anchorID int,
	coords models.Coordinates,
	meshCode string,
	tilesetURLs []string,
) error {
	query := `
		UPDATE search_anchors
		SET
			latitude = $1,
			longitude = $2,
			mesh_code = $3,
			tileset_urls = $4,
			resolution_error = NULL
		WHERE
			anchor_id = $5;
	`

	_, err := r.db.Exec(ctx, query, coords.Latitude, coords.Longitude, meshCode, tilesetURLs, anchorID)
	if err != nil {
		return fmt.Errorf("failed to update anchor result: %w", err)
	}

	return nil
}

// IncrementFailureCount increments the resolution attempt count for a
// specific anchor identified by anchorID and updates the associated error
// message. If the update operation fails, it returns an error with
// additional context.
func (r *Repository) IncrementFailureCount(ctx context.Context, anchorID int, errMsg string) error {
	query := `
		UPDATE search_anchors
		SET
			resolution_attempts = resolution_attempts + 1,
			resolution_error = $1
		WHERE anchor_id = $2;
	`

	_, err := r.db.Exec(ctx, query, errMsg, anchorID)
	if err != nil {
		return fmt.Errorf("failed to update resolution error and number of attempts: %w", err)
	}

	return nil
}
