package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/paper-plateau/meshgrid/internal/geocoding"
	"github.com/paper-plateau/meshgrid/internal/mesh"
	"github.com/paper-plateau/meshgrid/internal/metrics"
	"github.com/paper-plateau/meshgrid/internal/models"
	"github.com/paper-plateau/meshgrid/internal/repository"
	"github.com/paper-plateau/meshgrid/internal/tileset"
)

// PrefetchService resolves search anchors end to end: geocodes the query,
// derives the 1 km mesh cell and its 3x3 neighborhood, asks the PLATEAU
// service for the covering tilesets and stores the result so the viewer
// can stream the surrounding city blocks before the user pans there.
type PrefetchService struct {
	log          *slog.Logger         // Logger for logging service activities
	repo         repository.Interface // Interface for data repository access
	provider     geocoding.Provider   // Geocoding provider resolving anchor queries
	providerName string               // Name of the provider for metrics labeling
	resolver     tileset.Resolver     // PLATEAU mesh-to-tilesets client
	metrics      *metrics.Metrics     // Metrics for tracking service performance
	numWorkers   int                  // Number of concurrent workers for processing
	pollInterval time.Duration        // Interval for polling pending anchors
	lod          int                  // Level of detail requested from the tileset service
}

// NewPrefetchService creates a new instance of PrefetchService. It takes a
// logger, a repository interface, a geocoding provider with its name for
// metrics, a tileset resolver, metrics for monitoring, the number of
// workers to use, a polling interval, and the tileset level of detail.
// It returns a pointer to the newly created PrefetchService.
func NewPrefetchService(
	log *slog.Logger,
	repo repository.Interface,
	provider geocoding.Provider,
	providerName string,
	resolver tileset.Resolver,
	metrics *metrics.Metrics,
	numWorkers int,
	pollInterval time.Duration,
	lod int,
) *PrefetchService {
	return &PrefetchService{
		log:          log,
		repo:         repo,
		provider:     provider,
		providerName: providerName,
		resolver:     resolver,
		metrics:      metrics,
		numWorkers:   numWorkers,
		pollInterval: pollInterval,
		lod:          lod,
	}
}

// Run starts the prefetch service, which periodically polls for pending
// anchors to resolve. It listens for a cancellation signal from the
// context to gracefully stop the service.
func (ps *PrefetchService) Run(ctx context.Context) {
	ticker := time.NewTicker(ps.pollInterval)
	defer ticker.Stop()

	ps.log.InfoContext(ctx, "Prefetch service started...")

	for {
		select {
		case <-ctx.Done():
			ps.log.InfoContext(ctx, "Prefetch service stopped.")
			return
		case <-ticker.C:
			ps.log.InfoContext(ctx, "Polling for pending anchors...")
			ps.processAnchors(ctx)
		}
	}
}

// processAnchors fetches pending anchors from the repository, starts a
// worker pool to resolve them, and waits for all workers to finish. It
// logs errors if anchor fetching fails and logs the status of processing.
func (ps *PrefetchService) processAnchors(ctx context.Context) {
	anchorLimit := 100
	anchors, err := ps.repo.FetchPendingAnchors(ctx, anchorLimit)
	if err != nil {
		ps.log.ErrorContext(ctx, "Failed to fetch anchors", "error", err)
		return
	}
	if len(anchors) == 0 {
		ps.log.InfoContext(ctx, "No anchors to process.")
		return
	}

	ps.log.InfoContext(
		ctx,
		"Found anchors to process. Starting worker pool.",
		"jobs",
		len(anchors),
		"num_workers",
		ps.numWorkers,
	)

	jobs := make(chan models.Anchor, len(anchors))
	var wgr sync.WaitGroup

	for i := 1; i <= ps.numWorkers; i++ {
		wgr.Add(1)
		go ps.worker(ctx, i, &wgr, jobs)
	}

	for _, anchor := range anchors {
		jobs <- anchor
	}
	close(jobs)

	wgr.Wait()
	ps.log.InfoContext(ctx, "Processing batch finished")
}

// worker resolves anchors from the jobs channel. Each anchor runs through
// the full pipeline; the first failing stage records the failure in both
// Prometheus and the anchor row, and the worker moves on to the next job.
func (ps *PrefetchService) worker(ctx context.Context, idx int, wg *sync.WaitGroup, jobs <-chan models.Anchor) {
	defer wg.Done()
	for anchor := range jobs {
		ps.metrics.ActiveWorkers.Inc()
		ps.log.DebugContext(ctx, "Processing anchor", "worker", idx, "anchor", anchor.ID)

		if err := ps.resolveAnchor(ctx, anchor); err != nil {
			ps.log.ErrorContext(ctx, "Failed to resolve anchor", "worker", idx, "anchor", anchor.ID, "error", err)
			ps.metrics.AnchorsProcessed.WithLabelValues("failure").Inc()

			if err = ps.repo.IncrementFailureCount(ctx, anchor.ID, err.Error()); err != nil {
				ps.log.ErrorContext(
					ctx,
					"Could not update failure count for anchor",
					"worker", idx,
					"anchor", anchor.ID,
					"error", err,
				)
			}
			ps.metrics.ActiveWorkers.Dec()
			continue
		}

		ps.metrics.AnchorsProcessed.WithLabelValues("success").Inc()
		ps.log.DebugContext(ctx, "Worker successfully resolved the anchor", "worker", idx, "anchor", anchor.ID)
		ps.metrics.ActiveWorkers.Dec()
	}
}

// resolveAnchor runs one anchor through geocoding, mesh derivation and
// tileset resolution, and persists the result.
func (ps *PrefetchService) resolveAnchor(ctx context.Context, anchor models.Anchor) error {
	startTime := time.Now()
	coords, err := ps.provider.Geocode(ctx, anchor.Query)
	duration := time.Since(startTime).Seconds()
	ps.metrics.RequestSeconds.WithLabelValues(ps.providerName).Observe(duration)

	if err != nil {
		ps.metrics.UpstreamErrors.WithLabelValues(ps.providerName).Inc()
		return fmt.Errorf("geocoding failed: %w", err)
	}

	meshCode := mesh.Encode3rd(coords.Latitude, coords.Longitude)
	if !mesh.IsValid3rd(meshCode) {
		// The geocoder matched something outside the gridded range of
		// Japan; the encoders do not reject that themselves.
		return fmt.Errorf("coordinates (%f, %f) are outside the mesh grid: code %q",
			coords.Latitude, coords.Longitude, meshCode)
	}

	meshCodes := mesh.ResolveFromCoordinates(coords.Latitude, coords.Longitude, true)

	startTime = time.Now()
	refs, err := ps.resolver.ResolveTilesets(ctx, meshCodes, ps.lod)
	duration = time.Since(startTime).Seconds()
	ps.metrics.RequestSeconds.WithLabelValues("plateau").Observe(duration)

	if err != nil {
		ps.metrics.UpstreamErrors.WithLabelValues("plateau").Inc()
		return fmt.Errorf("tileset resolution failed: %w", err)
	}

	var urls []string
	for _, ref := range refs {
		urls = append(urls, ref.URLs...)
	}
	ps.metrics.TilesetsResolved.Add(float64(len(urls)))

	if err = ps.repo.UpdateAnchorResult(ctx, anchor.ID, *coords, meshCode, urls); err != nil {
		return fmt.Errorf("failed to store anchor result: %w", err)
	}

	return nil
}
