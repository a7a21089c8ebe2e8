package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/p2pdesk/orders-dashboard/pkg/auth"
	"github.com/p2pdesk/orders-dashboard/pkg/client"
	"github.com/p2pdesk/orders-dashboard/pkg/detailcache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Prometheus metrics for batch orchestration.
var (
	batchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "batch_fetches_total",
		Help: "Total number of detail batches processed",
	})

	batchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "batch_fetch_duration_seconds",
		Help:    "Duration of one detail batch in seconds",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	batchResultsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "batch_fetch_results_total",
		Help: "Per-id batch fetch outcomes (fetched, cache_hit, failed)",
	}, []string{"result"})

	batchFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "batch_fetch_failures_total",
		Help: "Dropped detail fetches by error class",
	}, []string{"error_class"})
)

// DetailFetcher is the interface the trade API client must implement for
// single-order detail fetching.
type DetailFetcher interface {
	FetchDetail(ctx context.Context, id string) (*client.OrderDetail, error)
}

// Config holds orchestrator configuration. Both values are tunable, not
// derived from a documented trade API limit.
type Config struct {
	// ChunkSize is the number of ids fetched concurrently per chunk.
	ChunkSize int

	// Pace is the wait between consecutive chunks.
	Pace time.Duration
}

// DefaultConfig returns safe default configuration.
func DefaultConfig() Config {
	return Config{
		ChunkSize: 5,
		Pace:      50 * time.Millisecond,
	}
}

// Orchestrator drives chunked detail fetching across a batch of order ids.
type Orchestrator struct {
	fetcher DetailFetcher
	cache   *detailcache.Cache
	tokens  auth.TokenSource
	config  Config
	logger  zerolog.Logger
}

// New creates a batch orchestrator. Zero config values fall back to
// DefaultConfig; negative values are kept and rejected per call.
func New(fetcher DetailFetcher, cache *detailcache.Cache, tokens auth.TokenSource, cfg Config) *Orchestrator {
	if cfg.ChunkSize == 0 {
		cfg.ChunkSize = DefaultConfig().ChunkSize
	}
	if cfg.Pace == 0 {
		cfg.Pace = DefaultConfig().Pace
	}
	if cache == nil {
		cache = detailcache.New(detailcache.Config{})
	}

	return &Orchestrator{
		fetcher: fetcher,
		cache:   cache,
		tokens:  tokens,
		config:  cfg,
		logger:  log.With().Str("component", "batch-orchestrator").Logger(),
	}
}

// fetchResult is the tagged outcome of resolving one id. Failures carry
// their reason up to the reduction step so it can be observed before being
// dropped.
type fetchResult struct {
	id       string
	detail   client.OrderDetail
	cacheHit bool
	err      error
}

// FetchAllDetails resolves detail records for all ids, chunk by chunk.
//
// A failed id is dropped from the result; the call itself only fails on a
// bad chunk size, a missing credential, or context cancellation between
// chunks (in which case the details resolved so far are returned alongside
// the context error). A batch where every fetch failed succeeds with an
// empty slice.
func (o *Orchestrator) FetchAllDetails(ctx context.Context, ids []string) ([]client.OrderDetail, error) {
	if o.config.ChunkSize < 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidChunkSize, o.config.ChunkSize)
	}

	// Fail fast before any network activity.
	if o.tokens == nil {
		return nil, auth.ErrUnauthenticated
	}
	if _, err := o.tokens.Token(); err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []client.OrderDetail{}, nil
	}

	chunks, err := Chunk(ids, o.config.ChunkSize)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	batchesTotal.Inc()

	o.logger.Info().
		Int("ids", len(ids)).
		Int("chunks", len(chunks)).
		Int("chunk_size", o.config.ChunkSize).
		Msg("Starting detail batch")

	details := make([]client.OrderDetail, 0, len(ids))
	for i, chunk := range chunks {
		if i > 0 {
			// Pacing between chunks; also the cooperative cancellation point.
			select {
			case <-ctx.Done():
				o.logger.Warn().
					Int("chunk", i).
					Int("resolved", len(details)).
					Msg("Batch cancelled between chunks")
				return details, ctx.Err()
			case <-time.After(o.config.Pace):
			}
		}

		details = append(details, o.fetchChunk(ctx, i, chunk)...)
	}

	batchDuration.Observe(time.Since(start).Seconds())
	o.logger.Info().
		Int("ids", len(ids)).
		Int("resolved", len(details)).
		Dur("duration", time.Since(start)).
		Msg("Detail batch complete")

	return details, nil
}

// fetchChunk resolves one chunk's ids concurrently and reduces the tagged
// results, observing and dropping failures.
func (o *Orchestrator) fetchChunk(ctx context.Context, index int, ids []string) []client.OrderDetail {
	results := make(chan fetchResult, len(ids))

	var wg sync.WaitGroup
	for _, id := range ids {
		if detail, ok := o.cache.Get(id); ok {
			o.logger.Debug().Str("order_id", id).Int("chunk", index).Msg("Detail cache hit")
			results <- fetchResult{id: id, detail: detail, cacheHit: true}
			continue
		}

		wg.Add(1)
		go func(id string) {
			defer wg.Done()

			detail, err := o.fetcher.FetchDetail(ctx, id)
			if err != nil {
				results <- fetchResult{id: id, err: err}
				return
			}

			o.cache.Put(id, *detail)
			o.cache.MaybeEvictAll()
			results <- fetchResult{id: id, detail: *detail}
		}(id)
	}

	wg.Wait()
	close(results)

	details := make([]client.OrderDetail, 0, len(ids))
	for res := range results {
		if res.err != nil {
			class := errorClass(res.err)
			batchResultsTotal.WithLabelValues("failed").Inc()
			batchFailuresTotal.WithLabelValues(string(class)).Inc()
			o.logger.Warn().
				Err(res.err).
				Str("order_id", res.id).
				Int("chunk", index).
				Str("error_class", string(class)).
				Msg("Detail fetch failed, dropping id from batch")
			continue
		}

		if res.cacheHit {
			batchResultsTotal.WithLabelValues("cache_hit").Inc()
		} else {
			batchResultsTotal.WithLabelValues("fetched").Inc()
		}
		details = append(details, res.detail)
	}

	return details
}

// errorClass maps a fetch error onto the client error taxonomy for
// metrics and log labels.
func errorClass(err error) client.ErrorClass {
	var reqErr *client.RequestFailedError
	if errors.As(err, &reqErr) {
		return reqErr.Class()
	}
	return client.ErrorClassNetwork
}
