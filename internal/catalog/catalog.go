// Package catalog implements the two-stage fetch pipeline: the catalog index,
// then every detail record concurrently, then normalization.
// Results are cached for the session: the index forever, details for a TTL
// keyed by the index contents.
package catalog

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robby/dex/internal/domain"
	"github.com/robby/dex/internal/pokeapi"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultDetailTTL is how long fetched details stay fresh.
const DefaultDetailTTL = 24 * time.Hour

// Fetcher is the HTTP capability the pipeline depends on.
// *pokeapi.Client implements it.
type Fetcher interface {
	ListPokemon(ctx context.Context, limit int) ([]domain.ItemReference, error)
	GetDetail(ctx context.Context, url string) (*domain.DetailRecord, error)
}

// Stage identifies which step of the pipeline failed.
type Stage string

const (
	StageList   Stage = "list"
	StageDetail Stage = "detail"
)

// FetchError reports a failed index or detail request.
type FetchError struct {
	Stage Stage
	URL   string // Detail URL, empty for the list stage
	Err   error
}

func (e *FetchError) Error() string {
	if e.Stage == StageDetail {
		return fmt.Sprintf("failed to fetch pokemon detail %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("failed to fetch pokemon list: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Options configures a Service. Zero values fall back to the defaults.
type Options struct {
	// Limit is the number of index entries requested.
	Limit int

	// DetailTTL is the freshness window of the detail cache.
	DetailTTL time.Duration

	// MaxConcurrency caps in-flight detail requests. Zero means uncapped.
	MaxConcurrency int

	Logger *zap.Logger

	// Now is the clock used for cache expiry.
	Now func() time.Time
}

// Snapshot is the catalog state exposed to the rendering layer.
type Snapshot struct {
	Records   []domain.Pokemon
	IsLoading bool
	Err       error
}

type detailCache struct {
	key       []domain.ItemReference
	records   []domain.Pokemon
	fetchedAt time.Time
}

// Service runs the fetch pipeline and owns its caches.
type Service struct {
	fetcher        Fetcher
	limit          int
	ttl            time.Duration
	maxConcurrency int
	logger         *zap.Logger
	now            func() time.Time

	// fetchMu serializes pipeline runs so concurrent callers share one fetch.
	fetchMu sync.Mutex

	// mu guards everything below.
	mu      sync.Mutex
	refs    []domain.ItemReference
	hasRefs bool
	details *detailCache
	loading bool
	err     error
	records []domain.Pokemon
}

// New creates a pipeline over the given fetcher.
func New(fetcher Fetcher, opts Options) *Service {
	limit := opts.Limit
	if limit <= 0 {
		limit = pokeapi.CatalogSize
	}

	ttl := opts.DetailTTL
	if ttl <= 0 {
		ttl = DefaultDetailTTL
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		fetcher:        fetcher,
		limit:          limit,
		ttl:            ttl,
		maxConcurrency: opts.MaxConcurrency,
		logger:         logger,
		now:            now,
		records:        []domain.Pokemon{},
	}
}

// Fetch returns the normalized catalog, serving from cache when possible.
// Any failed request fails the whole call; no partial result is returned.
func (s *Service) Fetch(ctx context.Context) ([]domain.Pokemon, error) {
	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()

	log := s.logger.With(zap.String("fetch_id", uuid.NewString()))
	start := s.now()

	refs, err := s.references(ctx, log)
	if err != nil {
		return nil, err
	}

	// Stage two only runs for a non-empty index.
	if len(refs) == 0 {
		log.Info("catalog index is empty")
		return []domain.Pokemon{}, nil
	}

	if cached, ok := s.cachedDetails(refs); ok {
		log.Debug("serving details from cache", zap.Int("records", len(cached)))
		return cached, nil
	}

	records, err := s.fetchDetails(ctx, refs)
	if err != nil {
		log.Warn("detail fetch failed", zap.Error(err))
		return nil, err
	}

	normalized := domain.NormalizeAll(records)

	s.mu.Lock()
	s.details = &detailCache{
		key:       slices.Clone(refs),
		records:   normalized,
		fetchedAt: s.now(),
	}
	s.mu.Unlock()

	log.Info("catalog fetched",
		zap.Int("records", len(normalized)),
		zap.Duration("elapsed", s.now().Sub(start)))

	return slices.Clone(normalized), nil
}

// Load runs Fetch and records the outcome for Snapshot.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()

	records, err := s.Fetch(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err
		s.records = []domain.Pokemon{}
		return err
	}
	s.records = records
	return nil
}

// Snapshot returns the records, loading flag and error of the last Load.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Records:   slices.Clone(s.records),
		IsLoading: s.loading,
		Err:       s.err,
	}
}

// Invalidate drops both caches so the next Fetch goes to the network.
func (s *Service) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refs = nil
	s.hasRefs = false
	s.details = nil
}

// references returns the catalog index, fetching it at most once per process.
func (s *Service) references(ctx context.Context, log *zap.Logger) ([]domain.ItemReference, error) {
	s.mu.Lock()
	if s.hasRefs {
		refs := s.refs
		s.mu.Unlock()
		return refs, nil
	}
	s.mu.Unlock()

	refs, err := s.fetcher.ListPokemon(ctx, s.limit)
	if err != nil {
		log.Warn("index fetch failed", zap.Error(err))
		return nil, &FetchError{Stage: StageList, Err: err}
	}
	log.Debug("index fetched", zap.Int("references", len(refs)))

	s.mu.Lock()
	s.refs = refs
	s.hasRefs = true
	s.mu.Unlock()

	return refs, nil
}

// cachedDetails returns the cached collection if it was built from the same
// index and is still within the TTL.
func (s *Service) cachedDetails(refs []domain.ItemReference) ([]domain.Pokemon, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.details == nil || !slices.Equal(s.details.key, refs) {
		return nil, false
	}
	if s.now().Sub(s.details.fetchedAt) >= s.ttl {
		return nil, false
	}
	return slices.Clone(s.details.records), true
}

// fetchDetails requests every detail concurrently and returns them in index order.
func (s *Service) fetchDetails(ctx context.Context, refs []domain.ItemReference) ([]domain.DetailRecord, error) {
	results := make([]domain.DetailRecord, len(refs))

	// A failed request does not cancel its siblings; Wait reports the first error.
	var g errgroup.Group
	if s.maxConcurrency > 0 {
		g.SetLimit(s.maxConcurrency)
	}

	for i, ref := range refs {
		g.Go(func() error {
			record, err := s.fetcher.GetDetail(ctx, ref.URL)
			if err != nil {
				return &FetchError{Stage: StageDetail, URL: ref.URL, Err: err}
			}
			results[i] = *record
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
