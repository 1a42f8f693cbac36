package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/kitchen-receipt-service/internal/domain/model"
	"github.com/guttosm/kitchen-receipt-service/internal/metrics"
	"github.com/guttosm/kitchen-receipt-service/internal/repository"
	"github.com/rs/zerolog/log"
)

// Snapshot sources reported by Refresh.
const (
	SourceServer = "server"
	SourceCache  = "cache"
	SourceStatic = "static"
)

// DefaultFetchTimeout bounds a single catalog refresh.
const DefaultFetchTimeout = 10 * time.Second

var (
	// ErrRepositoryNotConfigured is returned when the service runs without MongoDB.
	ErrRepositoryNotConfigured = errors.New("repository not configured")
	// ErrInvalidMenuItem is returned when a menu write fails validation.
	ErrInvalidMenuItem = errors.New("invalid menu item")
	// ErrMenuItemNotFound is returned when deleting a name that is not on the menu.
	ErrMenuItemNotFound = errors.New("menu item not found")
)

// RefreshResult describes the outcome of a catalog refresh.
type RefreshResult struct {
	Source      string
	Items       int
	Marker      string
	Changed     bool
	Diagnostics []model.RecordDiagnostic
}

// CatalogService keeps the in-memory menu snapshot in sync with MongoDB.
type CatalogService interface {
	CatalogReader
	Refresh(ctx context.Context) (RefreshResult, error)
	Start(ctx context.Context, interval time.Duration)
	Stop()
	UpsertItems(ctx context.Context, items []model.CatalogItem) (RefreshResult, error)
	DeleteItem(ctx context.Context, name string) (RefreshResult, error)
	SeedDefaults(ctx context.Context) (int, error)
}

// CatalogOption configures a CatalogServiceImpl.
type CatalogOption func(*CatalogServiceImpl)

// WithFetchTimeout bounds each refresh round trip.
func WithFetchTimeout(d time.Duration) CatalogOption {
	return func(s *CatalogServiceImpl) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithStaticItems publishes items as the initial snapshot. Without a
// repository they are the whole catalog.
func WithStaticItems(items []model.CatalogItem) CatalogOption {
	return func(s *CatalogServiceImpl) {
		s.staticItems = items
	}
}

// WithCatalogClock replaces the wall clock, mainly for tests.
func WithCatalogClock(now func() time.Time) CatalogOption {
	return func(s *CatalogServiceImpl) {
		if now != nil {
			s.now = now
		}
	}
}

// CatalogServiceImpl implements CatalogService. Readers take the current
// snapshot lock-free; refreshes are serialised.
type CatalogServiceImpl struct {
	menuRepo     repository.MenuRepositoryInterface
	changesRepo  repository.ChangesRepositoryInterface
	fetchTimeout time.Duration
	staticItems  []model.CatalogItem
	now          func() time.Time

	snapshot  atomic.Pointer[model.Catalog]
	refreshMu sync.Mutex

	lifecycleMu sync.Mutex
	stopCh      chan struct{}
	doneCh      chan struct{}
}

// NewCatalogService creates a catalog service. A nil menuRepo runs the
// catalog in static mode; a nil changesRepo disables the marker check so
// every refresh reads the full menu.
func NewCatalogService(menuRepo repository.MenuRepositoryInterface, changesRepo repository.ChangesRepositoryInterface, opts ...CatalogOption) *CatalogServiceImpl {
	s := &CatalogServiceImpl{
		menuRepo:     menuRepo,
		changesRepo:  changesRepo,
		fetchTimeout: DefaultFetchTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	initial := model.EmptyCatalog()
	if s.menuRepo == nil {
		initial = model.NewCatalog(s.staticItems, "", SourceStatic, s.now())
	} else if len(s.staticItems) > 0 {
		// Marker stays empty so the first refresh always replaces it.
		initial = model.NewCatalog(s.staticItems, "", SourceStatic, s.now())
	}
	s.snapshot.Store(initial)
	metrics.SetCatalogItems(initial.Len())

	return s
}

// Snapshot returns the current immutable catalog.
func (s *CatalogServiceImpl) Snapshot() *model.Catalog {
	return s.snapshot.Load()
}

// Refresh reloads the menu when its change marker moved. The current snapshot
// is kept on any error.
func (s *CatalogServiceImpl) Refresh(ctx context.Context) (RefreshResult, error) {
	if s.menuRepo == nil {
		current := s.Snapshot()
		return RefreshResult{Source: SourceStatic, Items: current.Len()}, nil
	}

	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	current := s.Snapshot()

	var marker string
	if s.changesRepo != nil {
		m, err := s.changesRepo.GetMarker(ctx, repository.MenuChangesKey)
		if err != nil {
			return s.refreshFailed(start, fmt.Errorf("read menu change marker: %w", err))
		}
		marker = m
	}

	if marker != "" && marker == current.Marker() && current.Len() > 0 {
		metrics.RecordCatalogRefresh(time.Since(start), SourceCache, "success")
		log.Debug().
			Str("marker", marker).
			Int("items", current.Len()).
			Msg("Menu unchanged, keeping cached catalog")
		return RefreshResult{Source: SourceCache, Items: current.Len(), Marker: marker}, nil
	}

	docs, diagnostics, err := s.menuRepo.List(ctx)
	if err != nil {
		return s.refreshFailed(start, fmt.Errorf("list menu: %w", err))
	}

	items := make([]model.CatalogItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, doc.ToModel())
	}

	next := model.NewCatalog(items, marker, SourceServer, s.now())
	s.snapshot.Store(next)

	metrics.SetCatalogItems(next.Len())
	metrics.RecordCatalogRefresh(time.Since(start), SourceServer, "success")
	for _, d := range diagnostics {
		metrics.RecordRejectedMenuRecord(d.Field)
		log.Warn().
			Str("document_id", d.ID).
			Str("field", d.Field).
			Str("reason", d.Reason).
			Msg("Skipping invalid menu document")
	}
	log.Info().
		Str("marker", marker).
		Int("items", next.Len()).
		Int("rejected", len(diagnostics)).
		Dur("duration", time.Since(start)).
		Msg("Catalog refreshed from server")

	return RefreshResult{
		Source:      SourceServer,
		Items:       next.Len(),
		Marker:      marker,
		Changed:     true,
		Diagnostics: diagnostics,
	}, nil
}

func (s *CatalogServiceImpl) refreshFailed(start time.Time, err error) (RefreshResult, error) {
	metrics.RecordCatalogRefresh(time.Since(start), SourceServer, "error")
	log.Error().
		Err(err).
		Int("items", s.Snapshot().Len()).
		Msg("Catalog refresh failed, keeping previous snapshot")
	return RefreshResult{}, err
}

// Start refreshes the catalog every interval until Stop is called or ctx is
// done. It is a no-op in static mode, for a non-positive interval, or when
// already running.
func (s *CatalogServiceImpl) Start(ctx context.Context, interval time.Duration) {
	if s.menuRepo == nil || interval <= 0 {
		return
	}

	s.lifecycleMu.Lock()
	defer s.lifecycleMu.Unlock()
	if s.stopCh != nil {
		return
	}
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})

	go s.run(ctx, interval, s.stopCh, s.doneCh)
}

func (s *CatalogServiceImpl) run(ctx context.Context, interval time.Duration, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Errors are logged by Refresh.
			_, _ = s.Refresh(ctx)
		}
	}
}

// Stop halts the background refresher and waits for it to exit.
func (s *CatalogServiceImpl) Stop() {
	s.lifecycleMu.Lock()
	stop, done := s.stopCh, s.doneCh
	s.stopCh, s.doneCh = nil, nil
	s.lifecycleMu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// UpsertItems validates and stores items, bumps the menu marker and
// republishes the catalog.
func (s *CatalogServiceImpl) UpsertItems(ctx context.Context, items []model.CatalogItem) (RefreshResult, error) {
	if s.menuRepo == nil {
		return RefreshResult{}, ErrRepositoryNotConfigured
	}
	if len(items) == 0 {
		return RefreshResult{}, fmt.Errorf("%w: no items", ErrInvalidMenuItem)
	}

	docs := make([]repository.MenuItemDocument, 0, len(items))
	for i, item := range items {
		if err := validateMenuItem(item); err != nil {
			return RefreshResult{}, fmt.Errorf("item %d: %w", i, err)
		}
		doc, err := repository.NewMenuItemDocument(item)
		if err != nil {
			return RefreshResult{}, fmt.Errorf("%w: %q: %v", ErrInvalidMenuItem, item.Name, err)
		}
		docs = append(docs, doc)
	}

	n, err := s.menuRepo.Upsert(ctx, docs)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("upsert menu items: %w", err)
	}
	log.Info().Int("items", len(docs)).Int64("written", n).Msg("Menu items upserted")

	return s.afterWrite(ctx)
}

// DeleteItem removes the named item, bumps the menu marker and republishes
// the catalog.
func (s *CatalogServiceImpl) DeleteItem(ctx context.Context, name string) (RefreshResult, error) {
	if s.menuRepo == nil {
		return RefreshResult{}, ErrRepositoryNotConfigured
	}

	deleted, err := s.menuRepo.Delete(ctx, name)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("delete menu item: %w", err)
	}
	if !deleted {
		return RefreshResult{}, ErrMenuItemNotFound
	}
	log.Info().Str("name", name).Msg("Menu item deleted")

	return s.afterWrite(ctx)
}

func (s *CatalogServiceImpl) afterWrite(ctx context.Context) (RefreshResult, error) {
	if s.changesRepo != nil {
		if _, err := s.changesRepo.Touch(ctx, repository.MenuChangesKey); err != nil {
			return RefreshResult{}, fmt.Errorf("touch menu change marker: %w", err)
		}
	}
	return s.Refresh(ctx)
}

// SeedDefaults writes DefaultMenu when the menu collection is empty and
// returns the number of items written.
func (s *CatalogServiceImpl) SeedDefaults(ctx context.Context) (int, error) {
	if s.menuRepo == nil {
		return 0, ErrRepositoryNotConfigured
	}

	count, err := s.menuRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count menu items: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	items := DefaultMenu()
	if _, err := s.UpsertItems(ctx, items); err != nil {
		return 0, err
	}
	log.Info().Int("items", len(items)).Msg("Seeded default menu")
	return len(items), nil
}

func validateMenuItem(item model.CatalogItem) error {
	switch {
	case strings.TrimSpace(item.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidMenuItem)
	case item.Name != strings.TrimSpace(item.Name):
		return fmt.Errorf("%w: name %q has surrounding whitespace", ErrInvalidMenuItem, item.Name)
	case strings.Contains(item.Name, ":"):
		// Cart lines split on ':' so such a name could never be ordered.
		return fmt.Errorf("%w: name %q contains ':'", ErrInvalidMenuItem, item.Name)
	case item.Price.IsNegative():
		return fmt.Errorf("%w: %q has a negative price", ErrInvalidMenuItem, item.Name)
	case strings.TrimSpace(item.Category) == "":
		return fmt.Errorf("%w: %q has no category", ErrInvalidMenuItem, item.Name)
	case len(item.SizePrices) > 0 && len(item.SizePrices) != len(item.Sizes):
		return fmt.Errorf("%w: %q has %d sizes but %d size prices", ErrInvalidMenuItem, item.Name, len(item.Sizes), len(item.SizePrices))
	}
	return nil
}
