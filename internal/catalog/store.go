package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Keys under which the catalog and its schema version are persisted.
const (
	CatalogKey = "agro-kalkulator-machines"
	VersionKey = "agro-kalkulator-data-version"
)

// ErrNotPersisted marks a catalog change that was applied in memory but
// could not be saved.
var ErrNotPersisted = errors.New("catalog not persisted")

// BlobStore is the key-value persistence the catalog is saved to.
// Get reports ok=false when the key is absent.
type BlobStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Store holds the machine catalog in memory and mirrors every replacement
// to a BlobStore.
type Store struct {
	mu       sync.RWMutex
	blobs    BlobStore
	logger   *zap.Logger
	version  string
	defaults func() []Machine

	loaded   bool
	machines []Machine
}

// Option configures a Store.
type Option func(*Store)

// WithDefaults overrides the bundled default catalog and its version tag.
func WithDefaults(version string, defaults func() []Machine) Option {
	return func(s *Store) {
		s.version = version
		s.defaults = defaults
	}
}

// NewStore builds a catalog store over blobs.
func NewStore(blobs BlobStore, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		blobs:    blobs,
		logger:   logger,
		version:  SchemaVersion,
		defaults: Defaults,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the current catalog. The first call reconciles the persisted
// catalog with the schema version; later calls serve the in-memory copy.
func (s *Store) Load(ctx context.Context) []Machine {
	s.mu.RLock()
	if s.loaded {
		out := CloneAll(s.machines)
		s.mu.RUnlock()
		return out
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.machines = s.loadInitial(ctx)
		s.loaded = true
	}
	return CloneAll(s.machines)
}

func (s *Store) loadInitial(ctx context.Context) []Machine {
	stored, ok, err := s.blobs.Get(ctx, VersionKey)
	if err != nil {
		s.logger.Error("read catalog version", zap.Error(err))
		return s.reseed(ctx)
	}

	if !ok || stored != s.version {
		s.logger.Info("catalog version changed, discarding persisted catalog",
			zap.String("stored", stored), zap.String("expected", s.version))
		if err := s.blobs.Delete(ctx, CatalogKey); err != nil {
			s.logger.Error("delete stale catalog", zap.Error(err))
		}
		return s.reseed(ctx)
	}

	raw, ok, err := s.blobs.Get(ctx, CatalogKey)
	if err != nil {
		s.logger.Error("read persisted catalog", zap.Error(err))
		return s.reseed(ctx)
	}
	if !ok {
		return s.reseed(ctx)
	}

	var machines []Machine
	if err := json.Unmarshal([]byte(raw), &machines); err != nil {
		s.logger.Error("decode persisted catalog", zap.Error(err))
		return s.reseed(ctx)
	}

	s.logger.Info("catalog loaded", zap.Int("machines", len(machines)))
	return machines
}

// reseed returns the defaults and persists them along with the version tag.
func (s *Store) reseed(ctx context.Context) []Machine {
	machines := s.defaults()
	if err := s.persist(ctx, machines); err != nil {
		s.logger.Error("persist default catalog", zap.Error(err))
	}
	if err := s.blobs.Set(ctx, VersionKey, s.version); err != nil {
		s.logger.Error("persist catalog version", zap.Error(err))
	}
	s.logger.Info("catalog seeded from defaults", zap.Int("machines", len(machines)))
	return machines
}

// Replace overwrites the whole catalog and persists it. The in-memory
// catalog is replaced even when persisting fails; the failure is logged
// and returned wrapped in ErrNotPersisted.
func (s *Store) Replace(ctx context.Context, machines []Machine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceLocked(ctx, CloneAll(machines))
}

// Update applies fn to a copy of the catalog and replaces the catalog with
// the result. fn returning an error aborts without any change; a persist
// failure returns the new catalog together with ErrNotPersisted.
func (s *Store) Update(ctx context.Context, fn func([]Machine) ([]Machine, error)) ([]Machine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.machines = s.loadInitial(ctx)
		s.loaded = true
	}

	next, err := fn(CloneAll(s.machines))
	if err != nil {
		return nil, err
	}
	next = CloneAll(next)
	return CloneAll(next), s.replaceLocked(ctx, next)
}

func (s *Store) replaceLocked(ctx context.Context, next []Machine) error {
	s.machines = next
	s.loaded = true

	if err := s.persist(ctx, next); err != nil {
		s.logger.Error("persist catalog", zap.Error(err), zap.Int("machines", len(next)))
		return fmt.Errorf("%w: %w", ErrNotPersisted, err)
	}
	return nil
}

// CountByProducer reports the catalog size per producer.
func (s *Store) CountByProducer(ctx context.Context) map[Producer]int {
	counts := make(map[Producer]int, len(Producers))
	for _, p := range Producers {
		counts[p] = 0
	}
	for _, m := range s.Load(ctx) {
		counts[m.Producer()]++
	}
	return counts
}

func (s *Store) persist(ctx context.Context, machines []Machine) error {
	if machines == nil {
		machines = []Machine{}
	}
	raw, err := json.Marshal(machines)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := s.blobs.Set(ctx, CatalogKey, string(raw)); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}
