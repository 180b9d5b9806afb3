package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
)

type fakeBlobs struct {
	mu      sync.Mutex
	data    map[string]string
	failSet bool
}

func newFakeBlobs() *fakeBlobs { return &fakeBlobs{data: map[string]string{}} }

func (f *fakeBlobs) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *fakeBlobs) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSet {
		return errors.New("quota exceeded")
	}
	f.data[key] = value
	return nil
}

func (f *fakeBlobs) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func tinyCatalog() []Machine {
	return []Machine{
		{ID: 1, Type: "CIĄGNIK", Model: "Arion 400", Rate: 4.8, Services: &ClaasServices{Review0: Price(1280)}},
		{ID: 101, Type: "ŁADOWARKA", Model: "Wszystkie modele", Rate: 6.8, Services: &BobcatServices{Review0: Price(750)}},
	}
}

func TestStore_SeedsDefaultsOnEmptyStorage(t *testing.T) {
	blobs := newFakeBlobs()
	s := NewStore(blobs, nil, WithDefaults("9", tinyCatalog))

	got := s.Load(context.Background())
	if len(got) != 2 {
		t.Fatalf("expected defaults, got %d records", len(got))
	}
	if blobs.data[VersionKey] != "9" {
		t.Fatalf("version tag = %q, want 9", blobs.data[VersionKey])
	}
	if _, ok := blobs.data[CatalogKey]; !ok {
		t.Fatal("defaults were not persisted")
	}
}

func TestStore_VersionMismatchDiscardsPersistedCatalog(t *testing.T) {
	blobs := newFakeBlobs()
	blobs.data[VersionKey] = "1.3"
	blobs.data[CatalogKey] = `[{"id":77,"producer":"CLAAS","type":"X","model":"Y"}]`

	s := NewStore(blobs, nil, WithDefaults("1.4", tinyCatalog))
	got := s.Load(context.Background())

	if _, ok := Find(got, 77); ok {
		t.Fatal("stale record survived a version change")
	}
	if len(got) != 2 {
		t.Fatalf("expected defaults, got %d records", len(got))
	}
}

func TestStore_LoadsPersistedCatalogWhenVersionMatches(t *testing.T) {
	blobs := newFakeBlobs()
	blobs.data[VersionKey] = "1.4"
	blobs.data[CatalogKey] = `[{"id":77,"producer":"BOBCAT","type":"X","model":"Y","rate":2}]`

	s := NewStore(blobs, nil, WithDefaults("1.4", tinyCatalog))
	got := s.Load(context.Background())

	if len(got) != 1 || got[0].ID != 77 || got[0].Producer() != ProducerBobcat {
		t.Fatalf("unexpected catalog %+v", got)
	}
}

func TestStore_CorruptCatalogFallsBackToDefaults(t *testing.T) {
	blobs := newFakeBlobs()
	blobs.data[VersionKey] = "1.4"
	blobs.data[CatalogKey] = `{not json`

	s := NewStore(blobs, nil, WithDefaults("1.4", tinyCatalog))
	if got := s.Load(context.Background()); len(got) != 2 {
		t.Fatalf("expected defaults, got %d records", len(got))
	}
}

func TestStore_ReplaceSurvivesPersistFailure(t *testing.T) {
	blobs := newFakeBlobs()
	s := NewStore(blobs, nil, WithDefaults("1.4", tinyCatalog))
	ctx := context.Background()
	s.Load(ctx)

	blobs.failSet = true
	err := s.Replace(ctx, tinyCatalog()[:1])
	if !errors.Is(err, ErrNotPersisted) {
		t.Fatalf("expected ErrNotPersisted, got %v", err)
	}

	if got := s.Load(ctx); len(got) != 1 {
		t.Fatalf("in-memory catalog not replaced, got %d records", len(got))
	}
}

func TestStore_ReplacePersistsCatalog(t *testing.T) {
	blobs := newFakeBlobs()
	s := NewStore(blobs, nil, WithDefaults("1.4", tinyCatalog))
	ctx := context.Background()

	if err := s.Replace(ctx, tinyCatalog()[1:]); err != nil {
		t.Fatalf("Replace: %v", err)
	}

	var persisted []Machine
	if err := json.Unmarshal([]byte(blobs.data[CatalogKey]), &persisted); err != nil {
		t.Fatalf("decode persisted: %v", err)
	}
	if len(persisted) != 1 || persisted[0].ID != 101 {
		t.Fatalf("unexpected persisted catalog %+v", persisted)
	}
}

func TestStore_LoadReturnsCopies(t *testing.T) {
	s := NewStore(newFakeBlobs(), nil, WithDefaults("1.4", tinyCatalog))
	ctx := context.Background()

	first := s.Load(ctx)
	first[0].Model = "changed"
	*first[0].Services.(*ClaasServices).Review0 = 0

	again := s.Load(ctx)
	if again[0].Model != "Arion 400" || *again[0].Price(Review0) != 1280 {
		t.Fatalf("caller mutation leaked into the store: %+v", again[0])
	}
}

func TestStore_UpdateAbortsOnError(t *testing.T) {
	s := NewStore(newFakeBlobs(), nil, WithDefaults("1.4", tinyCatalog))
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := s.Update(ctx, func(ms []Machine) ([]Machine, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if got := s.Load(ctx); len(got) != 2 {
		t.Fatalf("catalog changed by an aborted update: %d records", len(got))
	}
}

func TestStore_CountByProducer(t *testing.T) {
	s := NewStore(newFakeBlobs(), nil)
	counts := s.CountByProducer(context.Background())

	if counts[ProducerClaas] != 28 || counts[ProducerBobcat] != 3 {
		t.Fatalf("unexpected counts %v", counts)
	}
}
