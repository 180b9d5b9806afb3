package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/Simplici0/agrokalk/internal/catalog"
	"github.com/Simplici0/agrokalk/internal/importer"
)

type fakeImporter struct {
	calls []string
	fail  map[catalog.Producer]bool
}

func (f *fakeImporter) ImportSheet(_ context.Context, producer catalog.Producer, sheetRange string) (importer.Result, error) {
	f.calls = append(f.calls, sheetRange)
	if f.fail[producer] {
		return importer.Result{}, errors.New("sheet unavailable")
	}
	return importer.Result{Producer: producer, Count: 1}, nil
}

func TestSyncAll_ContinuesAfterFailure(t *testing.T) {
	imp := &fakeImporter{fail: map[catalog.Producer]bool{catalog.ProducerClaas: true}}
	s := New("0 6 * * *", imp, map[catalog.Producer]string{
		catalog.ProducerClaas:  "CLAAS!A:K",
		catalog.ProducerBobcat: "BOBCAT!A:L",
	}, nil)

	s.SyncAll()

	if len(imp.calls) != 2 || imp.calls[0] != "CLAAS!A:K" || imp.calls[1] != "BOBCAT!A:L" {
		t.Fatalf("unexpected calls %v", imp.calls)
	}
}

func TestSyncAll_SkipsUnconfiguredProducers(t *testing.T) {
	imp := &fakeImporter{}
	s := New("0 6 * * *", imp, map[catalog.Producer]string{catalog.ProducerBobcat: "BOBCAT!A:L"}, nil)

	s.SyncAll()

	if len(imp.calls) != 1 || imp.calls[0] != "BOBCAT!A:L" {
		t.Fatalf("unexpected calls %v", imp.calls)
	}
}

func TestStart_RejectsInvalidSchedule(t *testing.T) {
	s := New("whenever", &fakeImporter{}, nil, nil)
	if err := s.Start(); err == nil {
		s.Stop()
		t.Fatal("expected an error for an invalid schedule")
	}
}
