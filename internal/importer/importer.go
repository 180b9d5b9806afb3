package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Simplici0/agrokalk/internal/catalog"
)

// Source names used in results and metrics.
const (
	SourceXLSX   = "xlsx"
	SourceSheets = "sheets"
)

// ErrSheetsDisabled is returned when no Sheets reader is configured.
var ErrSheetsDisabled = errors.New("google sheets import is not configured")

// Observer is notified after every import attempt.
type Observer interface {
	ObserveImport(producer catalog.Producer, source string, count int, err error)
}

// Result describes a completed import.
type Result struct {
	BatchID  string           `json:"batch_id"`
	Producer catalog.Producer `json:"producer"`
	Source   string           `json:"source"`
	Count    int              `json:"count"`
}

// Importer replaces a producer's records in the catalog store.
type Importer struct {
	store    *catalog.Store
	logger   *zap.Logger
	now      func() time.Time
	sheets   RangeReader
	observer Observer
}

// Option configures an Importer.
type Option func(*Importer)

// WithClock overrides the clock used for record ids.
func WithClock(now func() time.Time) Option {
	return func(i *Importer) { i.now = now }
}

// WithSheets enables importing from Google Sheets ranges.
func WithSheets(r RangeReader) Option {
	return func(i *Importer) { i.sheets = r }
}

// WithObserver registers an import observer.
func WithObserver(o Observer) Option {
	return func(i *Importer) { i.observer = o }
}

// New builds an Importer over store.
func New(store *catalog.Store, logger *zap.Logger, opts ...Option) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	i := &Importer{store: store, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// SheetsEnabled reports whether ImportSheet can be used.
func (i *Importer) SheetsEnabled() bool { return i.sheets != nil }

// ImportXLSX imports the first sheet of an uploaded workbook.
func (i *Importer) ImportXLSX(ctx context.Context, producer catalog.Producer, r io.Reader) (Result, error) {
	rows, err := ReadXLSX(r)
	if err != nil {
		i.observe(producer, SourceXLSX, 0, err)
		return Result{}, err
	}
	return i.Apply(ctx, producer, SourceXLSX, rows)
}

// ImportSheet imports a Google Sheets range.
func (i *Importer) ImportSheet(ctx context.Context, producer catalog.Producer, sheetRange string) (Result, error) {
	if i.sheets == nil {
		return Result{}, ErrSheetsDisabled
	}
	values, err := i.sheets.ReadRange(ctx, sheetRange)
	if err != nil {
		i.observe(producer, SourceSheets, 0, err)
		return Result{}, err
	}
	rows, err := RowsFromValues(values)
	if err != nil {
		i.observe(producer, SourceSheets, 0, err)
		return Result{}, err
	}
	return i.Apply(ctx, producer, SourceSheets, rows)
}

// Apply replaces every record of producer with records built from rows,
// keeping other producers' records. Nothing changes when the rows cannot be
// used. A persist failure still applies the import and is returned wrapped
// in catalog.ErrNotPersisted alongside the result.
func (i *Importer) Apply(ctx context.Context, producer catalog.Producer, source string, rows []Row) (Result, error) {
	res, err := i.apply(ctx, producer, source, rows)
	i.observe(producer, source, res.Count, err)
	return res, err
}

func (i *Importer) apply(ctx context.Context, producer catalog.Producer, source string, rows []Row) (Result, error) {
	if _, err := catalog.ParseProducer(string(producer)); err != nil {
		return Result{}, err
	}
	if len(rows) == 0 {
		return Result{}, ErrNoRows
	}

	records, err := BuildRecords(producer, rows, i.now())
	if err != nil {
		return Result{}, fmt.Errorf("build records: %w", err)
	}

	res := Result{
		BatchID:  uuid.NewString(),
		Producer: producer,
		Source:   source,
		Count:    len(records),
	}

	_, err = i.store.Update(ctx, func(current []catalog.Machine) ([]catalog.Machine, error) {
		next := make([]catalog.Machine, 0, len(current)+len(records))
		for _, m := range current {
			if m.Producer() != producer {
				next = append(next, m)
			}
		}
		return append(next, records...), nil
	})

	log := i.logger.With(
		zap.String("batch_id", res.BatchID),
		zap.String("producer", string(producer)),
		zap.String("source", source),
		zap.Int("count", res.Count),
	)
	if err != nil {
		log.Warn("import applied but not persisted", zap.Error(err))
		return res, err
	}
	log.Info("catalog import applied")
	return res, nil
}

func (i *Importer) observe(producer catalog.Producer, source string, count int, err error) {
	if i.observer != nil {
		i.observer.ObserveImport(producer, source, count, err)
	}
}
