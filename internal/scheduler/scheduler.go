package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Simplici0/agrokalk/internal/catalog"
	"github.com/Simplici0/agrokalk/internal/importer"
)

const syncTimeout = 2 * time.Minute

// SheetImporter is the subset of importer.Importer used by the sync job.
type SheetImporter interface {
	ImportSheet(ctx context.Context, producer catalog.Producer, sheetRange string) (importer.Result, error)
}

// Scheduler runs the periodic Google Sheets catalog sync.
type Scheduler struct {
	cron     *cron.Cron
	spec     string
	importer SheetImporter
	ranges   map[catalog.Producer]string
	logger   *zap.Logger
}

// New creates a scheduler that imports each producer's range on spec, a
// standard five-field cron expression.
func New(spec string, imp SheetImporter, ranges map[catalog.Producer]string, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:     cron.New(),
		spec:     spec,
		importer: imp,
		ranges:   ranges,
		logger:   logger,
	}
}

// Start schedules the sync job and starts the cron runner.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.SyncAll); err != nil {
		return err
	}
	s.logger.Info("starting scheduler", zap.String("schedule", s.spec))
	s.cron.Start()
	return nil
}

// Stop stops the cron runner and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

// SyncAll imports every configured range. Failures are logged and do not
// stop the remaining producers.
func (s *Scheduler) SyncAll() {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	for _, producer := range catalog.Producers {
		sheetRange := s.ranges[producer]
		if sheetRange == "" {
			continue
		}

		res, err := s.importer.ImportSheet(ctx, producer, sheetRange)
		if err != nil {
			s.logger.Error("sheet sync failed",
				zap.String("producer", string(producer)),
				zap.String("range", sheetRange),
				zap.Error(err),
			)
			continue
		}
		s.logger.Info("sheet sync completed",
			zap.String("producer", string(producer)),
			zap.String("batch_id", res.BatchID),
			zap.Int("count", res.Count),
		)
	}
}
