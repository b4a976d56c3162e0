package services

import (
	"context"
	"fmt"
	"time"

	"bookstore-api/internal/adapters/persistence/repositories"
	"bookstore-api/internal/adapters/storage"
	"bookstore-api/internal/pkg/logging"

	"github.com/robfig/cron/v3"
)

// DanglingAsset is a book whose asset reference has no stored file
type DanglingAsset struct {
	BookID uint   `json:"book_id"`
	Image  string `json:"image"`
}

// AuditReport summarises one asset audit run
type AuditReport struct {
	Checked  int             `json:"checked"`
	Dangling []DanglingAsset `json:"dangling"`
}

// CronService runs scheduled background jobs. Its only job is the asset
// audit, which reports references without a stored file and never repairs
// them.
type CronService struct {
	books    repositories.BookRepository
	assets   storage.Store
	log      logging.Logger
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
}

// NewCronService creates a new cron service. An empty schedule disables
// the audit.
func NewCronService(books repositories.BookRepository, assets storage.Store, schedule string, log logging.Logger) *CronService {
	return &CronService{
		books:    books,
		assets:   assets,
		log:      log.With("job", "asset_audit"),
		schedule: schedule,
		timeout:  5 * time.Minute,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	if s.schedule == "" {
		s.log.Info(context.Background(), "asset audit disabled")
		return nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(s.schedule, s.runScheduled); err != nil {
		return fmt.Errorf("schedule asset audit %q: %w", s.schedule, err)
	}
	c.Start()
	s.cron = c

	s.log.Info(context.Background(), "asset audit scheduled", "schedule", s.schedule)
	return nil
}

// Stop stops the scheduler and waits for a running job to finish
func (s *CronService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.log.Info(context.Background(), "cron stopped")
}

func (s *CronService) runScheduled() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.AuditAssets(ctx); err != nil {
		logging.LogError(ctx, s.log, "asset audit failed", err)
	}
}

// AuditAssets checks that every referenced book image exists in the store
func (s *CronService) AuditAssets(ctx context.Context) (*AuditReport, error) {
	refs, err := s.books.ListImageReferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("list image references: %w", err)
	}

	report := &AuditReport{Checked: len(refs)}
	for _, b := range refs {
		if err := storage.ValidateReference(b.Image); err != nil {
			report.Dangling = append(report.Dangling, DanglingAsset{BookID: b.ID, Image: b.Image})
			continue
		}
		ok, err := s.assets.Exists(ctx, b.Image)
		if err != nil {
			return nil, fmt.Errorf("check asset %s: %w", b.Image, err)
		}
		if !ok {
			report.Dangling = append(report.Dangling, DanglingAsset{BookID: b.ID, Image: b.Image})
		}
	}

	for _, d := range report.Dangling {
		s.log.Warn(ctx, "dangling asset reference", "book_id", d.BookID, "image", d.Image)
	}
	s.log.Info(ctx, "asset audit finished", "checked", report.Checked, "dangling", len(report.Dangling))
	return report, nil
}
