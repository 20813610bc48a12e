package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/cek_senet_app/internal/core/ports/services"
	"github.com/robfig/cron/v3"
)

// Scheduler runs the periodic backup and cleanup jobs.
type Scheduler struct {
	cron    *cron.Cron
	backups portssvc.BackupService
	logger  *slog.Logger
}

// NewScheduler registers the backup job at backupSpec and the cleanup job at cleanupSpec.
// Specs use the standard five-field cron format and are evaluated in loc.
func NewScheduler(backups portssvc.BackupService, backupSpec, cleanupSpec string, loc *time.Location, logger *slog.Logger) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	logger = logger.With(slog.String("component", "jobs"))
	// A panicking job is recovered and reported at error level instead of crashing the server.
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(loc), cron.WithLogger(cronLogger), cron.WithChain(cron.Recover(cronLogger))),
		backups: backups,
		logger:  logger,
	}
	if _, err := s.cron.AddFunc(backupSpec, s.runBackup); err != nil {
		return nil, fmt.Errorf("invalid backup schedule %q: %w", backupSpec, err)
	}
	if _, err := s.cron.AddFunc(cleanupSpec, s.runCleanup); err != nil {
		return nil, fmt.Errorf("invalid backup cleanup schedule %q: %w", cleanupSpec, err)
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.logger.Info("Scheduled job", slog.Int("entry_id", int(e.ID)), slog.Time("next_run", e.Next))
	}
}

// Stop prevents new runs and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("Scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out with jobs still running")
	}
}

func (s *Scheduler) runBackup() {
	start := time.Now()
	backup, err := s.backups.CreateBackup(context.Background())
	if err != nil {
		s.logger.Error("Scheduled backup failed", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("Scheduled backup written",
		slog.String("file", backup.FileName),
		slog.Int64("size_bytes", backup.SizeBytes),
		slog.Duration("took", time.Since(start)))
}

func (s *Scheduler) runCleanup() {
	removed, err := s.backups.CleanupOldBackups(context.Background())
	if err != nil {
		s.logger.Error("Backup cleanup failed", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("Backup cleanup finished", slog.Int("removed", removed))
}
