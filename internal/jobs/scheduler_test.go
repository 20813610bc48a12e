package jobs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackups struct {
	created   int
	cleaned   int
	createErr error
}

func (f *fakeBackups) CreateBackup(ctx context.Context) (*domain.BackupFile, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created++
	return &domain.BackupFile{FileName: "backup_20260101_030000.xlsx", SizeBytes: 42}, nil
}

func (f *fakeBackups) ListBackups(ctx context.Context) ([]domain.BackupFile, error) {
	return nil, nil
}

func (f *fakeBackups) CleanupOldBackups(ctx context.Context) (int, error) {
	f.cleaned++
	return 3, nil
}

type panickingBackups struct{ fakeBackups }

func (p *panickingBackups) CreateBackup(ctx context.Context) (*domain.BackupFile, error) {
	panic("backup directory vanished")
}

func (p *panickingBackups) CleanupOldBackups(ctx context.Context) (int, error) {
	panic("backup directory vanished")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewScheduler_RegistersBothJobs(t *testing.T) {
	s, err := NewScheduler(&fakeBackups{}, "0 3 * * *", "30 3 * * *", time.UTC, discardLogger())
	require.NoError(t, err)
	assert.Len(t, s.cron.Entries(), 2)
}

func TestNewScheduler_InvalidSpec(t *testing.T) {
	_, err := NewScheduler(&fakeBackups{}, "every night", "30 3 * * *", nil, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid backup schedule")

	_, err = NewScheduler(&fakeBackups{}, "0 3 * * *", "61 3 * * *", nil, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cleanup")
}

func TestJobs_CallBackupService(t *testing.T) {
	backups := &fakeBackups{}
	s, err := NewScheduler(backups, "0 3 * * *", "30 3 * * *", time.UTC, discardLogger())
	require.NoError(t, err)

	s.runBackup()
	s.runCleanup()
	assert.Equal(t, 1, backups.created)
	assert.Equal(t, 1, backups.cleaned)

	backups.createErr = errors.New("disk full")
	assert.NotPanics(t, s.runBackup)
	assert.Equal(t, 1, backups.created)
}

func TestStartStop(t *testing.T) {
	s, err := NewScheduler(&fakeBackups{}, "0 3 * * *", "30 3 * * *", time.UTC, discardLogger())
	require.NoError(t, err)

	s.Start()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}

func TestJobs_PanicIsRecoveredAndLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	s, err := NewScheduler(&panickingBackups{}, "0 3 * * *", "30 3 * * *", time.UTC, logger)
	require.NoError(t, err)

	for _, e := range s.cron.Entries() {
		assert.NotPanics(t, e.WrappedJob.Run)
	}
	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "backup directory vanished")
	assert.Contains(t, buf.String(), "component=jobs")
}
