package services

import (
	"context"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
)

// BackupService defines workbook snapshots of the whole dataset
type BackupService interface {
	// CreateBackup writes a timestamped workbook into the backup directory.
	CreateBackup(ctx context.Context) (*domain.BackupFile, error)

	// ListBackups returns the backup workbooks on disk, newest first.
	ListBackups(ctx context.Context) ([]domain.BackupFile, error)

	// CleanupOldBackups deletes backups older than the retention period and returns how many were removed.
	CleanupOldBackups(ctx context.Context) (int, error)
}
