package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cek_senet_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cek_senet_app/internal/core/ports/services"
	"github.com/SscSPs/cek_senet_app/internal/export"
	"github.com/spf13/afero"
)

const (
	backupPrefix     = "backup_"
	backupExt        = ".xlsx"
	backupNameLayout = "20060102_150405"
)

type backupService struct {
	BaseService
	fs         afero.Fs
	dir        string
	retention  time.Duration
	docRepo    portsrepo.DocumentRepositoryFacade
	partyRepo  portsrepo.PartyReader
	creditRepo portsrepo.CreditReader
}

// NewBackupService creates a backup service writing into dir on fs.
func NewBackupService(
	fs afero.Fs,
	dir string,
	retentionDays int,
	docRepo portsrepo.DocumentRepositoryFacade,
	partyRepo portsrepo.PartyReader,
	creditRepo portsrepo.CreditReader,
	opts ...ServiceOption,
) portssvc.BackupService {
	return &backupService{
		BaseService: newBaseService(opts...),
		fs:          fs,
		dir:         dir,
		retention:   time.Duration(retentionDays) * 24 * time.Hour,
		docRepo:     docRepo,
		partyRepo:   partyRepo,
		creditRepo:  creditRepo,
	}
}

var _ portssvc.BackupService = (*backupService)(nil)

func (s *backupService) CreateBackup(ctx context.Context) (*domain.BackupFile, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to collect backup data")
		return nil, err
	}

	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir %s: %w", s.dir, err)
	}
	now := s.Now()
	name := backupPrefix + now.Format(backupNameLayout) + backupExt
	path := filepath.Join(s.dir, name)

	f, err := s.fs.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create backup file %s: %w", path, err)
	}
	if err := export.WriteSnapshot(f, *snap); err != nil {
		f.Close()
		_ = s.fs.Remove(path)
		s.LogError(ctx, err, "Failed to write backup", slog.String("path", path))
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close backup file %s: %w", path, err)
	}

	info, err := s.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat backup file %s: %w", path, err)
	}
	s.LogInfo(ctx, "Backup created",
		slog.String("file", name),
		slog.Int("documents", len(snap.Documents)),
		slog.Int64("size_bytes", info.Size()))
	return &domain.BackupFile{FileName: name, Path: path, SizeBytes: info.Size(), CreatedAt: now}, nil
}

func (s *backupService) snapshot(ctx context.Context) (*export.Snapshot, error) {
	docs, err := s.docRepo.FindAllDocuments(ctx, domain.DocumentFilter{})
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	history, err := s.docRepo.FindAllHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	parties, err := s.partyRepo.ListParties(ctx, domain.PartyFilter{}, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("load parties: %w", err)
	}
	credits, err := s.creditRepo.ListCredits(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("load credits: %w", err)
	}
	installments, err := s.creditRepo.FindAllInstallments(ctx)
	if err != nil {
		return nil, fmt.Errorf("load installments: %w", err)
	}
	return &export.Snapshot{
		Documents:    docs,
		History:      history,
		Parties:      parties,
		Credits:      credits,
		Installments: installments,
	}, nil
}

func (s *backupService) ListBackups(ctx context.Context) ([]domain.BackupFile, error) {
	files, err := s.backupFiles()
	if err != nil {
		s.LogError(ctx, err, "Failed to list backups", slog.String("dir", s.dir))
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].CreatedAt.After(files[j].CreatedAt) })
	return files, nil
}

func (s *backupService) CleanupOldBackups(ctx context.Context) (int, error) {
	files, err := s.backupFiles()
	if err != nil {
		s.LogError(ctx, err, "Failed to list backups for cleanup", slog.String("dir", s.dir))
		return 0, err
	}

	cutoff := s.Now().Add(-s.retention)
	removed := 0
	for _, f := range files {
		if !f.CreatedAt.Before(cutoff) {
			continue
		}
		if err := s.fs.Remove(f.Path); err != nil {
			s.LogError(ctx, err, "Failed to remove old backup", slog.String("file", f.FileName))
			continue
		}
		removed++
	}
	s.LogInfo(ctx, "Old backups cleaned up", slog.Int("removed", removed))
	return removed, nil
}

// backupFiles lists backup workbooks in the backup dir, using modification time as CreatedAt.
func (s *backupService) backupFiles() ([]domain.BackupFile, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.BackupFile{}, nil
		}
		return nil, fmt.Errorf("read backup dir %s: %w", s.dir, err)
	}

	files := make([]domain.BackupFile, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, backupPrefix) || !strings.HasSuffix(name, backupExt) {
			continue
		}
		files = append(files, domain.BackupFile{
			FileName:  name,
			Path:      filepath.Join(s.dir, name),
			SizeBytes: e.Size(),
			CreatedAt: e.ModTime(),
		})
	}
	return files, nil
}
