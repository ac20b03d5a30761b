package backup

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
)

type Service struct {
	db     *sqlx.DB
	dbPath string
}

func NewService(db *sqlx.DB, dbPath string) *Service {
	return &Service{
		db:     db,
		dbPath: dbPath,
	}
}

// BackupResult contains information about a completed backup
type BackupResult struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
}

// CreateBackup writes a gzip-compressed snapshot of the registry database to
// a "backups" directory next to the database file.
func (s *Service) CreateBackup(ctx context.Context) (*BackupResult, error) {
	backupDir := filepath.Join(filepath.Dir(s.dbPath), "backups")
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return nil, fmt.Errorf("create backup directory: %w", err)
	}

	// Snapshot and archive names are unique so concurrent backups never share a file
	snapshot, err := os.CreateTemp(backupDir, "snapshot-*.db")
	if err != nil {
		return nil, fmt.Errorf("create snapshot file: %w", err)
	}
	tempPath := snapshot.Name()
	snapshot.Close()
	defer os.Remove(tempPath)

	// VACUUM INTO accepts an existing empty file and gives a consistent copy
	// even while the server is writing
	if _, err := s.db.ExecContext(ctx, `VACUUM INTO ?`, tempPath); err != nil {
		return nil, fmt.Errorf("vacuum into temp: %w", err)
	}

	out, err := os.CreateTemp(backupDir, time.Now().Format("2006-01-02_15.04.05")+"_*_appmachineid.db.gz")
	if err != nil {
		return nil, fmt.Errorf("create backup file: %w", err)
	}
	backupPath := out.Name()
	filename := filepath.Base(backupPath)

	if err := gzipFile(tempPath, out); err != nil {
		os.Remove(backupPath)
		return nil, err
	}

	info, err := os.Stat(backupPath)
	if err != nil {
		return nil, fmt.Errorf("stat backup file: %w", err)
	}

	return &BackupResult{
		Filename: filename,
		Path:     backupPath,
		Size:     info.Size(),
	}, nil
}

func gzipFile(src string, out *os.File) error {
	defer out.Close()

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open snapshot: %w", err)
	}
	defer in.Close()

	gz := gzip.NewWriter(out)
	if _, err := io.Copy(gz, in); err != nil {
		return fmt.Errorf("write gzip data: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("close gzip writer: %w", err)
	}
	return out.Close()
}
