// Package backup snapshots the SQLite database and uploads it, optionally
// encrypted, to object storage.
package backup

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

var ErrNotConfigured = errors.New("backup storage not configured")

// Uploader stores an object under key.
type Uploader interface {
	Enabled() bool
	Put(ctx context.Context, key, contentType string, body io.Reader) error
}

// Result describes a completed backup.
type Result struct {
	Key       string
	Size      int64
	Encrypted bool
}

// Run snapshots db and uploads it. When passphrase is non-empty the snapshot
// is sealed with Seal before upload and the key gets a ".enc" suffix.
func Run(ctx context.Context, db *sql.DB, up Uploader, passphrase string, now time.Time) (*Result, error) {
	if !up.Enabled() {
		return nil, ErrNotConfigured
	}

	dir, err := os.MkdirTemp("", "familytree-backup-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	snapshot := filepath.Join(dir, "snapshot.db")
	if err := Snapshot(ctx, db, snapshot); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(snapshot)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	res := &Result{Key: fmt.Sprintf("familytree-%s.db", now.UTC().Format("2006-01-02T150405Z"))}
	contentType := "application/vnd.sqlite3"
	if passphrase != "" {
		if data, err = Seal(data, passphrase); err != nil {
			return nil, err
		}
		res.Key += ".enc"
		res.Encrypted = true
		contentType = "application/octet-stream"
	}
	res.Size = int64(len(data))

	if err := up.Put(ctx, res.Key, contentType, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("upload backup: %w", err)
	}
	return res, nil
}

// Snapshot writes a consistent copy of db to dst using VACUUM INTO. dst must
// not exist.
func Snapshot(ctx context.Context, db *sql.DB, dst string) error {
	if _, err := db.ExecContext(ctx, "VACUUM INTO ?", dst); err != nil {
		return fmt.Errorf("snapshot database: %w", err)
	}
	return nil
}
