package backup

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dukerupert/familytree/internal/database"
)

type fakeUploader struct {
	disabled    bool
	putErr      error
	objects     map[string][]byte
	contentType string
}

func (f *fakeUploader) Enabled() bool { return !f.disabled }

func (f *fakeUploader) Put(_ context.Context, key, contentType string, body io.Reader) error {
	if f.putErr != nil {
		return f.putErr
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if f.objects == nil {
		f.objects = make(map[string][]byte)
	}
	f.objects[key] = data
	f.contentType = contentType
	return nil
}

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "source.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

var backupTime = time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)

func TestRunPlain(t *testing.T) {
	db := setupDB(t)
	up := &fakeUploader{}

	res, err := Run(context.Background(), db, up, "", backupTime)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Key != "familytree-2024-06-01T123000Z.db" {
		t.Errorf("key = %q", res.Key)
	}
	if res.Encrypted {
		t.Error("Encrypted = true, want false")
	}

	data := up.objects[res.Key]
	if !bytes.HasPrefix(data, []byte("SQLite format 3")) {
		t.Error("uploaded object is not a SQLite database")
	}
	if int64(len(data)) != res.Size {
		t.Errorf("size = %d, want %d", res.Size, len(data))
	}
}

func TestRunEncryptedRestores(t *testing.T) {
	db := setupDB(t)
	up := &fakeUploader{}

	res, err := Run(context.Background(), db, up, "family-secret", backupTime)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasSuffix(res.Key, ".db.enc") {
		t.Errorf("key = %q, want .db.enc suffix", res.Key)
	}

	plain, err := Open(up.objects[res.Key], "family-secret")
	if err != nil {
		t.Fatalf("open backup: %v", err)
	}
	restored := filepath.Join(t.TempDir(), "restored.db")
	if err := os.WriteFile(restored, plain, 0600); err != nil {
		t.Fatalf("write restored: %v", err)
	}

	rdb, err := database.Open(restored)
	if err != nil {
		t.Fatalf("open restored: %v", err)
	}
	defer rdb.Close()

	var n int
	if err := rdb.QueryRow("SELECT COUNT(*) FROM gallery_images").Scan(&n); err != nil {
		t.Fatalf("count gallery: %v", err)
	}
	if n != 9 {
		t.Errorf("gallery images = %d, want 9", n)
	}
}

func TestRunErrors(t *testing.T) {
	db := setupDB(t)

	if _, err := Run(context.Background(), db, &fakeUploader{disabled: true}, "", backupTime); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("disabled: err = %v, want ErrNotConfigured", err)
	}

	putErr := errors.New("bucket gone")
	if _, err := Run(context.Background(), db, &fakeUploader{putErr: putErr}, "", backupTime); !errors.Is(err, putErr) {
		t.Errorf("put failure: err = %v, want %v", err, putErr)
	}
}
