package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/uptrace/bun"
)

func openFileDB(t *testing.T) *DB {
	t.Helper()
	return openMigrated(t, filepath.Join(t.TempDir(), "teamdash.db"))
}

func openMemDB(t *testing.T) *DB {
	t.Helper()
	return openMigrated(t, MemoryPath)
}

func openMigrated(t *testing.T, path string) *DB {
	t.Helper()
	db, err := OpenDB(path)
	if err != nil {
		t.Fatalf("open db %s: %v", path, err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return db
}

func insertAuditRow(ctx context.Context, tx bun.Tx, workspaceID string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO audit_logs (workspace_id, action, entity_type, entity_id) VALUES (?, ?, ?, ?)`, workspaceID, "user.create", "user", "1")
	return err
}

func countAuditRows(t *testing.T, db *DB, workspaceID string) int {
	t.Helper()
	var count int
	err := db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT COUNT(*) FROM audit_logs WHERE workspace_id = ?`, workspaceID).Scan(ctx, &count)
	})
	if err != nil {
		t.Fatalf("count audit rows: %v", err)
	}
	return count
}

var txBackends = []struct {
	name string
	open func(t *testing.T) *DB
}{
	{"file", openFileDB},
	{"memory", openMemDB},
}

func TestWithWriteTxRollsBackOnError(t *testing.T) {
	for _, b := range txBackends {
		t.Run(b.name, func(t *testing.T) {
			db := b.open(t)

			boom := errors.New("boom")
			err := db.WithWriteTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
				if err := insertAuditRow(ctx, tx, "rollback-ws"); err != nil {
					return err
				}
				return boom
			})
			if !errors.Is(err, boom) {
				t.Fatalf("expected boom error, got: %v", err)
			}
			if n := countAuditRows(t, db, "rollback-ws"); n != 0 {
				t.Fatalf("expected rollback to remove insert, count=%d", n)
			}
		})
	}
}

func TestWithWriteTxCommitsOnSuccess(t *testing.T) {
	for _, b := range txBackends {
		t.Run(b.name, func(t *testing.T) {
			db := b.open(t)

			err := db.WithWriteTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
				return insertAuditRow(ctx, tx, "commit-ws")
			})
			if err != nil {
				t.Fatalf("write tx failed: %v", err)
			}
			if n := countAuditRows(t, db, "commit-ws"); n != 1 {
				t.Fatalf("expected committed insert, count=%d", n)
			}
		})
	}
}

// Only the file database has a separate read-only pool to enforce this.
func TestWithReadTxRejectsWriteOnFileDB(t *testing.T) {
	db := openFileDB(t)

	err := db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return insertAuditRow(ctx, tx, "read-only-ws")
	})
	if err == nil && countAuditRows(t, db, "read-only-ws") > 0 {
		t.Fatalf("expected write in read tx to be blocked; write succeeded")
	}
}

func TestMemoryDBSharesOneConnection(t *testing.T) {
	db := openMemDB(t)
	if db.R != db.W || db.ReadSQL != db.WriteSQL {
		t.Fatalf("memory db must use one handle for reads and writes")
	}
	if got := db.WriteSQL.Stats().MaxOpenConnections; got != 1 {
		t.Fatalf("expected a single pinned connection, got %d", got)
	}

	// Sequential transactions on the pinned connection see each other's commits.
	for i := 0; i < 3; i++ {
		if err := db.WithWriteTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
			return insertAuditRow(ctx, tx, "shared-ws")
		}); err != nil {
			t.Fatalf("write %d: %v", i, err)
		}
		if n := countAuditRows(t, db, "shared-ws"); n != i+1 {
			t.Fatalf("after write %d expected %d rows, got %d", i, i+1, n)
		}
	}
}

func TestTxOnNilDB(t *testing.T) {
	var db *DB
	noop := func(context.Context, bun.Tx) error { return nil }
	if err := db.WithWriteTx(context.Background(), noop); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized from write, got %v", err)
	}
	if err := db.WithReadTx(context.Background(), noop); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized from read, got %v", err)
	}
}
