// Package sqlite provides a SQLite-backed persistent store that mirrors
// the in-memory semantics, snapshotting the full state as JSON buckets
// after every successful transaction.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"marketcore/internal/infra/persistence/memory"
	"marketcore/pkg/domain"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// Compile-time contract assertion ensuring the store satisfies the domain interface.
var _ domain.PersistentStore = (*Store)(nil)

// Store persists the in-memory state to a single SQLite table as JSON blobs.
type Store struct {
	*memory.Store
	db   *sql.DB
	mu   sync.Mutex
	path string
}

// NewStore constructs a snapshotting SQLite-backed persistent store and
// hydrates the in-memory store from any existing snapshot.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = "marketcore.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("create state table: %w", err)
	}
	s := &Store{Store: memory.NewStore(), db: db, path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

var sqliteBuckets = []string{"vendors", "customers", "inventory", "crates", "cold_storage", "transactions", "housekeeping", "sequences"}

func (s *Store) load() error {
	rows, err := s.db.Query(`SELECT bucket, payload FROM state`)
	if err != nil {
		return fmt.Errorf("select state: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snapshot memory.Snapshot
	targets := map[string]any{
		"vendors":      &snapshot.Vendors,
		"customers":    &snapshot.Customers,
		"inventory":    &snapshot.Inventory,
		"crates":       &snapshot.Crates,
		"cold_storage": &snapshot.ColdStorage,
		"transactions": &snapshot.Transactions,
		"housekeeping": &snapshot.Housekeeping,
		"sequences":    &snapshot.Sequences,
	}
	loaded := false
	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return fmt.Errorf("scan state: %w", err)
		}
		if len(payload) == 0 {
			continue
		}
		target, ok := targets[bucket]
		if !ok {
			continue
		}
		if err := json.Unmarshal(payload, target); err != nil {
			return fmt.Errorf("decode %s: %w", bucket, err)
		}
		loaded = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate state: %w", err)
	}
	if loaded {
		s.ImportState(snapshot)
	}
	return nil
}

func (s *Store) persist() (retErr error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.ExportState()
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for _, bucket := range sqliteBuckets {
		data, err := marshalBucket(snapshot, bucket)
		if err != nil {
			retErr = err
			return retErr
		}
		if _, err := tx.Exec(`INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`, bucket, data); err != nil {
			retErr = fmt.Errorf("upsert %s: %w", bucket, err)
			return retErr
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	return nil
}

func marshalBucket(snapshot memory.Snapshot, bucket string) ([]byte, error) {
	switch bucket {
	case "vendors":
		return json.Marshal(snapshot.Vendors)
	case "customers":
		return json.Marshal(snapshot.Customers)
	case "inventory":
		return json.Marshal(snapshot.Inventory)
	case "crates":
		return json.Marshal(snapshot.Crates)
	case "cold_storage":
		return json.Marshal(snapshot.ColdStorage)
	case "transactions":
		return json.Marshal(snapshot.Transactions)
	case "housekeeping":
		return json.Marshal(snapshot.Housekeeping)
	case "sequences":
		return json.Marshal(snapshot.Sequences)
	default:
		return nil, fmt.Errorf("unknown bucket %q", bucket)
	}
}

// RunInTx applies fn within a transaction, then snapshots state to
// SQLite if successful.
func (s *Store) RunInTx(ctx context.Context, fn func(domain.Tx) error) error {
	if err := s.Store.RunInTx(ctx, fn); err != nil {
		return err
	}
	return s.persist()
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }
