package gallery

import (
	"bytes"
	"compress/gzip"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

const (
	// DefaultBatchSize is the number of renders to buffer before flushing to
	// the database.
	DefaultBatchSize = 16
)

// renderEntry is a buffered render awaiting flush.
type renderEntry struct {
	entry Entry
	data  []byte // PNG data (gzip-compressed before storage)
}

// Writer writes renders to a gallery database.
type Writer struct {
	db        *sql.DB
	path      string
	batch     []renderEntry
	metadata  Metadata
	batchSize int
	mu        sync.Mutex
}

// NewWriter creates a gallery database at path, initializing the schema and
// metadata. An existing database is reused; its metadata is replaced.
func NewWriter(path string, metadata Metadata) (*Writer, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	if err := insertMetadata(db, metadata); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to insert metadata: %w", err)
	}

	return &Writer{
		db:        db,
		path:      path,
		batch:     make([]renderEntry, 0, DefaultBatchSize),
		batchSize: DefaultBatchSize,
		metadata:  metadata,
	}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS metadata (
			name TEXT NOT NULL,
			value TEXT
		);

		CREATE TABLE IF NOT EXISTS renders (
			label TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			created_at TEXT NOT NULL,
			image_data BLOB NOT NULL
		);

		CREATE UNIQUE INDEX IF NOT EXISTS render_index ON renders (label, width, height);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

func insertMetadata(db *sql.DB, meta Metadata) error {
	if _, err := db.Exec("DELETE FROM metadata"); err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}

	stmt, err := db.Prepare("INSERT INTO metadata (name, value) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare metadata insert: %w", err)
	}
	defer stmt.Close()

	for key, value := range meta.ToMap() {
		if _, err := stmt.Exec(key, value); err != nil {
			return fmt.Errorf("failed to insert metadata %q: %w", key, err)
		}
	}

	return nil
}

// WriteRender adds a render to the batch. When the batch is full, it is
// automatically flushed. The PNG data is gzip-compressed before storage.
func (w *Writer) WriteRender(entry Entry, pngData []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	w.batch = append(w.batch, renderEntry{entry: entry, data: pngData})

	if len(w.batch) >= w.batchSize {
		return w.flushLocked()
	}

	return nil
}

// Flush writes any buffered renders to the database.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.flushLocked()
}

func (w *Writer) flushLocked() error {
	if len(w.batch) == 0 {
		return nil
	}

	tx, err := w.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // nolint:errcheck

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO renders (label, width, height, seed, created_at, image_data) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range w.batch {
		compressed, err := gzipCompress(r.data)
		if err != nil {
			return fmt.Errorf("failed to compress render %s: %w", r.entry.Key(), err)
		}

		if _, err := stmt.Exec(r.entry.Label, r.entry.Width, r.entry.Height,
			r.entry.Seed, r.entry.CreatedAt.Format(time.RFC3339), compressed); err != nil {
			return fmt.Errorf("failed to insert render %s: %w", r.entry.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	w.batch = w.batch[:0]
	return nil
}

// Close flushes any remaining renders and closes the database.
func (w *Writer) Close() error {
	if err := w.Flush(); err != nil {
		w.db.Close()
		return err
	}

	if err := w.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

func gzipCompress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)

	if _, err := gw.Write(data); err != nil {
		gw.Close()
		return nil, err
	}

	if err := gw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
