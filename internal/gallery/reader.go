package gallery

import (
	"bytes"
	"compress/gzip"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrNotFound is returned when a requested render is not in the gallery.
var ErrNotFound = errors.New("render not found")

// Reader reads renders from a gallery database.
type Reader struct {
	db   *sql.DB
	path string
}

// OpenReader opens a gallery database for reading.
func OpenReader(path string) (*Reader, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro&immutable=1")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='renders'").Scan(&count)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to verify schema: %w", err)
	}
	if count == 0 {
		db.Close()
		return nil, fmt.Errorf("database does not contain renders table")
	}

	return &Reader{db: db, path: path}, nil
}

// ReadRender returns the ungzipped PNG data for the given render slot.
func (r *Reader) ReadRender(label string, width, height int) ([]byte, error) {
	var compressed []byte
	err := r.db.QueryRow(
		"SELECT image_data FROM renders WHERE label=? AND width=? AND height=?",
		label, width, height,
	).Scan(&compressed)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s at %dx%d", ErrNotFound, label, width, height)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query render: %w", err)
	}

	data, err := gzipDecompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress render: %w", err)
	}

	return data, nil
}

// List returns all archived entries, newest first.
func (r *Reader) List() ([]Entry, error) {
	rows, err := r.db.Query(
		"SELECT label, width, height, seed, created_at FROM renders ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query renders: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.Label, &e.Width, &e.Height, &e.Seed, &created); err != nil {
			return nil, fmt.Errorf("failed to scan render row: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, created); err == nil {
			e.CreatedAt = ts
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating renders: %w", err)
	}

	return entries, nil
}

// Metadata reads the gallery metadata.
func (r *Reader) Metadata() (Metadata, error) {
	rows, err := r.db.Query("SELECT name, value FROM metadata")
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to query metadata: %w", err)
	}
	defer rows.Close()

	metaMap := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return Metadata{}, fmt.Errorf("failed to scan metadata row: %w", err)
		}
		metaMap[name] = value
	}
	if err := rows.Err(); err != nil {
		return Metadata{}, fmt.Errorf("error iterating metadata: %w", err)
	}

	return Metadata{
		Name:        metaMap["name"],
		Description: metaMap["description"],
		Project:     metaMap["project"],
		Version:     metaMap["version"],
	}, nil
}

// Close closes the database.
func (r *Reader) Close() error {
	return r.db.Close()
}

func gzipDecompress(data []byte) ([]byte, error) {
	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer gr.Close()

	return io.ReadAll(gr)
}
