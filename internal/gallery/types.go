// Package gallery provides a SQLite-backed archive of finished renders,
// keyed by label and resolution, with the project snapshot stored alongside.
package gallery

import (
	"fmt"
	"time"
)

// Metadata describes a gallery database.
type Metadata struct {
	Name        string // Human-readable gallery identifier
	Description string // Human-readable description
	Project     string // JSON snapshot of the project the renders came from
	Version     string // Version string
}

// ToMap converts Metadata to a map for database insertion.
func (m Metadata) ToMap() map[string]string {
	result := make(map[string]string)

	if m.Name != "" {
		result["name"] = m.Name
	}
	if m.Description != "" {
		result["description"] = m.Description
	}
	if m.Project != "" {
		result["project"] = m.Project
	}
	if m.Version != "" {
		result["version"] = m.Version
	}

	return result
}

// Entry identifies one archived render.
type Entry struct {
	Label     string
	Width     int
	Height    int
	Seed      int64
	CreatedAt time.Time
}

// Key returns the unique identifier string for an entry's render slot.
func (e Entry) Key() string {
	return fmt.Sprintf("%s_%dx%d", e.Label, e.Width, e.Height)
}
