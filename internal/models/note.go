// Package models defines the domain types shared across the service.
package models

import "time"

// EntryMetadata is a lightweight representation returned by list operations.
type EntryMetadata struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
