// Package models holds the persisted entities and their display adapters.
package models

import (
	"time"

	"github.com/Dosada05/sports-management/view"
)

// withTimestamps appends the bookkeeping timestamps that have been set.
func withTimestamps(rec view.Record, created, updated time.Time) view.Record {
	if !created.IsZero() {
		rec = append(rec, view.Field{Key: "createdAt", Value: created})
	}
	if !updated.IsZero() {
		rec = append(rec, view.Field{Key: "updatedAt", Value: updated})
	}
	return rec
}
