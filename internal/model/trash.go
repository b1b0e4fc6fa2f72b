package model

import "time"

// TrashEntry is a soft-deleted task kept around until pruned.
type TrashEntry struct {
	Task             Task      `json:"task"`
	OriginalPosition int       `json:"original_position"`
	DeletedAt        time.Time `json:"deleted_at"`
}
