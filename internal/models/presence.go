package models

import "time"

// Presence is a per-account heartbeat row. Rows are upserted on every
// heartbeat and filtered by recency on read; stale rows persist harmlessly.
type Presence struct {
	Username string    `gorm:"primaryKey;size:255" json:"username"`
	LastSeen time.Time `gorm:"not null" json:"last_seen"`
}

// TableName keeps the table name used by the legacy schema.
func (Presence) TableName() string { return "presencia" }
