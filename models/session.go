package models

import "time"

// SessionEntry is one persisted session key/value pair.
// The session store keeps the access token, the authenticated flag and
// the cached user record as three entries written and cleared together.
type SessionEntry struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the SessionEntry model
func (SessionEntry) TableName() string {
	return "session_entries"
}
