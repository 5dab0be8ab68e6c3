package models

// Setting is a single key-value settings entry. Values are stored as
// JSON-encoded strings so lists (column order) and scalars (API keys,
// refresh interval) share one collection.
type Setting struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `gorm:"not null" json:"value"`
}
