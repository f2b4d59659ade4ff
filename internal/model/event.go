package model

import "time"

// Event levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories
const (
	EventCategoryAuth        = "auth"
	EventCategoryTranslation = "translation"
	EventCategoryProject     = "project"
	EventCategoryTeam        = "team"
	EventCategoryConfig      = "config"
	EventCategoryCache       = "cache"
	EventCategorySystem      = "system"
)

// Event is a persisted log record.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	Metadata  string // JSON string
	CreatedAt time.Time
}
