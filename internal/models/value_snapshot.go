package models

import (
	"time"
)

// ValueSnapshot stores the daily portfolio value for historical charting
type ValueSnapshot struct {
	ID            uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	SnapshotDate  time.Time `json:"snapshot_date" gorm:"uniqueIndex;not null"`
	TotalValueEUR float64   `json:"total_value_eur"`
	TotalCards    int       `json:"total_cards"`
	UniqueCards   int       `json:"unique_cards"`
	CreatedAt     time.Time `json:"created_at"`
}

// ValueHistoryResponse is the API response for value history
type ValueHistoryResponse struct {
	Snapshots []ValueSnapshot `json:"snapshots"`
	Period    string          `json:"period"` // "week", "month", "3month", "year", "all"
}
