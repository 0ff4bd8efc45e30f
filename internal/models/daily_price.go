package models

import (
	"encoding/json"
	"time"
)

// DateFormat is the wire format for price dates.
const DateFormat = "2006-01-02"

// DailyPrice is one externally sourced price snapshot for a product on a
// calendar date. At most one row exists per (id_product, date);
// re-ingestion on the same date overwrites in place. There is no foreign
// key to cards: prices may arrive for products nobody holds yet.
type DailyPrice struct {
	ID         uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	IDProduct  int64           `json:"id_product" gorm:"not null;uniqueIndex:idx_product_date"`
	Date       time.Time       `json:"date" gorm:"not null;uniqueIndex:idx_product_date"`
	AvgPrice   *float64        `json:"avg_price"`
	LowPrice   *float64        `json:"low_price"`
	TrendPrice *float64        `json:"trend_price"`
	Data       json.RawMessage `json:"data" gorm:"type:jsonb"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// BestPrice picks the price used for valuation: trend, else avg, else
// low, else zero.
func (p *DailyPrice) BestPrice() float64 {
	switch {
	case p.TrendPrice != nil:
		return *p.TrendPrice
	case p.AvgPrice != nil:
		return *p.AvgPrice
	case p.LowPrice != nil:
		return *p.LowPrice
	default:
		return 0
	}
}

// PriceDate truncates t to midnight UTC, the canonical form for the
// (id_product, date) key.
func PriceDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
