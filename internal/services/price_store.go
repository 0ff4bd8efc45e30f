package services

import (
	"log"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cardvault/internal/models"
)

const latestPriceCacheSize = 4096

// priceKey identifies one cached resolution: the latest row for a
// product as of a given day. Keying by day keeps resolutions for
// different as-of dates independent.
type priceKey struct {
	idProduct int64
	day       int64
}

// PriceStore owns the daily price rows: idempotent per-day upserts on
// the write side, latest-price resolution on the read side.
type PriceStore struct {
	db    *gorm.DB
	cache *lru.Cache[priceKey, models.DailyPrice]
}

func NewPriceStore(db *gorm.DB) *PriceStore {
	cache, _ := lru.New[priceKey, models.DailyPrice](latestPriceCacheSize)
	return &PriceStore{
		db:    db,
		cache: cache,
	}
}

// Upsert writes one row per entry keyed (id_product, date). Re-running
// with the same input overwrites in place and never duplicates. Each row
// is independent: a failing row is logged and skipped, siblings still
// land. Returns the number of rows written.
func (s *PriceStore) Upsert(date time.Time, entries []PriceEntry) int {
	day := models.PriceDate(date)

	written := 0
	for _, e := range entries {
		row := models.DailyPrice{
			IDProduct:  e.IDProduct,
			Date:       day,
			AvgPrice:   e.AvgPrice,
			LowPrice:   e.LowPrice,
			TrendPrice: e.TrendPrice,
			Data:       e.Raw,
		}

		err := s.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id_product"}, {Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"avg_price", "low_price", "trend_price", "data", "updated_at"}),
		}).Create(&row).Error
		if err != nil {
			log.Printf("Price store: failed to upsert product %d for %s: %v",
				e.IDProduct, day.Format(models.DateFormat), err)
			continue
		}
		written++
	}

	if written > 0 {
		s.cache.Purge()
	}
	return written
}

// LatestPrice returns the price row with the maximum date not exceeding
// asOf for the product, or nil when none exists. Results are cached per
// (product, as-of day) and the cache is purged on every upsert, so a
// cached row is always the correct answer for its day.
func (s *PriceStore) LatestPrice(idProduct int64, asOf time.Time) *models.DailyPrice {
	day := models.PriceDate(asOf)
	key := priceKey{idProduct: idProduct, day: day.Unix()}

	if cached, ok := s.cache.Get(key); ok {
		return &cached
	}

	var price models.DailyPrice
	err := s.db.Where("id_product = ? AND date <= ?", idProduct, day).
		Order("date DESC").
		First(&price).Error
	if err != nil {
		return nil
	}

	s.cache.Add(key, price)
	return &price
}
