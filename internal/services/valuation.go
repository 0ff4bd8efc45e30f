package services

import (
	"math"
	"time"

	"gorm.io/gorm"

	"cardvault/internal/models"
)

// ValuationService computes the current market value of all holdings.
// Pure read; safe to call concurrently and repeatedly.
type ValuationService struct {
	db    *gorm.DB
	store *PriceStore
}

func NewValuationService(db *gorm.DB, store *PriceStore) *ValuationService {
	return &ValuationService{
		db:    db,
		store: store,
	}
}

// PortfolioStats is the valuation summary recorded by snapshots.
type PortfolioStats struct {
	TotalValueEUR float64 `json:"total_value_eur"`
	TotalCards    int     `json:"total_cards"`
	UniqueCards   int     `json:"unique_cards"`
}

// PortfolioValue sums quantity x price over all holdings, using each
// card's most recent daily price at or before today. Cards without a
// product id or without any price row contribute zero. The total is
// rounded to 2 decimal places.
func (s *ValuationService) PortfolioValue() (float64, error) {
	stats, err := s.Stats()
	if err != nil {
		return 0, err
	}
	return stats.TotalValueEUR, nil
}

// Stats computes the portfolio value together with card counts.
func (s *ValuationService) Stats() (PortfolioStats, error) {
	var holdings []models.Holding
	if err := s.db.Preload("Card").Find(&holdings).Error; err != nil {
		return PortfolioStats{}, err
	}

	now := time.Now()
	total := 0.0
	stats := PortfolioStats{}
	uniqueCards := make(map[uint]bool)

	for _, h := range holdings {
		if h.Quantity <= 0 {
			continue
		}
		stats.TotalCards += h.Quantity
		uniqueCards[h.CardID] = true

		if h.Card.IDProduct == nil {
			continue
		}
		price := s.store.LatestPrice(*h.Card.IDProduct, now)
		if price == nil {
			continue
		}
		total += float64(h.Quantity) * price.BestPrice()
	}

	stats.UniqueCards = len(uniqueCards)
	stats.TotalValueEUR = math.Round(total*100) / 100
	return stats, nil
}
