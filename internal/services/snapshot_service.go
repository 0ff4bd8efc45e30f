package services

import (
	"context"
	"log"
	"sync"
	"time"

	"gorm.io/gorm"

	"cardvault/internal/metrics"
	"cardvault/internal/models"
)

// SnapshotService records one portfolio value snapshot per day, giving
// the history/chart endpoints their data.
type SnapshotService struct {
	mu            sync.Mutex
	db            *gorm.DB
	valuation     *ValuationService
	snapshotHour  int // Hour of day to take the snapshot (0-23)
	checkInterval time.Duration
}

func NewSnapshotService(db *gorm.DB, valuation *ValuationService, snapshotHour int) *SnapshotService {
	return &SnapshotService{
		db:            db,
		valuation:     valuation,
		snapshotHour:  snapshotHour,
		checkInterval: 15 * time.Minute,
	}
}

// Start begins the background snapshot worker.
func (s *SnapshotService) Start(ctx context.Context) {
	log.Println("Snapshot service started: will record daily portfolio value")

	s.checkAndSnapshot()

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Snapshot service stopping...")
			return
		case <-ticker.C:
			s.checkAndSnapshot()
		}
	}
}

func (s *SnapshotService) checkAndSnapshot() {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	if s.hasSnapshotForDate(today) {
		return
	}

	// Only take automatic snapshots at or after the configured hour, so
	// the recorded value reflects the day's price ingestion.
	if now.Hour() >= s.snapshotHour {
		if err := s.TakeSnapshot(); err != nil {
			log.Printf("Snapshot service: failed to take snapshot: %v", err)
		}
	}
}

func (s *SnapshotService) hasSnapshotForDate(date time.Time) bool {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	var count int64
	s.db.Model(&models.ValueSnapshot{}).
		Where("snapshot_date >= ? AND snapshot_date < ?", startOfDay, endOfDay).
		Count(&count)

	return count > 0
}

// TakeSnapshot records the current portfolio value. Safe to call
// repeatedly; one row per day, overwritten on re-run.
func (s *SnapshotService) TakeSnapshot() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	snapshotDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats, err := s.valuation.Stats()
	if err != nil {
		return err
	}

	snapshot := models.ValueSnapshot{
		SnapshotDate:  snapshotDate,
		TotalValueEUR: stats.TotalValueEUR,
		TotalCards:    stats.TotalCards,
		UniqueCards:   stats.UniqueCards,
		CreatedAt:     now,
	}

	result := s.db.Where("snapshot_date = ?", snapshotDate).
		Assign(models.ValueSnapshot{
			TotalValueEUR: snapshot.TotalValueEUR,
			TotalCards:    snapshot.TotalCards,
			UniqueCards:   snapshot.UniqueCards,
		}).
		FirstOrCreate(&snapshot)
	if result.Error != nil {
		return result.Error
	}

	metrics.SnapshotsTotal.Inc()
	metrics.PortfolioValueEUR.Set(stats.TotalValueEUR)
	metrics.PortfolioCardsTotal.Set(float64(stats.TotalCards))

	log.Printf("Snapshot service: recorded value snapshot for %s (total: %.2f EUR, cards: %d)",
		snapshotDate.Format(models.DateFormat), stats.TotalValueEUR, stats.TotalCards)

	return nil
}

// GetHistory retrieves value snapshots for a given period.
func (s *SnapshotService) GetHistory(period string) ([]models.ValueSnapshot, error) {
	var snapshots []models.ValueSnapshot

	now := time.Now()
	var startDate time.Time

	switch period {
	case "week":
		startDate = now.AddDate(0, 0, -7)
	case "month":
		startDate = now.AddDate(0, -1, 0)
	case "3month":
		startDate = now.AddDate(0, -3, 0)
	case "year":
		startDate = now.AddDate(-1, 0, 0)
	case "all":
		startDate = time.Time{} // No filter
	default:
		startDate = now.AddDate(0, -1, 0)
	}

	query := s.db.Order("snapshot_date ASC")
	if !startDate.IsZero() {
		query = query.Where("snapshot_date >= ?", startDate)
	}

	if err := query.Find(&snapshots).Error; err != nil {
		return nil, err
	}

	return snapshots, nil
}
