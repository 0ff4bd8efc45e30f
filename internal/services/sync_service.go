package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"cardvault/internal/config"
	"cardvault/internal/metrics"
	"cardvault/internal/models"
)

// SyncService orchestrates one ingestion run: fetch the feed, normalize
// it, upsert the day's prices. Runs are synchronous and independent;
// scheduling is the caller's concern.
type SyncService struct {
	cfg       *config.Config
	fetcher   *FeedFetcher
	store     *PriceStore
	valuation *ValuationService
}

// SyncResult summarizes one ingestion run.
type SyncResult struct {
	RunID    string `json:"run_id"`
	Date     string `json:"date"`
	Seen     int    `json:"seen"`
	Skipped  int    `json:"skipped"`
	Inserted int    `json:"inserted"`
}

func NewSyncService(cfg *config.Config, fetcher *FeedFetcher, store *PriceStore, valuation *ValuationService) *SyncService {
	return &SyncService{
		cfg:       cfg,
		fetcher:   fetcher,
		store:     store,
		valuation: valuation,
	}
}

// Run performs a full feed ingestion for today's date. Fetch, parse and
// schema failures abort the run with nothing written; rows without a
// resolvable product id only affect the counts.
func (s *SyncService) Run(ctx context.Context) (*SyncResult, error) {
	if err := s.cfg.RequireFeedURL(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()

	start := time.Now()
	res, err := s.fetcher.Fetch(ctx)
	metrics.FeedFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.FeedFetchesTotal.WithLabelValues("fetch_error").Inc()
		log.Printf("Feed sync %s: fetch failed: %v", runID, err)
		return nil, err
	}

	norm, err := NormalizeFeed(res.Body, res.ContentType, res.ContentEncoding, s.fetcher.URL())
	if err != nil {
		label := "schema_error"
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			label = "parse_error"
		}
		metrics.FeedFetchesTotal.WithLabelValues(label).Inc()
		log.Printf("Feed sync %s: %v", runID, err)
		return nil, err
	}
	metrics.FeedFetchesTotal.WithLabelValues("success").Inc()

	return s.finishRun(runID, time.Now(), norm), nil
}

// Import ingests a manually supplied payload for the given date. The
// body goes through the same normalizer as the feed, so alias fields and
// row-level skips behave identically.
func (s *SyncService) Import(date time.Time, body []byte) (*SyncResult, error) {
	runID := uuid.NewString()

	norm, err := NormalizeFeed(body, "application/json", "", "")
	if err != nil {
		log.Printf("Price import %s: %v", runID, err)
		return nil, err
	}

	return s.finishRun(runID, date, norm), nil
}

func (s *SyncService) finishRun(runID string, date time.Time, norm *NormalizeResult) *SyncResult {
	day := models.PriceDate(date)
	inserted := s.store.Upsert(day, norm.Entries)

	metrics.FeedEntriesSeen.Add(float64(norm.Seen))
	metrics.FeedEntriesSkipped.Add(float64(norm.Skipped))
	metrics.PricesUpsertedTotal.Add(float64(inserted))
	metrics.LastSyncInserted.Set(float64(inserted))
	s.refreshPortfolioGauges()

	log.Printf("Feed sync %s: %d entries seen, %d skipped, %d rows written for %s",
		runID, norm.Seen, norm.Skipped, inserted, day.Format(models.DateFormat))

	return &SyncResult{
		RunID:    runID,
		Date:     day.Format(models.DateFormat),
		Seen:     norm.Seen,
		Skipped:  norm.Skipped,
		Inserted: inserted,
	}
}

func (s *SyncService) refreshPortfolioGauges() {
	stats, err := s.valuation.Stats()
	if err != nil {
		return
	}
	metrics.PortfolioValueEUR.Set(stats.TotalValueEUR)
	metrics.PortfolioCardsTotal.Set(float64(stats.TotalCards))
}
