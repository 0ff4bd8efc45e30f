package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cardvault/internal/config"
	"cardvault/internal/models"
	"cardvault/internal/services"
)

const probePreviewLen = 200

type PriceHandler struct {
	cfg         *config.Config
	syncService *services.SyncService
	fetcher     *services.FeedFetcher
}

func NewPriceHandler(cfg *config.Config, syncService *services.SyncService, fetcher *services.FeedFetcher) *PriceHandler {
	return &PriceHandler{
		cfg:         cfg,
		syncService: syncService,
		fetcher:     fetcher,
	}
}

// SyncPrices triggers one full feed ingestion run. Upstream failures are
// reported with the error type and message; nothing is written on an
// aborted run.
func (h *PriceHandler) SyncPrices(c *gin.Context) {
	result, err := h.syncService.Run(c.Request.Context())
	if err != nil {
		status, kind := classifyFeedError(err)
		c.JSON(status, gin.H{"error": kind, "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"run_id":   result.RunID,
		"date":     result.Date,
		"seen":     result.Seen,
		"skipped":  result.Skipped,
		"inserted": result.Inserted,
	})
}

// ImportPrices ingests a manually supplied entry array, with an optional
// date override. Rows follow the same normalization rules as the feed.
func (h *PriceHandler) ImportPrices(c *gin.Context) {
	date := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse(models.DateFormat, dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	result, err := h.syncService.Import(date, body)
	if err != nil {
		// The client supplied the payload, so parse/schema problems are
		// its fault, not an upstream dependency's.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"inserted": result.Inserted,
		"seen":     result.Seen,
		"skipped":  result.Skipped,
		"date":     result.Date,
	})
}

// FeedProbe performs only the fetch step and reports what came back.
// Never touches the store.
func (h *PriceHandler) FeedProbe(c *gin.Context) {
	if err := h.cfg.RequireFeedURL(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	res, err := h.fetcher.Fetch(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "feed_fetch", "detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":       res.Status,
		"content_type": res.ContentType,
		"bytes":        len(res.Body),
		"preview":      services.PreviewText(res, h.fetcher.URL(), probePreviewLen),
	})
}

func classifyFeedError(err error) (int, string) {
	var (
		configErr *config.ConfigError
		fetchErr  *services.FetchError
		parseErr  *services.ParseError
		schemaErr *services.SchemaError
	)
	switch {
	case errors.As(err, &configErr):
		return http.StatusInternalServerError, "config"
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway, "feed_fetch"
	case errors.As(err, &parseErr):
		return http.StatusBadGateway, "feed_parse"
	case errors.As(err, &schemaErr):
		return http.StatusBadGateway, "feed_schema"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
