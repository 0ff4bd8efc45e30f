package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cardvault/internal/models"
	"cardvault/internal/services"
)

type PortfolioHandler struct {
	valuation       *services.ValuationService
	snapshotService *services.SnapshotService
}

func NewPortfolioHandler(valuation *services.ValuationService, snapshotService *services.SnapshotService) *PortfolioHandler {
	return &PortfolioHandler{
		valuation:       valuation,
		snapshotService: snapshotService,
	}
}

// GetValue returns the current portfolio value in EUR, rounded to 2
// decimal places.
func (h *PortfolioHandler) GetValue(c *gin.Context) {
	total, err := h.valuation.PortfolioValue()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_eur": total})
}

// GetHistory returns value snapshots for charting.
func (h *PortfolioHandler) GetHistory(c *gin.Context) {
	period := c.DefaultQuery("period", "month")

	snapshots, err := h.snapshotService.GetHistory(period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.ValueHistoryResponse{
		Snapshots: snapshots,
		Period:    period,
	})
}

// GetChartSVG renders the snapshot history as a small self-contained SVG
// line chart. Presentation only; reads the same rows as GetHistory.
func (h *PortfolioHandler) GetChartSVG(c *gin.Context) {
	period := c.DefaultQuery("period", "month")

	snapshots, err := h.snapshotService.GetHistory(period)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "image/svg+xml", []byte(renderChartSVG(snapshots)))
}

const (
	chartWidth   = 640
	chartHeight  = 240
	chartPadding = 20
)

func renderChartSVG(snapshots []models.ValueSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		chartWidth, chartHeight, chartWidth, chartHeight)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="white"/>`, chartWidth, chartHeight)

	if len(snapshots) == 0 {
		b.WriteString(`<text x="50%" y="50%" text-anchor="middle" font-family="sans-serif" fill="#666">no snapshots yet</text>`)
		b.WriteString(`</svg>`)
		return b.String()
	}

	minVal, maxVal := snapshots[0].TotalValueEUR, snapshots[0].TotalValueEUR
	for _, s := range snapshots {
		if s.TotalValueEUR < minVal {
			minVal = s.TotalValueEUR
		}
		if s.TotalValueEUR > maxVal {
			maxVal = s.TotalValueEUR
		}
	}
	valRange := maxVal - minVal
	if valRange == 0 {
		valRange = 1
	}

	plotW := float64(chartWidth - 2*chartPadding)
	plotH := float64(chartHeight - 2*chartPadding)

	points := make([]string, 0, len(snapshots))
	for i, s := range snapshots {
		x := float64(chartPadding)
		if len(snapshots) > 1 {
			x += plotW * float64(i) / float64(len(snapshots)-1)
		}
		y := float64(chartPadding) + plotH*(1-(s.TotalValueEUR-minVal)/valRange)
		points = append(points, fmt.Sprintf("%.1f,%.1f", x, y))
	}

	fmt.Fprintf(&b, `<polyline fill="none" stroke="#2563eb" stroke-width="2" points="%s"/>`,
		strings.Join(points, " "))
	fmt.Fprintf(&b, `<text x="%d" y="14" font-family="sans-serif" font-size="12" fill="#333">%.2f - %.2f EUR</text>`,
		chartPadding, minVal, maxVal)
	b.WriteString(`</svg>`)
	return b.String()
}
