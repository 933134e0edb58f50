package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/01moynul/fitshop-api/internal/middleware"
	"github.com/01moynul/fitshop-api/internal/models"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

// DailyMetricInput is one day's values. Omitted values are stored as NULL.
type DailyMetricInput struct {
	Date       string   `json:"date" binding:"required,datetime=2006-01-02"`
	WeightKg   *float64 `json:"weightKg" binding:"omitempty,gt=0"`
	Calories   *int64   `json:"calories" binding:"omitempty,gte=0"`
	Steps      *int64   `json:"steps" binding:"omitempty,gte=0"`
	SleepHours *float64 `json:"sleepHours" binding:"omitempty,gte=0,max=24"`
	Notes      string   `json:"notes" binding:"max=1000"`
}

// --- Upsert Daily Metric (Protected) ---
func (h *Handlers) UpsertDailyMetric(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	var input DailyMetricInput
	if !bindJSON(c, &input) {
		return
	}

	metric := &models.DailyMetric{
		UserID:     claims.ID,
		Date:       input.Date,
		WeightKg:   input.WeightKg,
		Calories:   input.Calories,
		Steps:      input.Steps,
		SleepHours: input.SleepHours,
		Notes:      input.Notes,
	}
	if err := h.Metrics.Upsert(c.Request.Context(), metric); err != nil {
		log.Printf("ERROR: upsert metric for user %d: %v", claims.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save metric"})
		return
	}
	c.JSON(http.StatusOK, metric)
}

// --- List Daily Metrics (Protected) ---
// ListDailyMetrics accepts optional ?from= and ?to= bounds (YYYY-MM-DD).
func (h *Handlers) ListDailyMetrics(c *gin.Context) {
	claims, _ := middleware.ClaimsFrom(c)

	from, to := c.Query("from"), c.Query("to")
	for name, value := range map[string]string{"from": from, "to": to} {
		if value == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, value); err != nil {
			badRequest(c, name+" must be a date (YYYY-MM-DD)")
			return
		}
	}

	metrics, err := h.Metrics.List(c.Request.Context(), claims.ID, from, to)
	if err != nil {
		log.Printf("ERROR: list metrics for user %d: %v", claims.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch metrics"})
		return
	}
	c.JSON(http.StatusOK, metrics)
}
