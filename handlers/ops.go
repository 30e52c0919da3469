package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"voyago/database/repository/dataset"
	"voyago/utils"
)

const (
	statsCacheKey = "dataset:stats"
	statsCacheTTL = 5 * time.Minute
)

// datasetStats reports the size of the curated offline dataset.
// Counts change only on reseeding, so responses are cached briefly.
func (hb *HandlerBundle) datasetStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		if hb.Cache != nil {
			if raw, ok := hb.Cache.Fetch(ctx, statsCacheKey); ok {
				var stats dataset.Stats
				if err := json.Unmarshal([]byte(raw), &stats); err == nil {
					c.JSON(http.StatusOK, stats)
					return
				}
			}
		}
		stats, err := hb.DatasetRepo.Stats(ctx)
		if err != nil {
			utils.JSONError(c, http.StatusServiceUnavailable,
				"dataset unavailable", "please retry shortly")
			return
		}
		if hb.Cache != nil {
			if raw, err := json.Marshal(stats); err == nil {
				hb.Cache.Store(ctx, statsCacheKey, string(raw), statsCacheTTL)
			}
		}
		c.JSON(http.StatusOK, stats)
	}
}

// health reports the latest dependency health snapshot.
func (hb *HandlerBundle) health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"dependencies": utils.GetHealthStatus(),
		})
	}
}
