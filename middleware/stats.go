package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seo-analyzer/seo-analyzer/stats"
)

// AnalyzedURLKey is set by the analyze handler so the stats middleware
// can attribute the request to the analyzed host.
const AnalyzedURLKey = "analyzed_url"

// Stats records every analysis request against the monthly usage
// counters: how long it took, whether it failed, and which host was
// analyzed.
func Stats(storage *stats.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost || c.Request.URL.Path != "/api/analyze" {
			c.Next()
			return
		}

		start := time.Now()

		c.Next()

		failed := c.Writer.Status() >= 400
		storage.RecordAnalysis(c.GetString(AnalyzedURLKey), time.Since(start), failed)
	}
}
