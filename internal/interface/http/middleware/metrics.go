package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/baitboost/catalog/pkg/metrics"
)

// Metrics 记录HTTP请求数、耗时和并发数
// path使用路由模板（/api/v1/rods/:slug），避免slug导致标签基数爆炸
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.IncGauge(metrics.HTTPRequestsInProgress)
		defer metrics.DecGauge(metrics.HTTPRequestsInProgress)

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		metrics.IncCounterVec(metrics.HTTPRequestsTotal, map[string]string{
			"method": method,
			"path":   path,
			"status": strconv.Itoa(c.Writer.Status()),
		})
		metrics.ObserveHistogramVec(metrics.HTTPRequestDuration, map[string]string{
			"method": method,
			"path":   path,
		}, time.Since(start).Seconds())
	}
}
