package middleware

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestStats 請求統計快照
type RequestStats struct {
	Total        int64   `json:"total"`
	ClientErrors int64   `json:"client_errors"`
	ServerErrors int64   `json:"server_errors"`
	AvgLatencyMs float64 `json:"avg_latency_ms"`
}

// RequestMetrics 累計請求數與延遲
type RequestMetrics struct {
	total        atomic.Int64
	clientErrors atomic.Int64
	serverErrors atomic.Int64
	latencyNanos atomic.Int64
}

// NewRequestMetrics 創建請求統計
func NewRequestMetrics() *RequestMetrics {
	return &RequestMetrics{}
}

// Observe 記錄一次請求
func (m *RequestMetrics) Observe(status int, latency time.Duration) {
	m.total.Add(1)
	m.latencyNanos.Add(int64(latency))
	switch {
	case status >= http.StatusInternalServerError:
		m.serverErrors.Add(1)
	case status >= http.StatusBadRequest:
		m.clientErrors.Add(1)
	}
}

// Stats 取得目前的統計數據
func (m *RequestMetrics) Stats() RequestStats {
	stats := RequestStats{
		Total:        m.total.Load(),
		ClientErrors: m.clientErrors.Load(),
		ServerErrors: m.serverErrors.Load(),
	}
	if stats.Total > 0 {
		avg := time.Duration(m.latencyNanos.Load() / stats.Total)
		stats.AvgLatencyMs = float64(avg) / float64(time.Millisecond)
	}
	return stats
}

// Metrics 統計中間件
func Metrics(m *RequestMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.Observe(c.Writer.Status(), time.Since(start))
	}
}
