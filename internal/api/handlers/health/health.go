package health

import (
	"net/http"
	"runtime"
	"time"

	"ingredient-engine/internal/core/ingredient"
	"ingredient-engine/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Uptime    string                 `json:"uptime"`
	Runtime   map[string]interface{} `json:"runtime"`
	Cache     interface{}            `json:"cache,omitempty"`
	Shopping  interface{}            `json:"shopping,omitempty"`
	Requests  interface{}            `json:"requests,omitempty"`
}

// StatsSources 健康檢查附帶的統計，未設定的項目不顯示
type StatsSources struct {
	Cache    func() interface{}
	Shopping func() interface{}
	Requests func() interface{}
}

// Handler 健康檢查處理器
type Handler struct {
	version    string
	startedAt  time.Time
	translator *ingredient.TableTranslator
	stats      StatsSources
}

// NewHandler 創建健康檢查處理器
func NewHandler(version string, translator *ingredient.TableTranslator, stats StatsSources) *Handler {
	return &Handler{
		version:    version,
		startedAt:  time.Now(),
		translator: translator,
		stats:      stats,
	}
}

// HealthCheck 健康檢查
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   h.version,
		Uptime:    time.Since(h.startedAt).Round(time.Second).String(),
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":  m.Alloc,
				"sys":    m.Sys,
				"num_gc": m.NumGC,
			},
		},
	}
	if h.stats.Cache != nil {
		response.Cache = h.stats.Cache()
	}
	if h.stats.Shopping != nil {
		response.Shopping = h.stats.Shopping()
	}
	if h.stats.Requests != nil {
		response.Requests = h.stats.Requests()
	}

	common.LogDebug("Health check request", zap.String("client_ip", c.ClientIP()))
	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查：翻譯表必須已載入
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.translator == nil || h.translator.Len() == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "translation table is empty",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       "ready",
		"translations": h.translator.Len(),
	})
}

// LivenessCheck 存活檢查
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
