package api

import (
	"context"
	"fmt"
	"time"

	"ingredient-engine/internal/api/handlers/health"
	ingredientHandler "ingredient-engine/internal/api/handlers/ingredient"
	shoppingHandler "ingredient-engine/internal/api/handlers/shopping"
	"ingredient-engine/internal/api/middleware"
	"ingredient-engine/internal/core/cache"
	"ingredient-engine/internal/core/ingredient"
	"ingredient-engine/internal/core/mealplan"
	"ingredient-engine/internal/core/shopping"
	"ingredient-engine/internal/infrastructure/config"
	"ingredient-engine/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 單一請求的處理時限
const timeoutDuration = 30 * time.Second

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, store cache.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 翻譯表：有設定檔案路徑時取代內建表
	translator := ingredient.DefaultTranslator()
	if cfg.Translation.TablePath != "" {
		loaded, err := ingredient.LoadTableTranslator(cfg.Translation.TablePath)
		if err != nil {
			return nil, fmt.Errorf("failed to load translation table: %w", err)
		}
		translator = loaded
		common.LogInfo("已載入翻譯表",
			zap.String("path", cfg.Translation.TablePath),
			zap.Int("entries", loaded.Len()),
		)
	}

	if store == nil {
		store = cache.NopStore{}
	}
	opts := []shopping.Option{
		shopping.WithCache(store),
		shopping.WithDefaultLanguage(cfg.Translation.DefaultLanguage),
	}
	if cfg.MealPlan.BaseURL != "" {
		opts = append(opts, shopping.WithMealPlanSource(mealplan.NewClient(cfg.MealPlan)))
	} else {
		common.LogWarn("未設定菜單服務，依菜單產生購物清單將無法使用")
	}
	shoppingSvc := shopping.NewService(translator, opts...)

	var cacheStats func() interface{}
	if m, ok := store.(*cache.CacheManager); ok {
		cacheStats = func() interface{} { return m.Stats() }
	}

	router := gin.New()
	requests := middleware.NewRequestMetrics()

	// 註冊基礎中間件；Metrics 在 Recovery 外層才會計入 panic 的 500
	router.Use(middleware.Metrics(requests))
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID)))
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))
	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	lists := shoppingHandler.NewHandler(shoppingSvc)

	router.NoRoute(func(c *gin.Context) {
		common.WriteError(c, common.ErrNotFound)
	})

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg.App.Version, translator, health.StatsSources{
		Cache:    cacheStats,
		Shopping: lists.Stats,
		Requests: func() interface{} { return requests.Stats() },
	})
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(
			middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window),
			cfg.RateLimit.Window,
		))
	}

	ingredients := ingredientHandler.NewHandler(translator, cfg.Translation.DefaultLanguage)
	ingredientGroup := api.Group("/ingredients")
	{
		ingredientGroup.POST("/parse", ingredients.Parse)
		ingredientGroup.POST("/extract", ingredients.Extract)
		ingredientGroup.POST("/scale", ingredients.Scale)
		ingredientGroup.POST("/availability", ingredients.Availability)
		ingredientGroup.POST("/missing", ingredients.Missing)
		ingredientGroup.GET("/category", ingredients.Category)
		ingredientGroup.GET("/categories", ingredients.Categories)
		ingredientGroup.GET("/translate", ingredients.Translate)
	}

	api.POST("/recipes/scale", lists.ScaleRecipe)

	shoppingGroup := api.Group("/shopping-lists")
	shoppingGroup.Use(middleware.Deduplication(middleware.NewDeduplicator(cfg.DedupWindow)))
	{
		shoppingGroup.POST("", lists.Build)
		shoppingGroup.POST("/meal-plans/:id", lists.BuildForMealPlan)
	}

	common.LogInfo("Router setup completed",
		zap.Bool("rate_limit", cfg.RateLimit.Enabled),
		zap.Bool("meal_plan_source", cfg.MealPlan.BaseURL != ""),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
		zap.Duration("timeout", timeoutDuration),
	)

	return router, nil
}
