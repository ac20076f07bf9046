package router

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Fawaz-asif/Email-spam-detector/internal/adapter/http/handler"
	"github.com/Fawaz-asif/Email-spam-detector/internal/adapter/http/middleware"
	"github.com/Fawaz-asif/Email-spam-detector/internal/infrastructure/metrics"
	"github.com/Fawaz-asif/Email-spam-detector/internal/usecase"
)

// Deps collects what the router wires into handlers. DB and Redis are nil
// when the history or cache is disabled.
type Deps struct {
	Usecase      usecase.PredictionUsecase
	DB           *sql.DB
	Redis        *redis.Client
	Logger       *zap.Logger
	Metrics      *metrics.Metrics
	Gatherer     prometheus.Gatherer
	AllowOrigins []string
	Metadata     handler.MetadataReader
}

// Setup creates and configures the Gin router
func Setup(deps Deps) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	m := deps.Metrics
	if m == nil {
		m = metrics.NewNop()
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(deps.AllowOrigins...))
	router.Use(middleware.Metrics(m))

	// Health endpoints
	healthHandler := handler.NewHealthHandler(deps.Usecase, deps.DB, deps.Redis)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Initialize handlers
	modelHandler := handler.NewModelHandler(deps.Usecase, deps.Metadata)
	predictionHandler := handler.NewPredictionHandler(deps.Usecase)

	router.GET("/", modelHandler.Index)
	router.GET("/model-info", modelHandler.Metadata)
	router.POST("/predict", predictionHandler.Predict)
	router.OPTIONS("/predict", predictionHandler.Preflight)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/model", modelHandler.Info)

		if deps.DB != nil {
			historyHandler := handler.NewHistoryHandler(deps.Usecase)
			predictions := v1.Group("/predictions")
			{
				predictions.GET("", historyHandler.List)
				predictions.GET("/stats", historyHandler.Stats)
			}
		}
	}

	return router
}
