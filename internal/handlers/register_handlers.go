package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/cek_senet_app/cmd/docs"
	portssvc "github.com/SscSPs/cek_senet_app/internal/core/ports/services"
	"github.com/SscSPs/cek_senet_app/internal/middleware"
	"github.com/SscSPs/cek_senet_app/internal/platform/config"
	"github.com/SscSPs/cek_senet_app/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) error {
	if err := registerValidators(); err != nil {
		return err
	}
	today := calendarToday(time.Now, cfg.Location)

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// Register public authentication routes
	if err := registerAuthRoutes(r, cfg, services); err != nil {
		return err
	}

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	if err := setupAPIV1Routes(r, cfg, services, posthogClient, today); err != nil {
		return err
	}

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
	today func() time.Time,
) error {
	apiLimiter, err := middleware.NewIPRateLimiter(cfg.APIRateLimit)
	if err != nil {
		return err
	}

	v1 := r.Group("/api/v1",
		middleware.RateLimit(apiLimiter),
		middleware.AuthMiddleware(cfg.JWTSecret),
		middleware.PosthogMiddleware(posthogClient),
	)

	registerUserRoutes(v1, service.User)
	registerDocumentRoutes(v1, service.Document, posthogClient, today)
	registerPartyRoutes(v1, service.Party, today)
	registerCreditRoutes(v1, service.Credit, service.Reporting, today)
	registerExchangeRateRoutes(v1, service.ExchangeRate)
	registerReportingRoutes(v1, service.Reporting, today)
	registerBackupRoutes(v1, service.Backup)
	return nil
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	slog.Debug("Swagger UI enabled at /swagger/index.html")
}
