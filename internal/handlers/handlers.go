package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"diamonddesk/api/internal/config"
	"diamonddesk/api/internal/middleware"
	"diamonddesk/api/internal/repository"
	"diamonddesk/api/internal/service"
)

type HandlerSet struct {
	log     zerolog.Logger
	cfg     *config.AppConfig
	auth    *service.AuthService
	logs    *service.LogService
	pricing *service.PricingService
	db      *pgxpool.Pool
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cfg *config.AppConfig) HandlerSet {
	loginLogRepo := repository.NewLoginLogRepository(db)
	calcRepo := repository.NewCalculationRepository(db)

	return newHandlerSet(
		log,
		cfg,
		db,
		service.NewAuthService(loginLogRepo, log),
		service.NewLogService(loginLogRepo, log),
		service.NewPricingService(calcRepo, log),
	)
}

func newHandlerSet(
	log zerolog.Logger,
	cfg *config.AppConfig,
	db *pgxpool.Pool,
	auth *service.AuthService,
	logs *service.LogService,
	pricing *service.PricingService,
) HandlerSet {
	return HandlerSet{
		log:     log,
		cfg:     cfg,
		auth:    auth,
		logs:    logs,
		pricing: pricing,
		db:      db,
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	router.POST("/login", h.Login)
	router.POST("/login-log", h.CreateLoginLog)
	router.POST("/log-activity", h.LogActivity)

	pricing := router.Group("")
	if h.cfg.Auth.ProtectPricing {
		pricing.Use(middleware.Auth(h.auth))
	}
	pricing.POST("/calculate-price", h.CalculatePrice)

	protected := router.Group("")
	protected.Use(middleware.Auth(h.auth))
	protected.POST("/logout", h.Logout)
	protected.GET("/login-logs", h.ListLoginLogs)
	protected.GET("/calculation-history", h.CalculationHistory)
}
