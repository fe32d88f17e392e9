package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appent "github.com/atelier-community/atelier/internal/application/entitlement"
	lcusecases "github.com/atelier-community/atelier/internal/application/levelconfig/usecases"
	"github.com/atelier-community/atelier/internal/infrastructure/auth"
	"github.com/atelier-community/atelier/internal/infrastructure/cache"
	"github.com/atelier-community/atelier/internal/infrastructure/config"
	"github.com/atelier-community/atelier/internal/infrastructure/metrics"
	"github.com/atelier-community/atelier/internal/infrastructure/repository"
	"github.com/atelier-community/atelier/internal/infrastructure/resilience"
	"github.com/atelier-community/atelier/internal/interfaces/http/handlers"
	"github.com/atelier-community/atelier/internal/interfaces/http/middleware"
	"github.com/atelier-community/atelier/internal/shared/logger"
	"github.com/atelier-community/atelier/internal/shared/services/markdown"
)

// Container holds the infrastructure, engine components and handlers and
// wires them together.
type Container struct {
	// Core infrastructure
	engine  *gin.Engine
	db      *gorm.DB
	cfg     *config.Config
	log     logger.Interface
	redis   *redis.Client
	metrics *metrics.Metrics

	// Level config read path: breaker(cache(repository))
	levelConfigRepo  *repository.LevelConfigRepository
	levelConfigCache *cache.CachedLevelConfigReader
	levelConfigStore *resilience.BreakingLevelConfigReader

	// Engine
	resolver  *appent.Resolver
	quotas    *appent.QuotaResolver
	assembler *appent.Assembler

	// Handlers
	entitlementHandler *handlers.EntitlementHandler
	workHandler        *handlers.WorkHandler
	uploadHandler      *handlers.UploadHandler
	levelConfigHandler *handlers.LevelConfigHandler
	healthHandler      *handlers.HealthHandler

	authMiddleware *middleware.AuthMiddleware
}

// NewContainer creates a Container. reg receives the service's collectors.
func NewContainer(db *gorm.DB, redisClient *redis.Client, reg *prometheus.Registry, cfg *config.Config, log logger.Interface) (*Container, error) {
	m, err := metrics.New(reg)
	if err != nil {
		return nil, err
	}

	c := &Container{
		engine:  gin.New(),
		db:      db,
		cfg:     cfg,
		log:     log,
		redis:   redisClient,
		metrics: m,
	}

	c.initLevelConfigStore()
	c.initEngine()
	c.initHandlers()

	return c, nil
}

// initLevelConfigStore builds the level config read path.
func (c *Container) initLevelConfigStore() {
	ecfg := c.cfg.Entitlement

	c.levelConfigRepo = repository.NewLevelConfigRepository(c.db, c.log)
	c.levelConfigCache = cache.NewCachedLevelConfigReader(
		c.redis,
		c.levelConfigRepo,
		ecfg.CacheTTL(),
		ecfg.NullTTL(),
		c.log.Named("levelconfig.cache"),
	)
	c.levelConfigStore = resilience.NewBreakingLevelConfigReader(
		c.levelConfigCache,
		resilience.BreakerSettings{
			Name:        "level-config-store",
			MaxFailures: ecfg.BreakerMaxFailures,
			Timeout:     ecfg.BreakerTimeout(),
		},
		c.log.Named("levelconfig.breaker"),
	)
}

func (c *Container) initEngine() {
	engineLog := c.log.Named("entitlement")

	policies := appent.NewPolicyTable(c.levelConfigStore, c.metrics, engineLog)
	c.resolver = appent.NewResolver(policies, c.metrics, engineLog)
	counter := cache.NewRedisUploadCounter(c.redis, engineLog)
	c.quotas = appent.NewQuotaResolver(policies, c.resolver, counter, engineLog)
	projector := appent.NewProjector(c.resolver, c.cfg.Entitlement.ProjectionConcurrency)
	c.assembler = appent.NewAssembler(c.resolver, projector, c.quotas, engineLog)
}

func (c *Container) initHandlers() {
	log := c.log

	c.authMiddleware = middleware.NewAuthMiddleware(auth.NewJWTService(c.cfg.Auth.JWT.Secret), log)

	c.entitlementHandler = handlers.NewEntitlementHandler(c.assembler, c.resolver, log)
	c.workHandler = handlers.NewWorkHandler(c.assembler, log)
	c.uploadHandler = handlers.NewUploadHandler(c.quotas, log)
	c.healthHandler = handlers.NewHealthHandler(c.levelConfigStore)

	renderer := markdown.NewRenderer()
	c.levelConfigHandler = handlers.NewLevelConfigHandler(
		lcusecases.NewUpsertLevelConfigUseCase(c.levelConfigRepo, c.levelConfigCache, renderer, log),
		lcusecases.NewGetLevelConfigUseCase(c.levelConfigRepo, log),
		lcusecases.NewListLevelConfigsUseCase(c.levelConfigRepo, log),
		lcusecases.NewDeleteLevelConfigUseCase(c.levelConfigRepo, c.levelConfigCache, log),
		log,
	)
}
