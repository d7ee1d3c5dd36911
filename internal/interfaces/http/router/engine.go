package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/ledgeranchor/backend/internal/infrastructure/logger"
	"github.com/ledgeranchor/backend/internal/interfaces/http/dto"
	"github.com/ledgeranchor/backend/internal/interfaces/http/handler"
	"github.com/ledgeranchor/backend/internal/interfaces/http/middleware"
)

// DefaultMaxBodySize caps request bodies when no limit is configured
const DefaultMaxBodySize int64 = 1 << 20

// Handlers groups the HTTP handlers of the ledger API
type Handlers struct {
	Entry          *handler.EntryHandler
	Organization   *handler.OrganizationHandler
	Reconciliation *handler.ReconciliationHandler
	Anchor         *handler.AnchorHandler
	Transaction    *handler.TransactionHandler
	Health         *handler.HealthHandler
}

// EngineConfig configures the middleware chain
type EngineConfig struct {
	Logger         *zap.Logger
	Meter          metric.Meter // nil disables HTTP metrics
	Tracing        middleware.TracingConfig
	CORS           middleware.CORSConfig
	Security       middleware.SecurityConfig
	MaxBodySize    int64
	TrustedProxies []string
}

// NewEngine builds the gin engine with the full middleware chain and the
// ledger routes under /api/v1. /health is also served at the root.
func NewEngine(cfg EngineConfig, h Handlers) (*gin.Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	maxBody := cfg.MaxBodySize
	if maxBody <= 0 {
		maxBody = DefaultMaxBodySize
	}

	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		logger.GinMiddleware(log),
		middleware.Tracing(cfg.Tracing),
		middleware.SpanAttributes(),
		middleware.HTTPMetrics(cfg.Meter),
		middleware.Secure(cfg.Security),
		middleware.CORS(cfg.CORS),
		middleware.BodyLimit(maxBody),
	)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeRouteNotFound, "Route not found", middleware.GetRequestID(c)))
	})

	if h.Health != nil {
		engine.GET("/health", h.Health.Health)
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	for _, g := range ledgerGroups(h) {
		r.Register(g)
	}
	r.Setup()

	return engine, nil
}

func ledgerGroups(h Handlers) []*DomainGroup {
	var groups []*DomainGroup

	if h.Entry != nil {
		groups = append(groups, NewDomainGroup("entries", "/entries").
			POST("", h.Entry.CreateEntry).
			GET("", h.Entry.ListEntries))
	}

	if h.Organization != nil || h.Anchor != nil || h.Reconciliation != nil {
		orgs := NewDomainGroup("organizations", "/orgs")
		if h.Organization != nil {
			orgs.GET("", h.Organization.ListOrganizations).
				GET("/:orgId/insights", h.Organization.GetInsights)
		}
		if h.Anchor != nil {
			orgs.GET("/:orgId/anchors", h.Anchor.ListAnchors).
				GET("/:orgId/anchors/:anchorId/verify", h.Anchor.VerifyAnchor)
		}
		if h.Reconciliation != nil {
			orgs.GET("/:orgId/entries/:entryId/links", h.Reconciliation.ListLinks)
		}
		groups = append(groups, orgs)
	}

	if h.Reconciliation != nil {
		groups = append(groups, NewDomainGroup("reconciliation", "/reconcile").
			POST("", h.Reconciliation.Reconcile))
	}

	if h.Anchor != nil {
		groups = append(groups, NewDomainGroup("anchor", "/anchor").
			POST("", h.Anchor.AnchorPeriod))
	}

	if h.Transaction != nil {
		groups = append(groups, NewDomainGroup("transactions", "/transactions").
			POST("/simulate", h.Transaction.SimulateTransaction).
			GET("", h.Transaction.ListTransactions))
	}

	if h.Health != nil {
		groups = append(groups, NewDomainGroup("health", "/health").
			GET("", h.Health.Health))
	}

	return groups
}
