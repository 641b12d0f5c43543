package http

import (
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/ticketlane/eventwizard/internal/http/handlers"
	"github.com/ticketlane/eventwizard/internal/http/middlewares"
	"github.com/ticketlane/eventwizard/internal/observability"
	"github.com/ticketlane/eventwizard/internal/refdata"
	"github.com/ticketlane/eventwizard/internal/store"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Deps carries everything the router wires together. Nil-able fields are
// genuinely optional: a nil prom registry just skips the metrics endpoint.
type Deps struct {
	Log      *slog.Logger
	Sessions store.Sessions
	Backend  handlers.EventsBackend
	Refdata  *refdata.Loader
	Verifier middlewares.TokenVerifier
	Prom     *observability.Prom
	Registry *prometheus.Registry
	Ping     func() error

	AllowedOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
	cfgEnv := os.Getenv("APP_ENV")

	if cfgEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(RequestLogger(d.Log))
	r.Use(middlewares.CORSMiddleware(d.AllowedOrigins))
	r.Use(middlewares.SecurityHeaders())
	r.Use(otelgin.Middleware("eventwizard"))
	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}

	// health
	ping := d.Ping
	if ping == nil {
		ping = func() error { return nil }
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if d.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}

	// wire up handlers
	sessionsHandler := handlers.NewSessionsHandler(d.Sessions, d.Backend, d.Prom, d.Log)
	refdataHandler := handlers.NewRefdataHandler(d.Refdata, d.Log)

	auth := middlewares.NewAuthMiddleware(d.Verifier)

	v1 := r.Group("/v1")
	v1.Use(auth.RequireAuth())

	v1.GET("/refdata/categories", refdataHandler.Categories)
	v1.GET("/refdata/event-types", refdataHandler.EventTypes)

	v1.POST("/sessions", sessionsHandler.CreateSession)
	v1.GET("/sessions/:id", sessionsHandler.GetSession)
	v1.DELETE("/sessions/:id", sessionsHandler.DeleteSession)

	v1.PATCH("/sessions/:id/form", sessionsHandler.PatchForm)
	v1.PUT("/sessions/:id/dates", sessionsHandler.SetDates)
	v1.POST("/sessions/:id/images", sessionsHandler.UploadImages)

	v1.POST("/sessions/:id/slots", sessionsHandler.AddSlot)
	v1.PUT("/sessions/:id/slots", sessionsHandler.UpdateSlot)
	v1.DELETE("/sessions/:id/slots", sessionsHandler.RemoveSlot)

	v1.POST("/sessions/:id/categories", sessionsHandler.AddCategory)
	v1.PUT("/sessions/:id/categories", sessionsHandler.UpdateCategory)
	v1.DELETE("/sessions/:id/categories", sessionsHandler.RemoveCategory)

	v1.GET("/sessions/:id/apply-slot/seed", sessionsHandler.SeedSlotTemplate)
	v1.POST("/sessions/:id/apply-slot", sessionsHandler.ApplySlotToAllDates)
	v1.POST("/sessions/:id/apply-categories", sessionsHandler.ApplyCategoriesToAllSlots)

	v1.POST("/sessions/:id/next", sessionsHandler.Next)
	v1.POST("/sessions/:id/prev", sessionsHandler.Prev)
	v1.POST("/sessions/:id/goto", sessionsHandler.Goto)

	v1.GET("/sessions/:id/summary", sessionsHandler.Summary)
	v1.POST("/sessions/:id/submit", sessionsHandler.Submit)

	return r
}
