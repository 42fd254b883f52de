package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/JWT-WWIT/modern-web-app/internal/http/handlers"
	httpMW "github.com/JWT-WWIT/modern-web-app/internal/http/middleware"
	"github.com/JWT-WWIT/modern-web-app/internal/platform/logger"
	"github.com/JWT-WWIT/modern-web-app/internal/resolver"
	"github.com/JWT-WWIT/modern-web-app/internal/validate"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string

	// Chain translates handler errors into responses. When nil the default
	// chain is assembled.
	Chain *resolver.Chain

	// StaticDir enables the static-content fallback when non-empty.
	StaticDir string

	AllowOrigins []string
	EnableOtel   bool

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler *httpH.HealthHandler
	AuthHandler   *httpH.AuthHandler
	NoteHandler   *httpH.NoteHandler
}

// NewRouter builds the engine with the default middleware stack: trace
// context, request logging, the error resolver chain, CORS, and optional
// otel instrumentation. Route handlers plug in through cfg.
func NewRouter(cfg RouterConfig) *gin.Engine {
	validate.UseWithGin()

	chain := cfg.Chain
	if chain == nil {
		chain = resolver.Default(cfg.Log, cfg.ServiceName)
	}

	r := gin.New()
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(chain.Middleware())
	r.Use(httpMW.CORS(cfg.AllowOrigins))
	if cfg.EnableOtel {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.NoteHandler != nil {
			protected.GET("/notes", cfg.NoteHandler.ListNotes)
			protected.POST("/notes", cfg.NoteHandler.CreateNote)
			protected.GET("/notes/:id", cfg.NoteHandler.GetNote)
			protected.DELETE("/notes/:id", cfg.NoteHandler.DeleteNote)
		}
	}

	if cfg.StaticDir != "" {
		registerStaticFallback(r, cfg.StaticDir)
	}

	return r
}
