package app

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	apphttp "github.com/JWT-WWIT/modern-web-app/internal/http"
	httpH "github.com/JWT-WWIT/modern-web-app/internal/http/handlers"
	httpMW "github.com/JWT-WWIT/modern-web-app/internal/http/middleware"
	"github.com/JWT-WWIT/modern-web-app/internal/jsonx"
	"github.com/JWT-WWIT/modern-web-app/internal/lifecycle"
	"github.com/JWT-WWIT/modern-web-app/internal/platform/logger"
	"github.com/JWT-WWIT/modern-web-app/internal/repos"
	"github.com/JWT-WWIT/modern-web-app/internal/resolver"
	"github.com/JWT-WWIT/modern-web-app/internal/services"
)

type Repos struct {
	Users repos.UserRepo
	Notes repos.NoteRepo
}

type Services struct {
	Auth  services.AuthService
	Notes services.NoteService
}

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health *httpH.HealthHandler
	Auth   *httpH.AuthHandler
	Note   *httpH.NoteHandler
}

func wireRepos(conn *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Users: repos.NewUserRepo(conn, log),
		Notes: repos.NewNoteRepo(conn, log),
	}
}

// wireServices builds services and runs each through the lifecycle registry,
// so registered hooks can decorate or replace them.
func wireServices(log *logger.Logger, cfg Config, reposet Repos, clients Clients, registry *lifecycle.Registry) (Services, error) {
	log.Info("Wiring services...")

	auth := services.NewAuthService(log, reposet.Users, services.AuthConfig{
		JWTSecretKey:   cfg.JWTSecretKey,
		AccessTokenTTL: cfg.AccessTokenTTL,
	})
	authOut, err := registry.Init(auth)
	if err != nil {
		return Services{}, fmt.Errorf("init auth service: %w", err)
	}

	notes := services.NewNoteService(log, reposet.Notes, clients.NoteCache)
	notesOut, err := registry.Init(notes)
	if err != nil {
		return Services{}, fmt.Errorf("init note service: %w", err)
	}

	return Services{
		Auth:  authOut.(services.AuthService),
		Notes: notesOut.(services.NoteService),
	}, nil
}

func wireMiddleware(log *logger.Logger, serviceset Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, serviceset.Auth),
	}
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(),
		Auth:   httpH.NewAuthHandler(serviceset.Auth),
		Note:   httpH.NewNoteHandler(serviceset.Notes),
	}
}

// wireChain assembles the default resolver chain and registers the handler
// for request validation failures, rendered as a field-keyed 422.
func wireChain(log *logger.Logger, cfg Config) *resolver.Chain {
	chain := resolver.Default(log, cfg.ServiceName)
	chain.Typed().RegisterMatch(func(err error) bool {
		var verrs validator.ValidationErrors
		return errors.As(err, &verrs)
	}, func(c *gin.Context, err error) {
		var verrs validator.ValidationErrors
		_ = errors.As(err, &verrs)
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		jsonx.Respond(c, http.StatusUnprocessableEntity, gin.H{
			"error": gin.H{
				"message": "validation failed",
				"code":    "validation_failed",
				"fields":  fields,
			},
		})
	})
	return chain
}

func wireServer(log *logger.Logger, cfg Config, chain *resolver.Chain, handlers Handlers, middleware Middleware) *apphttp.Server {
	return apphttp.NewServer(apphttp.RouterConfig{
		Log:            log,
		ServiceName:    cfg.ServiceName,
		Chain:          chain,
		StaticDir:      cfg.StaticDir,
		AllowOrigins:   cfg.AllowOrigins,
		EnableOtel:     cfg.OtelEnabled,
		AuthMiddleware: middleware.Auth,
		HealthHandler:  handlers.Health,
		AuthHandler:    handlers.Auth,
		NoteHandler:    handlers.Note,
	})
}
