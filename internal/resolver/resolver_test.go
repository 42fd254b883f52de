package resolver

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/JWT-WWIT/modern-web-app/internal/platform/apierr"
	"github.com/JWT-WWIT/modern-web-app/internal/platform/ctxutil"
	"github.com/JWT-WWIT/modern-web-app/internal/platform/logger"
	pkgerrors "github.com/JWT-WWIT/modern-web-app/internal/pkg/errors"
)

func observedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return logger.FromZap(zap.New(core)), logs
}

func serve(t *testing.T, ch *Chain, target string, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(ch.Middleware())
	r.GET("/boom", handler)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestDefaultChainOrder(t *testing.T) {
	log, _ := observedLogger()

	ch := Default(log, "bootapp")
	rs := ch.Resolvers()
	if len(rs) != 3 {
		t.Fatalf("unexpected resolver count: got=%d want=3", len(rs))
	}
	if _, ok := rs[0].(*TypedResolver); !ok {
		t.Fatalf("resolver[0] is %T, want *TypedResolver", rs[0])
	}
	if _, ok := rs[1].(*StatusResolver); !ok {
		t.Fatalf("resolver[1] is %T, want *StatusResolver", rs[1])
	}
	if _, ok := rs[2].(*LogResolver); !ok {
		t.Fatalf("resolver[2] is %T, want *LogResolver", rs[2])
	}
	if ch.Typed() != rs[0] || ch.Status() != rs[1] {
		t.Fatal("chain accessors do not return the chain members")
	}
}

func TestTypedResolverShortCircuitsStatusMapping(t *testing.T) {
	log, _ := observedLogger()
	ch := Default(log, "bootapp")

	// ErrNotFound would map to 404; the registered handler must win.
	ch.Typed().Register(pkgerrors.ErrNotFound, func(c *gin.Context, err error) {
		c.JSON(http.StatusGone, gin.H{"handled": true})
	})

	rec := serve(t, ch, "/boom", func(c *gin.Context) {
		_ = c.Error(pkgerrors.ErrNotFound)
	})

	if rec.Code != http.StatusGone {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusGone)
	}
}

func TestStatusResolverMapsSentinels(t *testing.T) {
	log, _ := observedLogger()
	ch := Default(log, "bootapp")

	rec := serve(t, ch, "/boom", func(c *gin.Context) {
		_ = c.Error(pkgerrors.ErrNotFound)
	})

	if rec.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusNotFound)
	}
	if body := rec.Body.String(); !strings.Contains(body, `"code":"not_found"`) {
		t.Fatalf("missing error code in body: %s", body)
	}
}

func TestStatusResolverHonorsAPIError(t *testing.T) {
	log, _ := observedLogger()
	ch := Default(log, "bootapp")

	rec := serve(t, ch, "/boom", func(c *gin.Context) {
		_ = c.Error(apierr.New(http.StatusTeapot, "teapot", errors.New("short and stout")))
	})

	if rec.Code != http.StatusTeapot {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusTeapot)
	}
	if body := rec.Body.String(); !strings.Contains(body, `"teapot"`) {
		t.Fatalf("missing error code in body: %s", body)
	}
}

func TestFallbackLogsURIWithQueryAndUnknownUser(t *testing.T) {
	log, logs := observedLogger()
	ch := Default(log, "bootapp")

	rec := serve(t, ch, "/boom?flag=1&x=2", func(c *gin.Context) {
		_ = c.Error(errors.New("nobody handles this"))
	})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: got=%d want=500", rec.Code)
	}

	entries := logs.FilterMessage("handler execution resulted in error").All()
	if len(entries) != 1 {
		t.Fatalf("expected one fallback entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.Level != zap.ErrorLevel {
		t.Fatalf("unexpected level: %v", entry.Level)
	}
	if entry.LoggerName != "bootapp" {
		t.Fatalf("unexpected logger name: %q", entry.LoggerName)
	}
	fields := entry.ContextMap()
	if got := fields["uri"]; got != "/boom?flag=1&x=2" {
		t.Fatalf("unexpected uri field: %v", got)
	}
	if got := fields["user"]; got != "unknown" {
		t.Fatalf("unexpected user field: %v", got)
	}
}

func TestFallbackLogsPrincipalName(t *testing.T) {
	log, logs := observedLogger()
	ch := Default(log, "bootapp")

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		ctx := ctxutil.WithPrincipal(c.Request.Context(), &ctxutil.Principal{Name: "ada@example.com"})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	r.Use(ch.Middleware())
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("nobody handles this"))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	entries := logs.FilterMessage("handler execution resulted in error").All()
	if len(entries) != 1 {
		t.Fatalf("expected one fallback entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["user"]; got != "ada@example.com" {
		t.Fatalf("unexpected user field: %v", got)
	}
}

func TestMiddlewareResolvesPanics(t *testing.T) {
	log, logs := observedLogger()
	ch := Default(log, "bootapp")

	rec := serve(t, ch, "/boom", func(c *gin.Context) {
		panic("wires crossed")
	})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: got=%d want=500", rec.Code)
	}
	if logs.FilterMessage("handler execution resulted in error").Len() != 1 {
		t.Fatal("expected the fallback to log the recovered panic")
	}
}

func TestMiddlewareKeepsHandlerResponse(t *testing.T) {
	log, logs := observedLogger()
	ch := Default(log, "bootapp")

	rec := serve(t, ch, "/boom", func(c *gin.Context) {
		c.JSON(http.StatusAccepted, gin.H{"ok": true})
		_ = c.Error(errors.New("already answered"))
	})

	if rec.Code != http.StatusAccepted {
		t.Fatalf("handler response overridden: got=%d want=%d", rec.Code, http.StatusAccepted)
	}
	if logs.Len() != 0 {
		t.Fatal("chain should not run when the handler already responded")
	}
}
