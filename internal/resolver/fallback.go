package resolver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JWT-WWIT/modern-web-app/internal/platform/ctxutil"
	"github.com/JWT-WWIT/modern-web-app/internal/platform/logger"
)

// LogResolver is the last resort: it logs the error at error level and ends
// the request with a bare 500. The error is neither suppressed nor reshaped
// into a payload.
type LogResolver struct {
	log *logger.Logger
}

// NewLogResolver names the logger after the configured service entry point
// so fallback entries attribute to the application that booted the process.
func NewLogResolver(base *logger.Logger, name string) *LogResolver {
	return &LogResolver{log: base.Named(name)}
}

func (r *LogResolver) Resolve(c *gin.Context, err error) bool {
	uri := c.Request.URL.Path
	if q := c.Request.URL.RawQuery; q != "" {
		uri += "?" + q
	}
	user := "unknown"
	if p := ctxutil.GetPrincipal(c.Request.Context()); p != nil && p.Name != "" {
		user = p.Name
	}
	r.log.Error("handler execution resulted in error",
		"uri", uri,
		"user", user,
		"error", err,
	)
	c.AbortWithStatus(http.StatusInternalServerError)
	return true
}
