package http

import (
	nethttp "net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// registerStaticFallback serves files from dir for routes nothing else
// claimed, with index.html as the fallback document so client-side routing
// keeps working. API paths stay JSON 404s.
func registerStaticFallback(r *gin.Engine, dir string) {
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != nethttp.MethodGet && c.Request.Method != nethttp.MethodHead {
			c.AbortWithStatus(nethttp.StatusNotFound)
			return
		}
		reqPath := path.Clean("/" + c.Request.URL.Path)
		if strings.HasPrefix(reqPath, "/api/") || reqPath == "/api" {
			c.AbortWithStatusJSON(nethttp.StatusNotFound, gin.H{
				"error": gin.H{"message": "route not found", "code": "not_found"},
			})
			return
		}

		full := filepath.Join(dir, filepath.FromSlash(reqPath))
		if fi, err := os.Stat(full); err == nil && !fi.IsDir() {
			c.File(full)
			return
		}

		index := filepath.Join(dir, "index.html")
		if _, err := os.Stat(index); err == nil {
			c.File(index)
			return
		}
		c.AbortWithStatus(nethttp.StatusNotFound)
	})
}
