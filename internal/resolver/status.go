package resolver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/JWT-WWIT/modern-web-app/internal/http/response"
	"github.com/JWT-WWIT/modern-web-app/internal/platform/apierr"
	pkgerrors "github.com/JWT-WWIT/modern-web-app/internal/pkg/errors"
)

// StatusCoder is implemented by errors that know which HTTP status they map
// to.
type StatusCoder interface {
	HTTPStatus() int
}

type statusMapping struct {
	target error
	status int
}

// StatusResolver maps errors to bare status responses: apierr values and
// StatusCoder implementations first, then registered sentinel mappings in
// registration order.
type StatusResolver struct {
	mappings []statusMapping
}

func NewStatusResolver() *StatusResolver {
	r := &StatusResolver{}
	r.Map(pkgerrors.ErrInvalidArgument, http.StatusBadRequest)
	r.Map(pkgerrors.ErrUnauthorized, http.StatusUnauthorized)
	r.Map(pkgerrors.ErrNotFound, http.StatusNotFound)
	r.Map(pkgerrors.ErrConflict, http.StatusConflict)
	return r
}

// Map registers a sentinel-to-status mapping matched via errors.Is.
func (r *StatusResolver) Map(target error, status int) {
	if target == nil || status == 0 {
		return
	}
	r.mappings = append(r.mappings, statusMapping{target: target, status: status})
}

func (r *StatusResolver) Resolve(c *gin.Context, err error) bool {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) && apiErr.Status != 0 {
		respond(c, apiErr.Status, apiErr.Code, err)
		return true
	}

	var sc StatusCoder
	if errors.As(err, &sc) {
		if status := sc.HTTPStatus(); status != 0 {
			respond(c, status, "", err)
			return true
		}
	}

	for _, m := range r.mappings {
		if errors.Is(err, m.target) {
			respond(c, m.status, "", err)
			return true
		}
	}
	return false
}

func respond(c *gin.Context, status int, code string, err error) {
	if code == "" {
		code = codeFromStatus(status)
	}
	response.Error(c, status, code, err)
	c.Abort()
}

func codeFromStatus(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "error"
	}
	return strings.ReplaceAll(strings.ToLower(text), " ", "_")
}
