package resolver

import (
	"errors"

	"github.com/gin-gonic/gin"
)

// HandlerFunc renders a response for an error it was registered against.
type HandlerFunc func(c *gin.Context, err error)

type registration struct {
	match  func(error) bool
	handle HandlerFunc
}

// TypedResolver dispatches to handler funcs registered per error value or
// per match predicate. Registration order decides precedence.
type TypedResolver struct {
	registrations []registration
}

func NewTypedResolver() *TypedResolver {
	return &TypedResolver{}
}

// Register binds handle to errors matching target via errors.Is.
func (r *TypedResolver) Register(target error, handle HandlerFunc) {
	r.RegisterMatch(func(err error) bool {
		return errors.Is(err, target)
	}, handle)
}

// RegisterMatch binds handle to errors satisfying match. Useful with
// errors.As for concrete error types.
func (r *TypedResolver) RegisterMatch(match func(error) bool, handle HandlerFunc) {
	if match == nil || handle == nil {
		return
	}
	r.registrations = append(r.registrations, registration{match: match, handle: handle})
}

func (r *TypedResolver) Resolve(c *gin.Context, err error) bool {
	for _, reg := range r.registrations {
		if reg.match(err) {
			reg.handle(c, err)
			c.Abort()
			return true
		}
	}
	return false
}
