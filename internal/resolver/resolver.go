// Package resolver translates errors that escape a handler into HTTP
// responses. Resolvers are tried in registration order; the first one that
// produces a response wins.
package resolver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JWT-WWIT/modern-web-app/internal/platform/logger"
)

// Resolver attempts to turn err into a response on c. It reports whether it
// produced one; a false return hands the error to the next resolver.
type Resolver interface {
	Resolve(c *gin.Context, err error) bool
}

// Chain runs resolvers in fixed order.
type Chain struct {
	resolvers []Resolver
}

func NewChain(resolvers ...Resolver) *Chain {
	return &Chain{resolvers: resolvers}
}

// Default assembles the standard chain: registered per-type handlers first,
// then status-coded errors, then the logging fallback named after the
// service entry point. The fallback always produces a response.
func Default(log *logger.Logger, serviceName string) *Chain {
	return NewChain(
		NewTypedResolver(),
		NewStatusResolver(),
		NewLogResolver(log, serviceName),
	)
}

// Resolvers returns the chain members in order.
func (ch *Chain) Resolvers() []Resolver {
	out := make([]Resolver, len(ch.resolvers))
	copy(out, ch.resolvers)
	return out
}

// Typed returns the chain's typed resolver, or nil if it has none.
func (ch *Chain) Typed() *TypedResolver {
	for _, r := range ch.resolvers {
		if t, ok := r.(*TypedResolver); ok {
			return t
		}
	}
	return nil
}

// Status returns the chain's status resolver, or nil if it has none.
func (ch *Chain) Status() *StatusResolver {
	for _, r := range ch.resolvers {
		if s, ok := r.(*StatusResolver); ok {
			return s
		}
	}
	return nil
}

func (ch *Chain) Resolve(c *gin.Context, err error) bool {
	for _, r := range ch.resolvers {
		if r.Resolve(c, err) {
			return true
		}
	}
	return false
}

// Middleware wires the chain over handler errors and recovered panics.
// Handlers report failures with c.Error(err); a handler that already wrote a
// response keeps it.
func (ch *Chain) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("recovered from panic: %v", rec)
				}
				if !ch.Resolve(c, err) {
					c.AbortWithStatus(http.StatusInternalServerError)
				}
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		if !ch.Resolve(c, err) {
			c.AbortWithStatus(http.StatusInternalServerError)
		}
	}
}
