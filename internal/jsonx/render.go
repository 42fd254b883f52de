package jsonx

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

var jsonContentType = []string{"application/json; charset=utf-8"}

// JSON is a gin render that serializes through the shared codec instead of
// gin's default encoder, so handlers and the error resolvers agree on the
// wire shape.
type JSON struct {
	Data interface{}
}

func (r JSON) Render(w http.ResponseWriter) error {
	r.WriteContentType(w)
	buf, err := Marshal(r.Data)
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

func (r JSON) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	if vals := header["Content-Type"]; len(vals) == 0 {
		header["Content-Type"] = jsonContentType
	}
}

// Respond writes payload with the given status using the shared codec.
func Respond(c *gin.Context, status int, payload interface{}) {
	c.Render(status, JSON{Data: payload})
}
