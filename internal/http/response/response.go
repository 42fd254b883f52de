package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JWT-WWIT/modern-web-app/internal/jsonx"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func Error(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	jsonx.Respond(c, status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func OK(c *gin.Context, payload interface{}) {
	jsonx.Respond(c, http.StatusOK, payload)
}

func Created(c *gin.Context, payload interface{}) {
	jsonx.Respond(c, http.StatusCreated, payload)
}
