package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/JWT-WWIT/modern-web-app/internal/http/response"
	"github.com/JWT-WWIT/modern-web-app/internal/platform/apierr"
	"github.com/JWT-WWIT/modern-web-app/internal/platform/ctxutil"
	"github.com/JWT-WWIT/modern-web-app/internal/services"
)

type NoteHandler struct {
	notes services.NoteService
}

func NewNoteHandler(notes services.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

type createNoteRequest struct {
	Title string `json:"title" validate:"required,max=200"`
	Body  string `json:"body"`
}

func (h *NoteHandler) CreateNote(c *gin.Context) {
	principal := ctxutil.GetPrincipal(c.Request.Context())
	if principal == nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apierr.New(http.StatusBadRequest, "bad_request", err))
		return
	}
	note, err := h.notes.Create(c.Request.Context(), principal.UserID, req.Title, req.Body)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Created(c, note)
}

func (h *NoteHandler) GetNote(c *gin.Context) {
	principal := ctxutil.GetPrincipal(c.Request.Context())
	if principal == nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(apierr.New(http.StatusBadRequest, "bad_request", err))
		return
	}
	note, err := h.notes.Get(c.Request.Context(), principal.UserID, noteID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, note)
}

func (h *NoteHandler) ListNotes(c *gin.Context) {
	principal := ctxutil.GetPrincipal(c.Request.Context())
	if principal == nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	notes, err := h.notes.List(c.Request.Context(), principal.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.OK(c, notes)
}

func (h *NoteHandler) DeleteNote(c *gin.Context) {
	principal := ctxutil.GetPrincipal(c.Request.Context())
	if principal == nil {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	noteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		_ = c.Error(apierr.New(http.StatusBadRequest, "bad_request", err))
		return
	}
	if err := h.notes.Delete(c.Request.Context(), principal.UserID, noteID); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
