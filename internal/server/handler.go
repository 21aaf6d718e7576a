package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fsbot/internal/logging"
)

type SessionHandler struct {
	store *Store
}

func NewSessionHandler(store *Store) *SessionHandler {
	return &SessionHandler{store: store}
}

func (h *SessionHandler) Create(c *gin.Context) {
	s, err := h.store.Create(c.Request.Context())
	if err != nil {
		logging.Get(logging.CategoryAPI).Error("create session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, CreateSessionResponse{
		ID:               s.ID(),
		CurrentDirectory: s.CurrentDirectory(),
		CreatedAt:        s.Created(),
	})
}

func (h *SessionHandler) Utterance(c *gin.Context) {
	s, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	var req UtteranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logging.APIDebug("invalid utterance body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	turn := s.Handle(c.Request.Context(), *req.Text)
	c.JSON(http.StatusOK, UtteranceResponse{
		Reply:  turn.Reply,
		Intent: turn.Intent.String(),
	})
}

func (h *SessionHandler) Transcript(c *gin.Context) {
	s, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	c.JSON(http.StatusOK, ToTranscriptResponse(s.ID(), s.Transcript()))
}

func (h *SessionHandler) Delete(c *gin.Context) {
	if !h.store.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
