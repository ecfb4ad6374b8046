package handlers

import (
	"net/http"
	"time"

	"medcart-agent/agent"
	"medcart-agent/catalog"
	apperrors "medcart-agent/errors"
	"medcart-agent/web/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ChatHandler struct {
	agent    *agent.Agent
	sessions *agent.SessionManager
	snapshot *catalog.Snapshot
	logger   *zap.Logger
}

func NewChatHandler(a *agent.Agent, sessions *agent.SessionManager, snapshot *catalog.Snapshot, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		agent:    a,
		sessions: sessions,
		snapshot: snapshot,
		logger:   logger,
	}
}

// Chat handles POST /chat: one user message in, one recommendation out.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Detail: "message is required"})
		return
	}

	sessionID := c.MustGet("sessionID").(uuid.UUID)
	conv := h.sessions.Conversation(sessionID)

	start := time.Now()
	response, err := h.agent.Respond(c.Request.Context(), conv, req.Message)
	if err != nil {
		status := http.StatusInternalServerError
		if apperrors.IsCatalogNotReady(err) {
			status = http.StatusServiceUnavailable
		}
		h.logger.Error("Chat request failed",
			zap.String("session_id", sessionID.String()),
			zap.Error(err))
		c.JSON(status, types.ErrorResponse{Detail: err.Error()})
		return
	}

	c.JSON(http.StatusOK, types.ChatResponse{
		Response:       response,
		ProcessingTime: time.Since(start).Seconds(),
	})
}

// Reset handles POST /reset: clears the calling session's conversation state.
func (h *ChatHandler) Reset(c *gin.Context) {
	sessionID := c.MustGet("sessionID").(uuid.UUID)
	h.sessions.Reset(sessionID)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Health handles GET /health.
func (h *ChatHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"data_loaded": h.snapshot.Loaded(),
	})
}
