// internal/handlers/sessions.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mahekpandey/DyslexiaDetection/internal/models"
	"github.com/Mahekpandey/DyslexiaDetection/internal/session"
)

type SessionHandler struct {
	log      *zap.Logger
	manager  *session.Manager
	passages *models.PassageLibrary
}

func NewSessionHandler(log *zap.Logger, manager *session.Manager, passages *models.PassageLibrary) *SessionHandler {
	return &SessionHandler{log: log, manager: manager, passages: passages}
}

// Create handles POST /api/sessions.
func (h *SessionHandler) Create(c *gin.Context) {
	s := h.manager.Create()
	c.JSON(http.StatusCreated, gin.H{
		"session_id": s.ID.String(),
		"state":      s.State(),
	})
}

// CalibrationStart handles POST /api/sessions/:id/calibration/start.
func (h *SessionHandler) CalibrationStart(c *gin.Context) {
	s, err := h.manager.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := s.StartCalibration(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Status())
}

// CalibrationNext handles POST /api/sessions/:id/calibration/next.
func (h *SessionHandler) CalibrationNext(c *gin.Context) {
	s, err := h.manager.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	done, err := s.NextCalibrationPoint()
	if err != nil {
		respondError(c, err)
		return
	}
	status := s.Status()
	c.JSON(http.StatusOK, gin.H{"done": done, "status": status})
}

type readingStartRequest struct {
	PassageID string `json:"passage_id"`
	Text      string `json:"text"`
}

// ReadingStart handles POST /api/sessions/:id/reading/start. The body
// names a library passage or carries literal text.
func (h *SessionHandler) ReadingStart(c *gin.Context) {
	s, err := h.manager.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	var req readingStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind reading start request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	passage := models.Passage{ID: req.PassageID, Text: req.Text}
	if req.PassageID != "" {
		found, ok := h.passages.Find(req.PassageID)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown passage id"})
			return
		}
		passage = found
	}

	if err := s.StartReading(passage); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Status())
}

// End handles POST /api/sessions/:id/end.
func (h *SessionHandler) End(c *gin.Context) {
	result, err := h.manager.End(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if result == nil {
		c.JSON(http.StatusOK, gin.H{"state": session.StateIdle})
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": session.StateIdle, "result": result})
}

// Status handles GET /api/sessions/:id/status.
func (h *SessionHandler) Status(c *gin.Context) {
	s, err := h.manager.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Status())
}

// Passages handles GET /api/passages.
func (h *SessionHandler) Passages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"passages": h.passages.Passages})
}

// respondError maps analyzer error kinds onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch models.KindOf(err) {
	case models.ErrSessionNotFound:
		status = http.StatusNotFound
	case models.ErrInvalidTransition:
		status = http.StatusConflict
	case models.ErrMalformedSample, models.ErrDegenerateTimestamp:
		status = http.StatusBadRequest
	}
	if ae, ok := err.(*models.AnalysisError); ok {
		c.JSON(status, gin.H{"error": ae.Message, "kind": ae.Kind})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
