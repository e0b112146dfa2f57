package handlers

import (
	"errors"
	"net/http"

	"home_dashboard/internal/backend"
	"home_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK      = "ok"
	statusSent    = "sent"
	statusIgnored = "ignored"
	statusClosed  = "closed"

	errBackendUnavailable = "backend unavailable"
	errCommandFailed      = "failed to send command"
	errSaveChoiceFailed   = "failed to send save choice"
	errToggleFailed       = "failed to toggle section"
	errPollFailed         = "poll failed"
	errInvalidBodyPref    = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...any) {
	if h.log != nil && err != nil {
		fields := append([]any{"err", err}, kv...)
		if id, ok := c.Get(operatorCtxKey); ok {
			fields = append(fields, "operator_id", id)
		}
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// backendStatus maps a failed backend call to an HTTP status and message.
func backendStatus(err error, fallback string) (int, string) {
	var ne *backend.NetworkError
	if errors.As(err, &ne) {
		return http.StatusBadGateway, errBackendUnavailable
	}
	return http.StatusInternalServerError, fallback
}

// CommandRequest is the body of POST /api/v1/commands.
type CommandRequest struct {
	// Free text command for the assistant
	Command string `json:"command" example:"enciende la luz del salón"`
}

// SaveChoiceRequest is the body of POST /api/v1/confirmation.
type SaveChoiceRequest struct {
	// Allowed: yes, no
	Choice string `json:"choice" binding:"required" example:"yes"`
}

// ToggleSectionRequest is the body of POST /api/v1/sections/toggle.
type ToggleSectionRequest struct {
	ContentID string `json:"content_id" binding:"required" example:"entities-content"`
	IconID    string `json:"icon_id" binding:"required" example:"entities-icon"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Current view
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  models.View
// @Router       /api/v1/view [get]
func (h *Handler) getView(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.View.Snapshot())
}

// @Summary      Submit command
// @Description  Empty commands are rejected without contacting the backend.
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        body  body      CommandRequest  true  "Command payload"
// @Success      200   {object}  map[string]interface{}  "status, response"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/v1/commands [post]
// @Security     BearerAuth
func (h *Handler) submitCommand(c *gin.Context) {
	var req CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	resp, err := h.services.Commands.Submit(c.Request.Context(), req.Command)
	if err != nil {
		if errors.Is(err, service.ErrEmptyCommand) {
			c.JSON(http.StatusBadRequest, gin.H{"error": service.MsgEmptyCommand})
			return
		}
		code, msg := backendStatus(err, errCommandFailed)
		h.logAndJSONError(c, code, msg, "api_command_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusSent, "response": resp})
}

// @Summary      Answer the save prompt
// @Description  Only the first choice of a prompt is sent; later ones answer status=ignored.
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        body  body      SaveChoiceRequest  true  "Choice payload"
// @Success      200   {object}  map[string]interface{}  "status, message"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/v1/confirmation [post]
// @Security     BearerAuth
func (h *Handler) confirmSave(c *gin.Context) {
	var req SaveChoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	resp, err := h.services.Confirmation.Choose(c.Request.Context(), req.Choice)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": statusSent, "message": resp.Message})
	case errors.Is(err, service.ErrAlreadySubmitted):
		c.JSON(http.StatusOK, gin.H{"status": statusIgnored})
	case errors.Is(err, service.ErrInvalidChoice):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		code, msg := backendStatus(err, errSaveChoiceFailed)
		h.logAndJSONError(c, code, msg, "api_save_choice_failed", err, "choice", req.Choice)
	}
}

// @Summary      Close the message modal
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/message/close [post]
// @Security     BearerAuth
func (h *Handler) closeMessage(c *gin.Context) {
	h.services.View.CloseMessage()
	c.JSON(http.StatusOK, gin.H{"status": statusClosed})
}

// @Summary      Toggle a collapsible section
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        body  body      ToggleSectionRequest  true  "Section ids"
// @Success      200   {object}  models.Section
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/sections/toggle [post]
// @Security     BearerAuth
func (h *Handler) toggleSection(c *gin.Context) {
	var req ToggleSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	sec, err := h.services.Sections.Toggle(c.Request.Context(), req.ContentID, req.IconID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSection) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errToggleFailed, "api_toggle_section_failed", err,
			"content_id", req.ContentID)
		return
	}
	c.JSON(http.StatusOK, sec)
}

// @Summary      Poll the backend once
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  models.View
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/poll [post]
// @Security     BearerAuth
func (h *Handler) pollNow(c *gin.Context) {
	if err := h.services.Poller.Step(c.Request.Context()); err != nil {
		code, msg := backendStatus(err, errPollFailed)
		h.logAndJSONError(c, code, msg, "api_poll_failed", err)
		return
	}
	c.JSON(http.StatusOK, h.services.View.Snapshot())
}
