package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"home_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid = "invalid 'from' time; use RFC3339, 'YYYY-MM-DD HH:MM:SS' or YYYY-MM-DD"
	errToInvalid   = "invalid 'to' time; use RFC3339, 'YYYY-MM-DD HH:MM:SS' or YYYY-MM-DD"
	errRange       = "'from' must be <= 'to'"
	errHistory     = "failed to load history"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// isDateOnly reports whether the query string represents a date without time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}

// @Summary      List operator history
// @Description  Filter by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). A date-only 'to' is the end of that day.
// @Tags         history
// @Produce      json
// @Param        from  query     string  false  "Start of range"  example(2025-08-01)
// @Param        to    query     string  false  "End of range; date-only means end of day"  example(2025-08-31)
// @Param        type  query     string  false  "Entry type"  Enums(COMMAND,REPLY,SAVE_CHOICE,ERROR)
// @Success      200   {object}  map[string]interface{}  "count, entries"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/history [get]
// @Security     BearerAuth
func (h *Handler) getHistory(c *gin.Context) {
	var (
		from, to  time.Time
		entryType = strings.ToUpper(strings.TrimSpace(c.Query("type")))
		err       error
	)
	if qs := c.Query("from"); qs != "" {
		if from, err = parseQueryTime(qs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		if to, err = parseQueryTime(qs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return
		}
		if isDateOnly(qs) {
			to = to.Add(24*time.Hour - time.Nanosecond).UTC()
		}
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		c.JSON(http.StatusBadRequest, gin.H{"error": errRange})
		return
	}

	entries, err := h.services.History.List(c.Request.Context(), service.HistoryFilter{
		From: from,
		To:   to,
		Type: entryType,
	})
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errHistory, "history_list_failed", err,
			"from", from, "to", to, "type", entryType)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(entries),
		"entries": entries,
	})
}

// parseQueryTime accepts RFC3339, "YYYY-MM-DD HH:MM:SS" and "YYYY-MM-DD", in UTC.
func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time format %q", s)
}
