package models

import "time"

// History entry types.
const (
	HistoryCommand    = "COMMAND"
	HistoryReply      = "REPLY"
	HistorySaveChoice = "SAVE_CHOICE"
	HistoryError      = "ERROR"
)

// HistoryEntry is a single operator interaction.
type HistoryEntry struct {
	EntryID     string    `json:"entry_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // COMMAND | REPLY | SAVE_CHOICE | ERROR
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
