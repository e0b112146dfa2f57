package service

import (
	"time"

	"home_dashboard/internal/config"
)

// User-facing messages.
const (
	MsgEmptyCommand  = "Por favor, introduce un comando."
	MsgCommandFailed = "Error de comunicación con el servidor. Revisa la consola."
	MsgPollFailed    = "Error al cargar el log o el estado del sistema. Revisa la consola para más detalles."
	fmtCommandFailed = "Error de comunicación: %v"
	fmtPollFailed    = "Error al conectar con el servidor: %v"
	fmtSaveFailed    = "Error al enviar elección de guardado: %v"
	logTimeLayout    = "2006-01-02 15:04:05"
	kindCommand      = "comando"
	kindReply        = "ia"
	kindError        = "error"
	sourceUser       = "User"
	sourceAI         = "AI"
	sourceSystem     = "System"
)

// Settings are the behaviour switches of the services.
type Settings struct {
	SystemInfoPrefix string
	ErrorPolicy      string // silent | surface
	AppendReply      bool
	SigningKey       string
	TokenTTL         time.Duration
}

// SettingsFromConfig picks the service settings out of the loaded config.
func SettingsFromConfig(c *config.Config) Settings {
	return Settings{
		SystemInfoPrefix: c.SystemInfo.Prefix,
		ErrorPolicy:      c.Poll.ErrorPolicy,
		AppendReply:      c.Commands.AppendReply,
		SigningKey:       c.Auth.SigningKey,
		TokenTTL:         c.Auth.TokenTTL,
	}
}

// HistoryFilter supports history filtering by time range and type.
type HistoryFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "COMMAND", "REPLY", "SAVE_CHOICE", "ERROR"
}
