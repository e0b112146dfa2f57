package home_dashboard

import "encoding/json"

// Backend endpoints consumed by the dashboard.
const (
	PathState       = "/obtener_log"
	PathCommand     = "/enviar_comando"
	PathConfirmSave = "/confirm_save"
)

// Save choices accepted by the backend.
const (
	ChoiceYes = "yes"
	ChoiceNo  = "no"
)

// LogEntry is one line of the assistant console as the backend sends it.
type LogEntry struct {
	Time    string `json:"tiempo"`
	Kind    string `json:"tipo"`             // used as a CSS class: info | comando | ia | error | warning
	Source  string `json:"fuente,omitempty"` // User | AI | System
	Message string `json:"mensaje"`          // HTML
}

// SystemInfoItem is a {label, value} pair from estado_red.
type SystemInfoItem struct {
	Label string `json:"tipo"`
	Value any    `json:"valor"`
}

// DiscoveredEntity mirrors an entity discovered by the backend over MQTT.
type DiscoveredEntity struct {
	Name         string `json:"name,omitempty"`
	Domain       string `json:"domain,omitempty"`
	CommandTopic string `json:"command_topic,omitempty"`
}

// StateResponse is the body of GET /obtener_log.
//
// TasmotaMap values are kept raw: the canonical shape is an entity id string,
// anything else is reported as unsupported by the renderer.
type StateResponse struct {
	Log                []LogEntry                  `json:"log"`
	SystemState        []SystemInfoItem            `json:"estado_red"`
	DiscoveredEntities map[string]DiscoveredEntity `json:"discovered_entities,omitempty"`
	TasmotaMap         map[string]json.RawMessage  `json:"tasmota_map,omitempty"`
	ShouldOfferToSave  *bool                       `json:"should_offer_to_save,omitempty"`
}

// CommandRequest is the body of POST /enviar_comando.
type CommandRequest struct {
	Command string `json:"comando"`
}

// CommandResponse is the reply of POST /enviar_comando.
type CommandResponse struct {
	ResponseText      string `json:"response_text"`
	ShouldOfferToSave bool   `json:"should_offer_to_save"`
}

// SaveChoiceRequest is the body of POST /confirm_save.
type SaveChoiceRequest struct {
	Choice string `json:"choice"`
}

// SaveChoiceResponse is the reply of POST /confirm_save.
type SaveChoiceResponse struct {
	Message string `json:"message"`
}
