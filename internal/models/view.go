package models

// Region names, also used as websocket/JSON keys.
const (
	RegionLog        = "log"
	RegionSystemInfo = "system_info"
	RegionEntities   = "entities"
	RegionTasmotaMap = "tasmota_map"
)

// Item is one rendered line of a region. HTML is already escaped.
type Item struct {
	ID    string `json:"id,omitempty"`
	Class string `json:"class"`
	HTML  string `json:"html"`
}

// Region is replaced as a whole on every poll cycle.
type Region struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Prompt is the save-confirmation affordance.
// Submitted is set once a choice was sent for the current prompt.
type Prompt struct {
	Visible   bool `json:"visible"`
	Submitted bool `json:"submitted"`
}

// Message is the generic modal.
type Message struct {
	Visible bool   `json:"visible"`
	Text    string `json:"text"`
}

// Section is a collapsible panel driven by two DOM ids.
type Section struct {
	ContentID string `json:"content_id"`
	IconID    string `json:"icon_id"`
	Expanded  bool   `json:"expanded"`
}

// ContentClass returns the class list suffix for the content element.
func (s Section) ContentClass() string {
	if s.Expanded {
		return "expanded"
	}
	return ""
}

// IconClass returns the class list suffix for the icon element.
func (s Section) IconClass() string {
	if s.Expanded {
		return "rotated"
	}
	return ""
}

// View is a full snapshot of the dashboard.
type View struct {
	Version    uint64             `json:"version"`
	Log        Region             `json:"log"`
	SystemInfo Region             `json:"system_info"`
	Entities   Region             `json:"entities"`
	TasmotaMap Region             `json:"tasmota_map"`
	Prompt     Prompt             `json:"prompt"`
	Message    Message            `json:"message"`
	Sections   map[string]Section `json:"sections"`
}
