// Package render turns backend payloads into dashboard region items.
//
// Every function returns a complete item list; callers swap it into the view
// in one step, so a region is never partially updated.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"slices"
	"strings"

	dashboard "home_dashboard"
	"home_dashboard/internal/models"

	"github.com/gosimple/slug"
	"github.com/samber/lo"
)

// User-facing strings of the dashboard.
const (
	NoEntitiesText   = "No se han descubierto dispositivos MQTT."
	NoMappingsText   = "No hay mapeos de comandos Tasmota específicos."
	notAvailableText = "N/A"

	classLogEntry   = "log-entry"
	classDeviceItem = "device-list-item"
	classSystemInfo = "text-sm text-gray-300"
)

var itemTemplates = template.Must(template.New("items").Parse(`
{{- define "log" -}}<strong>[{{.Time}}]</strong> {{.Message}}{{- end -}}
{{- define "system" -}}{{.Label}}: {{.Value}}{{- end -}}
{{- define "entity" -}}<strong>{{.Name}}</strong> ({{.ID}})<br>Dominio: {{.Domain}} | Cmd Tópico: {{.Topic}}{{- end -}}
{{- define "mapping" -}}<strong>{{.Name}}</strong> (Mapeado a: {{.ID}})<br>Dominio: {{.Domain}} | Cmd Tópico: {{.Topic}}{{- end -}}
{{- define "text" -}}{{.}}{{- end -}}
`))

func execute(name string, data any) string {
	var buf bytes.Buffer
	if err := itemTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return template.HTMLEscapeString(fmt.Sprint(data))
	}
	return buf.String()
}

func orNA(s string) string {
	if s == "" {
		return notAvailableText
	}
	return s
}

// LogItems renders one item per entry, in order.
// Messages are HTML produced by the backend and are inserted as is.
func LogItems(entries []dashboard.LogEntry) []models.Item {
	return lo.Map(entries, func(e dashboard.LogEntry, _ int) models.Item {
		return LogItem(e)
	})
}

// LogItem renders a single log line.
func LogItem(e dashboard.LogEntry) models.Item {
	return models.Item{
		Class: strings.TrimSpace(classLogEntry + " " + e.Kind),
		HTML: execute("log", struct {
			Time    string
			Message template.HTML
		}{e.Time, template.HTML(e.Message)}),
	}
}

// SystemInfoItems keeps the items whose label starts with prefix.
func SystemInfoItems(items []dashboard.SystemInfoItem, prefix string) []models.Item {
	kept := lo.Filter(items, func(it dashboard.SystemInfoItem, _ int) bool {
		return it.Label != "" && strings.HasPrefix(it.Label, prefix)
	})
	return lo.Map(kept, func(it dashboard.SystemInfoItem, _ int) models.Item {
		return models.Item{
			Class: classSystemInfo,
			HTML: execute("system", struct {
				Label string
				Value string
			}{it.Label, formatValue(it.Value)}),
		}
	})
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return notAvailableText
	case string:
		return t
	case float64, bool:
		return fmt.Sprint(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// EntityItems renders discovered entities sorted by id, or one placeholder.
func EntityItems(entities map[string]dashboard.DiscoveredEntity) []models.Item {
	if len(entities) == 0 {
		return []models.Item{placeholder(NoEntitiesText)}
	}
	ids := sortedKeys(entities)
	return lo.Map(ids, func(id string, _ int) models.Item {
		info := entities[id]
		name := info.Name
		if name == "" {
			name = id
		}
		return models.Item{
			ID:    "entity-" + slug.Make(id),
			Class: classDeviceItem,
			HTML: execute("entity", struct {
				Name, ID, Domain, Topic string
			}{name, id, orNA(info.Domain), orNA(info.CommandTopic)}),
		}
	})
}

// UnsupportedMapping names a tasmota_map entry whose value is not an entity id.
type UnsupportedMapping struct {
	Name string
	Raw  string
}

// TasmotaItems resolves every mapping against the discovered entities.
// Entries that are not entity id strings are reported back and rendered as an
// explicit unsupported line.
func TasmotaItems(mapping map[string]json.RawMessage, entities map[string]dashboard.DiscoveredEntity) ([]models.Item, []UnsupportedMapping) {
	if len(mapping) == 0 {
		return []models.Item{placeholder(NoMappingsText)}, nil
	}

	var unsupported []UnsupportedMapping
	items := make([]models.Item, 0, len(mapping))
	for _, name := range sortedKeys(mapping) {
		raw := mapping[name]
		var entityID string
		if err := json.Unmarshal(raw, &entityID); err != nil {
			unsupported = append(unsupported, UnsupportedMapping{Name: name, Raw: string(raw)})
			items = append(items, textItem("mapping-"+slug.Make(name),
				fmt.Sprintf("Mapeo: %s (formato no soportado)", name)))
			continue
		}

		info, ok := entities[entityID]
		if !ok {
			items = append(items, textItem("mapping-"+slug.Make(name),
				fmt.Sprintf("Mapeo: %s -> %s (Entidad no encontrada)", name, entityID)))
			continue
		}
		items = append(items, models.Item{
			ID:    "mapping-" + slug.Make(name),
			Class: classDeviceItem,
			HTML: execute("mapping", struct {
				Name, ID, Domain, Topic string
			}{name, entityID, orNA(info.Domain), orNA(info.CommandTopic)}),
		})
	}
	return items, unsupported
}

func placeholder(text string) models.Item {
	return textItem("", text)
}

func textItem(id, text string) models.Item {
	return models.Item{ID: id, Class: classDeviceItem, HTML: execute("text", text)}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}
