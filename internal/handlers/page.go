package handlers

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"home_dashboard/internal/models"

	"github.com/gin-gonic/gin"
)

//go:embed web
var webFS embed.FS

const pageTemplate = "dashboard.html"

var pageFuncs = template.FuncMap{
	// Items are escaped when rendered; the page inserts them as is.
	"safe": func(s string) template.HTML { return template.HTML(s) },
}

// sidePanel is one collapsible panel of the side column.
type sidePanel struct {
	Title   string
	ListID  string
	List    bool
	Section models.Section
	Items   []models.Item
}

type pageData struct {
	View       models.View
	Panels     []sidePanel
	WSInterval string
}

// defaultSections are the panels of the page with their DOM ids.
var defaultSections = []struct {
	title, listID string
	list          bool
	section       models.Section
}{
	{"Información del sistema", "system-info-section", false, models.Section{ContentID: "system-info-content", IconID: "system-info-icon"}},
	{"Dispositivos descubiertos", "discovered-entities-list", true, models.Section{ContentID: "entities-content", IconID: "entities-icon"}},
	{"Mapeo de comandos Tasmota", "tasmota-map-list", true, models.Section{ContentID: "tasmota-content", IconID: "tasmota-icon"}},
}

func buildPanels(v models.View) []sidePanel {
	regions := [][]models.Item{v.SystemInfo.Items, v.Entities.Items, v.TasmotaMap.Items}
	panels := make([]sidePanel, 0, len(defaultSections))
	for i, d := range defaultSections {
		sec := d.section
		if stored, ok := v.Sections[sec.ContentID]; ok {
			sec.Expanded = stored.Expanded
		}
		panels = append(panels, sidePanel{
			Title:   d.title,
			ListID:  d.listID,
			List:    d.list,
			Section: sec,
			Items:   regions[i],
		})
	}
	return panels
}

func parsePageTemplate() *template.Template {
	return template.Must(template.New("").Funcs(pageFuncs).ParseFS(webFS, "web/*.html"))
}

func staticFS() http.FileSystem {
	sub, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// @Summary      Dashboard page
// @Tags         dashboard
// @Produce      html
// @Success      200  {string}  string  "HTML page"
// @Router       / [get]
func (h *Handler) page(c *gin.Context) {
	v := h.services.View.Snapshot()
	c.HTML(http.StatusOK, pageTemplate, pageData{
		View:       v,
		Panels:     buildPanels(v),
		WSInterval: h.wsInterval.String(),
	})
}
