package service

import (
	"context"
	"fmt"
	"html"
	"time"

	dashboard "home_dashboard"
	"home_dashboard/internal/config"
	"home_dashboard/internal/logger"
	"home_dashboard/internal/metrics"
	"home_dashboard/internal/render"
)

// PollerService refreshes the view from GET /obtener_log.
type PollerService struct {
	backend Backend
	view    *ViewStore
	prefix  string
	policy  string
	log     *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewPollerService(b Backend, view *ViewStore, st Settings, log *logger.Logger, m *metrics.Metrics) *PollerService {
	if log == nil {
		log = logger.Nop()
	}
	return &PollerService{
		backend: b,
		view:    view,
		prefix:  st.SystemInfoPrefix,
		policy:  st.ErrorPolicy,
		log:     log,
		metrics: m,
		now:     time.Now,
	}
}

// Run performs one step right away, then one per tick until ctx is canceled.
// Ticks that fire while a step is running are dropped.
func (p *PollerService) Run(ctx context.Context, interval time.Duration) {
	_ = p.Step(ctx)

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			_ = p.Step(ctx)
		}
	}
}

// Step fetches the backend state once and swaps every region in one update.
func (p *PollerService) Step(ctx context.Context) error {
	start := p.now()

	resp, err := p.backend.FetchState(ctx)
	if err != nil {
		p.metrics.ObservePoll(metrics.ResultError, p.now().Sub(start))
		if ctx.Err() != nil {
			return err
		}
		p.log.Errorw("poll_failed", "error", err)
		if p.policy == config.PolicySurface {
			p.view.ShowMessage(MsgPollFailed)
			p.view.AppendLog(render.LogItem(systemLine(p.now(), fmt.Sprintf(fmtPollFailed, err))))
		}
		return err
	}

	tasmota, unsupported := render.TasmotaItems(resp.TasmotaMap, resp.DiscoveredEntities)
	for _, u := range unsupported {
		p.log.Warnw("tasmota_mapping_unsupported", "name", u.Name, "value", u.Raw)
	}

	p.view.ReplaceRegions(
		render.LogItems(resp.Log),
		render.SystemInfoItems(resp.SystemState, p.prefix),
		render.EntityItems(resp.DiscoveredEntities),
		tasmota,
		resp.ShouldOfferToSave,
	)

	p.metrics.ObservePoll(metrics.ResultOK, p.now().Sub(start))
	p.log.Debugw("poll_ok",
		"log_entries", len(resp.Log),
		"entities", len(resp.DiscoveredEntities),
		"mappings", len(resp.TasmotaMap),
	)
	return nil
}

// systemLine is an error/System log line. msg is plain text.
func systemLine(at time.Time, msg string) dashboard.LogEntry {
	return dashboard.LogEntry{
		Time:    at.Format(logTimeLayout),
		Kind:    kindError,
		Source:  sourceSystem,
		Message: html.EscapeString(msg),
	}
}
