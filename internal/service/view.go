package service

import (
	"maps"
	"slices"
	"sync"

	"home_dashboard/internal/models"
)

// ViewStore owns the dashboard state shared by the poller, the command
// services and the websocket writers.
type ViewStore struct {
	mu   sync.RWMutex
	view models.View
	subs map[chan struct{}]struct{}
}

func NewViewStore() *ViewStore {
	return &ViewStore{
		view: models.View{
			Log:        models.Region{Name: models.RegionLog},
			SystemInfo: models.Region{Name: models.RegionSystemInfo},
			Entities:   models.Region{Name: models.RegionEntities},
			TasmotaMap: models.Region{Name: models.RegionTasmotaMap},
			Sections:   map[string]models.Section{},
		},
		subs: make(map[chan struct{}]struct{}),
	}
}

// Snapshot returns a copy that is safe to read without the lock.
func (s *ViewStore) Snapshot() models.View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := s.view
	v.Log.Items = slices.Clone(v.Log.Items)
	v.SystemInfo.Items = slices.Clone(v.SystemInfo.Items)
	v.Entities.Items = slices.Clone(v.Entities.Items)
	v.TasmotaMap.Items = slices.Clone(v.TasmotaMap.Items)
	v.Sections = maps.Clone(v.Sections)
	return v
}

// Subscribe returns a channel signalled after every change and a func that
// unsubscribes. Signals are coalesced: a slow reader sees one pending signal.
func (s *ViewStore) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, ch)
			s.mu.Unlock()
		})
	}
}

// update runs fn under the write lock, bumps the version and notifies.
func (s *ViewStore) update(fn func(v *models.View)) {
	s.mu.Lock()
	fn(&s.view)
	s.view.Version++
	s.notifyLocked()
	s.mu.Unlock()
}

func (s *ViewStore) notifyLocked() {
	for ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// ReplaceRegions swaps all four regions in one step. A non-nil offer is
// applied to the save prompt in the same step.
func (s *ViewStore) ReplaceRegions(log, systemInfo, entities, tasmota []models.Item, offer *bool) {
	s.update(func(v *models.View) {
		v.Log.Items = log
		v.SystemInfo.Items = systemInfo
		v.Entities.Items = entities
		v.TasmotaMap.Items = tasmota
		if offer != nil {
			applyOffer(&v.Prompt, *offer)
		}
	})
}

// AppendLog adds a line at the end of the log region.
func (s *ViewStore) AppendLog(items ...models.Item) {
	if len(items) == 0 {
		return
	}
	s.update(func(v *models.View) {
		// never append into a slice a snapshot may share
		next := make([]models.Item, 0, len(v.Log.Items)+len(items))
		next = append(next, v.Log.Items...)
		v.Log.Items = append(next, items...)
	})
}

func (s *ViewStore) ShowMessage(text string) {
	s.update(func(v *models.View) {
		v.Message = models.Message{Visible: true, Text: text}
	})
}

func (s *ViewStore) CloseMessage() {
	s.update(func(v *models.View) {
		v.Message.Visible = false
	})
}

// OfferPrompt applies the backend's should_offer_to_save flag.
func (s *ViewStore) OfferPrompt(offer bool) {
	s.update(func(v *models.View) {
		applyOffer(&v.Prompt, offer)
	})
}

// applyOffer is the prompt state machine:
// Hidden -> AwaitingChoice on an offer, with the submitted flag reset;
// AwaitingChoice -> Hidden when the flag comes back false.
// An offer while already awaiting a choice keeps the state.
func applyOffer(p *models.Prompt, offer bool) {
	switch {
	case offer && !p.Visible:
		p.Visible = true
		p.Submitted = false
	case !offer:
		p.Visible = false
	}
}

// BeginChoice marks the current prompt as answered and hides it.
// It reports false when a choice was already submitted for this prompt.
func (s *ViewStore) BeginChoice() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view.Prompt.Submitted {
		return false
	}
	s.view.Prompt = models.Prompt{Visible: false, Submitted: true}
	s.view.Version++
	s.notifyLocked()
	return true
}

// Section returns the state of a panel, collapsed when unknown.
func (s *ViewStore) Section(contentID string) (models.Section, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sec, ok := s.view.Sections[contentID]
	return sec, ok
}

func (s *ViewStore) SetSections(sections ...models.Section) {
	s.update(func(v *models.View) {
		for _, sec := range sections {
			v.Sections[sec.ContentID] = sec
		}
	})
}
