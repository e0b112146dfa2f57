package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"home_dashboard/internal/models"
)

// fakeHistoryRepo is a minimal stub that satisfies the repository.HistoryRepo interface.
type fakeHistoryRepo struct {
	mu        sync.Mutex
	appends   []models.HistoryEntry
	appendErr error

	// captured inputs
	gotCtx  context.Context
	gotFrom time.Time
	gotTo   time.Time
	gotType string

	// configured outputs
	entries []models.HistoryEntry
	err     error

	calls int
}

func (f *fakeHistoryRepo) List(ctx context.Context, from, to time.Time, typ string) ([]models.HistoryEntry, error) {
	f.calls++
	f.gotCtx = ctx
	f.gotFrom = from
	f.gotTo = to
	f.gotType = typ
	return f.entries, f.err
}

func (f *fakeHistoryRepo) Append(ctx context.Context, e models.HistoryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appends = append(f.appends, e)
	return f.appendErr
}

func (f *fakeHistoryRepo) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.appends))
	for _, e := range f.appends {
		out = append(out, e.Type)
	}
	return out
}

func fixedZone(name string, offsetSec int) *time.Location {
	return time.FixedZone(name, offsetSec)
}

func mustTimeIn(loc *time.Location, y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, loc)
}

// normalizeToUTC

func Test_normalizeToUTC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want func(time.Time) bool
	}{
		{
			name: "zero time remains zero",
			in:   time.Time{},
			want: func(out time.Time) bool { return out.IsZero() },
		},
		{
			name: "non-UTC converted to UTC preserving instant",
			in:   mustTimeIn(fixedZone("UTC+3", 3*3600), 2025, time.August, 1, 12, 34, 56),
			want: func(out time.Time) bool {
				exp := time.Date(2025, time.August, 1, 9, 34, 56, 0, time.UTC) // 12:34:56+03 == 09:34:56Z
				return out.Location() == time.UTC && out.Equal(exp)
			},
		},
		{
			name: "already UTC stays UTC and same instant",
			in:   time.Date(2025, time.August, 2, 0, 0, 0, 0, time.UTC),
			want: func(out time.Time) bool {
				exp := time.Date(2025, time.August, 2, 0, 0, 0, 0, time.UTC)
				return out.Location() == time.UTC && out.Equal(exp)
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := normalizeToUTC(tc.in)
			if !tc.want(got) {
				t.Fatalf("unexpected normalizeToUTC result: %v (loc=%v)", got, got.Location())
			}
		})
	}
}

// normalizeEntryType

func Test_normalizeEntryType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		exp  string
	}{
		{name: "empty stays empty", in: "", exp: ""},
		{name: "trim spaces", in: "  COMMAND ", exp: "COMMAND"},
		{name: "uppercase", in: "error", exp: "ERROR"},
		{name: "spaces preserved except ends", in: " save_choice ", exp: "SAVE_CHOICE"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			got := normalizeEntryType(c.in)
			if got != c.exp {
				t.Fatalf("normalizeEntryType(%q) = %q; want %q", c.in, got, c.exp)
			}
		})
	}
}

// normalizeAndValidateFilter

func Test_normalizeAndValidateFilter(t *testing.T) {
	t.Parallel()

	fromLocal := mustTimeIn(fixedZone("UTC+2", 2*3600), 2025, time.September, 10, 10, 0, 0)
	toUTC := time.Date(2025, time.September, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		in       HistoryFilter
		wantFrom time.Time
		wantTo   time.Time
		wantType string
		wantErr  error
	}{
		{
			name:     "all zero/empty ok",
			in:       HistoryFilter{},
			wantFrom: time.Time{},
			wantTo:   time.Time{},
			wantType: "",
			wantErr:  nil,
		},
		{
			name: "from after to -> error",
			in: HistoryFilter{
				From: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC),
				Type: "reply",
			},
			wantErr: errInvalidTimeRange,
		},
		{
			name: "normalize tz and type",
			in: HistoryFilter{
				From: fromLocal,
				To:   toUTC,
				Type: " reply ",
			},
			wantFrom: time.Date(2025, time.September, 10, 8, 0, 0, 0, time.UTC), // 10:00 +02 -> 08:00Z
			wantTo:   toUTC,
			wantType: "REPLY",
			wantErr:  nil,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			gotFrom, gotTo, gotType, err := normalizeAndValidateFilter(tc.in)

			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected err %v; got %v", tc.wantErr, err)
			}
			// Only assert non-zero expectations for times
			if !tc.wantFrom.IsZero() && !gotFrom.Equal(tc.wantFrom) {
				t.Fatalf("from: got %v; want %v", gotFrom, tc.wantFrom)
			}
			if !tc.wantTo.IsZero() && !gotTo.Equal(tc.wantTo) {
				t.Fatalf("to: got %v; want %v", gotTo, tc.wantTo)
			}
			if tc.wantType != "" && gotType != tc.wantType {
				t.Fatalf("type: got %q; want %q", gotType, tc.wantType)
			}
		})
	}
}

// HistoryService.List

func TestHistoryService_List_DelegatesNormalizedParams(t *testing.T) {
	t.Parallel()

	frepo := &fakeHistoryRepo{
		entries: []models.HistoryEntry{
			{EntryID: "1"},
		},
	}
	svc := NewHistoryService(frepo, nil)

	fromLocal := mustTimeIn(fixedZone("UTC+5", 5*3600), 2025, time.October, 1, 10, 0, 0)
	toLocal := mustTimeIn(fixedZone("UTC-2", -2*3600), 2025, time.October, 1, 12, 30, 0)
	ctx := context.Background()

	out, err := svc.List(ctx, HistoryFilter{
		From: fromLocal,
		To:   toLocal,
		Type: "  error ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 || out[0].EntryID != "1" {
		t.Fatalf("unexpected entries: %+v", out)
	}
	if frepo.calls != 1 {
		t.Fatalf("repo List should be called once, got %d", frepo.calls)
	}

	// Check normalized values passed to repo
	wantFrom := time.Date(2025, time.October, 1, 5, 0, 0, 0, time.UTC) // 10:00 +05 -> 05:00Z
	wantTo := time.Date(2025, time.October, 1, 14, 30, 0, 0, time.UTC) // 12:30 -02 -> 14:30Z

	if !frepo.gotFrom.Equal(wantFrom) {
		t.Fatalf("repo gotFrom=%v; want %v", frepo.gotFrom, wantFrom)
	}
	if !frepo.gotTo.Equal(wantTo) {
		t.Fatalf("repo gotTo=%v; want %v", frepo.gotTo, wantTo)
	}
	if frepo.gotType != "ERROR" {
		t.Fatalf("repo gotType=%q; want %q", frepo.gotType, "ERROR")
	}
}

func TestHistoryService_List_ValidationError(t *testing.T) {
	t.Parallel()

	frepo := &fakeHistoryRepo{}
	svc := NewHistoryService(frepo, nil)

	_, err := svc.List(context.Background(), HistoryFilter{
		From: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 1, 1, 23, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, errInvalidTimeRange) {
		t.Fatalf("expected errInvalidTimeRange; got %v", err)
	}
	if frepo.calls != 0 {
		t.Fatalf("repo should not be called on validation error, calls=%d", frepo.calls)
	}
}

func TestHistoryService_List_RepoErrorPropagation(t *testing.T) {
	t.Parallel()

	frepo := &fakeHistoryRepo{err: errors.New("db down")}
	svc := NewHistoryService(frepo, nil)

	_, err := svc.List(context.Background(), HistoryFilter{})
	if !errors.Is(err, frepo.err) {
		t.Fatalf("expected repo error to propagate; got %v", err)
	}
	if frepo.calls != 1 {
		t.Fatalf("repo should be called once, calls=%d", frepo.calls)
	}
}

func TestHistoryService_List_ZeroBoundsPassedAsZero(t *testing.T) {
	t.Parallel()

	frepo := &fakeHistoryRepo{}
	svc := NewHistoryService(frepo, nil)

	_, err := svc.List(context.Background(), HistoryFilter{
		From: time.Time{},
		To:   time.Time{},
		Type: "",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !frepo.gotFrom.IsZero() || !frepo.gotTo.IsZero() || frepo.gotType != "" {
		t.Fatalf("expected zero bounds and empty type; got from=%v to=%v type=%q", frepo.gotFrom, frepo.gotTo, frepo.gotType)
	}
}

// HistoryService.Record

func TestHistoryService_Record_FillsIDAndTime(t *testing.T) {
	t.Parallel()

	frepo := &fakeHistoryRepo{}
	svc := NewHistoryService(frepo, nil)

	before := time.Now().UTC()
	svc.Record(context.Background(), models.HistoryCommand, "luz on", nil)
	svc.Record(context.Background(), models.HistoryReply, "ok", map[string]any{"command": "luz on"})

	if len(frepo.appends) != 2 {
		t.Fatalf("expected 2 appends, got %d", len(frepo.appends))
	}
	first := frepo.appends[0]
	if first.EntryID == "" || first.OccurredAt.Before(before) {
		t.Fatalf("expected generated id and current time, got %+v", first)
	}
	if first.Metadata != nil {
		t.Fatalf("expected nil metadata, got %#v", first.Metadata)
	}
	if frepo.appends[1].Metadata == nil {
		t.Fatalf("expected metadata on second entry")
	}
}

func TestHistoryService_Record_SwallowsRepoError(t *testing.T) {
	t.Parallel()

	frepo := &fakeHistoryRepo{appendErr: errors.New("disk full")}
	svc := NewHistoryService(frepo, nil)

	svc.Record(context.Background(), models.HistoryError, "x", nil)

	if len(frepo.appends) != 1 {
		t.Fatalf("expected append attempt, got %d", len(frepo.appends))
	}
}
