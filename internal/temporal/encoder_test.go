package temporal

import (
	"testing"
	"time"

	"github.com/vovakirdan/graph-chase/internal/core"
)

func filled(width, height, level int) core.Matrix {
	m := core.NewMatrix(width, height)
	for y := range m {
		for x := range m[y] {
			m[y][x] = level
		}
	}
	return m
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestRepeatCountTable(t *testing.T) {
	tests := []struct {
		level, want int
	}{
		{0, 0}, {1, 3}, {2, 7}, {3, 15}, {4, 30},
		{5, 0}, {-1, 0}, {99, 0},
	}
	for _, tc := range tests {
		if got := RepeatCount(tc.level); got != tc.want {
			t.Errorf("RepeatCount(%d) = %d, expected %d", tc.level, got, tc.want)
		}
	}
}

func TestEncodeWednesdayExample(t *testing.T) {
	wednesday := time.Date(2024, time.May, 15, 15, 30, 0, 0, time.UTC)
	m := filled(3, 7, core.LevelWall)

	events := Encode(m, wednesday, 12)
	if len(events) != 21 {
		t.Fatalf("got %d events, expected 21", len(events))
	}

	find := func(col, row int) Event {
		for _, e := range events {
			if e.Column == col && e.Row == row {
				return e
			}
		}
		t.Fatalf("no event for column %d row %d", col, row)
		return Event{}
	}

	if got, want := find(2, 0).Date, day(2024, time.May, 12); !got.Equal(want) {
		t.Errorf("rightmost Sunday = %v, expected %v", got, want)
	}
	if got, want := find(0, 0).Date, day(2024, time.April, 28); !got.Equal(want) {
		t.Errorf("leftmost Sunday = %v, expected %v", got, want)
	}
	if got, want := find(2, 6).Date, day(2024, time.May, 18); !got.Equal(want) {
		t.Errorf("rightmost Saturday = %v, expected %v", got, want)
	}
}

func TestEncodeTotality(t *testing.T) {
	ref := day(2025, time.January, 8)

	events := Encode(filled(5, 7, core.LevelPlayer), ref, 12)
	if len(events) != 35 {
		t.Fatalf("all-4 matrix gave %d events, expected 35", len(events))
	}
	for _, e := range events {
		if e.Repeat != 30 {
			t.Errorf("event %+v has repeat %d, expected 30", e, e.Repeat)
		}
	}
	if Total(events) != 35*30 {
		t.Errorf("Total() = %d, expected %d", Total(events), 35*30)
	}

	if events := Encode(filled(5, 7, 0), ref, 12); len(events) != 0 {
		t.Errorf("all-0 matrix gave %d events", len(events))
	}
	if events := Encode(filled(5, 7, 9), ref, 12); len(events) != 0 {
		t.Errorf("unknown levels gave %d events", len(events))
	}
	if events := Encode(core.Matrix{}, ref, 12); events != nil {
		t.Errorf("empty matrix gave %v", events)
	}
}

func TestEncodeColumnsAreWholeWeeks(t *testing.T) {
	const width = 8
	ref := day(2025, time.March, 20)
	events := Encode(filled(width, 7, core.LevelDot), ref, 12)

	rightmost := make(map[int]time.Time)
	for _, e := range events {
		if e.Column == width-1 {
			rightmost[e.Row] = e.Date
		}
	}

	for _, e := range events {
		want := rightmost[e.Row].AddDate(0, 0, -7*(width-1-e.Column))
		if !e.Date.Equal(want) {
			t.Errorf("column %d row %d = %v, expected %v", e.Column, e.Row, e.Date, want)
		}
		if e.Date.Weekday() != time.Weekday(e.Row) {
			t.Errorf("row %d resolved to %v", e.Row, e.Date.Weekday())
		}
	}
}

func TestEncodeChronologicalOrder(t *testing.T) {
	events := Encode(filled(4, 7, core.LevelDot), day(2025, time.June, 4), 12)
	for i := 1; i < len(events); i++ {
		if !events[i].Date.After(events[i-1].Date) {
			t.Fatalf("event %d (%v) not after event %d (%v)", i, events[i].Date, i-1, events[i-1].Date)
		}
	}
}

func TestEncodeSkipsEmptyCells(t *testing.T) {
	m := core.Matrix{
		{0, 2},
		{4, 0},
		{1}, // short row: missing cell reads as empty
	}
	events := Encode(m, day(2025, time.June, 4), 12)

	if len(events) != 3 {
		t.Fatalf("got %d events, expected 3", len(events))
	}
	want := []struct{ col, row, repeat int }{
		{0, 1, 30},
		{0, 2, 3},
		{1, 0, 7},
	}
	for i, w := range want {
		e := events[i]
		if e.Column != w.col || e.Row != w.row || e.Repeat != w.repeat {
			t.Errorf("event %d = %+v, expected col %d row %d repeat %d", i, e, w.col, w.row, w.repeat)
		}
	}
}

func TestWeekStartBoundaries(t *testing.T) {
	tests := []struct {
		name string
		ref  time.Time
		want time.Time
	}{
		{"sunday itself", time.Date(2024, time.May, 12, 0, 0, 1, 0, time.UTC), day(2024, time.May, 12)},
		{"saturday night", time.Date(2024, time.May, 18, 23, 59, 59, 0, time.UTC), day(2024, time.May, 12)},
		{"across month", time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC), day(2024, time.May, 26)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := WeekStart(tc.ref, 12); !got.Equal(tc.want) {
				t.Errorf("WeekStart() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestEncodeKeepsHourAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	// Reference after the March 2024 switch; earlier columns fall before it
	ref := time.Date(2024, time.March, 20, 9, 0, 0, 0, loc)
	events := Encode(filled(4, 7, core.LevelWall), ref, 12)

	for _, e := range events {
		if e.Date.Hour() != 12 || e.Date.Minute() != 0 {
			t.Errorf("event on %v drifted from 12:00", e.Date)
		}
	}
}
