// Package temporal converts a brightness matrix into dated events that
// reproduce the matrix on a week-column activity calendar.
//
// Columns are weeks and rows are days of the week (row 0 is Sunday). The
// rightmost column is the week containing the reference instant.
package temporal

import (
	"time"

	"github.com/vovakirdan/graph-chase/internal/core"
)

// repeatCounts maps brightness levels to how many units of work a day needs
// to reach that shade.
var repeatCounts = map[int]int{
	0: 0,
	1: 3,
	2: 7,
	3: 15,
	4: 30,
}

// RepeatCount returns the repeat count for a brightness level.
// Unknown levels map to 0.
func RepeatCount(level int) int {
	return repeatCounts[level]
}

// Event is a batch of identical units of work on one calendar day.
type Event struct {
	Date   time.Time
	Repeat int

	Column int // source matrix column
	Row    int // source matrix row, also the weekday
	Level  int // source brightness
}

// Normalize pins t to hour:00:00 on the same calendar day, in t's location.
func Normalize(t time.Time, hour int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, t.Location())
}

// WeekStart returns the Sunday at or before ref, at the given hour.
func WeekStart(ref time.Time, hour int) time.Time {
	day := Normalize(ref, hour)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// Encode walks the matrix column by column (oldest week first) and row by row
// within each column, emitting one event per cell with a non-zero repeat
// count. Only the first row's width is read from each row; missing cells
// count as empty.
func Encode(m core.Matrix, ref time.Time, hour int) []Event {
	width := m.Width()
	height := m.Height()
	if width == 0 {
		return nil
	}

	current := WeekStart(ref, hour)

	var events []Event
	for x := 0; x < width; x++ {
		weeksAgo := width - 1 - x
		weekStart := current.AddDate(0, 0, -7*weeksAgo)

		for y := 0; y < height; y++ {
			level := m.At(x, y)
			repeat := RepeatCount(level)
			if repeat == 0 {
				continue
			}

			events = append(events, Event{
				Date:   weekStart.AddDate(0, 0, y),
				Repeat: repeat,
				Column: x,
				Row:    y,
				Level:  level,
			})
		}
	}
	return events
}

// Total returns the sum of repeat counts.
func Total(events []Event) int {
	n := 0
	for _, e := range events {
		n += e.Repeat
	}
	return n
}
