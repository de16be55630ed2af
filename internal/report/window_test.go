package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindow_Contains(t *testing.T) {
	w := Window{
		Start: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name string
		date string
		want bool
	}{
		{"inside", "2026-03-15", true},
		{"start boundary is inclusive", "2026-03-01", true},
		{"end boundary is inclusive", "2026-03-31", true},
		{"day before start", "2026-02-28", false},
		{"day after end", "2026-04-01", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.Contains(tt.date))
		})
	}
}

func TestLastWeeks(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)

	w := LastWeeks(1, now)
	assert.Equal(t, "2026-03-24", w.StartDate())
	assert.Equal(t, "2026-03-31", w.EndDate())

	w = LastWeeks(4, now)
	assert.Equal(t, "2026-03-03", w.StartDate())
}

func TestCalendarWeek(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		wantStart string
	}{
		{
			name:      "wednesday goes back to monday",
			now:       time.Date(2026, 3, 25, 12, 0, 0, 0, time.UTC), // Wednesday
			wantStart: "2026-03-23",
		},
		{
			name:      "monday is its own start",
			now:       time.Date(2026, 3, 23, 12, 0, 0, 0, time.UTC),
			wantStart: "2026-03-23",
		},
		{
			name:      "sunday belongs to the preceding monday",
			now:       time.Date(2026, 3, 29, 12, 0, 0, 0, time.UTC), // Sunday
			wantStart: "2026-03-23",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := CalendarWeek(tt.now)
			assert.Equal(t, tt.wantStart, w.StartDate())
			assert.Equal(t, tt.now.Format("2006-01-02"), w.EndDate())
		})
	}
}

func TestCalendarMonth(t *testing.T) {
	now := time.Date(2026, 3, 25, 12, 0, 0, 0, time.UTC)
	w := CalendarMonth(now)
	assert.Equal(t, "2026-03-01", w.StartDate())
	assert.Equal(t, "2026-03-25", w.EndDate())
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2026-03-01", MonthKey(time.Date(2026, 3, 25, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "2026-12-01", MonthKey(time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)))
}

func TestWindow_Label(t *testing.T) {
	w := Window{
		Start: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "2026-03-01 - 2026-03-31", w.Label())
}
