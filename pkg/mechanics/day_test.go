package mechanics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"valley-oracle/pkg/version"
)

func TestDayArithmetic(t *testing.T) {
	tests := []struct {
		day              int
		dow, season, yr  int
		dayOfYear, month int
	}{
		{day: 1, dow: 1, season: 0, yr: 1, dayOfYear: 1, month: 1},
		{day: 5, dow: 5, season: 0, yr: 1, dayOfYear: 5, month: 5},
		{day: 7, dow: 7, season: 0, yr: 1, dayOfYear: 7, month: 7},
		{day: 8, dow: 1, season: 0, yr: 1, dayOfYear: 8, month: 8},
		{day: 28, dow: 7, season: 0, yr: 1, dayOfYear: 28, month: 28},
		{day: 29, dow: 1, season: 1, yr: 1, dayOfYear: 29, month: 1},
		{day: 112, dow: 7, season: 3, yr: 1, dayOfYear: 112, month: 28},
		{day: 113, dow: 1, season: 0, yr: 2, dayOfYear: 1, month: 1},
		{day: 225, dow: 1, season: 0, yr: 3, dayOfYear: 1, month: 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.dow, DayOfWeek(tt.day), "dow of %d", tt.day)
		assert.Equal(t, tt.season, Season(tt.day), "season of %d", tt.day)
		assert.Equal(t, tt.yr, Year(tt.day), "year of %d", tt.day)
		assert.Equal(t, tt.dayOfYear, DayOfYear(tt.day), "doy of %d", tt.day)
		assert.Equal(t, tt.month, DayOfMonth(tt.day), "dom of %d", tt.day)
	}
}

func TestDayInfo(t *testing.T) {
	assert.Equal(t, "Mon, Spring 1, Year 1", DayInfo(1))
	assert.Equal(t, "Fri, Spring 5, Year 1", DayInfo(5))
	assert.Equal(t, "Mon, Summer 1, Year 1", DayInfo(29))
	assert.Equal(t, "Mon, Spring 1, Year 2", DayInfo(113))
}

func TestIsCartDay(t *testing.T) {
	assert.True(t, IsCartDay(5, version.V1_5))
	assert.True(t, IsCartDay(7, version.V1_5))
	assert.False(t, IsCartDay(1, version.V1_5))
	assert.False(t, IsCartDay(3, version.V1_5))
	assert.True(t, IsCartDay(12, version.V1_3))

	// Night market window (winter 15-17) opens the cart on 1.6 only.
	winter15 := 98 + 1 // day-of-year 99 in year 1
	assert.Equal(t, 99, DayOfYear(winter15))
	if DayOfWeek(winter15) != 5 && DayOfWeek(winter15) != 7 {
		assert.False(t, IsCartDay(winter15, version.V1_5))
	}
	assert.True(t, IsCartDay(winter15, version.V1_6))
	assert.True(t, IsCartDay(winter15+112, version.V1_6)) // every year
}
