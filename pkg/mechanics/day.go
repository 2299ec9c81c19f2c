package mechanics

import (
	"fmt"

	"valley-oracle/pkg/version"
)

// Calendar shape: 7-day weeks, 28-day months (one per season), four
// seasons to a 112-day year. Day 1 is Monday, Spring 1, Year 1.
const (
	DaysPerWeek   = 7
	DaysPerSeason = 28
	DaysPerYear   = 112
)

var weekdayNames = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

var seasonNames = [...]string{"Spring", "Summer", "Fall", "Winter"}

// DayOfWeek returns 1..7 with Friday = 5 and Sunday = 7.
func DayOfWeek(day int) int {
	return (day-1)%DaysPerWeek + 1
}

// Season returns 0..3 (Spring..Winter).
func Season(day int) int {
	return ((day - 1) / DaysPerSeason) % 4
}

// Year returns the 1-based in-game year.
func Year(day int) int {
	return (day-1)/DaysPerYear + 1
}

// DayOfYear returns 1..112.
func DayOfYear(day int) int {
	return (day-1)%DaysPerYear + 1
}

// DayOfMonth returns 1..28.
func DayOfMonth(day int) int {
	return (day-1)%DaysPerSeason + 1
}

// SeasonName returns the season name for an absolute day.
func SeasonName(day int) string {
	return seasonNames[Season(day)]
}

// DayInfo renders an absolute day as "Mon, Spring 1, Year 1".
func DayInfo(day int) string {
	return fmt.Sprintf("%s, %s %d, Year %d",
		weekdayNames[DayOfWeek(day)-1], SeasonName(day), DayOfMonth(day), Year(day))
}

// nightMarket reports the winter 15-17 window during which the cart is
// also stocked from 1.6 onward.
func nightMarket(day int) bool {
	doy := DayOfYear(day)
	return doy >= 99 && doy <= 101
}

// IsCartDay reports whether the traveling cart is stocked on the given
// day: Fridays and Sundays, plus the night-market window on 1.6.
func IsCartDay(day int, v version.Version) bool {
	dow := DayOfWeek(day)
	if dow == 5 || dow == 7 {
		return true
	}
	return v.AtLeast(version.V1_6) && nightMarket(day)
}
