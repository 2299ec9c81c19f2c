package mechanics

import (
	"valley-oracle/pkg/rng"
	"valley-oracle/pkg/version"
)

// Weather is the forecast tag for a single day.
type Weather string

const (
	WeatherSun      Weather = "sun"
	WeatherRain     Weather = "rain"
	WeatherStorm    Weather = "storm"
	WeatherSnow     Weather = "snow"
	WeatherWind     Weather = "wind"
	WeatherFestival Weather = "festival"
)

// Festival days by day-of-year; festivals force clear skies.
var festivalDays = map[int]bool{
	13:  true, // egg hunt
	24:  true, // flower dance
	39:  true, // luau
	56:  true, // moonlight jellies
	72:  true, // fair
	83:  true, // spirit's eve
	92:  true, // ice festival
	109: true, // winter star
}

// IsFestivalDay reports whether the day hosts a festival.
func IsFestivalDay(day int) bool {
	return festivalDays[DayOfYear(day)]
}

// WeatherFor returns the weather for a day. The first four days of a new
// save are fixed, festivals force their own tag, and everything else comes from
// a per-day generator: hash-seeded and primed with ten draws on 1.6,
// additively seeded before.
func WeatherFor(gameSeed int32, day int, v version.Version) Weather {
	if Year(day) == 1 && day <= 4 {
		if day == 3 {
			return WeatherRain
		}
		return WeatherSun
	}
	if IsFestivalDay(day) {
		return WeatherFestival
	}

	var g rng.Subtractive
	if v.AtLeast(version.V1_6) {
		g = rng.New(rng.HashSeed(int32(day), gameSeed/2, 0, 0, 0))
		for i := 0; i < 10; i++ {
			g.NextDouble()
		}
	} else {
		g = rng.New(gameSeed/2 + int32(day))
	}

	switch Season(day) {
	case 3: // winter
		if g.NextDouble() < 0.63 {
			return WeatherSnow
		}
		return WeatherSun
	case 1: // summer
		chance := 0.12 + 0.003*float64(DayOfMonth(day))
		if g.NextDouble() < chance {
			if g.NextDouble() < 0.25 {
				return WeatherStorm
			}
			return WeatherRain
		}
		return WeatherSun
	default: // spring, fall
		if g.NextDouble() < 0.183 {
			return WeatherRain
		}
		if g.NextDouble() < 0.2 {
			return WeatherWind
		}
		return WeatherSun
	}
}

// IsSunny reports whether a weather tag counts as clear for the "any bad
// weather" filter semantics (festivals are always clear).
func (w Weather) IsSunny() bool {
	return w == WeatherSun || w == WeatherFestival
}
