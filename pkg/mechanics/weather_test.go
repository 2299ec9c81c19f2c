package mechanics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"valley-oracle/pkg/version"
)

func TestWeather_FixedOpeningDays(t *testing.T) {
	for _, v := range version.Supported {
		for seed := int32(0); seed < 100; seed++ {
			assert.Equal(t, WeatherSun, WeatherFor(seed, 1, v))
			assert.Equal(t, WeatherSun, WeatherFor(seed, 2, v))
			assert.Equal(t, WeatherRain, WeatherFor(seed, 3, v))
			assert.Equal(t, WeatherSun, WeatherFor(seed, 4, v))
		}
	}
}

func TestWeather_FestivalsAreClear(t *testing.T) {
	for _, v := range version.Supported {
		for seed := int32(0); seed < 100; seed++ {
			for doy := range festivalDays {
				// Year 2 to dodge the fixed opening days.
				day := doy + DaysPerYear
				got := WeatherFor(seed*31, day, v)
				require.Equal(t, WeatherFestival, got, "day %d", day)
				assert.True(t, got.IsSunny())
			}
		}
	}
}

func TestWeather_SeasonConstraints(t *testing.T) {
	for _, v := range version.Supported {
		for seed := int32(0); seed < 300; seed++ {
			for day := 113; day <= 336; day++ { // year 2 and on
				w := WeatherFor(seed, day, v)
				switch Season(day) {
				case 3:
					assert.Contains(t, []Weather{WeatherSnow, WeatherSun, WeatherFestival}, w)
				case 1:
					assert.Contains(t, []Weather{WeatherStorm, WeatherRain, WeatherSun, WeatherFestival}, w)
				default:
					assert.Contains(t, []Weather{WeatherRain, WeatherWind, WeatherSun, WeatherFestival}, w)
				}
			}
		}
	}
}

func TestWeather_Deterministic(t *testing.T) {
	for _, v := range version.Supported {
		for day := 1; day <= 224; day++ {
			assert.Equal(t, WeatherFor(777, day, v), WeatherFor(777, day, v))
		}
	}
}

func TestWeather_VersionsDiverge(t *testing.T) {
	var diverged bool
	for seed := int32(1); seed <= 500 && !diverged; seed++ {
		for day := 113; day <= 140; day++ {
			if WeatherFor(seed, day, version.V1_5) != WeatherFor(seed, day, version.V1_6) {
				diverged = true
				break
			}
		}
	}
	assert.True(t, diverged)
}

func TestWeather_IsSunny(t *testing.T) {
	assert.True(t, WeatherSun.IsSunny())
	assert.True(t, WeatherFestival.IsSunny())
	assert.False(t, WeatherRain.IsSunny())
	assert.False(t, WeatherSnow.IsSunny())
	assert.False(t, WeatherWind.IsSunny())
	assert.False(t, WeatherStorm.IsSunny())
}
