// Package forecast groups 3-hour provider samples into daily summaries.
package forecast

import (
	"math"
	"time"

	"github.com/saiprannav/weatherdesk/internal/models"
)

// Aggregate partitions timestamp-ordered samples into contiguous runs
// sharing a calendar date and summarizes each run: min/max/avg temperature,
// dominant condition (most frequent description+icon pair), and max
// precipitation probability. Output is truncated to maxDays entries. A
// trailing partial day is still emitted.
func Aggregate(samples []models.WeatherSample, maxDays int) []models.DailyForecast {
	if len(samples) == 0 || maxDays <= 0 {
		return nil
	}

	var out []models.DailyForecast
	start := 0
	current := calendarDate(samples[0].Timestamp)

	for i := 1; i <= len(samples); i++ {
		if i < len(samples) && calendarDate(samples[i].Timestamp) == current {
			continue
		}
		out = append(out, summarize(current, samples[start:i]))
		if len(out) >= maxDays {
			return out
		}
		if i < len(samples) {
			start = i
			current = calendarDate(samples[i].Timestamp)
		}
	}

	return out
}

// summarize reduces one day's run of samples to a DailyForecast.
func summarize(date string, run []models.WeatherSample) models.DailyForecast {
	day, _ := time.Parse("2006-01-02", date)

	df := models.DailyForecast{
		Date:    day,
		TempMin: run[0].Temperature,
		TempMax: run[0].Temperature,
	}

	type conditionKey struct {
		description string
		icon        string
	}
	counts := make(map[conditionKey]int)

	var sum float64
	for _, s := range run {
		if s.Temperature < df.TempMin {
			df.TempMin = s.Temperature
		}
		if s.Temperature > df.TempMax {
			df.TempMax = s.Temperature
		}
		sum += s.Temperature

		counts[conditionKey{s.Condition, s.Icon}]++

		if s.Pop > df.PrecipProb {
			df.PrecipProb = s.Pop
		}
	}

	df.TempAvg = round2(sum / float64(len(run)))

	best := -1
	for key, n := range counts {
		if n > best {
			best = n
			df.Condition = key.description
			df.Icon = key.icon
		}
	}

	return df
}

func calendarDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
