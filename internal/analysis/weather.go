// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package analysis

import (
	"math"

	"github.com/pitwall-project/pitwall/internal/f1"
)

// WeatherChannel summarizes one weather measurement over the session.
type WeatherChannel struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
}

// WeatherSummary is the session-wide weather view.
type WeatherSummary struct {
	Samples   int            `json:"samples"`
	AirTemp   WeatherChannel `json:"air_temp"`
	TrackTemp WeatherChannel `json:"track_temp"`
	Humidity  WeatherChannel `json:"humidity"`
	WindSpeed WeatherChannel `json:"wind_speed"`
	Pressure  WeatherChannel `json:"pressure"`
	RainPct   float64        `json:"rain_pct"` // share of samples reporting rain
}

// WeatherImpact correlates a driver's lap times with track temperature.
type WeatherImpact struct {
	Driver          string  `json:"driver"`
	TempCorrelation float64 `json:"temp_correlation"` // Pearson r, 0 when undefined
	Laps            int     `json:"laps"`
}

// WeatherResult combines the summary with per-driver impact estimates.
type WeatherResult struct {
	Summary WeatherSummary  `json:"summary"`
	Impact  []WeatherImpact `json:"impact,omitempty"`
}

// Weather summarizes the session's weather samples and estimates each
// driver's lap-time sensitivity to track temperature by pairing laps with
// weather samples in session order. Returns nil when the session carries
// no weather data.
func (a *Analyzer) Weather(s *f1.Session, drivers []string) *WeatherResult {
	if len(s.Weather) == 0 {
		return nil
	}

	var air, track, humidity, wind, pressure []float64
	rain := 0
	for _, w := range s.Weather {
		air = append(air, w.AirTemp)
		track = append(track, w.TrackTemp)
		humidity = append(humidity, w.Humidity)
		wind = append(wind, w.WindSpeed)
		pressure = append(pressure, w.Pressure)
		if w.Rainfall {
			rain++
		}
	}

	result := &WeatherResult{
		Summary: WeatherSummary{
			Samples:   len(s.Weather),
			AirTemp:   summarizeChannel(air),
			TrackTemp: summarizeChannel(track),
			Humidity:  summarizeChannel(humidity),
			WindSpeed: summarizeChannel(wind),
			Pressure:  summarizeChannel(pressure),
			RainPct:   round2(float64(rain) / float64(len(s.Weather)) * 100),
		},
	}

	for _, code := range drivers {
		laps := validLaps(s, code)
		if len(laps) < a.cfg.MinValidLaps {
			continue
		}

		times := lapTimes(laps)
		temps := trackTempForLaps(s, laps)
		r := correlation(temps, times)
		if math.IsNaN(r) {
			r = 0
		}
		result.Impact = append(result.Impact, WeatherImpact{
			Driver:          code,
			TempCorrelation: round3(r),
			Laps:            len(laps),
		})
	}
	return result
}

func summarizeChannel(xs []float64) WeatherChannel {
	lo, hi := minMax(xs)
	return WeatherChannel{
		Min:  round2(lo),
		Max:  round2(hi),
		Mean: round2(mean(xs)),
	}
}

// trackTempForLaps maps each lap onto the weather sample at the matching
// fraction of the session. Weather and laps are sampled at different
// rates, so position in sequence is the pairing key.
func trackTempForLaps(s *f1.Session, laps []f1.Lap) []float64 {
	temps := make([]float64, len(laps))
	last := len(s.Weather) - 1
	maxLap := 1
	for _, lap := range s.Laps {
		if lap.Number > maxLap {
			maxLap = lap.Number
		}
	}
	for i, lap := range laps {
		idx := (lap.Number - 1) * last / maxLap
		if idx > last {
			idx = last
		}
		temps[i] = s.Weather[idx].TrackTemp
	}
	return temps
}
