// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package provider

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"

	"github.com/pitwall-project/pitwall/internal/f1"
)

// mockGrid is the driver lineup served by the mock provider, in rough
// pace order.
var mockGrid = []string{"VER", "LEC", "HAM", "NOR", "RUS", "SAI", "ALO", "PIA", "GAS", "TSU"}

// Mock is a deterministic in-memory session provider. The same
// (year, event, kind) triple always yields the same session, which keeps
// tests stable without golden files.
type Mock struct{}

// NewMock creates a mock provider.
func NewMock() *Mock {
	return &Mock{}
}

// Load implements Provider with generated fixture data.
func (m *Mock) Load(_ context.Context, year int, event string, kind f1.SessionKind) (*f1.Session, error) {
	if err := validate(year, event, kind); err != nil {
		return nil, err
	}
	if !knownEvent(event) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}

	rng := rand.New(rand.NewSource(seed(year, event, kind)))

	s := &f1.Session{
		Year:      year,
		EventName: event,
		Kind:      kind,
	}

	for i, code := range mockGrid {
		team := f1.DriverTeams[code]
		s.Drivers = append(s.Drivers, f1.DriverEntry{
			Code:     code,
			LastName: code,
			Number:   i + 1,
			TeamName: team,
		})
	}

	lapCount := 22
	if kind == f1.KindQualifying {
		lapCount = 8
	}

	totals := make([]float64, len(mockGrid))
	lapsByDriver := make([][]f1.Lap, len(mockGrid))

	for i, code := range mockGrid {
		base := 92.0 + float64(i)*0.18
		life := 0
		for n := 1; n <= lapCount; n++ {
			compound := compoundForLap(kind, n)
			pitLap := kind == f1.KindRace && (n == 8 || n == 15)
			life++
			if n == 1 || (kind == f1.KindRace && (n == 9 || n == 16)) {
				life = 1
			}

			t := base + rng.Float64()*0.8 - 0.4 + float64(life)*0.05
			if pitLap {
				t += base // roughly doubles the lap, well past the pit heuristic
			}
			if kind == f1.KindQualifying && n%3 == 0 {
				t = 0 // cool-down lap with no time
			}

			lapsByDriver[i] = append(lapsByDriver[i], f1.Lap{
				Driver:   code,
				Number:   n,
				Time:     t,
				Sector1:  t * 0.3,
				Sector2:  t * 0.42,
				Sector3:  t * 0.28,
				Compound: compound,
				TireLife: life,
				PitIn:    pitLap,
				PitOut:   kind == f1.KindRace && (n == 9 || n == 16),
			})
			if t > 0 {
				totals[i] += t
			} else {
				totals[i] += base + 10
			}
		}
	}

	// Positions per lap follow cumulative time so progression and
	// overtaking analyses have realistic input.
	assignPositions(lapsByDriver)

	for i := range lapsByDriver {
		attachFastestTelemetry(lapsByDriver[i], rng)
		s.Laps = append(s.Laps, lapsByDriver[i]...)
	}

	for j := 0; j < 12; j++ {
		s.Weather = append(s.Weather, f1.WeatherSample{
			AirTemp:   24 + rng.Float64()*4,
			TrackTemp: 38 + rng.Float64()*6,
			Humidity:  40 + rng.Float64()*20,
			WindSpeed: 2 + rng.Float64()*3,
			Pressure:  1010 + rng.Float64()*6,
			Rainfall:  false,
		})
	}

	return s, nil
}

func knownEvent(event string) bool {
	for _, gp := range f1.GrandsPrix {
		if gp == event {
			return true
		}
	}
	return false
}

func seed(year int, event string, kind f1.SessionKind) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d/%s/%s", year, event, kind)
	return int64(h.Sum64())
}

func compoundForLap(kind f1.SessionKind, n int) f1.Compound {
	if kind != f1.KindRace {
		return f1.CompoundSoft
	}
	switch {
	case n <= 8:
		return f1.CompoundSoft
	case n <= 15:
		return f1.CompoundMedium
	default:
		return f1.CompoundHard
	}
}

// assignPositions ranks drivers by cumulative race time at each lap.
func assignPositions(lapsByDriver [][]f1.Lap) {
	if len(lapsByDriver) == 0 {
		return
	}
	lapCount := len(lapsByDriver[0])
	cumulative := make([]float64, len(lapsByDriver))

	for n := 0; n < lapCount; n++ {
		for i := range lapsByDriver {
			t := lapsByDriver[i][n].Time
			if t <= 0 {
				t = 120
			}
			cumulative[i] += t
		}
		for i := range lapsByDriver {
			pos := 1
			for j := range lapsByDriver {
				if j != i && cumulative[j] < cumulative[i] {
					pos++
				}
			}
			lapsByDriver[i][n].Position = pos
		}
	}
}

// attachFastestTelemetry generates a full trace for the driver's fastest
// timed lap: an oval-ish track outline with a speed profile that slows
// into four corners.
func attachFastestTelemetry(laps []f1.Lap, rng *rand.Rand) {
	best := -1
	for i, lap := range laps {
		if !lap.HasTime() {
			continue
		}
		if best < 0 || lap.Time < laps[best].Time {
			best = i
		}
	}
	if best < 0 {
		return
	}

	const (
		points  = 240
		lapLen  = 5200.0 // meters
		radiusX = 800.0
		radiusY = 500.0
	)

	offset := rng.Float64() * 10 // per-driver pace offset in km/h
	samples := make([]f1.TelemetrySample, 0, points)
	for p := 0; p < points; p++ {
		frac := float64(p) / float64(points)
		theta := 2 * math.Pi * frac

		// Four slow zones per lap.
		corner := math.Pow(math.Abs(math.Sin(2*theta)), 1.5)
		speed := 330 - 240*corner - offset + rng.Float64()*4

		throttle := 100.0
		brake := 0.0
		if corner > 0.6 {
			throttle = (1 - corner) * 100
			brake = corner * 100
		}

		gear := 2 + int(speed/55)
		if gear > 8 {
			gear = 8
		}

		samples = append(samples, f1.TelemetrySample{
			Distance: lapLen * frac,
			Speed:    speed,
			Throttle: throttle,
			Brake:    brake,
			RPM:      4500 + speed*22,
			Gear:     gear,
			DRS:      corner < 0.1,
			X:        radiusX * math.Cos(theta),
			Y:        radiusY * math.Sin(theta),
		})
	}
	laps[best].Telemetry = samples
}
