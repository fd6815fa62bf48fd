// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

// Package f1 defines the domain model shared by the provider, analysis and
// API layers: sessions, laps, telemetry, drivers, stints and the static
// team/event tables. All values are read-only views over one loaded
// session and are replaced wholesale when a new session loads.
package f1

import (
	"math"
	"sort"
	"strconv"
)

// SessionKind identifies the type of a track session.
type SessionKind string

// Session kinds accepted by the provider.
const (
	KindPractice1  SessionKind = "FP1"
	KindPractice2  SessionKind = "FP2"
	KindPractice3  SessionKind = "FP3"
	KindQualifying SessionKind = "Q"
	KindSprint     SessionKind = "S"
	KindRace       SessionKind = "R"
)

// Compound is a tire rubber type.
type Compound string

const (
	CompoundSoft         Compound = "SOFT"
	CompoundMedium       Compound = "MEDIUM"
	CompoundHard         Compound = "HARD"
	CompoundIntermediate Compound = "INTERMEDIATE"
	CompoundWet          Compound = "WET"
)

// TelemetrySample is one high-frequency sensor sample within a lap.
// Samples are ordered by increasing Distance.
type TelemetrySample struct {
	Distance float64 `json:"distance"` // meters from lap start
	Speed    float64 `json:"speed"`    // km/h
	Throttle float64 `json:"throttle"` // 0-100
	Brake    float64 `json:"brake"`    // 0-100; boolean channels map to 0/100
	RPM      float64 `json:"rpm"`
	Gear     int     `json:"gear"`
	DRS      bool    `json:"drs"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// Lap is one complete circuit by one driver. A Time of zero means the lap
// has no recorded time (deleted, in-lap, data gap).
type Lap struct {
	Driver   string   `json:"driver"`
	Number   int      `json:"number"`
	Time     float64  `json:"time"` // seconds; 0 = no time
	Sector1  float64  `json:"sector1"`
	Sector2  float64  `json:"sector2"`
	Sector3  float64  `json:"sector3"`
	Compound Compound `json:"compound"`
	TireLife int      `json:"tire_life"` // laps on this set
	Position int      `json:"position"`  // 0 = unknown
	PitIn    bool     `json:"pit_in"`
	PitOut   bool     `json:"pit_out"`

	// Telemetry is present only for laps the provider supplies traces
	// for (typically each driver's fastest lap).
	Telemetry []TelemetrySample `json:"-"`
}

// HasTime reports whether the lap carries a usable lap time.
func (l Lap) HasTime() bool {
	return l.Time > 0 && !math.IsNaN(l.Time)
}

// DriverEntry is the upstream driver record attached to a session.
type DriverEntry struct {
	Code      string `json:"code"` // three-letter abbreviation
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Number    int    `json:"number"`
	TeamName  string `json:"team_name"`
	TeamColor string `json:"team_color"` // hex, may be empty
}

// DriverInfo is the immutable per-session driver view built by the
// registry: upstream record merged with the static fallback tables.
type DriverInfo struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Number    int    `json:"number"`
	Team      string `json:"team"`
	TeamColor string `json:"team_color"`
}

// WeatherSample is one weather observation during a session.
type WeatherSample struct {
	AirTemp   float64 `json:"air_temp"`   // Celsius
	TrackTemp float64 `json:"track_temp"` // Celsius
	Humidity  float64 `json:"humidity"`   // percent
	WindSpeed float64 `json:"wind_speed"` // m/s
	Pressure  float64 `json:"pressure"`   // mbar
	Rainfall  bool    `json:"rainfall"`
}

// Stint is a run of consecutive laps on one compound. Derived on demand
// from laps, never stored.
type Stint struct {
	Driver   string   `json:"driver"`
	Compound Compound `json:"compound"`
	StartLap int      `json:"start_lap"`
	EndLap   int      `json:"end_lap"`
	Length   int      `json:"length"`
}

// Session is one loaded track session. Laps are ordered by driver and
// ascending lap number.
type Session struct {
	Year      int             `json:"year"`
	EventName string          `json:"event_name"`
	Kind      SessionKind     `json:"kind"`
	Laps      []Lap           `json:"-"`
	Drivers   []DriverEntry   `json:"drivers"`
	Weather   []WeatherSample `json:"-"`
}

// Label returns a human-readable session identifier, e.g.
// "2024 Bahrain Grand Prix - R".
func (s *Session) Label() string {
	return strconv.Itoa(s.Year) + " " + s.EventName + " - " + string(s.Kind)
}

// DriverLaps returns the driver's laps in lap-number order.
func (s *Session) DriverLaps(code string) []Lap {
	var laps []Lap
	for _, lap := range s.Laps {
		if lap.Driver == code {
			laps = append(laps, lap)
		}
	}
	sort.Slice(laps, func(i, j int) bool { return laps[i].Number < laps[j].Number })
	return laps
}

// DriverCodes returns the codes of all drivers present in the session,
// sorted for stable output.
func (s *Session) DriverCodes() []string {
	seen := make(map[string]bool)
	var codes []string
	for _, d := range s.Drivers {
		if !seen[d.Code] {
			seen[d.Code] = true
			codes = append(codes, d.Code)
		}
	}
	for _, lap := range s.Laps {
		if !seen[lap.Driver] {
			seen[lap.Driver] = true
			codes = append(codes, lap.Driver)
		}
	}
	sort.Strings(codes)
	return codes
}

// FastestLap returns the driver's fastest timed lap.
func (s *Session) FastestLap(code string) (Lap, bool) {
	var best Lap
	found := false
	for _, lap := range s.DriverLaps(code) {
		if !lap.HasTime() {
			continue
		}
		if !found || lap.Time < best.Time {
			best = lap
			found = true
		}
	}
	return best, found
}

// FastestTelemetry returns the telemetry of the driver's fastest lap that
// carries a trace, falling back to any lap with telemetry.
func (s *Session) FastestTelemetry(code string) ([]TelemetrySample, bool) {
	var best *Lap
	laps := s.DriverLaps(code)
	for i := range laps {
		lap := &laps[i]
		if len(lap.Telemetry) == 0 {
			continue
		}
		if best == nil {
			best = lap
			continue
		}
		// Prefer timed laps, then faster ones.
		switch {
		case !best.HasTime() && lap.HasTime():
			best = lap
		case best.HasTime() && lap.HasTime() && lap.Time < best.Time:
			best = lap
		}
	}
	if best == nil {
		return nil, false
	}
	return best.Telemetry, true
}
