// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package provider

import (
	"fmt"
	"sort"

	"github.com/goccy/go-json"

	"github.com/pitwall-project/pitwall/internal/f1"
)

// sessionPayload is the upstream wire format for one session.
type sessionPayload struct {
	Year      int              `json:"year"`
	EventName string           `json:"event_name"`
	Kind      string           `json:"session_type"`
	Drivers   []driverPayload  `json:"drivers"`
	Laps      []lapPayload     `json:"laps"`
	Weather   []weatherPayload `json:"weather,omitempty"`
}

type driverPayload struct {
	Code      string `json:"code"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Number    int    `json:"number"`
	TeamName  string `json:"team_name"`
	TeamColor string `json:"team_color,omitempty"`
}

type lapPayload struct {
	Driver   string             `json:"driver"`
	Number   int                `json:"number"`
	Time     float64            `json:"time,omitempty"`
	Sector1  float64            `json:"sector1,omitempty"`
	Sector2  float64            `json:"sector2,omitempty"`
	Sector3  float64            `json:"sector3,omitempty"`
	Compound string             `json:"compound,omitempty"`
	TireLife int                `json:"tire_life,omitempty"`
	Position int                `json:"position,omitempty"`
	PitIn    bool               `json:"pit_in,omitempty"`
	PitOut   bool               `json:"pit_out,omitempty"`
	Samples  []telemetryPayload `json:"telemetry,omitempty"`
}

type telemetryPayload struct {
	Distance float64 `json:"distance"`
	Speed    float64 `json:"speed"`
	Throttle float64 `json:"throttle"`
	// Brake may arrive as a 0-100 magnitude or a boolean flag.
	Brake     float64 `json:"brake"`
	BrakeFlag *bool   `json:"brake_flag,omitempty"`
	RPM       float64 `json:"rpm"`
	Gear      int     `json:"gear"`
	DRS       bool    `json:"drs"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

type weatherPayload struct {
	AirTemp   float64 `json:"air_temp"`
	TrackTemp float64 `json:"track_temp"`
	Humidity  float64 `json:"humidity"`
	WindSpeed float64 `json:"wind_speed"`
	Pressure  float64 `json:"pressure"`
	Rainfall  bool    `json:"rainfall"`
}

// decodeSession parses a raw payload into the domain session.
func decodeSession(raw []byte) (*f1.Session, error) {
	var payload sessionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("malformed session payload: %w", err)
	}
	if len(payload.Laps) == 0 {
		return nil, ErrNoData
	}

	kind, ok := f1.ParseSessionKind(payload.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, payload.Kind)
	}

	s := &f1.Session{
		Year:      payload.Year,
		EventName: payload.EventName,
		Kind:      kind,
	}

	for _, d := range payload.Drivers {
		s.Drivers = append(s.Drivers, f1.DriverEntry{
			Code:      d.Code,
			FirstName: d.FirstName,
			LastName:  d.LastName,
			Number:    d.Number,
			TeamName:  d.TeamName,
			TeamColor: d.TeamColor,
		})
	}

	for _, lp := range payload.Laps {
		lap := f1.Lap{
			Driver:   lp.Driver,
			Number:   lp.Number,
			Time:     lp.Time,
			Sector1:  lp.Sector1,
			Sector2:  lp.Sector2,
			Sector3:  lp.Sector3,
			Compound: f1.Compound(lp.Compound),
			TireLife: lp.TireLife,
			Position: lp.Position,
			PitIn:    lp.PitIn,
			PitOut:   lp.PitOut,
		}
		for _, tp := range lp.Samples {
			lap.Telemetry = append(lap.Telemetry, decodeSample(tp))
		}
		sortByDistance(lap.Telemetry)
		s.Laps = append(s.Laps, lap)
	}

	for _, w := range payload.Weather {
		s.Weather = append(s.Weather, f1.WeatherSample(w))
	}

	return s, nil
}

func decodeSample(tp telemetryPayload) f1.TelemetrySample {
	brake := tp.Brake
	if tp.BrakeFlag != nil {
		if *tp.BrakeFlag {
			brake = 100
		} else {
			brake = 0
		}
	}
	return f1.TelemetrySample{
		Distance: tp.Distance,
		Speed:    tp.Speed,
		Throttle: tp.Throttle,
		Brake:    brake,
		RPM:      tp.RPM,
		Gear:     tp.Gear,
		DRS:      tp.DRS,
		X:        tp.X,
		Y:        tp.Y,
	}
}

// sortByDistance restores the ascending-distance invariant on a trace.
func sortByDistance(samples []f1.TelemetrySample) {
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Distance < samples[j].Distance
	})
}
