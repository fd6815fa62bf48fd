// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package analysis

import (
	"context"
	"math"
	"testing"

	"github.com/pitwall-project/pitwall/internal/f1"
	"github.com/pitwall-project/pitwall/internal/provider"
)

// makeLaps builds a lap sequence for one driver from times and compounds.
// A zero time marks an untimed lap.
func makeLaps(driver string, times []float64, compounds []f1.Compound) []f1.Lap {
	laps := make([]f1.Lap, len(times))
	for i := range times {
		compound := f1.CompoundSoft
		if i < len(compounds) {
			compound = compounds[i]
		}
		laps[i] = f1.Lap{
			Driver:   driver,
			Number:   i + 1,
			Time:     times[i],
			Compound: compound,
		}
	}
	return laps
}

func sessionWith(laps ...[]f1.Lap) *f1.Session {
	s := &f1.Session{Year: 2024, EventName: "Bahrain Grand Prix", Kind: f1.KindRace}
	for _, l := range laps {
		s.Laps = append(s.Laps, l...)
	}
	return s
}

func TestConsistencyScoreBounds(t *testing.T) {
	t.Parallel()

	a := New(DefaultConfig())
	s := sessionWith(makeLaps("VER", []float64{90.1, 90.3, 90.2, 90.4, 90.0}, nil))

	results := a.Consistency(s, []string{"VER"})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	score := results[0].ConsistencyScore
	if score <= 0 || score > 1 {
		t.Errorf("consistency score %v outside (0, 1]", score)
	}
	if results[0].FastestLap > results[0].MeanLapTime {
		t.Errorf("fastest lap %v exceeds mean %v", results[0].FastestLap, results[0].MeanLapTime)
	}
}

func TestConsistencyScoreMonotoneInSpread(t *testing.T) {
	t.Parallel()

	a := New(DefaultConfig())
	tight := sessionWith(makeLaps("VER", []float64{90.0, 90.1, 90.2, 90.1, 90.0}, nil))
	loose := sessionWith(makeLaps("VER", []float64{88.0, 92.0, 90.0, 94.0, 86.0}, nil))

	tightScore := a.Consistency(tight, []string{"VER"})[0].ConsistencyScore
	looseScore := a.Consistency(loose, []string{"VER"})[0].ConsistencyScore
	if tightScore <= looseScore {
		t.Errorf("tighter spread should score higher: %v <= %v", tightScore, looseScore)
	}
}

func TestConsistencyOmitsShortDrivers(t *testing.T) {
	t.Parallel()

	a := New(DefaultConfig())
	s := sessionWith(
		makeLaps("VER", []float64{90.1, 90.3, 90.2, 90.4}, nil),
		makeLaps("HAM", []float64{91.0, 91.2}, nil),
	)

	results := a.Consistency(s, []string{"VER", "HAM"})
	if len(results) != 1 || results[0].Driver != "VER" {
		t.Fatalf("expected only VER, got %+v", results)
	}
}

func TestEndToEndConsistencyOnMockSession(t *testing.T) {
	t.Parallel()

	s, err := provider.NewMock().Load(context.Background(), 2024, "Bahrain Grand Prix", f1.KindRace)
	if err != nil {
		t.Fatalf("mock load: %v", err)
	}

	a := New(DefaultConfig())
	results := a.Consistency(s, []string{"VER", "HAM"})
	if len(results) != 2 {
		t.Fatalf("expected 2 records, got %d", len(results))
	}
	for _, r := range results {
		if r.FastestLap > r.MeanLapTime {
			t.Errorf("%s: fastest %v exceeds mean %v", r.Driver, r.FastestLap, r.MeanLapTime)
		}
		if r.TotalLaps == 0 {
			t.Errorf("%s: no laps counted", r.Driver)
		}
	}
}

func TestFuelEffectSlopeMatchesTrend(t *testing.T) {
	t.Parallel()

	a := New(DefaultConfig())
	// Steadily rising lap times: 0.1s per lap.
	times := []float64{90.0, 90.1, 90.2, 90.3, 90.4, 90.5}
	s := sessionWith(makeLaps("VER", times, nil))

	results := a.FuelEffect(s, []string{"VER"})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if math.Abs(results[0].PaceTrend-0.1) > 1e-6 {
		t.Errorf("pace trend = %v, want 0.1", results[0].PaceTrend)
	}
	if math.Abs(results[0].TotalImprovement-0.5) > 1e-6 {
		t.Errorf("total improvement = %v, want 0.5", results[0].TotalImprovement)
	}

	// Linear burn-off over six laps: 5/6 of the load left after lap one,
	// nothing after the final lap.
	load := results[0].FuelLoad
	if len(load) != 6 {
		t.Fatalf("fuel load points = %d, want 6", len(load))
	}
	if load[0].Lap != 1 || load[0].Fraction != 0.833 {
		t.Errorf("first fuel point = %+v, want lap 1 fraction 0.833", load[0])
	}
	if load[5].Lap != 6 || load[5].Fraction != 0 {
		t.Errorf("last fuel point = %+v, want lap 6 fraction 0", load[5])
	}
}

func TestMomentumDetectsFadingPace(t *testing.T) {
	t.Parallel()

	a := New(DefaultConfig())
	times := []float64{90.0, 90.0, 90.0, 90.0, 90.0, 92.0, 92.0, 92.0, 92.0, 92.0}
	s := sessionWith(makeLaps("VER", times, nil))

	results := a.Momentum(s, []string{"VER"})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Trend != "fading" {
		t.Errorf("trend = %q, want fading", results[0].Trend)
	}
	if results[0].Momentum != 2.0 {
		t.Errorf("momentum = %v, want 2.0", results[0].Momentum)
	}
}

func TestQualifyingPredictionRanksFasterDriverFirst(t *testing.T) {
	t.Parallel()

	a := New(DefaultConfig())
	s := sessionWith(
		makeLaps("VER", []float64{89.0, 89.1, 89.0, 89.2}, nil),
		makeLaps("HAM", []float64{90.5, 90.6, 90.4, 90.7}, nil),
	)

	results := a.QualifyingPrediction(s, []string{"HAM", "VER"})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Driver != "VER" || results[0].PredictedOrder != 1 {
		t.Errorf("expected VER ranked first, got %+v", results[0])
	}
}

func TestChampionshipProjectionPointsTable(t *testing.T) {
	t.Parallel()

	a := New(DefaultConfig())
	winner := makeLaps("VER", []float64{90.0, 90.1, 90.2}, nil)
	second := makeLaps("HAM", []float64{90.5, 90.6, 90.7}, nil)
	for i := range winner {
		winner[i].Position = 1
		second[i].Position = 2
	}
	s := sessionWith(winner, second)

	results := a.ChampionshipProjection(s, []string{"HAM", "VER"})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Driver != "VER" || results[0].Points != 25 {
		t.Errorf("expected VER with 25 points first, got %+v", results[0])
	}
	if results[1].Points != 18 {
		t.Errorf("P2 points = %d, want 18", results[1].Points)
	}
	if !results[0].FastestLap {
		t.Errorf("expected VER to hold the fastest lap")
	}
}

func TestHeadToHeadPairsByLapNumber(t *testing.T) {
	t.Parallel()

	a := New(DefaultConfig())
	s := sessionWith(
		makeLaps("VER", []float64{89.0, 89.1, 89.0, 89.2}, nil),
		makeLaps("HAM", []float64{90.0, 88.9, 90.1, 90.0}, nil),
	)

	result := a.HeadToHead(s, []string{"VER", "HAM"})
	if result == nil {
		t.Fatal("expected a result")
	}
	if result.LapsPaired != 4 {
		t.Errorf("laps paired = %d, want 4", result.LapsPaired)
	}
	if result.WinsA != 3 || result.WinsB != 1 {
		t.Errorf("wins = %d/%d, want 3/1", result.WinsA, result.WinsB)
	}
	if result.MedianDelta >= 0 {
		t.Errorf("median delta = %v, want negative for faster driver A", result.MedianDelta)
	}
}
