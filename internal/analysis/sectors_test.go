// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package analysis

import (
	"testing"

	"github.com/pitwall-project/pitwall/internal/f1"
)

func lapsWithSectors(driver string, sectors [][3]float64) []f1.Lap {
	laps := make([]f1.Lap, len(sectors))
	for i, s := range sectors {
		laps[i] = f1.Lap{
			Driver:  driver,
			Number:  i + 1,
			Time:    s[0] + s[1] + s[2],
			Sector1: s[0],
			Sector2: s[1],
			Sector3: s[2],
		}
	}
	return laps
}

func TestSectorPerformanceTheoreticalBest(t *testing.T) {
	t.Parallel()

	a := New(DefaultConfig())
	s := sessionWith(lapsWithSectors("VER", [][3]float64{
		{30.0, 31.0, 29.5},
		{29.8, 31.2, 29.4},
		{30.1, 30.9, 29.6},
	}))

	results := a.SectorPerformance(s, []string{"VER"})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if len(r.Sectors) != 3 {
		t.Fatalf("sectors = %d, want 3", len(r.Sectors))
	}
	// Best sectors: 29.8 + 30.9 + 29.4 = 90.1.
	if r.TheoreticalBest != 90.1 {
		t.Errorf("theoretical best = %v, want 90.1", r.TheoreticalBest)
	}
	if r.ActualBest < r.TheoreticalBest {
		t.Errorf("actual best %v beats theoretical %v", r.ActualBest, r.TheoreticalBest)
	}
	if r.Delta < 0 {
		t.Errorf("delta = %v, want non-negative", r.Delta)
	}
}

func TestSectorPerformanceOmitsMissingSectors(t *testing.T) {
	t.Parallel()

	a := New(DefaultConfig())
	laps := makeLaps("VER", []float64{90, 91, 92}, nil) // no sector data

	results := a.SectorPerformance(sessionWith(laps), []string{"VER"})
	if results != nil {
		t.Errorf("expected nil without sector data, got %+v", results)
	}
}

func TestSectorDominanceFindsFastest(t *testing.T) {
	t.Parallel()

	a := New(DefaultConfig())
	s := sessionWith(
		lapsWithSectors("VER", [][3]float64{
			{29.5, 31.0, 29.5},
			{29.6, 31.1, 29.6},
			{29.7, 31.2, 29.7},
		}),
		lapsWithSectors("HAM", [][3]float64{
			{30.0, 30.5, 30.0},
			{30.1, 30.6, 30.1},
			{30.2, 30.7, 30.2},
		}),
	)

	results := a.SectorDominanceAnalysis(s, []string{"VER", "HAM"})
	if len(results) != 3 {
		t.Fatalf("expected 3 sectors, got %d", len(results))
	}
	if results[0].Driver != "VER" {
		t.Errorf("sector 1 won by %s, want VER", results[0].Driver)
	}
	if results[1].Driver != "HAM" {
		t.Errorf("sector 2 won by %s, want HAM", results[1].Driver)
	}
	if results[2].Driver != "VER" {
		t.Errorf("sector 3 won by %s, want VER", results[2].Driver)
	}
	if results[0].Margin != 0.5 {
		t.Errorf("sector 1 margin = %v, want 0.5", results[0].Margin)
	}
}
