// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package analysis

import (
	"reflect"
	"testing"

	"github.com/pitwall-project/pitwall/internal/f1"
)

func TestStintsSegmentsByCompound(t *testing.T) {
	t.Parallel()

	compounds := []f1.Compound{
		f1.CompoundSoft, f1.CompoundSoft, f1.CompoundSoft,
		f1.CompoundMedium, f1.CompoundMedium,
		f1.CompoundHard,
	}
	laps := makeLaps("VER", []float64{90, 90, 90, 90, 90, 90}, compounds)

	stints := Stints(laps)
	if len(stints) != 3 {
		t.Fatalf("expected 3 stints, got %d", len(stints))
	}
	lengths := []int{stints[0].Length, stints[1].Length, stints[2].Length}
	if !reflect.DeepEqual(lengths, []int{3, 2, 1}) {
		t.Errorf("stint lengths = %v, want [3 2 1]", lengths)
	}
	if stints[1].Compound != f1.CompoundMedium {
		t.Errorf("second stint compound = %s, want MEDIUM", stints[1].Compound)
	}
	if stints[0].StartLap != 1 || stints[0].EndLap != 3 {
		t.Errorf("first stint bounds = %d-%d, want 1-3", stints[0].StartLap, stints[0].EndLap)
	}
}

func TestStintsEmptyCompoundExtendsCurrent(t *testing.T) {
	t.Parallel()

	compounds := []f1.Compound{f1.CompoundSoft, "", f1.CompoundSoft, f1.CompoundMedium}
	laps := makeLaps("VER", []float64{90, 90, 90, 90}, compounds)

	stints := Stints(laps)
	if len(stints) != 2 {
		t.Fatalf("expected 2 stints, got %d", len(stints))
	}
	if stints[0].Length != 3 {
		t.Errorf("first stint length = %d, want 3", stints[0].Length)
	}
}

func TestPitLapsFlagsSlowLaps(t *testing.T) {
	t.Parallel()

	times := []float64{90, 91, 90, 170, 90, 91, 90, 168, 90}
	laps := makeLaps("VER", times, nil)

	flagged := PitLaps(laps, 1.8)
	if !reflect.DeepEqual(flagged, []int{4, 8}) {
		t.Errorf("pit laps = %v, want [4 8]", flagged)
	}
}

func TestPitLapsIsPureAndIdempotent(t *testing.T) {
	t.Parallel()

	laps := makeLaps("VER", []float64{90, 91, 170, 90, 91}, nil)
	before := append([]f1.Lap(nil), laps...)

	first := PitLaps(laps, 1.8)
	second := PitLaps(laps, 1.8)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated calls differ: %v vs %v", first, second)
	}
	if !reflect.DeepEqual(laps, before) {
		t.Error("input laps were mutated")
	}
}

func TestPitLapsEmptyInput(t *testing.T) {
	t.Parallel()

	if got := PitLaps(nil, 1.8); got != nil {
		t.Errorf("expected nil for no laps, got %v", got)
	}
	untimed := makeLaps("VER", []float64{0, 0}, nil)
	if got := PitLaps(untimed, 1.8); got != nil {
		t.Errorf("expected nil for untimed laps, got %v", got)
	}
}

func TestValidLapsExcludesPitAndUntimed(t *testing.T) {
	t.Parallel()

	laps := makeLaps("VER", []float64{90, 0, 91, 92}, nil)
	laps[2].PitIn = true
	s := sessionWith(laps)

	valid := validLaps(s, "VER")
	if len(valid) != 2 {
		t.Fatalf("expected 2 valid laps, got %d", len(valid))
	}
	if valid[0].Number != 1 || valid[1].Number != 4 {
		t.Errorf("valid lap numbers = %d, %d, want 1, 4", valid[0].Number, valid[1].Number)
	}
}
