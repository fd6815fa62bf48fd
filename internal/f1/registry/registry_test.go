// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package registry

import (
	"testing"

	"github.com/pitwall-project/pitwall/internal/f1"
)

func buildTestRegistry() *Registry {
	return Build(&f1.Session{
		Year:      2024,
		EventName: "Bahrain Grand Prix",
		Kind:      f1.KindRace,
		Drivers: []f1.DriverEntry{
			{Code: "VER", FirstName: "Max", LastName: "Verstappen", Number: 1,
				TeamName: "Red Bull Racing", TeamColor: "1e41ff"},
			{Code: "HAM", FirstName: "Lewis", LastName: "Hamilton", Number: 44,
				TeamName: "Mercedes"},
			{Code: "XXX", LastName: "Newcomer", Number: 99, TeamName: "Garage 56"},
		},
		Laps: []f1.Lap{
			{Driver: "ALO", Number: 1, Time: 95.0},
		},
	})
}

func TestBuildPrefersSessionData(t *testing.T) {
	t.Parallel()

	r := buildTestRegistry()
	info, ok := r.Driver("VER")
	if !ok {
		t.Fatal("VER missing from registry")
	}
	if info.Name != "Max Verstappen" {
		t.Errorf("name = %q", info.Name)
	}
	if info.TeamColor != "#1E41FF" {
		t.Errorf("color = %q, want normalized upstream color #1E41FF", info.TeamColor)
	}
}

func TestBuildFallsBackToStaticColor(t *testing.T) {
	t.Parallel()

	r := buildTestRegistry()
	info, _ := r.Driver("HAM")
	if info.TeamColor != f1.TeamColors["Mercedes"] {
		t.Errorf("color = %q, want static Mercedes color", info.TeamColor)
	}
}

func TestUnknownTeamGetsNeutralGray(t *testing.T) {
	t.Parallel()

	r := buildTestRegistry()
	info, _ := r.Driver("XXX")
	if info.TeamColor != f1.NeutralColor {
		t.Errorf("color = %q, want neutral %s", info.TeamColor, f1.NeutralColor)
	}
}

func TestLapOnlyDriverUsesStaticTable(t *testing.T) {
	t.Parallel()

	r := buildTestRegistry()
	info, ok := r.Driver("ALO")
	if !ok {
		t.Fatal("ALO should be derived from laps")
	}
	if info.Team != "Aston Martin" {
		t.Errorf("team = %q, want Aston Martin from static table", info.Team)
	}
	if info.Name != "ALO" {
		t.Errorf("name = %q, want code fallback", info.Name)
	}
}

func TestColorForUnknownDriver(t *testing.T) {
	t.Parallel()

	r := buildTestRegistry()
	if got := r.ColorFor("ZZZ"); got != f1.NeutralColor {
		t.Errorf("ColorFor(ZZZ) = %q, want neutral", got)
	}
}

func TestKnownFiltersAndDeduplicates(t *testing.T) {
	t.Parallel()

	r := buildTestRegistry()
	got := r.Known([]string{"HAM", "ZZZ", "VER", "HAM"})
	if len(got) != 2 || got[0] != "HAM" || got[1] != "VER" {
		t.Errorf("Known() = %v, want [HAM VER]", got)
	}
}

func TestAllSorted(t *testing.T) {
	t.Parallel()

	r := buildTestRegistry()
	all := r.All()
	if len(all) != 4 {
		t.Fatalf("expected 4 drivers, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Code < all[i-1].Code {
			t.Errorf("All() not sorted at %d", i)
		}
	}
}
