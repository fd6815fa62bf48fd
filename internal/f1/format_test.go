// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package f1

import (
	"math"
	"testing"
)

func TestFormatLapTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"standard lap", 83.456, "1:23.456"},
		{"over two minutes", 125.001, "2:05.001"},
		{"under a minute", 59.999, "0:59.999"},
		{"exactly a minute", 60.0, "1:00.000"},
		{"zero", 0, "N/A"},
		{"negative", -3.2, "N/A"},
		{"nan", math.NaN(), "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatLapTime(tt.seconds); got != tt.want {
				t.Errorf("FormatLapTime(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatSectorTime(t *testing.T) {
	t.Parallel()

	if got := FormatSectorTime(28.4567); got != "28.457" {
		t.Errorf("FormatSectorTime(28.4567) = %q, want %q", got, "28.457")
	}
	if got := FormatSectorTime(0); got != "N/A" {
		t.Errorf("FormatSectorTime(0) = %q, want N/A", got)
	}
}

func TestFormatGapTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		seconds float64
		want    string
	}{
		{0.345, "+0.345"},
		{12.5, "+12.500"},
		{61.25, "+1:01.250"},
		{0, "+0.000"},
		{-1, "N/A"},
	}

	for _, tt := range tests {
		if got := FormatGapTime(tt.seconds); got != tt.want {
			t.Errorf("FormatGapTime(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatTireAge(t *testing.T) {
	t.Parallel()

	if got := FormatTireAge(0); got != "New" {
		t.Errorf("FormatTireAge(0) = %q, want New", got)
	}
	if got := FormatTireAge(1); got != "1 lap" {
		t.Errorf("FormatTireAge(1) = %q, want \"1 lap\"", got)
	}
	if got := FormatTireAge(12); got != "12 laps" {
		t.Errorf("FormatTireAge(12) = %q, want \"12 laps\"", got)
	}
}
