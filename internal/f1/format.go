// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package f1

import (
	"fmt"
	"math"
)

// NotAvailable is the placeholder for missing or invalid time values.
const NotAvailable = "N/A"

// FormatLapTime renders a lap time in seconds as "M:SS.mmm".
// Zero, negative and NaN inputs render as "N/A".
func FormatLapTime(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) {
		return NotAvailable
	}
	minutes := int(seconds) / 60
	rem := seconds - float64(minutes)*60
	return fmt.Sprintf("%d:%06.3f", minutes, rem)
}

// FormatSectorTime renders a sector time as "SS.mmm".
func FormatSectorTime(seconds float64) string {
	if seconds <= 0 || math.IsNaN(seconds) {
		return NotAvailable
	}
	return fmt.Sprintf("%.3f", seconds)
}

// FormatGapTime renders a gap to a reference time as "+S.mmm", switching
// to "+M:SS.mmm" at a minute or more.
func FormatGapTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		return NotAvailable
	}
	if seconds >= 60 {
		minutes := int(seconds) / 60
		rem := seconds - float64(minutes)*60
		return fmt.Sprintf("+%d:%06.3f", minutes, rem)
	}
	return fmt.Sprintf("+%.3f", seconds)
}

// FormatTireAge renders a tire age in laps; a fresh set shows as "New".
func FormatTireAge(laps int) string {
	if laps <= 0 {
		return "New"
	}
	if laps == 1 {
		return "1 lap"
	}
	return fmt.Sprintf("%d laps", laps)
}
