// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package f1

// NeutralColor is used for teams and compounds with no known color.
const NeutralColor = "#808080"

// TeamColors maps team names to their display colors.
var TeamColors = map[string]string{
	"Mercedes":        "#00D2BE",
	"Red Bull Racing": "#1E41FF",
	"Ferrari":         "#DC0000",
	"McLaren":         "#FF8700",
	"Alpine":          "#0090FF",
	"Aston Martin":    "#006F62",
	"Haas":            "#808080",
	"RB":              "#1660AD",
	"Williams":        "#87CEEB",
	"Kick Sauber":     "#00E701",
}

// DriverTeams is the static fallback mapping of driver codes to teams
// (2024 grid). The registry prefers per-session team data over this table;
// team affiliation is a property of the session, never a permanent identity.
var DriverTeams = map[string]string{
	"VER": "Red Bull Racing",
	"PER": "Red Bull Racing",
	"LEC": "Ferrari",
	"SAI": "Ferrari",
	"HAM": "Mercedes",
	"RUS": "Mercedes",
	"NOR": "McLaren",
	"PIA": "McLaren",
	"ALO": "Aston Martin",
	"STR": "Aston Martin",
	"GAS": "Alpine",
	"OCO": "Alpine",
	"MAG": "Haas",
	"HUL": "Haas",
	"TSU": "RB",
	"RIC": "RB",
	"ALB": "Williams",
	"SAR": "Williams",
	"ZHO": "Kick Sauber",
	"BOT": "Kick Sauber",
}

// TireColors maps compounds to their display colors.
var TireColors = map[Compound]string{
	CompoundSoft:         "#DC0000",
	CompoundMedium:       "#FFD700",
	CompoundHard:         "#FFFFFF",
	CompoundIntermediate: "#00FF00",
	CompoundWet:          "#0000FF",
}

// TireColor returns the display color for a compound, the neutral gray
// for unknown compounds.
func TireColor(c Compound) string {
	if color, ok := TireColors[c]; ok {
		return color
	}
	return NeutralColor
}

// GrandsPrix lists the events offered by the discovery endpoints.
var GrandsPrix = []string{
	"Bahrain Grand Prix",
	"Saudi Arabian Grand Prix",
	"Australian Grand Prix",
	"Japanese Grand Prix",
	"Chinese Grand Prix",
	"Miami Grand Prix",
	"Emilia Romagna Grand Prix",
	"Monaco Grand Prix",
	"Canadian Grand Prix",
	"Spanish Grand Prix",
	"Austrian Grand Prix",
	"British Grand Prix",
	"Hungarian Grand Prix",
	"Belgian Grand Prix",
	"Dutch Grand Prix",
	"Italian Grand Prix",
	"Azerbaijan Grand Prix",
	"Singapore Grand Prix",
	"United States Grand Prix",
	"Mexico City Grand Prix",
	"Sao Paulo Grand Prix",
	"Las Vegas Grand Prix",
	"Qatar Grand Prix",
	"Abu Dhabi Grand Prix",
}

// SessionKinds lists the selectable session types with display labels.
var SessionKinds = []struct {
	Kind  SessionKind `json:"kind"`
	Label string      `json:"label"`
}{
	{KindPractice1, "Practice 1"},
	{KindPractice2, "Practice 2"},
	{KindPractice3, "Practice 3"},
	{KindQualifying, "Qualifying"},
	{KindSprint, "Sprint"},
	{KindRace, "Race"},
}

// ParseSessionKind normalizes a session type string. Returns false for
// unknown values.
func ParseSessionKind(s string) (SessionKind, bool) {
	switch SessionKind(s) {
	case KindPractice1, KindPractice2, KindPractice3, KindQualifying, KindSprint, KindRace:
		return SessionKind(s), true
	}
	return "", false
}

// PointsByPosition is the points awarded for each finishing position,
// index 0 = P1.
var PointsByPosition = []int{25, 18, 15, 12, 10, 8, 6, 4, 2, 1}

// PointsForPosition returns the championship points for a finishing
// position (1-based); positions outside the points score zero.
func PointsForPosition(pos int) int {
	if pos < 1 || pos > len(PointsByPosition) {
		return 0
	}
	return PointsByPosition[pos-1]
}
