// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

// Package registry builds the per-session driver/team/color mapping.
// Team data supplied by the session wins; the static tables in package f1
// are the fallback, and wholly unknown teams get a neutral gray.
package registry

import (
	"sort"
	"strings"

	"github.com/pitwall-project/pitwall/internal/f1"
)

// Registry is the immutable driver view for one loaded session.
// It is built once per session load and discarded with it.
type Registry struct {
	drivers map[string]f1.DriverInfo
}

// Build derives the registry from a loaded session. Drivers that appear in
// laps but have no upstream record are included with table-derived data.
func Build(s *f1.Session) *Registry {
	r := &Registry{drivers: make(map[string]f1.DriverInfo)}

	for _, entry := range s.Drivers {
		r.drivers[entry.Code] = infoFromEntry(entry)
	}
	for _, code := range s.DriverCodes() {
		if _, ok := r.drivers[code]; !ok {
			r.drivers[code] = infoFromEntry(f1.DriverEntry{Code: code})
		}
	}
	return r
}

func infoFromEntry(entry f1.DriverEntry) f1.DriverInfo {
	team := entry.TeamName
	if team == "" {
		team = f1.DriverTeams[entry.Code]
	}
	if team == "" {
		team = "Unknown"
	}

	color := normalizeColor(entry.TeamColor)
	if color == "" {
		color = TeamColor(team)
	}

	name := strings.TrimSpace(entry.FirstName + " " + entry.LastName)
	if name == "" {
		name = entry.Code
	}

	return f1.DriverInfo{
		Code:      entry.Code,
		Name:      name,
		Number:    entry.Number,
		Team:      team,
		TeamColor: color,
	}
}

// normalizeColor returns a "#RRGGBB" string or empty when unusable.
func normalizeColor(c string) string {
	c = strings.TrimSpace(c)
	if c == "" {
		return ""
	}
	if !strings.HasPrefix(c, "#") {
		c = "#" + c
	}
	if len(c) != 7 {
		return ""
	}
	return strings.ToUpper(c)
}

// TeamColor returns the static color for a team, neutral gray when unknown.
func TeamColor(team string) string {
	if color, ok := f1.TeamColors[team]; ok {
		return color
	}
	return f1.NeutralColor
}

// Driver returns the info for a driver code.
func (r *Registry) Driver(code string) (f1.DriverInfo, bool) {
	info, ok := r.drivers[code]
	return info, ok
}

// ColorFor returns the driver's team color, neutral gray when the driver
// is unknown.
func (r *Registry) ColorFor(code string) string {
	if info, ok := r.drivers[code]; ok {
		return info.TeamColor
	}
	return f1.NeutralColor
}

// All returns every driver sorted by code.
func (r *Registry) All() []f1.DriverInfo {
	infos := make([]f1.DriverInfo, 0, len(r.drivers))
	for _, info := range r.drivers {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Code < infos[j].Code })
	return infos
}

// Known filters the given codes to the ones present in the registry,
// preserving order and dropping duplicates. Unknown drivers are omitted,
// never an error.
func (r *Registry) Known(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	var out []string
	for _, code := range codes {
		if seen[code] {
			continue
		}
		seen[code] = true
		if _, ok := r.drivers[code]; ok {
			out = append(out, code)
		}
	}
	return out
}
