// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

package analysis

import (
	"math"

	"github.com/pitwall-project/pitwall/internal/f1"
)

// channel reads one telemetry channel from a sample.
type channel func(f1.TelemetrySample) float64

func speedOf(s f1.TelemetrySample) float64    { return s.Speed }
func throttleOf(s f1.TelemetrySample) float64 { return s.Throttle }
func brakeOf(s f1.TelemetrySample) float64    { return s.Brake }
func rpmOf(s f1.TelemetrySample) float64      { return s.RPM }

// channelStats summarizes one telemetry channel over the samples matching
// a predicate. This single threshold-and-aggregate pass replaces the
// per-analysis variants of the same loop.
type channelStats struct {
	// Count is the number of matching samples; Share their fraction of
	// all samples, in [0, 1].
	Count int
	Share float64

	// Mean, Std, Min and Max summarize the channel over matching samples.
	Mean float64
	Std  float64
	Min  float64
	Max  float64

	// Zones is the number of maximal runs of consecutive matching
	// samples (e.g. distinct braking zones on a lap).
	Zones int
}

// threshold aggregates value over the samples where match is true.
// A nil match aggregates everything.
func threshold(samples []f1.TelemetrySample, value channel, match func(f1.TelemetrySample) bool) channelStats {
	var st channelStats
	if len(samples) == 0 {
		st.Mean, st.Std = math.NaN(), math.NaN()
		st.Min, st.Max = math.NaN(), math.NaN()
		return st
	}

	var values []float64
	inZone := false
	for _, s := range samples {
		if match != nil && !match(s) {
			inZone = false
			continue
		}
		if !inZone {
			st.Zones++
			inZone = true
		}
		values = append(values, value(s))
	}

	st.Count = len(values)
	st.Share = float64(len(values)) / float64(len(samples))
	st.Mean = mean(values)
	st.Std = stdDev(values)
	st.Min, st.Max = minMax(values)
	return st
}

// gearChanges counts gear shifts across a trace.
func gearChanges(samples []f1.TelemetrySample) int {
	changes := 0
	for i := 1; i < len(samples); i++ {
		if samples[i].Gear != samples[i-1].Gear && samples[i].Gear > 0 && samples[i-1].Gear > 0 {
			changes++
		}
	}
	return changes
}

// lapDistance returns the covered distance of a trace in meters.
func lapDistance(samples []f1.TelemetrySample) float64 {
	if len(samples) == 0 {
		return 0
	}
	return samples[len(samples)-1].Distance - samples[0].Distance
}
