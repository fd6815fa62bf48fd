// Pitwall - Formula 1 Telemetry and Race Data Analytics
// Copyright 2026 Pitwall contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pitwall-project/pitwall

// Package analysis computes descriptive statistics over a loaded session:
// lap consistency, tire degradation, pit detection, telemetry profiles,
// sector and mini-sector dominance, race progression and comparative
// metrics. Every operation takes the session and a driver list and returns
// one record per driver; drivers whose data cannot support a metric are
// omitted from the result rather than reported as errors.
package analysis

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// mean returns the arithmetic mean, NaN for empty input.
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return stat.Mean(xs, nil)
}

// stdDev returns the sample standard deviation, 0 for fewer than two values.
func stdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}

// median returns the middle value, NaN for empty input.
func median(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

// quantile returns the p-th empirical quantile, NaN for empty input.
func quantile(p float64, xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// linearFit returns the least-squares intercept and slope of y over x.
// A single point yields a flat line through it.
func linearFit(x, y []float64) (intercept, slope float64) {
	if len(x) == 0 || len(x) != len(y) {
		return math.NaN(), math.NaN()
	}
	if len(x) == 1 {
		return y[0], 0
	}
	return stat.LinearRegression(x, y, nil, false)
}

// correlation returns the Pearson correlation of x and y, NaN when either
// side is constant or the lengths differ.
func correlation(x, y []float64) float64 {
	if len(x) < 2 || len(x) != len(y) {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}

// minMax returns the smallest and largest values, NaNs for empty input.
func minMax(xs []float64) (lo, hi float64) {
	if len(xs) == 0 {
		return math.NaN(), math.NaN()
	}
	lo, hi = xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < lo {
			lo = x
		}
		if x > hi {
			hi = x
		}
	}
	return lo, hi
}

// round2 rounds to two decimals for display-stable payloads.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// round3 rounds to three decimals (lap-time resolution).
func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
