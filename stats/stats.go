// Package stats holds the running statistics used by the self-play runner
// to aggregate per-difficulty outcomes.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic accumulates a stream of observations without storing them,
// using Welford's algorithm.
type Statistic struct {
	totalIterations int
	last            float64

	oldM float64
	newM float64
	oldS float64
	newS float64
}

func (s *Statistic) Push(val float64) {
	s.last = val
	s.totalIterations++
	if s.totalIterations == 1 {
		s.oldM = val
		s.newM = val
		s.oldS = 0
	} else {
		s.newM = s.oldM + (val-s.oldM)/float64(s.totalIterations)
		s.newS = s.oldS + (val-s.oldM)*(val-s.newM)
		s.oldM = s.newM
		s.oldS = s.newS
	}
}

func (s *Statistic) Mean() float64 {
	if s.totalIterations > 0 {
		return s.newM
	}
	return 0.0
}

func (s *Statistic) Variance() float64 {
	if s.totalIterations <= 1 {
		return 0.0
	}
	return s.newS / float64(s.totalIterations-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

func (s *Statistic) Last() float64 {
	return s.last
}

func (s *Statistic) Iterations() int {
	return s.totalIterations
}

// ZVal returns the two-tailed Z-value associated with a specific confidence
// interval. The interval is a number from 0 to 100 percent.
func ZVal(confidenceInterval float64) float64 {
	dist := distuv.Normal{Mu: 0, Sigma: 1}
	tail := (1 - confidenceInterval/100.0) / 2
	return dist.Quantile(1 - tail)
}

// BinomialCI returns the normal-approximation confidence interval for a
// win rate of wins out of n games, clamped to [0, 1].
func BinomialCI(wins, n int, confidenceInterval float64) (float64, float64) {
	if n == 0 {
		return 0, 0
	}
	p := float64(wins) / float64(n)
	margin := ZVal(confidenceInterval) * math.Sqrt(p*(1-p)/float64(n))
	return math.Max(0, p-margin), math.Min(1, p+margin)
}
