package buffer

import (
	"math"
)

// Stats keeps streaming statistics of a sequence of values,
// e.g. the objective of a view across co-training rounds.
type Stats struct {
	count          int
	sum            float64
	first, last    float64
	min, max       float64
	mean, dSquared float64
}

// NewStats creates a new Stats.
func NewStats() *Stats {
	return &Stats{
		min: math.MaxFloat64,
		max: -math.MaxFloat64,
	}
}

// Push adds another element to the set.
func (s *Stats) Push(v float64) {
	s.count++
	s.sum += v
	// Welford's update
	diff := (v - s.mean) / float64(s.count)
	mean := s.mean + diff
	s.dSquared += (v - mean) * (v - s.mean)
	s.mean = mean

	if s.count == 1 {
		s.first = v
	}
	if s.min > v {
		s.min = v
	}
	if s.max < v {
		s.max = v
	}
	s.last = v
}

// Avg returns the average value of the set.
func (s Stats) Avg() float64 {
	return s.mean
}

// Sum returns the sum of all values.
func (s Stats) Sum() float64 {
	return s.sum
}

// Count returns the number of elements.
func (s Stats) Count() int {
	return s.count
}

// Min returns the smallest value seen.
func (s Stats) Min() float64 {
	return s.min
}

// Max returns the largest value seen.
func (s Stats) Max() float64 {
	return s.max
}

// Diff returns the difference of the last and the first value.
func (s Stats) Diff() float64 {
	return s.last - s.first
}

// Variance is the mathematical variance of the set.
func (s Stats) Variance() float64 {
	if s.count == 0 {
		return 0
	}
	return s.dSquared / float64(s.count)
}

// StDev is the standard deviation of the set.
func (s Stats) StDev() float64 {
	return math.Sqrt(s.Variance())
}

// Summary is the serializable snapshot of Stats.
type Summary struct {
	Count int     `json:"count"`
	First float64 `json:"first"`
	Last  float64 `json:"last"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Avg   float64 `json:"avg"`
	StDev float64 `json:"stdev"`
}

// Summary returns a snapshot of the current values.
// An empty set has an all-zero summary.
func (s Stats) Summary() Summary {
	if s.count == 0 {
		return Summary{}
	}
	return Summary{
		Count: s.count,
		First: s.first,
		Last:  s.last,
		Min:   s.min,
		Max:   s.max,
		Avg:   s.mean,
		StDev: s.StDev(),
	}
}
