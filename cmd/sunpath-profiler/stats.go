package main

import (
	"math"
	"time"
)

// stats accumulates absolute errors.
type stats struct {
	count int
	sum   float64
	min   float64
	max   float64
}

func (s *stats) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	if s.count == 0 {
		s.min, s.max = v, v
	} else {
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
	s.sum += v
	s.count++
}

func (s *stats) avg() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.sum / float64(s.count)
}

// signedStats accumulates signed errors (ours minus reference), so the mean
// shows bias rather than spread.
type signedStats struct {
	stats
}

func (s *signedStats) mean() float64 { return s.avg() }

func diffMinutes(a, b time.Time) float64 {
	// Zero times mean "no data".
	if a.IsZero() || b.IsZero() {
		return math.NaN()
	}
	return math.Abs(a.Sub(b).Minutes())
}

func diffMinutesSigned(a, b time.Time) float64 {
	if a.IsZero() || b.IsZero() {
		return math.NaN()
	}
	return a.Sub(b).Minutes()
}
