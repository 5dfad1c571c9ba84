// Package statistics aggregates per-hand chip results from simulations.
package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/holdem/internal/game"
)

// HandResult is one seat's outcome for a single hand.
type HandResult struct {
	Net            int   // chips won minus chips committed
	Seed           int64 // match seed, for replay
	Position       int   // seats left of the dealer; 0 is the dealer
	WentToShowdown bool
	Pot            int
	Street         game.Street // furthest street reached before the hand ended
}

// PositionStats tracks results for one position relative to the dealer.
type PositionStats struct {
	Hands int
	Sum   float64
	SumSq float64
}

// Statistics accumulates results for one group of seats, such as every seat
// played by the same strategy.
type Statistics struct {
	Hands  int
	Sum    float64
	SumSq  float64 // sum of squares for the variance
	Values []float64

	ShowdownWins    int
	UncontestedWins int
	ShowdownNet     float64 // net from hands that reached showdown, wins and losses
	UncontestedNet  float64 // net from hands that ended in a fold-out
	AllNet          float64

	Positions [game.MaxSeats]PositionStats

	MaxPot  int
	Streets [game.Showdown + 1]int
}

// Mean returns the average net chips per hand.
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.Sum / float64(s.Hands)
}

// Variance returns the sample variance.
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumSq - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

func (s *Statistics) StdDev() float64 {
	return math.Sqrt(max(s.Variance(), 0))
}

// StdError returns the standard error of the mean.
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add records one result.
func (s *Statistics) Add(r HandResult) {
	net := float64(r.Net)
	s.Hands++
	s.Sum += net
	s.SumSq += net * net
	s.Values = append(s.Values, net)

	if r.Net > 0 {
		if r.WentToShowdown {
			s.ShowdownWins++
		} else {
			s.UncontestedWins++
		}
	}
	if r.WentToShowdown {
		s.ShowdownNet += net
	} else {
		s.UncontestedNet += net
	}
	s.AllNet += net

	if r.Position >= 0 && r.Position < len(s.Positions) {
		ps := &s.Positions[r.Position]
		ps.Hands++
		ps.Sum += net
		ps.SumSq += net * net
	}

	s.MaxPot = max(s.MaxPot, r.Pot)
	if r.Street >= game.PreDeal && r.Street <= game.Showdown {
		s.Streets[r.Street]++
	}
}

// Merge folds other into s.
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.Sum += other.Sum
	s.SumSq += other.SumSq
	s.Values = append(s.Values, other.Values...)
	s.ShowdownWins += other.ShowdownWins
	s.UncontestedWins += other.UncontestedWins
	s.ShowdownNet += other.ShowdownNet
	s.UncontestedNet += other.UncontestedNet
	s.AllNet += other.AllNet
	for i := range s.Positions {
		s.Positions[i].Hands += other.Positions[i].Hands
		s.Positions[i].Sum += other.Positions[i].Sum
		s.Positions[i].SumSq += other.Positions[i].SumSq
	}
	s.MaxPot = max(s.MaxPot, other.MaxPot)
	for i := range s.Streets {
		s.Streets[i] += other.Streets[i]
	}
}

func (s *Statistics) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// Median returns the median net result.
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the interpolated value at p, between 0 and 1.
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// PositionMean returns the mean result at a position relative to the dealer.
func (s *Statistics) PositionMean(position int) float64 {
	if position < 0 || position >= len(s.Positions) {
		return 0
	}
	ps := s.Positions[position]
	if ps.Hands == 0 {
		return 0
	}
	return ps.Sum / float64(ps.Hands)
}

// IsLedgerBalanced reports whether showdown and uncontested results add up to the total.
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.AllNet-s.ShowdownNet-s.UncontestedNet) <= 1e-6
}

// Validate checks the accumulated data for internal consistency.
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: all=%.2f showdown=%.2f uncontested=%.2f",
			s.AllNet, s.ShowdownNet, s.UncontestedNet)
	}
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)", len(s.Values), s.Hands)
	}
	if wins := s.ShowdownWins + s.UncontestedWins; wins > s.Hands {
		return fmt.Errorf("total wins (%d) exceeds total hands (%d)", wins, s.Hands)
	}

	positions := 0
	for _, ps := range s.Positions {
		positions += ps.Hands
	}
	if positions != s.Hands {
		return fmt.Errorf("position hands total (%d) does not match total hands (%d)", positions, s.Hands)
	}
	return nil
}
