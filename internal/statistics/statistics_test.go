package statistics

import (
	"math"
	"testing"

	"github.com/lox/holdem/internal/game"
)

func TestStatistics_Empty(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.Percentile(0.5) != 0 {
		t.Errorf("Expected percentile of 0 for empty stats, got %f", stats.Percentile(0.5))
	}
	if err := stats.Validate(); err == nil {
		t.Error("Expected empty stats to fail validation")
	}
}

func TestStatistics_SingleValue(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	stats.Add(HandResult{Net: 250, Seed: 12345, Position: 1, WentToShowdown: true, Pot: 500, Street: game.Showdown})

	if stats.Hands != 1 {
		t.Errorf("Expected 1 hand, got %d", stats.Hands)
	}
	if stats.Mean() != 250 {
		t.Errorf("Expected mean of 250, got %f", stats.Mean())
	}
	if stats.StdDev() != 0 {
		t.Errorf("Expected stddev of 0 for single value, got %f", stats.StdDev())
	}
	if stats.ShowdownWins != 1 || stats.UncontestedWins != 0 {
		t.Errorf("Expected one showdown win, got %d showdown and %d uncontested", stats.ShowdownWins, stats.UncontestedWins)
	}
	if stats.MaxPot != 500 {
		t.Errorf("Expected max pot 500, got %d", stats.MaxPot)
	}
	if stats.Streets[game.Showdown] != 1 {
		t.Errorf("Expected one showdown street, got %v", stats.Streets)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Unexpected validation error: %v", err)
	}
}

func TestStatistics_MultipleValues(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	results := []HandResult{
		{Net: 100, Position: 0, Pot: 200, Street: game.PreDeal},
		{Net: -200, Position: 1, WentToShowdown: true, Pot: 400, Street: game.Showdown},
		{Net: 300, Position: 2, WentToShowdown: true, Pot: 600, Street: game.Showdown},
		{Net: 0, Position: 0, Street: game.Flop},
		{Net: -100, Position: 1, Pot: 200, Street: game.Turn},
	}
	for _, r := range results {
		stats.Add(r)
	}

	if got, want := stats.Mean(), 20.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("Expected mean of %f, got %f", want, got)
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0, got %f", stats.Median())
	}
	if got := stats.Percentile(1); got != 300 {
		t.Errorf("Expected P100 of 300, got %f", got)
	}
	if got := stats.Percentile(0.25); got != -100 {
		t.Errorf("Expected P25 of -100, got %f", got)
	}
	if stats.ShowdownWins != 1 || stats.UncontestedWins != 1 {
		t.Errorf("Expected 1 showdown and 1 uncontested win, got %d and %d", stats.ShowdownWins, stats.UncontestedWins)
	}
	if stats.Positions[0].Hands != 2 || stats.Positions[1].Hands != 2 || stats.Positions[2].Hands != 1 {
		t.Errorf("Unexpected position counts %+v", stats.Positions[:3])
	}
	if got := stats.PositionMean(1); got != -150 {
		t.Errorf("Expected position 1 mean of -150, got %f", got)
	}

	// Sample variance of 100, -200, 300, 0, -100 with mean 20.
	wantVar := (80.0*80 + 220*220 + 280*280 + 20*20 + 120*120) / 4
	if math.Abs(stats.Variance()-wantVar) > 1e-6 {
		t.Errorf("Expected variance %f, got %f", wantVar, stats.Variance())
	}
	low, high := stats.ConfidenceInterval95()
	if low >= stats.Mean() || high <= stats.Mean() {
		t.Errorf("Confidence interval [%f, %f] does not contain the mean", low, high)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Unexpected validation error: %v", err)
	}
}

func TestStatistics_Merge(t *testing.T) {
	t.Parallel()
	a, b, all := &Statistics{}, &Statistics{}, &Statistics{}
	for i := range 10 {
		r := HandResult{Net: i*37 - 150, Position: i % 3, WentToShowdown: i%2 == 0, Pot: i * 10}
		all.Add(r)
		if i < 4 {
			a.Add(r)
		} else {
			b.Add(r)
		}
	}

	a.Merge(b)
	if a.Hands != all.Hands || a.Sum != all.Sum || a.SumSq != all.SumSq {
		t.Errorf("Merged totals differ: got %d/%f/%f, want %d/%f/%f", a.Hands, a.Sum, a.SumSq, all.Hands, all.Sum, all.SumSq)
	}
	if a.Median() != all.Median() {
		t.Errorf("Merged median %f, want %f", a.Median(), all.Median())
	}
	if a.Positions != all.Positions {
		t.Errorf("Merged positions differ")
	}
	if a.MaxPot != 90 {
		t.Errorf("Expected max pot 90, got %d", a.MaxPot)
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Unexpected validation error: %v", err)
	}
}

func TestStatistics_ValidateDetectsMismatch(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	stats.Add(HandResult{Net: 10})
	stats.Values = nil

	if err := stats.Validate(); err == nil {
		t.Error("Expected validation to fail when values are missing")
	}
}
