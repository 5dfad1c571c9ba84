package simulator

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"time"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/statistics"
	"github.com/lox/holdem/poker"
)

// Report summarises a simulation.
type Report struct {
	Matches   int
	Hands     int
	FoldOuts  int
	Showdowns int
	SplitPots int
	Abrupt    int
	Refills   int

	// Categories counts the winning hand category of every showdown.
	Categories map[poker.HandCategory]int
	// Strategies holds per-seat results grouped by strategy name.
	Strategies map[string]*statistics.Statistics

	Elapsed time.Duration
}

func newReport() *Report {
	return &Report{
		Categories: make(map[poker.HandCategory]int),
		Strategies: make(map[string]*statistics.Statistics),
	}
}

func (r *Report) stats(strategy string) *statistics.Statistics {
	st, ok := r.Strategies[strategy]
	if !ok {
		st = &statistics.Statistics{}
		r.Strategies[strategy] = st
	}
	return st
}

// record adds a finished hand. It fails if the chips won do not match the chips committed.
func (r *Report) record(tbl *game.Table, seats []seat, dealer int, street game.Street, seed int64) error {
	r.Hands++
	switch {
	case tbl.EveryoneFolded():
		r.FoldOuts++
	default:
		r.Showdowns++
		r.Categories[tbl.Winners()[0].Hand]++
	}
	if len(tbl.Winners()) > 1 {
		r.SplitPots++
	}
	if tbl.Abrupt() {
		r.Abrupt++
	}

	n := len(seats)
	sum := 0
	for i, s := range seats {
		net := s.player.Won - s.player.InPot
		sum += net
		r.stats(s.strategy).Add(statistics.HandResult{
			Net:            net,
			Seed:           seed,
			Position:       (i - dealer + n) % n,
			WentToShowdown: !tbl.EveryoneFolded(),
			Pot:            tbl.Pot(),
			Street:         street,
		})
	}
	if sum != 0 {
		return fmt.Errorf("net results sum to %d, want 0", sum)
	}
	return nil
}

func (r *Report) merge(other *Report) {
	r.Matches += other.Matches
	r.Hands += other.Hands
	r.FoldOuts += other.FoldOuts
	r.Showdowns += other.Showdowns
	r.SplitPots += other.SplitPots
	r.Abrupt += other.Abrupt
	r.Refills += other.Refills
	for c, n := range other.Categories {
		r.Categories[c] += n
	}
	for name, st := range other.Strategies {
		r.stats(name).Merge(st)
	}
}

// PrintSummary writes a human readable summary of the report.
func (r *Report) PrintSummary(w io.Writer) {
	fmt.Fprintf(w, "\n=== SIMULATION: %d matches, %d hands in %v ===\n", r.Matches, r.Hands, r.Elapsed.Round(time.Millisecond))
	if r.Hands == 0 {
		return
	}
	pct := func(n int) float64 { return float64(n) / float64(r.Hands) * 100 }
	fmt.Fprintf(w, "Fold-outs: %d (%.1f%%)\n", r.FoldOuts, pct(r.FoldOuts))
	fmt.Fprintf(w, "Showdowns: %d (%.1f%%), split pots: %d, run outs: %d\n", r.Showdowns, pct(r.Showdowns), r.SplitPots, r.Abrupt)
	fmt.Fprintf(w, "Refilled chips: %d\n", r.Refills)

	fmt.Fprintf(w, "\n=== WINNING HANDS ===\n")
	for c := poker.RoyalFlush; ; c-- {
		if n := r.Categories[c]; n > 0 {
			fmt.Fprintf(w, "%-16s %6d (%.2f%% of showdowns)\n", c, n, float64(n)/float64(r.Showdowns)*100)
		}
		if c == poker.HighCard {
			break
		}
	}

	fmt.Fprintf(w, "\n=== STRATEGIES (net chips per hand) ===\n")
	for _, name := range slices.Sorted(maps.Keys(r.Strategies)) {
		st := r.Strategies[name]
		low, high := st.ConfidenceInterval95()
		fmt.Fprintf(w, "%-8s mean %8.2f  median %8.2f  sd %8.2f  95%% CI [%.2f, %.2f]  showdown wins %d, uncontested wins %d\n",
			name, st.Mean(), st.Median(), st.StdDev(), low, high, st.ShowdownWins, st.UncontestedWins)
	}
}
