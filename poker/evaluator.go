package poker

import (
	"fmt"
	"slices"
	"strings"
)

// HandCategory enumerates hand categories ordered from weakest to strongest.
type HandCategory uint8

const (
	HighCard HandCategory = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

func (c HandCategory) String() string {
	if c > RoyalFlush {
		return "Unknown"
	}
	return [...]string{
		"High Card", "Pair", "Two Pair", "Three of a Kind", "Straight",
		"Flush", "Full House", "Four of a Kind", "Straight Flush", "Royal Flush",
	}[c]
}

// HandValue is the result of evaluating a player's cards. Kickers are ordered by
// significance so that two values of the same category compare position by position.
// Straights (including straight and royal flushes) carry a single kicker: the top
// card of the straight, which is Five for the wheel.
type HandValue struct {
	Category HandCategory
	Kickers  []Rank
}

func (v HandValue) String() string {
	parts := make([]string, len(v.Kickers))
	for i, k := range v.Kickers {
		parts[i] = k.String()
	}
	return fmt.Sprintf("%s (%s)", v.Category, strings.Join(parts, " "))
}

// Compare returns 1 if a beats b, -1 if b beats a and 0 for an exact tie.
func Compare(a, b HandValue) int {
	if a.Category != b.Category {
		if a.Category > b.Category {
			return 1
		}
		return -1
	}
	for i := 0; i < len(a.Kickers) && i < len(b.Kickers); i++ {
		if a.Kickers[i] != b.Kickers[i] {
			if a.Kickers[i] > b.Kickers[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// Evaluate classifies between five and seven cards. The usual input is two hole
// cards followed by five community cards.
func Evaluate(cards ...Card) (HandValue, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return HandValue{}, fmt.Errorf("evaluate: need 5 to 7 cards, got %d", len(cards))
	}

	var rankCounts [Ace + 1]int
	var suitCounts [NumSuits]int
	for _, c := range cards {
		if !c.Rank.Valid() || c.Suit > Spades {
			return HandValue{}, fmt.Errorf("evaluate: invalid card %s", c)
		}
		rankCounts[c.Rank]++
		suitCounts[c.Suit]++
	}

	flushSuit, hasFlush := majoritySuit(suitCounts)
	var flushRanks []Rank
	if hasFlush {
		for _, c := range cards {
			if c.Suit == flushSuit {
				flushRanks = append(flushRanks, c.Rank)
			}
		}
		sortDesc(flushRanks)
		if high := straightHigh(flushRanks); high != 0 {
			category := StraightFlush
			if high == Ace {
				category = RoyalFlush
			}
			return HandValue{Category: category, Kickers: []Rank{high}}, nil
		}
	}

	pool := make(rankPool, 0, len(cards))
	for _, c := range cards {
		pool = append(pool, c.Rank)
	}
	sortDesc(pool)

	if quad := highestWithCount(rankCounts, 4, 0); quad != 0 {
		pool.take(quad, 4)
		return HandValue{Category: FourOfAKind, Kickers: append(repeat(quad, 4), pool.top(1)...)}, nil
	}

	if trips := highestWithCount(rankCounts, 3, 0); trips != 0 {
		if pair := highestWithCount(rankCounts, 2, trips); pair != 0 {
			return HandValue{Category: FullHouse, Kickers: append(repeat(trips, 3), repeat(pair, 2)...)}, nil
		}
	}

	if hasFlush {
		return HandValue{Category: Flush, Kickers: slices.Clone(flushRanks[:5])}, nil
	}

	if high := straightHigh(pool); high != 0 {
		return HandValue{Category: Straight, Kickers: []Rank{high}}, nil
	}

	if trips := highestWithCount(rankCounts, 3, 0); trips != 0 {
		pool.take(trips, 3)
		return HandValue{Category: ThreeOfAKind, Kickers: append(repeat(trips, 3), pool.top(2)...)}, nil
	}

	if high := highestWithCount(rankCounts, 2, 0); high != 0 {
		if low := highestWithCount(rankCounts, 2, high); low != 0 {
			pool.take(high, 2)
			pool.take(low, 2)
			kickers := append(repeat(high, 2), repeat(low, 2)...)
			return HandValue{Category: TwoPair, Kickers: append(kickers, pool.top(1)...)}, nil
		}
		pool.take(high, 2)
		return HandValue{Category: Pair, Kickers: append(repeat(high, 2), pool.top(3)...)}, nil
	}

	return HandValue{Category: HighCard, Kickers: pool.top(5)}, nil
}

// ShowdownResult describes which contenders won and whether a kicker decided it.
type ShowdownResult struct {
	// Winners holds indexes into the evaluated hands, in input order.
	Winners []int
	// Tiebreaker is set when several hands shared the best category and a
	// kicker reduced them to a single winner.
	Tiebreaker      bool
	TiebreakerIndex int
	TiebreakerValue Rank
}

// SelectWinners picks the best hands. Hands of the highest category are
// compared kicker by kicker; at each position every hand below the maximum is
// dropped. Hands still level after the last kicker tie.
func SelectWinners(hands []HandValue) ShowdownResult {
	if len(hands) == 0 {
		return ShowdownResult{}
	}

	best := hands[0].Category
	for _, h := range hands[1:] {
		best = max(best, h.Category)
	}

	var winners []int
	for i, h := range hands {
		if h.Category == best {
			winners = append(winners, i)
		}
	}
	if len(winners) == 1 {
		return ShowdownResult{Winners: winners}
	}

	for pos := range len(hands[winners[0]].Kickers) {
		var top Rank
		for _, w := range winners {
			top = max(top, kickerAt(hands[w], pos))
		}
		remaining := winners[:0]
		for _, w := range winners {
			if kickerAt(hands[w], pos) == top {
				remaining = append(remaining, w)
			}
		}
		winners = remaining
		if len(winners) == 1 {
			return ShowdownResult{
				Winners:         winners,
				Tiebreaker:      true,
				TiebreakerIndex: pos,
				TiebreakerValue: top,
			}
		}
	}

	return ShowdownResult{Winners: winners}
}

func kickerAt(h HandValue, pos int) Rank {
	if pos < len(h.Kickers) {
		return h.Kickers[pos]
	}
	return 0
}

// majoritySuit returns the suit holding five or more of the cards, if any.
func majoritySuit(counts [NumSuits]int) (Suit, bool) {
	best := Clubs
	for s := Diamonds; s <= Spades; s++ {
		if counts[s] > counts[best] {
			best = s
		}
	}
	return best, counts[best] >= 5
}

// straightHigh returns the top rank of the highest five-rank run in ranks, or
// zero if there is none. The wheel (A-2-3-4-5) counts as a Five-high straight.
func straightHigh(ranks []Rank) Rank {
	var present [Ace + 1]bool
	for _, r := range ranks {
		present[r] = true
	}
	for high := Ace; high >= Six; high-- {
		if present[high] && present[high-1] && present[high-2] && present[high-3] && present[high-4] {
			return high
		}
	}
	if present[Ace] && present[Two] && present[Three] && present[Four] && present[Five] {
		return Five
	}
	return 0
}

// highestWithCount returns the highest rank, other than exclude, appearing at
// least n times.
func highestWithCount(counts [Ace + 1]int, n int, exclude Rank) Rank {
	for r := Ace; r >= Two; r-- {
		if r != exclude && counts[r] >= n {
			return r
		}
	}
	return 0
}

// rankPool is a descending multiset of ranks used to pick kickers.
type rankPool []Rank

func (p *rankPool) take(r Rank, n int) {
	out := (*p)[:0]
	for _, x := range *p {
		if x == r && n > 0 {
			n--
			continue
		}
		out = append(out, x)
	}
	*p = out
}

func (p rankPool) top(n int) []Rank {
	n = min(n, len(p))
	return slices.Clone(p[:n])
}

func repeat(r Rank, n int) []Rank {
	out := make([]Rank, n, 5)
	for i := range out {
		out[i] = r
	}
	return out
}

func sortDesc(ranks []Rank) {
	slices.SortFunc(ranks, func(a, b Rank) int { return int(b) - int(a) })
}
