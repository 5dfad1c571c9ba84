// Package game implements a Texas Hold'em table engine for two or more seats.
//
// The main type is Table, which owns the deck, the five community cards, the
// pot and the betting-round state machine for a sequence of hands.
//
// # Basic Usage
//
//	t := game.NewTable(game.WithRNG(randutil.New(42)))
//	alice := game.NewPlayer("Alice", 1000)
//	bob := game.NewPlayer("Bob", 1000)
//	_ = t.AddPlayer(alice)
//	_ = t.AddPlayer(bob)
//	_ = t.Shuffle()
//
//	// Whoever IsNext calls one of the four actions.
//	if err := t.MakeBid(t.Current(), 100); err != nil {
//	    var aerr *game.ActionError
//	    if errors.As(err, &aerr) { ... }
//	}
//
// The first betting round of every hand happens before hole cards are dealt.
// Closing it deals two cards to each seat; later rounds reveal the flop, turn
// and river, each after a burn card. Closing the river round resolves the
// showdown. A fold that leaves one player ends the hand without evaluation.
//
// # Concurrency
//
// Table performs no locking. Callers must serialise actions; SyncTable wraps a
// Table with a single mutex for callers that act from several goroutines.
//
// # Deterministic Testing
//
// Inject a seeded RNG with WithRNG, or a stacked deck with WithDeck:
//
//	deck := poker.NewStackedDeck(poker.MustParseCards("As Kd ...")...)
//	t := game.NewTable(game.WithDeck(deck))
package game
