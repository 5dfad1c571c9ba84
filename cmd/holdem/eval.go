package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/holdem/poker"
)

// EvalCmd classifies a hand, or compares several hands against each other.
type EvalCmd struct {
	Hands []string `arg:"" name:"hand" help:"Cards such as 'Ah Kh Qh Jh Th'; give several hands to find the winner"`
}

func (c *EvalCmd) Run() error {
	return evaluate(os.Stdout, c.Hands)
}

func evaluate(w io.Writer, hands []string) error {
	values := make([]poker.HandValue, len(hands))
	for i, h := range hands {
		cards, err := poker.ParseCards(h)
		if err != nil {
			return err
		}
		v, err := poker.Evaluate(cards...)
		if err != nil {
			return err
		}
		values[i] = v
		fmt.Fprintf(w, "%-22s %s\n", poker.FormatCards(cards), v)
	}
	if len(values) < 2 {
		return nil
	}

	res := poker.SelectWinners(values)
	names := make([]string, len(res.Winners))
	for i, idx := range res.Winners {
		names[i] = fmt.Sprintf("#%d", idx+1)
	}
	verb := "wins"
	if len(names) > 1 {
		verb = "split"
	}
	fmt.Fprintf(w, "%s %s", strings.Join(names, ", "), verb)
	if res.Tiebreaker {
		fmt.Fprintf(w, " on kicker %d (%s)", res.TiebreakerIndex+1, res.TiebreakerValue)
	}
	fmt.Fprintln(w)
	return nil
}
