package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/holdem/internal/phh"
)

// HistoryCmd prints recorded hands.
type HistoryCmd struct {
	Path    string `arg:"" name:"path" help:"A .phh file or a directory of them" type:"existingpath"`
	Limit   int    `help:"Maximum number of hands to show (0 = all)"`
	Actions bool   `short:"a" help:"Include the action log"`
}

func (c *HistoryCmd) Run() error {
	info, err := os.Stat(c.Path)
	if err != nil {
		return err
	}

	var hands []*phh.HandHistory
	if info.IsDir() {
		hands, err = phh.ReadDir(c.Path)
	} else {
		var h *phh.HandHistory
		h, err = phh.ReadFile(c.Path)
		hands = []*phh.HandHistory{h}
	}
	if err != nil {
		return err
	}
	if len(hands) == 0 {
		return fmt.Errorf("no hands found in %s", c.Path)
	}
	if c.Limit > 0 && c.Limit < len(hands) {
		hands = hands[:c.Limit]
	}

	for _, h := range hands {
		printHand(os.Stdout, h, c.Actions)
	}
	return nil
}

func printHand(w io.Writer, h *phh.HandHistory, actions bool) {
	fmt.Fprintf(w, "%s", h.HandID)
	if h.Year > 0 {
		fmt.Fprintf(w, "  %04d-%02d-%02d %s %s", h.Year, h.Month, h.Day, h.Time, h.TimeZone)
	}
	if hand, ok := h.Metadata["winning_hand"]; ok {
		fmt.Fprintf(w, "  %v", hand)
	}
	fmt.Fprintln(w)

	for i, name := range h.Players {
		net := 0
		if i < len(h.FinishingStacks) && i < len(h.StartingStacks) {
			net = h.FinishingStacks[i] - h.StartingStacks[i]
		}
		fmt.Fprintf(w, "  p%d %-12s %+6d\n", i+1, name, net)
	}
	if actions {
		fmt.Fprintf(w, "  %s\n", strings.Join(h.Actions, "\n  "))
	}
}
