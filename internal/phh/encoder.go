package phh

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/poker"
)

// Encode writes the hand history to w in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatAction converts an engine action to a PHH action string. total is the
// player's round commitment after the action.
func FormatAction(seat int, action game.Action, total int) string {
	player := playerRef(seat)
	switch action {
	case game.Fold:
		return player + " f"
	case game.Check, game.Call:
		return player + " cc"
	case game.Bid:
		return fmt.Sprintf("%s cbr %d", player, total)
	default:
		return fmt.Sprintf("# %s %s %d", player, action, total)
	}
}

// FormatCards renders cards without separators, as PHH expects ("AhKh").
func FormatCards(cards []poker.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(c.String())
	}
	return b.String()
}

func playerRef(seat int) string {
	return fmt.Sprintf("p%d", seat+1)
}
