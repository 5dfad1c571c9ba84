package phh

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/poker"
)

var fixedTime = time.Date(2026, time.March, 3, 9, 30, 0, 0, time.UTC)

func recordedTable(t *testing.T, deck string) (*game.Table, *Recorder, *game.Player, *game.Player) {
	t.Helper()
	rec := NewRecorder("test", nil)
	rec.now = func() time.Time { return fixedTime }

	tbl := game.NewTable(
		game.WithDeck(poker.NewStackedDeck(poker.MustParseCards(deck)...)),
		game.WithEventHandler(rec.Handle),
	)
	alice := game.NewPlayer("Alice", 1000)
	bob := game.NewPlayer("Bob", 1000)
	require.NoError(t, tbl.AddPlayer(alice))
	require.NoError(t, tbl.AddPlayer(bob))
	require.NoError(t, tbl.Shuffle())
	return tbl, rec, alice, bob
}

const kickerDeck = "Ah Qh 3c 3d 5h Kh Kd 9c 6h 9d 7h 2s"

func TestRecorderFoldOut(t *testing.T) {
	t.Parallel()
	var finished []*HandHistory
	tbl, rec, alice, bob := recordedTable(t, kickerDeck)
	rec.onHand = func(h *HandHistory) { finished = append(finished, h) }

	require.NoError(t, tbl.MakeBid(bob, 100))
	require.NoError(t, tbl.Fold(alice))

	require.Len(t, finished, 1)
	h := finished[0]
	assert.Same(t, h, rec.Last())
	assert.Equal(t, "test-00001", h.HandID)
	assert.Equal(t, []string{"Alice", "Bob"}, h.Players)
	assert.Equal(t, []string{"p2 cbr 100", "p1 f"}, h.Actions)
	assert.Equal(t, []int{1000, 1000}, h.StartingStacks)
	assert.Equal(t, []int{1000, 1000}, h.FinishingStacks)
	assert.Equal(t, []int{0, 100}, h.Winnings)
	assert.Equal(t, true, h.Metadata["everyone_folded"])
	assert.Equal(t, "p1", h.Metadata["dealer"])
	assert.NotContains(t, h.Metadata, "winning_hand")
	assert.Equal(t, 2026, h.Year)
	assert.Equal(t, "09:30:00", h.Time)
}

func TestRecorderShowdown(t *testing.T) {
	t.Parallel()
	tbl, rec, alice, bob := recordedTable(t, kickerDeck)

	require.NoError(t, tbl.Check(bob))
	require.NoError(t, tbl.Check(alice))
	require.NoError(t, tbl.MakeBid(bob, 100))
	require.NoError(t, tbl.Call(alice))
	for !tbl.Finished() {
		require.NoError(t, tbl.Check(tbl.Current()))
	}

	h := rec.Last()
	require.NotNil(t, h)
	assert.Equal(t, []string{
		"p2 cc", "p1 cc",
		"d dh p1 Qh3d", "d dh p2 Ah3c",
		"p2 cbr 100", "p1 cc",
		"d db KhKd9c",
		"p2 cc", "p1 cc",
		"d db 9d",
		"p2 cc", "p1 cc",
		"d db 2s",
		"p2 cc", "p1 cc",
		"p1 sm Qh3d", "p2 sm Ah3c",
	}, h.Actions)
	assert.Equal(t, []int{900, 1100}, h.FinishingStacks)
	assert.Equal(t, []int{0, 200}, h.Winnings)
	assert.Equal(t, "Two Pair", h.Metadata["winning_hand"])
	assert.Equal(t, 200, h.Metadata["pot"])
}

func TestRecorderIgnoresEventsBeforeHand(t *testing.T) {
	t.Parallel()
	rec := NewRecorder("test", nil)
	rec.Handle(game.Event{Type: game.EventPlayerAction})
	assert.Nil(t, rec.Last())
}

func TestWriteFile(t *testing.T) {
	t.Parallel()
	tbl, rec, alice, bob := recordedTable(t, kickerDeck)
	require.NoError(t, tbl.MakeBid(bob, 100))
	require.NoError(t, tbl.Fold(alice))

	dir := filepath.Join(t.TempDir(), "hands")
	path, err := WriteFile(dir, rec.Last())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "test-00001.phh"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `variant = "NT"`)
	assert.Contains(t, string(data), `"p1 f"`)
	assert.Contains(t, string(data), "[metadata]")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files are left behind")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestReadDirRoundTrip(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	rec := NewRecorder("rt", func(h *HandHistory) {
		_, err := WriteFile(dir, h)
		require.NoError(t, err)
	})
	rec.now = func() time.Time { return fixedTime }

	tbl := game.NewTable(
		game.WithDeck(poker.NewStackedDeck(poker.MustParseCards(kickerDeck)...)),
		game.WithEventHandler(rec.Handle),
	)
	alice := game.NewPlayer("Alice", 1000)
	bob := game.NewPlayer("Bob", 1000)
	require.NoError(t, tbl.AddPlayer(alice))
	require.NoError(t, tbl.AddPlayer(bob))

	for range 2 {
		require.NoError(t, tbl.Shuffle())
		require.NoError(t, tbl.MakeBid(tbl.Current(), 30))
		require.NoError(t, tbl.Fold(tbl.Current()))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	hands, err := ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, hands, 2)
	assert.Equal(t, "rt-00001", hands[0].HandID)
	assert.Equal(t, "rt-00002", hands[1].HandID)
	assert.Equal(t, []string{"p2 cbr 30", "p1 f"}, hands[0].Actions)
	assert.Equal(t, []string{"p1 cbr 30", "p2 f"}, hands[1].Actions)
	assert.Equal(t, []int{0, 30}, hands[0].Winnings)
	assert.Equal(t, int64(30), hands[0].Metadata["pot"])
	assert.Equal(t, "p2", hands[1].Metadata["dealer"])
}

func TestDecodeRejectsNonPHH(t *testing.T) {
	t.Parallel()
	_, err := Decode(strings.NewReader(`title = "not a hand"`))
	require.ErrorIs(t, err, ErrNotPHH)

	_, err = Decode(strings.NewReader(`variant = `))
	require.Error(t, err)
}
