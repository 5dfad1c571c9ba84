// Package gameid creates sortable identifiers for play sessions and simulation
// runs. Hand history files carry the ID so separate sessions never overwrite
// each other's hands.
package gameid

import (
	"encoding/base32"
	"encoding/binary"
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/holdem/internal/randutil"
)

// Crockford's base32, lower case. It is in ASCII order, so IDs sort by time.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an ID.
const Length = 26

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// Generator creates IDs. It is not safe for concurrent use.
type Generator struct {
	clock quartz.Clock
	rng   *rand.Rand
}

// NewGenerator creates a generator. A nil clock uses the wall clock and a nil
// rng is seeded from the time.
func NewGenerator(clock quartz.Clock, rng *rand.Rand) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if rng == nil {
		rng = randutil.NewFromTime()
	}
	return &Generator{clock: clock, rng: rng}
}

// Generate returns a new ID.
func Generate() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate lays out a UUIDv7 (48-bit millisecond timestamp, version and
// variant bits, random tail) and encodes it as 26 base32 characters.
func (g *Generator) Generate() string {
	var uuid [16]byte

	binary.BigEndian.PutUint64(uuid[:8], uint64(g.clock.Now().UnixMilli())<<16)
	binary.BigEndian.PutUint16(uuid[6:8], uint16(g.rng.Uint32()))
	binary.BigEndian.PutUint64(uuid[8:], g.rng.Uint64())

	uuid[6] = (uuid[6] & 0x0f) | 0x70
	uuid[8] = (uuid[8] & 0x3f) | 0x80

	return encoding.EncodeToString(uuid[:])
}

// Time returns the creation time stored in id.
func Time(id string) (time.Time, error) {
	if err := Validate(id); err != nil {
		return time.Time{}, err
	}
	raw, _ := encoding.DecodeString(id)
	ms := binary.BigEndian.Uint64(raw[:8]) >> 16
	return time.UnixMilli(int64(ms)).UTC(), nil
}

// Validate checks that id has the right length and alphabet.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}
	raw, err := encoding.DecodeString(id)
	if err != nil {
		return fmt.Errorf("invalid game ID %q: %w", id, err)
	}
	if raw[6]>>4 != 7 {
		return fmt.Errorf("invalid game ID %q: not a version 7 UUID", id)
	}
	return nil
}
