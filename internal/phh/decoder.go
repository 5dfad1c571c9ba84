package phh

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"
)

// ErrNotPHH is returned when a document decodes but is not a hand history.
var ErrNotPHH = errors.New("phh: missing variant")

// Decode reads one hand history from r. Metadata integers decode as int64.
func Decode(r io.Reader) (*HandHistory, error) {
	var h HandHistory
	if _, err := toml.NewDecoder(r).Decode(&h); err != nil {
		return nil, fmt.Errorf("phh: decode: %w", err)
	}
	if h.Variant == "" {
		return nil, ErrNotPHH
	}
	return &h, nil
}

// ReadFile decodes the hand history stored at path.
func ReadFile(path string) (*HandHistory, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return h, nil
}

// ReadDir decodes every .phh file in dir in file name order, which is hand order
// for files written by WriteFile.
func ReadDir(dir string) ([]*HandHistory, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.phh"))
	if err != nil {
		return nil, err
	}
	slices.Sort(paths)

	hands := make([]*HandHistory, 0, len(paths))
	for _, p := range paths {
		h, err := ReadFile(p)
		if err != nil {
			return nil, err
		}
		hands = append(hands, h)
	}
	return hands, nil
}
