// Package config loads the HCL configuration for tables, seats and logging.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem/internal/bot"
	"github.com/lox/holdem/internal/game"
)

// DefaultFile is the config file read when none is given on the command line.
const DefaultFile = "holdem.hcl"

// Config is the complete configuration.
type Config struct {
	Table   TableSettings
	Seats   []SeatConfig
	Logging LoggingSettings
	History HistorySettings
}

// TableSettings configures the engine.
type TableSettings struct {
	NumDecks     int    `hcl:"num_decks,optional"`
	DefaultStake int    `hcl:"default_stake,optional"`
	Overbet      string `hcl:"overbet,optional"`
}

// SeatConfig describes one seat, in seating order.
type SeatConfig struct {
	Name       string `hcl:"name,label"`
	Human      bool   `hcl:"human,optional"`
	Balance    int    `hcl:"balance,optional"`
	Strategy   string `hcl:"strategy,optional"`
	Seed       int64  `hcl:"seed,optional"`
	ThinkDelay string `hcl:"think_delay,optional"`
}

// LoggingSettings configures the log file.
type LoggingSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// HistorySettings configures hand history output. An empty Dir disables it.
type HistorySettings struct {
	Dir string `hcl:"dir,optional"`
}

// file mirrors the HCL layout; single blocks are optional.
type file struct {
	Table   *TableSettings   `hcl:"table,block"`
	Seats   []SeatConfig     `hcl:"seat,block"`
	Logging *LoggingSettings `hcl:"logging,block"`
	History *HistorySettings `hcl:"history,block"`
}

const (
	defaultThinkDelay = "750ms"
	defaultStrategy   = "random"
)

// Default returns the configuration used when no file exists: you against one
// random bot.
func Default() *Config {
	return &Config{
		Table: TableSettings{
			NumDecks:     game.DefaultNumDecks,
			DefaultStake: game.DefaultStake,
			Overbet:      game.ClampToBalance.String(),
		},
		Seats: []SeatConfig{
			{Name: "You", Human: true, Balance: game.DefaultStake},
			{Name: "Computer", Balance: game.DefaultStake, Strategy: defaultStrategy, ThinkDelay: defaultThinkDelay},
		},
		Logging: LoggingSettings{Level: "info", File: "holdem.log"},
	}
}

// Load reads filename. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(f)
}

// Parse decodes HCL source. filename is only used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(f)
}

func decode(f *hcl.File) (*Config, error) {
	var raw file
	if diags := gohcl.DecodeBody(f.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Default()
	if raw.Table != nil {
		cfg.Table = *raw.Table
	}
	if len(raw.Seats) > 0 {
		cfg.Seats = raw.Seats
	}
	if raw.Logging != nil {
		cfg.Logging = *raw.Logging
	}
	if raw.History != nil {
		cfg.History = *raw.History
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Table.NumDecks == 0 {
		c.Table.NumDecks = defaults.Table.NumDecks
	}
	if c.Table.DefaultStake == 0 {
		c.Table.DefaultStake = defaults.Table.DefaultStake
	}
	if c.Table.Overbet == "" {
		c.Table.Overbet = defaults.Table.Overbet
	}

	for i := range c.Seats {
		s := &c.Seats[i]
		if s.Balance == 0 {
			s.Balance = c.Table.DefaultStake
		}
		if s.Human {
			continue
		}
		if s.Strategy == "" {
			s.Strategy = defaultStrategy
		}
		if s.ThinkDelay == "" {
			s.ThinkDelay = defaultThinkDelay
		}
	}

	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	if c.Logging.File == "" {
		c.Logging.File = defaults.Logging.File
	}
}

// Validate checks the configuration for values the game cannot use.
func (c *Config) Validate() error {
	if c.Table.NumDecks < 1 {
		return fmt.Errorf("table: num_decks must be positive")
	}
	if c.Table.DefaultStake < 1 {
		return fmt.Errorf("table: default_stake must be positive")
	}
	if _, err := game.ParseOverbetPolicy(c.Table.Overbet); err != nil {
		return fmt.Errorf("table: %w", err)
	}

	if len(c.Seats) < 2 || len(c.Seats) > game.MaxSeats {
		return fmt.Errorf("need between 2 and %d seats, got %d", game.MaxSeats, len(c.Seats))
	}
	names := make(map[string]bool, len(c.Seats))
	humans := 0
	for _, s := range c.Seats {
		if names[s.Name] {
			return fmt.Errorf("seat %s: duplicate name", s.Name)
		}
		names[s.Name] = true

		if s.Balance < 0 {
			return fmt.Errorf("seat %s: balance cannot be negative", s.Name)
		}
		if s.Human {
			humans++
			continue
		}
		if _, err := bot.New(s.Strategy, nil); err != nil {
			return fmt.Errorf("seat %s: %w", s.Name, err)
		}
		if d, err := time.ParseDuration(s.ThinkDelay); err != nil || d < 0 {
			return fmt.Errorf("seat %s: invalid think_delay %q", s.Name, s.ThinkDelay)
		}
	}
	if humans > 1 {
		return fmt.Errorf("at most one human seat is supported, got %d", humans)
	}

	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// Overbet returns the parsed overbet policy.
func (c *Config) Overbet() game.OverbetPolicy {
	p, _ := game.ParseOverbetPolicy(c.Table.Overbet)
	return p
}

// Level returns the parsed log level.
func (c *Config) Level() log.Level {
	l, _ := log.ParseLevel(c.Logging.Level)
	return l
}

// Delay returns the seat's think delay.
func (s SeatConfig) Delay() time.Duration {
	d, _ := time.ParseDuration(s.ThinkDelay)
	return d
}

// Human returns the human seat, if any.
func (c *Config) Human() (SeatConfig, bool) {
	for _, s := range c.Seats {
		if s.Human {
			return s, true
		}
	}
	return SeatConfig{}, false
}
