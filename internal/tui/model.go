// Package tui is the terminal front end for playing heads-up (or more) against
// bots. The model never touches the table directly; every read and action goes
// through the mutex-guarded SyncTable so bot commands can run concurrently.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem/internal/bot"
	"github.com/lox/holdem/internal/game"
)

// Options configures a Model.
type Options struct {
	Table  *game.SyncTable
	Human  *game.Player
	Agents []*bot.Agent
	Feed   *Feed
	Logger *log.Logger
}

type handStartedMsg struct{ err error }

type botActedMsg struct {
	player   *game.Player
	decision bot.Decision
	err      error
}

// Model is the Bubble Tea model for an interactive game.
type Model struct {
	table  *game.SyncTable
	human  *game.Player
	agents map[*game.Player]*bot.Agent
	feed   *Feed
	logger *log.Logger

	ctx    context.Context
	cancel context.CancelFunc

	keys     keyMap
	help     help.Model
	log      viewport.Model
	bidInput textinput.Model
	bidding  bool

	entries  []string
	status   string
	thinking bool
	width    int
	height   int
	quitting bool
}

// New creates a model. Call Init (or run it with tea.NewProgram) to deal the first hand.
func New(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Feed == nil {
		opts.Feed = NewFeed(opts.Human, nil)
	}

	input := textinput.New()
	input.Placeholder = "raise amount above the current bid"
	input.Prompt = "bid> "
	input.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	input.CharLimit = 9
	input.Width = 20

	agents := make(map[*game.Player]*bot.Agent, len(opts.Agents))
	for _, a := range opts.Agents {
		agents[a.Player()] = a
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Model{
		table:    opts.Table,
		human:    opts.Human,
		agents:   agents,
		feed:     opts.Feed,
		logger:   opts.Logger.WithPrefix("tui"),
		ctx:      ctx,
		cancel:   cancel,
		keys:     defaultKeyMap(),
		help:     help.New(),
		log:      viewport.New(80, 10),
		bidInput: input,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.startHand()
}

func (m *Model) startHand() tea.Cmd {
	return func() tea.Msg {
		return handStartedMsg{err: m.table.Shuffle()}
	}
}

// next schedules the bot whose turn it is, if any.
func (m *Model) next() tea.Cmd {
	var current *game.Player
	m.table.Read(func(t *game.Table) {
		if !t.Finished() {
			current = t.Current()
		}
	})
	agent, ok := m.agents[current]
	if !ok || m.thinking {
		return nil
	}

	m.thinking = true
	return func() tea.Msg {
		d, err := agent.Act(m.ctx, m.table)
		return botActedMsg{player: agent.Player(), decision: d, err: err}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()

	case handStartedMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.status = ""
		}
		cmds = append(cmds, m.next())

	case botActedMsg:
		m.thinking = false
		switch {
		case msg.err == nil:
			m.logger.Debug("Bot acted", "player", msg.player.Name, "action", msg.decision.Action, "reasoning", msg.decision.Reasoning)
		case errors.Is(msg.err, bot.ErrNotTurn), errors.Is(msg.err, context.Canceled):
		default:
			m.setError(msg.err)
		}
		cmds = append(cmds, m.next())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || (!m.bidding && key.Matches(msg, m.keys.Quit)) {
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}
		if m.bidding {
			cmds = append(cmds, m.updateBid(msg))
			break
		}
		switch {
		case key.Matches(msg, m.keys.Check):
			cmds = append(cmds, m.act(m.table.Check))
		case key.Matches(msg, m.keys.Call):
			cmds = append(cmds, m.act(m.table.Call))
		case key.Matches(msg, m.keys.Fold):
			cmds = append(cmds, m.act(m.table.Fold))
		case key.Matches(msg, m.keys.Bid):
			m.setBidding(true)
			cmds = append(cmds, textinput.Blink)
		case key.Matches(msg, m.keys.Next):
			if m.finished() {
				cmds = append(cmds, m.startHand())
			} else {
				m.setError(game.ErrHandInProgress)
			}
		default:
			var cmd tea.Cmd
			m.log, cmd = m.log.Update(msg)
			cmds = append(cmds, cmd)
		}

	default:
		if m.bidding {
			var cmd tea.Cmd
			m.bidInput, cmd = m.bidInput.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.appendLog(m.feed.drain()...)
	return m, tea.Batch(cmds...)
}

func (m *Model) updateBid(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.setBidding(false)
		return nil
	case key.Matches(msg, m.keys.Submit):
		value := strings.TrimSpace(m.bidInput.Value())
		m.setBidding(false)
		amount, err := strconv.Atoi(value)
		if err != nil {
			m.setError(fmt.Errorf("invalid bid amount %q", value))
			return nil
		}
		return m.act(func(p *game.Player) error {
			return m.table.MakeBid(p, amount)
		})
	}
	var cmd tea.Cmd
	m.bidInput, cmd = m.bidInput.Update(msg)
	return cmd
}

// act applies a human action and hands the turn on to the bots.
func (m *Model) act(action func(*game.Player) error) tea.Cmd {
	if err := action(m.human); err != nil {
		m.setError(err)
		return nil
	}
	m.status = ""
	return m.next()
}

func (m *Model) setBidding(on bool) {
	m.bidding = on
	m.keys.setBidding(on)
	m.bidInput.Reset()
	if on {
		m.bidInput.Focus()
	} else {
		m.bidInput.Blur()
	}
}

func (m *Model) setError(err error) {
	m.logger.Debug("Action rejected", "error", err)
	m.status = ErrorStyle.Render(err.Error())
}

func (m *Model) finished() bool {
	var done bool
	m.table.Read(func(t *game.Table) {
		done = t.Finished()
	})
	return done
}

func (m *Model) appendLog(lines ...string) {
	if len(lines) == 0 {
		return
	}
	m.entries = append(m.entries, lines...)
	m.log.SetContent(strings.Join(m.entries, "\n"))
	m.log.GotoBottom()
}

// reserved is the height of everything drawn around the log viewport.
func (m *Model) reserved() int {
	var seats int
	m.table.Read(func(t *game.Table) { seats = len(t.Players()) })
	return seats + 12
}

func (m *Model) resize() {
	m.log.Width = max(m.width-2, 1)
	m.log.Height = max(m.height-m.reserved(), 3)
	m.log.GotoBottom()
}

// Status returns the message shown for the last rejected action, if any.
func (m *Model) Status() string {
	return m.status
}
