package game

import "sync"

// SyncTable guards a Table with a single mutex so a presentation layer and bot
// goroutines can share it. Every method holds the lock for the whole call.
type SyncTable struct {
	mu    sync.Mutex
	table *Table
}

// NewSyncTable wraps t. The caller must not use t directly afterwards.
func NewSyncTable(t *Table) *SyncTable {
	return &SyncTable{table: t}
}

func (s *SyncTable) AddPlayer(p *Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.AddPlayer(p)
}

func (s *SyncTable) Shuffle() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Shuffle()
}

func (s *SyncTable) Check(p *Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Check(p)
}

func (s *SyncTable) Call(p *Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Call(p)
}

func (s *SyncTable) Fold(p *Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Fold(p)
}

func (s *SyncTable) MakeBid(p *Player, amount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.MakeBid(p, amount)
}

// IsNext reports whether p is the player to act.
func (s *SyncTable) IsNext(p *Player) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.IsNext(p)
}

// Read calls fn with the lock held. fn must not retain the table or call
// SyncTable methods.
func (s *SyncTable) Read(fn func(t *Table)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.table)
}

// Do runs fn with the lock held, for callers that need to inspect state and act
// atomically.
func (s *SyncTable) Do(fn func(t *Table) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.table)
}
