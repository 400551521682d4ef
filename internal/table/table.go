// Package table tracks shared tables: a group of devices that see the same
// generated setup.
package table

import (
	"errors"
	"sync"

	"scythe/internal/engine"
)

var (
	ErrTableFull = errors.New("table is full")
	ErrNotSeated = errors.New("join the table first")
	ErrEmptyName = errors.New("name is required")
)

// DefaultMaxMembers bounds the number of devices at one table.
const DefaultMaxMembers = 16

// Member is one device at the table. The first to join hosts it.
type Member struct {
	ID   string
	Name string
	Host bool
}

// Table holds the members and the last setup shown to them.
type Table struct {
	mu         sync.Mutex
	ID         string
	members    []*Member
	MaxMembers int
	lastSetup  *engine.Setup
}

func NewTable(id string) *Table {
	return &Table{
		ID:         id,
		MaxMembers: DefaultMaxMembers,
	}
}

// Join seats a member, or renames one that reconnects with the same id.
func (t *Table) Join(id, name string) error {
	if name == "" {
		return ErrEmptyName
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, m := range t.members {
		if m.ID == id {
			m.Name = name
			return nil
		}
	}
	if len(t.members) >= t.MaxMembers {
		return ErrTableFull
	}
	t.members = append(t.members, &Member{ID: id, Name: name, Host: len(t.members) == 0})
	return nil
}

// Leave removes a member. If the host leaves, the next member hosts.
func (t *Table) Leave(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, m := range t.members {
		if m.ID == id {
			t.members = append(t.members[:i], t.members[i+1:]...)
			if m.Host && len(t.members) > 0 {
				t.members[0].Host = true
			}
			return
		}
	}
}

// Member returns the member with id.
func (t *Table) Member(id string) (Member, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, m := range t.members {
		if m.ID == id {
			return *m, true
		}
	}
	return Member{}, false
}

// Members returns a copy of the member list.
func (t *Table) Members() []Member {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Member, len(t.members))
	for i, m := range t.members {
		out[i] = *m
	}
	return out
}

// Record stores the setup generated by a seated member.
func (t *Table) Record(memberID string, setup *engine.Setup) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, m := range t.members {
		if m.ID == memberID {
			t.lastSetup = setup
			return nil
		}
	}
	return ErrNotSeated
}

// LastSetup returns the most recent setup, or nil.
func (t *Table) LastSetup() *engine.Setup {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastSetup
}
