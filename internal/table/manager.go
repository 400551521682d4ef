package table

import (
	"sync"

	"github.com/google/uuid"
)

// Manager manages multiple tables.
type Manager struct {
	mu     sync.Mutex
	tables map[string]*Table
}

func NewManager() *Manager {
	return &Manager{tables: make(map[string]*Table)}
}

// Create creates a new table and returns its ID.
func (m *Manager) Create() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	m.tables[id] = NewTable(id)
	return id
}

// Get returns a table by ID, or nil.
func (m *Manager) Get(id string) *Table {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tables[id]
}

// Remove deletes a table and reports whether it existed.
func (m *Manager) Remove(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tables[id]; !ok {
		return false
	}
	delete(m.tables, id)
	return true
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tables)
}
