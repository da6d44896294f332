package persist

import (
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"
)

type table struct {
	order []Key
	rows  map[Key]Record
}

// Memory is a Service held in process memory. List returns records in the order
// they were first created.
type Memory struct {
	mu     sync.RWMutex
	tables map[string]*table
}

func NewMemory() *Memory {
	return &Memory{
		tables: make(map[string]*table),
	}
}

func (m *Memory) Upsert(kind string, key Key, fields Fields) Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tables[kind]
	if !ok {
		t = &table{rows: make(map[Key]Record)}
		m.tables[kind] = t
	}

	rec, exists := t.rows[key]
	if !exists {
		rec = Record{
			ID:   uuid.NewString(),
			Kind: kind,
			Key:  key,
		}
		t.order = append(t.order, key)
	}
	rec.Fields = maps.Clone(fields)
	t.rows[key] = rec
	return copyRecord(rec)
}

func (m *Memory) Get(kind string, key Key) (Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tables[kind]
	if !ok {
		return Record{}, false
	}
	rec, ok := t.rows[key]
	if !ok {
		return Record{}, false
	}
	return copyRecord(rec), true
}

func (m *Memory) List(kind string, filter Filter) []Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make([]Record, 0)
	t, ok := m.tables[kind]
	if !ok {
		return res
	}
	for _, k := range t.order {
		if filter.match(k) {
			res = append(res, copyRecord(t.rows[k]))
		}
	}
	return res
}

func (m *Memory) Delete(kind string, key Key) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tables[kind]
	if !ok {
		return false
	}
	if _, ok := t.rows[key]; !ok {
		return false
	}
	delete(t.rows, key)
	t.order = slices.DeleteFunc(t.order, func(k Key) bool { return k == key })
	return true
}

func copyRecord(r Record) Record {
	r.Fields = maps.Clone(r.Fields)
	return r
}
