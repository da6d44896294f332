package persist

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertCreatesThenUpdates(t *testing.T) {
	m := NewMemory()
	key := Key{ResourceGroup: "rg", Name: "vm1"}

	created := m.Upsert("virtualMachines", key, Fields{"location": "westus"})
	_, err := uuid.Parse(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "virtualMachines", created.Kind)

	updated := m.Upsert("virtualMachines", key, Fields{"location": "eastus"})
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "eastus", updated.Fields["location"])

	got, ok := m.Get("virtualMachines", key)
	require.True(t, ok)
	assert.Equal(t, updated, got)
}

func TestGetMissing(t *testing.T) {
	m := NewMemory()
	_, ok := m.Get("virtualMachines", Key{ResourceGroup: "rg", Name: "nope"})
	assert.False(t, ok)

	m.Upsert("virtualMachines", Key{ResourceGroup: "rg", Name: "vm"}, nil)
	_, ok = m.Get("virtualNetworks", Key{ResourceGroup: "rg", Name: "vm"})
	assert.False(t, ok)
}

func TestListFiltersAndKeepsOrder(t *testing.T) {
	m := NewMemory()
	m.Upsert("k", Key{"rg1", "b"}, nil)
	m.Upsert("k", Key{"rg2", "x"}, nil)
	m.Upsert("k", Key{"rg1", "a"}, nil)
	m.Upsert("k", Key{"rg1", "b"}, Fields{"v": "2"})

	rs := m.List("k", Filter{ResourceGroup: "rg1"})
	require.Len(t, rs, 2)
	assert.Equal(t, "b", rs[0].Key.Name)
	assert.Equal(t, "a", rs[1].Key.Name)
	assert.Equal(t, "2", rs[0].Fields["v"])

	assert.Len(t, m.List("k", Filter{}), 3)
	assert.NotNil(t, m.List("other", Filter{}))
	assert.Empty(t, m.List("other", Filter{}))
}

func TestDelete(t *testing.T) {
	m := NewMemory()
	key := Key{"rg", "vm"}
	m.Upsert("k", key, nil)

	assert.True(t, m.Delete("k", key))
	assert.False(t, m.Delete("k", key))
	assert.False(t, m.Delete("missing", key))
	assert.Empty(t, m.List("k", Filter{}))

	_, ok := m.Get("k", key)
	assert.False(t, ok)
}

func TestReturnedFieldsAreCopies(t *testing.T) {
	m := NewMemory()
	key := Key{"rg", "vm"}
	rec := m.Upsert("k", key, Fields{"a": "1"})
	rec.Fields["a"] = "changed"

	got, _ := m.Get("k", key)
	assert.Equal(t, "1", got.Fields["a"])
}

func TestConcurrentUpserts(t *testing.T) {
	m := NewMemory()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Upsert("k", Key{"rg", fmt.Sprintf("vm%d", i%8)}, nil)
		}(i)
	}
	wg.Wait()
	assert.Len(t, m.List("k", Filter{}), 8)
}

var _ Service = (*Memory)(nil)
