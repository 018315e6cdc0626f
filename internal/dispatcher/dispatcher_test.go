package dispatcher

import (
	"FragFS/internal/domain"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mockBackend struct {
	calls   []string
	err     error
	layout  domain.Layout
	created float64
}

func (m *mockBackend) Create(name string, size float64) ([]int, error) {
	m.calls = append(m.calls, "create "+name)
	m.created = size
	return []int{0, 1}, m.err
}

func (m *mockBackend) Delete(name string) (int, error) {
	m.calls = append(m.calls, "delete "+name)
	return 1, m.err
}

func (m *mockBackend) Resize(name string, size float64) (int, error) {
	m.calls = append(m.calls, fmt.Sprintf("resize %s %v", name, size))
	return 1, m.err
}

func (m *mockBackend) Layout() (*domain.Layout, error) {
	m.calls = append(m.calls, "layout")
	return &m.layout, m.err
}

func (m *mockBackend) Defragment() (*domain.Layout, error) {
	m.calls = append(m.calls, "defragment")
	return &m.layout, m.err
}

func (m *mockBackend) Wipe() (*domain.Layout, error) {
	m.calls = append(m.calls, "wipe")
	return &m.layout, m.err
}

func (m *mockBackend) Restore() (*domain.Layout, error) {
	m.calls = append(m.calls, "restore")
	return &m.layout, m.err
}

func TestDispatcher_Forge(t *testing.T) {
	backend := &mockBackend{}
	d := NewDispatcher(backend)

	reply := d.Execute("forge notes 1.5")
	assert.False(t, reply.Failed)
	assert.Contains(t, reply.Message, "notes forged (1.5)")
	assert.Equal(t, 1.5, backend.created)
}

func TestDispatcher_RejectsBadSizesBeforeCalling(t *testing.T) {
	backend := &mockBackend{}
	d := NewDispatcher(backend)

	for _, line := range []string{"forge a big", "resize a NaN", "forge a"} {
		reply := d.Execute(line)
		assert.True(t, reply.Failed, line)
	}
	assert.Contains(t, d.Execute("forge a big").Message, "Size must be a number")
	assert.Equal(t, "Usage: forge [name] [size]", d.Execute("forge a").Message)
	assert.Empty(t, backend.calls)
}

func TestDispatcher_Commands(t *testing.T) {
	backend := &mockBackend{}
	d := NewDispatcher(backend)

	cases := map[string]string{
		"resize a 2": "a resized to 2",
		"banish a":   "a banished.",
		"mend":       "Memory Mended.",
		"rupture":    "Memory Ruptured.",
		"revive":     "System Revived.",
		"HELP":       "Commands: forge",
	}
	for line, want := range cases {
		reply := d.Execute(line)
		assert.False(t, reply.Failed, line)
		assert.Contains(t, reply.Message, want, line)
	}
	assert.ElementsMatch(t, []string{"resize a 2", "delete a", "defragment", "wipe", "restore"}, backend.calls)
}

func TestDispatcher_Errors(t *testing.T) {
	backend := &mockBackend{err: fmt.Errorf("create %q: %w", "a", domain.ErrDuplicateName)}
	d := NewDispatcher(backend)

	reply := d.Execute("forge a 1")
	assert.True(t, reply.Failed)
	assert.Contains(t, reply.Message, domain.ErrDuplicateName.Error())

	backend.err = domain.ErrNoBackup
	assert.Equal(t, Reply{Message: "No backup to revive from.", Failed: true}, d.Execute("revive"))

	reply = d.Execute("teleport")
	assert.True(t, reply.Failed)
	assert.Equal(t, "Unknown: teleport", reply.Message)

	assert.Equal(t, Reply{}, d.Execute("   "))
}

func TestRenderLayout(t *testing.T) {
	layout := domain.Layout{
		Capacity: 3,
		Blocks: []domain.Block{
			{Segments: []domain.Segment{{Owner: "a", Start: 0, End: 1}}},
			{Segments: []domain.Segment{{Owner: "a", Start: 0, End: 0.5}}},
			{},
		},
		Files:      []domain.File{{Name: "a", Size: 1.5, BlockIndices: []int{0, 1}}},
		UsedUnits:  1.5,
		TotalUnits: 3,
	}

	out := RenderLayout(layout)
	assert.Contains(t, out, "1/3 blocks free, 50.0% used")
	assert.Contains(t, out, "#+.")
	assert.Contains(t, out, "[0 1]")
}
