package repository

import (
	"FragFS/internal/domain"
	"FragFS/internal/platform/repository/logstore"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMedium(t *testing.T, wal *logstore.WAL) *MemtableMedium {
	mt, err := logstore.NewMemtable(wal)
	require.NoError(t, err)
	return NewMemtableMedium(mt)
}

func TestMemtableMedium_LoadMissing(t *testing.T) {
	medium := newMedium(t, nil)

	data, found, err := medium.Load(domain.SnapshotKey)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, data)
}

func TestMemtableMedium_StoreSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	wal, err := logstore.NewWal(dir)
	require.NoError(t, err)

	store := domain.NewStore(8, newMedium(t, wal), nil)
	_, err = store.Create("x", 4)
	require.NoError(t, err)
	_, err = store.Create("y", 1.5)
	require.NoError(t, err)
	before, _ := store.File("x")
	require.NoError(t, wal.Close())

	reopened, err := logstore.NewWal(dir)
	require.NoError(t, err)
	defer reopened.Close()

	restarted := domain.NewStore(8, newMedium(t, reopened), nil)
	require.NoError(t, restarted.Restore())

	x, found := restarted.File("x")
	require.True(t, found)
	assert.Equal(t, 4.0, x.Size)
	assert.Equal(t, before.Colors, x.Colors)
	y, found := restarted.File("y")
	require.True(t, found)
	assert.Equal(t, []int{4, 5}, y.BlockIndices)
}
