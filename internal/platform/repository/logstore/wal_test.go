package logstore

import (
	"FragFS/internal/platform/utils"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTempWal(t *testing.T) *WAL {
	wal, err := NewWal(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		wal.Close()
	})
	return wal
}

func TestNewWal(t *testing.T) {
	wal := createTempWal(t)

	_, err := os.Stat(wal.Path())
	assert.NoError(t, err, "wal file was not created")
	assert.NotNil(t, wal.fd)
}

func TestWAL_WriteAndRead(t *testing.T) {
	wal := createTempWal(t)
	records := []utils.Record{
		{Key: "k1", Value: []byte("v1")},
		{Key: "k2", Value: []byte("v2")},
		{Key: "k1", Value: []byte("v3")},
	}

	require.NoError(t, wal.Write(records...))

	read, err := wal.Read()
	require.NoError(t, err)
	assert.Equal(t, records, read)
}

func TestWAL_ReopenKeepsRecords(t *testing.T) {
	dir := t.TempDir()
	wal, err := NewWal(dir)
	require.NoError(t, err)
	require.NoError(t, wal.Write(utils.Record{Key: "alpha", Value: []byte("1")}))
	require.NoError(t, wal.Close())

	reopened, err := NewWal(dir)
	require.NoError(t, err)
	defer reopened.Close()
	require.NoError(t, reopened.Write(utils.Record{Key: "beta", Value: []byte("2")}))

	read, err := reopened.Read()
	require.NoError(t, err)
	require.Len(t, read, 2)
	assert.Equal(t, "alpha", read[0].Key)
	assert.Equal(t, "beta", read[1].Key)
}

func TestWAL_WriteAfterClose(t *testing.T) {
	wal := createTempWal(t)
	require.NoError(t, wal.Close())
	require.NoError(t, wal.Close())

	err := wal.Write(utils.Record{Key: "k"})
	assert.ErrorIs(t, err, os.ErrClosed)
}

func TestWAL_TornTailIsCutBeforeNewWrites(t *testing.T) {
	dir := t.TempDir()
	wal, err := NewWal(dir)
	require.NoError(t, err)
	require.NoError(t, wal.Write(utils.Record{Key: "k", Value: []byte("v1")}))
	require.NoError(t, wal.Close())

	// an append that died after two bytes of the length prefix
	f, err := os.OpenFile(filepath.Join(dir, walFileName), os.O_WRONLY|os.O_APPEND, 0644)
	require.NoError(t, err)
	_, err = f.Write([]byte{7, 0})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	reopened, err := NewWal(dir)
	require.NoError(t, err)
	read, err := reopened.Read()
	require.NoError(t, err)
	require.Len(t, read, 1)
	size, err := reopened.Size()
	require.NoError(t, err)
	assert.Equal(t, utils.RecordSize(read[0]), size)

	require.NoError(t, reopened.Write(utils.Record{Key: "k", Value: []byte("v2")}))
	require.NoError(t, reopened.Close())

	again, err := NewWal(dir)
	require.NoError(t, err)
	defer again.Close()
	read, err = again.Read()
	require.NoError(t, err)
	require.Len(t, read, 2)
	assert.Equal(t, []byte("v2"), read[1].Value)
}

func TestWAL_Rewrite(t *testing.T) {
	wal := createTempWal(t)
	for i := 0; i < 10; i++ {
		require.NoError(t, wal.Write(utils.Record{Key: "k", Value: []byte("value")}))
	}
	before, err := wal.Size()
	require.NoError(t, err)

	latest := utils.Record{Key: "k", Value: []byte("latest")}
	require.NoError(t, wal.Rewrite([]utils.Record{latest}))

	after, err := wal.Size()
	require.NoError(t, err)
	assert.Less(t, after, before)

	require.NoError(t, wal.Write(utils.Record{Key: "j", Value: []byte("next")}))
	read, err := wal.Read()
	require.NoError(t, err)
	require.Len(t, read, 2)
	assert.Equal(t, latest, read[0])
	assert.Equal(t, "j", read[1].Key)

	entries, err := os.ReadDir(filepath.Dir(wal.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary rewrite file left behind")
}
