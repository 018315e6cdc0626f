package service

import (
	"FragFS/internal/domain"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockMedium struct {
	data map[string][]byte
}

func (m *mockMedium) Save(key string, data []byte) error {
	m.data[key] = data
	return nil
}

func (m *mockMedium) Load(key string) ([]byte, bool, error) {
	data, found := m.data[key]
	return data, found, nil
}

type mockPublisher struct {
	published []domain.Layout
	err       error
}

func (m *mockPublisher) PublishLayout(layout domain.Layout) error {
	m.published = append(m.published, layout)
	return m.err
}

func newStore(capacity int) *domain.Store {
	return domain.NewStore(capacity, &mockMedium{data: make(map[string][]byte)}, nil)
}

func TestCreateFileService_PublishesOnSuccess(t *testing.T) {
	store := newStore(4)
	publisher := &mockPublisher{}
	s := NewCreateFileService(store, publisher)

	result := s.Execute(CreateFileCommand{Name: "a", Size: 1.5})
	require.NoError(t, result.Err)
	assert.Equal(t, []int{0, 1}, result.Blocks)
	require.Len(t, publisher.published, 1)
	assert.Len(t, publisher.published[0].Files, 1)

	result = s.Execute(CreateFileCommand{Name: "a", Size: 1})
	assert.ErrorIs(t, result.Err, domain.ErrDuplicateName)
	assert.Len(t, publisher.published, 1, "a rejected create publishes nothing")
}

func TestCreateFileService_PublishFailureIsNotAnError(t *testing.T) {
	publisher := &mockPublisher{err: errors.New("no subscribers")}
	s := NewCreateFileService(newStore(4), publisher)

	result := s.Execute(CreateFileCommand{Name: "a", Size: 1})
	assert.NoError(t, result.Err)
}

func TestDeleteFileService(t *testing.T) {
	store := newStore(4)
	publisher := &mockPublisher{}
	_, err := store.Create("a", 2)
	require.NoError(t, err)
	s := NewDeleteFileService(store, publisher)

	result := s.Execute(DeleteFileCommand{Name: "a"})
	require.NoError(t, result.Err)
	assert.Equal(t, 2, result.Freed)
	assert.Len(t, publisher.published, 1)

	result = s.Execute(DeleteFileCommand{Name: "a"})
	assert.ErrorIs(t, result.Err, domain.ErrNotFound)
}

func TestResizeFileService(t *testing.T) {
	store := newStore(4)
	publisher := &mockPublisher{}
	_, err := store.Create("a", 1)
	require.NoError(t, err)
	s := NewResizeFileService(store, publisher)

	result := s.Execute(ResizeFileCommand{Name: "a", Size: 3})
	require.NoError(t, result.Err)
	assert.Equal(t, 3, result.BlockCount)

	result = s.Execute(ResizeFileCommand{Name: "a", Size: 9})
	assert.ErrorIs(t, result.Err, domain.ErrInsufficientSpace)
	f, found := store.File("a")
	require.True(t, found)
	assert.Equal(t, 3.0, f.Size)
	assert.Len(t, publisher.published, 2, "the rollback moved blocks, so it is published")

	result = s.Execute(ResizeFileCommand{Name: "missing", Size: 1})
	assert.ErrorIs(t, result.Err, domain.ErrNotFound)
	assert.Len(t, publisher.published, 2)
}

func TestResizeFileService_InternalConsistency(t *testing.T) {
	store := newStore(2)
	_, err := store.Create("a", 0.5)
	require.NoError(t, err)
	_, err = store.Create("b", 0.5)
	require.NoError(t, err)
	require.NoError(t, store.Defragment())
	_, err = store.Create("c", 1)
	require.NoError(t, err)
	publisher := &mockPublisher{}

	result := NewResizeFileService(store, publisher).Execute(ResizeFileCommand{Name: "a", Size: 2})
	assert.ErrorIs(t, result.Err, domain.ErrInternalConsistency)
	assert.Empty(t, publisher.published)
	_, found := store.File("a")
	assert.True(t, found)
}

func TestDefragmentService(t *testing.T) {
	store := newStore(4)
	_, err := store.Create("a", 0.5)
	require.NoError(t, err)
	_, err = store.Create("b", 0.5)
	require.NoError(t, err)
	publisher := &mockPublisher{}

	result := NewDefragmentService(store, publisher).Execute()
	require.NoError(t, result.Err)
	assert.Equal(t, 3, result.Layout.FreeBlocks())
	assert.Len(t, publisher.published, 1)
}

func TestWipeAndRestoreServices(t *testing.T) {
	store := newStore(4)
	publisher := &mockPublisher{}
	restore := NewRestoreService(store, publisher)

	result := restore.Execute()
	assert.ErrorIs(t, result.Err, domain.ErrNoBackup)

	_, err := store.Create("x", 2)
	require.NoError(t, err)

	layout := NewWipeService(store, publisher).Execute()
	assert.Empty(t, layout.Files)

	result = restore.Execute()
	require.NoError(t, result.Err)
	require.Len(t, result.Layout.Files, 1)
	assert.Equal(t, "x", result.Layout.Files[0].Name)
}

func TestGetLayoutService(t *testing.T) {
	store := newStore(4)
	_, err := store.Create("x", 1)
	require.NoError(t, err)
	s := NewGetLayoutService(store)

	assert.Equal(t, 4, s.Execute().Capacity)
	assert.True(t, s.GetFile(GetFileQuery{Name: "x"}).Found)
	assert.False(t, s.GetFile(GetFileQuery{Name: "y"}).Found)
}
