package client

import (
	"FragFS/internal/domain"
	"FragFS/internal/platform/server/handler/file"
	"FragFS/internal/platform/server/handler/response"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
)

func jsonServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request) (int, any)) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status, body := handler(w, r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCreate(t *testing.T) {
	server := jsonServer(t, func(w http.ResponseWriter, r *http.Request) (int, any) {
		assert.Equal(t, "/files", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req file.CreateFileRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "report", req.Name)
		assert.Equal(t, 2.5, req.Size)
		return http.StatusCreated, file.CreateFileResponse{Name: req.Name, Blocks: []int{0, 1, 2}}
	})

	cli := NewStoreClient(server.URL)
	blocks, err := cli.Create("report", 2.5)

	assert.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, blocks)
}

func TestCreate_InsufficientSpace(t *testing.T) {
	server := jsonServer(t, func(w http.ResponseWriter, r *http.Request) (int, any) {
		return http.StatusInsufficientStorage, response.ErrorResponse{Error: "needs 3 free blocks, try 'mend'"}
	})

	_, err := NewStoreClient(server.URL).Create("big", 3)

	assert.ErrorIs(t, err, domain.ErrInsufficientSpace)
	assert.Contains(t, err.Error(), "mend")
}

func TestResize_EscapesName(t *testing.T) {
	server := jsonServer(t, func(w http.ResponseWriter, r *http.Request) (int, any) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/files/my%20file", r.URL.EscapedPath())
		return http.StatusOK, file.ResizeFileResponse{Name: "my file", BlockCount: 4}
	})

	count, err := NewStoreClient(server.URL).Resize("my file", 3.5)

	assert.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestDelete_NotFound(t *testing.T) {
	server := jsonServer(t, func(w http.ResponseWriter, r *http.Request) (int, any) {
		assert.Equal(t, http.MethodDelete, r.Method)
		return http.StatusNotFound, response.ErrorResponse{Error: "file not found"}
	})

	_, err := NewStoreClient(server.URL).Delete("ghost")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRestore_NoBackup(t *testing.T) {
	server := jsonServer(t, func(w http.ResponseWriter, r *http.Request) (int, any) {
		assert.Equal(t, "/restore", r.URL.Path)
		return http.StatusNotFound, response.ErrorResponse{Error: "no backup found"}
	})

	layout, err := NewStoreClient(server.URL).Restore()

	assert.Nil(t, layout)
	assert.ErrorIs(t, err, domain.ErrNoBackup)
}

func TestLayout(t *testing.T) {
	expected := domain.Layout{
		Capacity:   2,
		Blocks:     []domain.Block{{Segments: []domain.Segment{{Owner: "a", Start: 0, End: 0.5}}}, {}},
		Files:      []domain.File{{Name: "a", Size: 0.5, BlockIndices: []int{0}}},
		UsedUnits:  0.5,
		TotalUnits: 2,
	}
	server := jsonServer(t, func(w http.ResponseWriter, r *http.Request) (int, any) {
		assert.Equal(t, http.MethodGet, r.Method)
		return http.StatusOK, expected
	})

	layout, err := NewStoreClient(server.URL).Layout()

	assert.NoError(t, err)
	assert.Equal(t, expected, *layout)
}

func TestServerErrorIsReported(t *testing.T) {
	server := jsonServer(t, func(w http.ResponseWriter, r *http.Request) (int, any) {
		return http.StatusInternalServerError, response.ErrorResponse{Error: "save snapshot: disk full"}
	})

	_, err := NewStoreClient(server.URL).Defragment()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
