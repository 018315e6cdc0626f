package file

import (
	"FragFS/internal/application/service"
	"FragFS/internal/domain"
	"FragFS/internal/platform/server/handler/response"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	json "github.com/json-iterator/go"
)

type FileHandler struct {
	createService *service.CreateFileService
	deleteService *service.DeleteFileService
	resizeService *service.ResizeFileService
	layoutService *service.GetLayoutService
}

func NewFileHandler(createService *service.CreateFileService,
	deleteService *service.DeleteFileService,
	resizeService *service.ResizeFileService,
	layoutService *service.GetLayoutService) *FileHandler {
	return &FileHandler{
		createService: createService,
		deleteService: deleteService,
		resizeService: resizeService,
		layoutService: layoutService,
	}
}

func (h *FileHandler) CreateFile(w http.ResponseWriter, r *http.Request) {
	var request CreateFileRequest
	if err := decode(r.Body, &request); err != nil {
		response.WriteBadRequest(w, err.Error())
		return
	}
	if strings.TrimSpace(request.Name) == "" {
		response.WriteBadRequest(w, "file name is required")
		return
	}
	result := h.createService.Execute(service.CreateFileCommand{
		Name: request.Name,
		Size: request.Size,
	})
	if result.Err != nil {
		response.WriteError(w, result.Err)
		return
	}
	response.WriteJSON(w, http.StatusCreated, CreateFileResponse{
		Name:   request.Name,
		Blocks: result.Blocks,
	})
}

func (h *FileHandler) GetFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	result := h.layoutService.GetFile(service.GetFileQuery{Name: name})
	if !result.Found {
		response.WriteError(w, fmt.Errorf("%w: %q", domain.ErrNotFound, name))
		return
	}
	response.WriteJSON(w, http.StatusOK, result.File)
}

func (h *FileHandler) ResizeFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var request ResizeFileRequest
	if err := decode(r.Body, &request); err != nil {
		response.WriteBadRequest(w, err.Error())
		return
	}
	result := h.resizeService.Execute(service.ResizeFileCommand{
		Name: name,
		Size: request.Size,
	})
	if result.Err != nil {
		response.WriteError(w, result.Err)
		return
	}
	response.WriteJSON(w, http.StatusOK, ResizeFileResponse{
		Name:       name,
		BlockCount: result.BlockCount,
	})
}

func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	result := h.deleteService.Execute(service.DeleteFileCommand{Name: name})
	if result.Err != nil {
		response.WriteError(w, result.Err)
		return
	}
	response.WriteJSON(w, http.StatusOK, DeleteFileResponse{
		Name:  name,
		Freed: result.Freed,
	})
}

func decode(body io.Reader, v any) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", domain.ErrInvalidSize, err)
	}
	return nil
}
