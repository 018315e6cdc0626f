package disk

import (
	"FragFS/internal/application/service"
	"FragFS/internal/platform/server/handler/response"
	"net/http"
)

type DiskHandler struct {
	defragmentService *service.DefragmentService
	wipeService       *service.WipeService
	restoreService    *service.RestoreService
	layoutService     *service.GetLayoutService
}

func NewDiskHandler(defragmentService *service.DefragmentService,
	wipeService *service.WipeService,
	restoreService *service.RestoreService,
	layoutService *service.GetLayoutService) *DiskHandler {
	return &DiskHandler{
		defragmentService: defragmentService,
		wipeService:       wipeService,
		restoreService:    restoreService,
		layoutService:     layoutService,
	}
}

func (h *DiskHandler) GetLayout(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, h.layoutService.Execute())
}

func (h *DiskHandler) Defragment(w http.ResponseWriter, r *http.Request) {
	result := h.defragmentService.Execute()
	if result.Err != nil {
		response.WriteError(w, result.Err)
		return
	}
	response.WriteJSON(w, http.StatusOK, result.Layout)
}

func (h *DiskHandler) Wipe(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, h.wipeService.Execute())
}

func (h *DiskHandler) Restore(w http.ResponseWriter, r *http.Request) {
	result := h.restoreService.Execute()
	if result.Err != nil {
		response.WriteError(w, result.Err)
		return
	}
	response.WriteJSON(w, http.StatusOK, result.Layout)
}
