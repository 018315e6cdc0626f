package zmq

import "FragFS/internal/domain"

type ApiRequest struct {
	Action string  `json:"action,omitempty"`
	Name   string  `json:"name,omitempty"`
	Size   float64 `json:"size,omitempty"`
}

type ApiResponse struct {
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	Blocks  []int          `json:"blocks,omitempty"`
	Count   int            `json:"count,omitempty"`
	File    *domain.File   `json:"file,omitempty"`
	Layout  *domain.Layout `json:"layout,omitempty"`
}
