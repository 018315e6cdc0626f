package service

import (
	"FragFS/internal/domain"
	"log"
)

type DefragmentService struct {
	store     *domain.Store
	publisher domain.LayoutPublisher
}

func NewDefragmentService(store *domain.Store, publisher domain.LayoutPublisher) *DefragmentService {
	return &DefragmentService{
		store:     store,
		publisher: publisher,
	}
}

type DefragmentResult struct {
	Layout domain.Layout
	Err    error
}

func (s *DefragmentService) Execute() DefragmentResult {
	err := s.store.Defragment()
	if err != nil {
		log.Println("Defragmented but snapshot failed:", err)
	}
	layout := s.store.Layout()
	log.Printf("Defragmented %d files, %d free blocks", len(layout.Files), layout.FreeBlocks())
	publishLayout(s.store, s.publisher)
	return DefragmentResult{Layout: layout, Err: err}
}
