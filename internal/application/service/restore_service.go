package service

import (
	"FragFS/internal/domain"
	"log"
)

type RestoreService struct {
	store     *domain.Store
	publisher domain.LayoutPublisher
}

func NewRestoreService(store *domain.Store, publisher domain.LayoutPublisher) *RestoreService {
	return &RestoreService{
		store:     store,
		publisher: publisher,
	}
}

type RestoreResult struct {
	Layout domain.Layout
	Err    error
}

func (s *RestoreService) Execute() RestoreResult {
	err := s.store.Restore()
	layout := s.store.Layout()
	if err != nil {
		log.Println("Restore failed:", err)
	} else {
		log.Printf("Restored %d files from snapshot", len(layout.Files))
	}
	publishLayout(s.store, s.publisher)
	return RestoreResult{Layout: layout, Err: err}
}
