package service

import (
	"FragFS/internal/domain"
	"log"
)

type WipeService struct {
	store     *domain.Store
	publisher domain.LayoutPublisher
}

func NewWipeService(store *domain.Store, publisher domain.LayoutPublisher) *WipeService {
	return &WipeService{
		store:     store,
		publisher: publisher,
	}
}

func (s *WipeService) Execute() domain.Layout {
	s.store.VolatileWipe()
	log.Println("Volatile state wiped, snapshot kept")
	publishLayout(s.store, s.publisher)
	return s.store.Layout()
}
