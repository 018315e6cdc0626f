package service

import (
	"FragFS/internal/domain"
	"log"
)

type CreateFileService struct {
	store     *domain.Store
	publisher domain.LayoutPublisher
}

func NewCreateFileService(store *domain.Store, publisher domain.LayoutPublisher) *CreateFileService {
	return &CreateFileService{
		store:     store,
		publisher: publisher,
	}
}

type CreateFileCommand struct {
	Name string
	Size float64
}

type CreateFileResult struct {
	Blocks []int
	Err    error
}

func (s *CreateFileService) Execute(command CreateFileCommand) CreateFileResult {
	blocks, err := s.store.Create(command.Name, command.Size)
	if blocks == nil {
		log.Printf("Create %q (%v) rejected: %v", command.Name, command.Size, err)
		return CreateFileResult{Err: err}
	}
	if err != nil {
		log.Printf("Created %q but snapshot failed: %v", command.Name, err)
	} else {
		log.Printf("Created %q (%v) in blocks %v", command.Name, command.Size, blocks)
	}
	publishLayout(s.store, s.publisher)
	return CreateFileResult{Blocks: blocks, Err: err}
}
