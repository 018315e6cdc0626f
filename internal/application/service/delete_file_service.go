package service

import (
	"FragFS/internal/domain"
	"errors"
	"log"
)

type DeleteFileService struct {
	store     *domain.Store
	publisher domain.LayoutPublisher
}

func NewDeleteFileService(store *domain.Store, publisher domain.LayoutPublisher) *DeleteFileService {
	return &DeleteFileService{
		store:     store,
		publisher: publisher,
	}
}

type DeleteFileCommand struct {
	Name string
}

type DeleteFileResult struct {
	Freed int
	Err   error
}

func (s *DeleteFileService) Execute(command DeleteFileCommand) DeleteFileResult {
	freed, err := s.store.Delete(command.Name)
	if errors.Is(err, domain.ErrNotFound) {
		log.Printf("Delete %q rejected: %v", command.Name, err)
		return DeleteFileResult{Err: err}
	}
	if err != nil {
		log.Printf("Deleted %q but snapshot failed: %v", command.Name, err)
	} else {
		log.Printf("Deleted %q, %d blocks freed", command.Name, freed)
	}
	publishLayout(s.store, s.publisher)
	return DeleteFileResult{Freed: freed, Err: err}
}
