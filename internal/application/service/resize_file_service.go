package service

import (
	"FragFS/internal/domain"
	"errors"
	"log"

	"github.com/davecgh/go-spew/spew"
)

type ResizeFileService struct {
	store     *domain.Store
	publisher domain.LayoutPublisher
}

func NewResizeFileService(store *domain.Store, publisher domain.LayoutPublisher) *ResizeFileService {
	return &ResizeFileService{
		store:     store,
		publisher: publisher,
	}
}

type ResizeFileCommand struct {
	Name string
	Size float64
}

type ResizeFileResult struct {
	BlockCount int
	Err        error
}

func (s *ResizeFileService) Execute(command ResizeFileCommand) ResizeFileResult {
	count, err := s.store.Resize(command.Name, command.Size)
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidSize):
		log.Printf("Resize %q to %v rejected: %v", command.Name, command.Size, err)
		return ResizeFileResult{Err: err}
	case errors.Is(err, domain.ErrInternalConsistency):
		log.Printf("Resize %q to %v left the store unchanged after a failed rollback: %v\n%s",
			command.Name, command.Size, err, spew.Sdump(s.store.Layout()))
		return ResizeFileResult{Err: err}
	case err != nil:
		// the file was re-created at its old size, so its blocks moved
		log.Printf("Resize %q to %v failed: %v", command.Name, command.Size, err)
	default:
		log.Printf("Resized %q to %v, now in %d blocks", command.Name, command.Size, count)
	}
	publishLayout(s.store, s.publisher)
	return ResizeFileResult{BlockCount: count, Err: err}
}
