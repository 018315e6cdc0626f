package service

import (
	"FragFS/internal/domain"
)

type GetLayoutService struct {
	store *domain.Store
}

func NewGetLayoutService(store *domain.Store) *GetLayoutService {
	return &GetLayoutService{
		store: store,
	}
}

func (s *GetLayoutService) Execute() domain.Layout {
	return s.store.Layout()
}

type GetFileQuery struct {
	Name string
}

type GetFileResult struct {
	File  domain.File
	Found bool
}

func (s *GetLayoutService) GetFile(query GetFileQuery) GetFileResult {
	f, found := s.store.File(query.Name)
	return GetFileResult{File: f, Found: found}
}
