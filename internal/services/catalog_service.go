package services

import (
	"pristine/internal/domain"
	"pristine/internal/repos"
)

type CatalogService struct {
	Services *repos.ServiceRepo
}

func NewCatalogService(services *repos.ServiceRepo) *CatalogService {
	return &CatalogService{Services: services}
}

func (s *CatalogService) ListActive() ([]domain.Service, error) {
	return s.Services.ListActive()
}

func (s *CatalogService) ListAll() ([]domain.Service, error) {
	return s.Services.ListAll()
}

func (s *CatalogService) BySlug(slug string) (domain.Service, error) {
	return s.Services.BySlug(slug)
}

func (s *CatalogService) SetActive(id string, active bool) error {
	return s.Services.SetActive(id, active)
}
