package service

import (
	"context"

	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/repository"
)

type RuneService struct {
	repos *repository.Repositories
}

func NewRuneService(repos *repository.Repositories) *RuneService {
	return &RuneService{repos: repos}
}

// GetAllPaths returns the full rune tree, slots ordered by slot number and
// runes by id.
func (s *RuneService) GetAllPaths(ctx context.Context) ([]*domain.RunePath, error) {
	return s.repos.Rune.GetAll(ctx)
}

func (s *RuneService) GetPath(ctx context.Context, id int) (*domain.RunePath, error) {
	return s.repos.Rune.GetPath(ctx, id)
}

// Search matches runes by name or short description, case-insensitive.
func (s *RuneService) Search(ctx context.Context, query string) ([]*domain.Rune, error) {
	return s.repos.Rune.Search(ctx, query)
}
