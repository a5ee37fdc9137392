package service

import (
	"context"

	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/repository"
)

type ChampionService struct {
	repos *repository.Repositories
}

func NewChampionService(repos *repository.Repositories) *ChampionService {
	return &ChampionService{repos: repos}
}

func (s *ChampionService) GetAll(ctx context.Context) ([]*domain.Champion, error) {
	return s.repos.Champion.GetAll(ctx)
}

func (s *ChampionService) GetByID(ctx context.Context, id string) (*domain.Champion, error) {
	return s.repos.Champion.GetByID(ctx, id)
}
