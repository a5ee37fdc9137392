package service

import (
	"context"

	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/repository"
)

type SummonerSpellService struct {
	repos *repository.Repositories
}

func NewSummonerSpellService(repos *repository.Repositories) *SummonerSpellService {
	return &SummonerSpellService{repos: repos}
}

func (s *SummonerSpellService) GetAll(ctx context.Context) ([]*domain.SummonerSpell, error) {
	return s.repos.SummonerSpell.GetAll(ctx)
}

func (s *SummonerSpellService) GetByID(ctx context.Context, id string) (*domain.SummonerSpell, error) {
	return s.repos.SummonerSpell.GetByID(ctx, id)
}
