package service

import (
	"context"
	"errors"

	"github.com/dom/lol-extension-backend/internal/domain"
	"github.com/dom/lol-extension-backend/internal/repository"
)

type VersionService struct {
	repos *repository.Repositories
}

func NewVersionService(repos *repository.Repositories) *VersionService {
	return &VersionService{repos: repos}
}

// Current returns the live version for a family, or "" when the family has
// never been synced.
func (s *VersionService) Current(ctx context.Context, family domain.Family) (string, error) {
	version, err := s.repos.Version.Current(ctx, family)
	if errors.Is(err, domain.ErrNoVersion) {
		return "", nil
	}
	return version, err
}

func (s *VersionService) All(ctx context.Context) ([]*domain.GameVersion, error) {
	return s.repos.Version.All(ctx)
}
