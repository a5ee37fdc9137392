package service

import (
	"github.com/dom/lol-extension-backend/internal/repository"
)

// Services bundles the read-side services handlers depend on. Sync and
// scheduling are injected into handlers separately; these only read.
type Services struct {
	Champion      *ChampionService
	Item          *ItemService
	Rune          *RuneService
	SummonerSpell *SummonerSpellService
	Version       *VersionService
}

func NewServices(repos *repository.Repositories) *Services {
	return &Services{
		Champion:      NewChampionService(repos),
		Item:          NewItemService(repos),
		Rune:          NewRuneService(repos),
		SummonerSpell: NewSummonerSpellService(repos),
		Version:       NewVersionService(repos),
	}
}
