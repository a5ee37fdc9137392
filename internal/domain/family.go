package domain

import "fmt"

// Family is one of the four upstream data domains, synced and versioned
// independently.
type Family string

const (
	FamilyChampions      Family = "champions"
	FamilyItems          Family = "items"
	FamilyRunes          Family = "runes"
	FamilySummonerSpells Family = "summoner-spells"
)

// AllFamilies lists every family in sync-all order: champions first so item
// required-champion references can resolve, then items, runes, summoner
// spells.
var AllFamilies = []Family{
	FamilyChampions,
	FamilyItems,
	FamilyRunes,
	FamilySummonerSpells,
}

func ParseFamily(s string) (Family, error) {
	switch s {
	case "champions":
		return FamilyChampions, nil
	case "items":
		return FamilyItems, nil
	case "runes":
		return FamilyRunes, nil
	case "summoner-spells", "summoner_spells":
		return FamilySummonerSpells, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFamily, s)
}

func (f Family) String() string {
	return string(f)
}
