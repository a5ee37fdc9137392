package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	stdsync "sync"
	"testing"

	"github.com/dom/lol-extension-backend/internal/ddragon"
)

// CDNStub is an httptest stand-in for the Data Dragon CDN. Tests mutate its
// fields to shape the upstream responses, including per-champion failures.
type CDNStub struct {
	Server *httptest.Server

	mu              stdsync.Mutex
	Versions        []string
	ChampionList    ddragon.ChampionList
	ChampionDetails map[string]ddragon.ChampionDetail
	Items           ddragon.ItemList
	RunePaths       []ddragon.RunePathData
	SummonerSpells  ddragon.SummonerSpellList

	// FailDetails makes the detail endpoint return 500 for these champions.
	FailDetails map[string]bool
	// FailAll makes every endpoint return 500.
	FailAll bool
}

// NewCDNStub starts a stub serving one version with empty documents.
func NewCDNStub(t *testing.T, version string) *CDNStub {
	t.Helper()

	stub := &CDNStub{
		Versions:        []string{version},
		ChampionList:    ddragon.ChampionList{Version: version, Data: map[string]ddragon.ChampionSummary{}},
		ChampionDetails: map[string]ddragon.ChampionDetail{},
		Items:           ddragon.ItemList{Version: version, Data: map[string]ddragon.ItemData{}},
		SummonerSpells:  ddragon.SummonerSpellList{Version: version, Data: map[string]ddragon.SummonerSpellData{}},
		FailDetails:     map[string]bool{},
	}
	stub.Server = httptest.NewServer(stub)
	t.Cleanup(stub.Server.Close)
	return stub
}

// Client returns a ddragon client pointed at the stub.
func (s *CDNStub) Client() *ddragon.Client {
	return ddragon.NewClient(ddragon.WithBaseURL(s.Server.URL))
}

// AddChampion registers a champion in both the list and detail documents.
func (s *CDNStub) AddChampion(detail ddragon.ChampionDetail) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ChampionList.Data[detail.ID] = detail.ChampionSummary
	s.ChampionDetails[detail.ID] = detail
}

// SetVersion replaces the advertised latest version.
func (s *CDNStub) SetVersion(version string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Versions = append([]string{version}, s.Versions...)
	s.ChampionList.Version = version
	s.Items.Version = version
	s.SummonerSpells.Version = version
}

func (s *CDNStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailAll {
		http.Error(w, "stub failure", http.StatusInternalServerError)
		return
	}

	path := r.URL.Path
	switch {
	case path == "/api/versions.json":
		writeStubJSON(w, s.Versions)
	case strings.HasSuffix(path, "/champion.json"):
		writeStubJSON(w, s.ChampionList)
	case strings.Contains(path, "/champion/"):
		id := strings.TrimSuffix(path[strings.LastIndex(path, "/")+1:], ".json")
		if s.FailDetails[id] {
			http.Error(w, "stub failure", http.StatusInternalServerError)
			return
		}
		detail, ok := s.ChampionDetails[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeStubJSON(w, map[string]interface{}{
			"data": map[string]ddragon.ChampionDetail{id: detail},
		})
	case strings.HasSuffix(path, "/item.json"):
		writeStubJSON(w, s.Items)
	case strings.HasSuffix(path, "/runesReforged.json"):
		writeStubJSON(w, s.RunePaths)
	case strings.HasSuffix(path, "/summoner.json"):
		writeStubJSON(w, s.SummonerSpells)
	default:
		http.NotFound(w, r)
	}
}

func writeStubJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
