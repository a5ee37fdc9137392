package ddragon

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(WithBaseURL(srv.URL))
}

func TestClient_LatestVersion(t *testing.T) {
	client := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/versions.json", r.URL.Path)
		w.Write([]byte(`["14.2.1","14.1.1"]`))
	})

	version, err := client.LatestVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "14.2.1", version)
}

func TestClient_LatestVersion_EmptyList(t *testing.T) {
	client := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	_, err := client.LatestVersion(context.Background())

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestClient_TransportError(t *testing.T) {
	client := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusServiceUnavailable)
	})

	_, err := client.Items(context.Background(), "14.1.1")

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusServiceUnavailable, transportErr.StatusCode)
}

func TestClient_ParseError(t *testing.T) {
	client := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	})

	_, err := client.Items(context.Background(), "14.1.1")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	var transportErr *TransportError
	assert.False(t, errors.As(err, &transportErr))
}

func TestClient_ChampionDetail(t *testing.T) {
	client := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cdn/14.1.1/data/en_US/champion/Aatrox.json", r.URL.Path)
		w.Write([]byte(`{"data":{"Aatrox":{"id":"Aatrox","key":"266","name":"Aatrox","lore":"darkin"}}}`))
	})

	detail, err := client.ChampionDetail(context.Background(), "Aatrox", "14.1.1")
	require.NoError(t, err)
	assert.Equal(t, "266", detail.Key)
	assert.Equal(t, "darkin", detail.Lore)
}

func TestClient_ChampionDetail_MissingFromEnvelope(t *testing.T) {
	client := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{}}`))
	})

	_, err := client.ChampionDetail(context.Background(), "Aatrox", "14.1.1")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestClient_MissingDataEnvelope(t *testing.T) {
	client := stubServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"version":"14.1.1"}`))
	})

	_, err := client.ChampionList(context.Background(), "14.1.1")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestClient_Language(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cdn/14.1.1/data/ko_KR/item.json", r.URL.Path)
		w.Write([]byte(`{"version":"14.1.1","data":{}}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(WithBaseURL(srv.URL), WithLanguage("ko_KR"))
	_, err := client.Items(context.Background(), "14.1.1")
	require.NoError(t, err)
}

func TestClient_IconURLs(t *testing.T) {
	client := NewClient()

	assert.Equal(t,
		"https://ddragon.leagueoflegends.com/cdn/14.1.1/img/champion/Aatrox.png",
		client.ChampionIconURL("Aatrox", "14.1.1"))
	assert.Equal(t,
		"https://ddragon.leagueoflegends.com/cdn/img/champion/splash/Aatrox_0.jpg",
		client.SplashURL("Aatrox", 0))
}
