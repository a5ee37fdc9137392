package ddragon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://ddragon.leagueoflegends.com"

// Client fetches versioned JSON documents from the Data Dragon CDN. It does
// not retry and it does not persist; both belong to the caller.
type Client struct {
	baseURL    string
	language   string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

func WithLanguage(lang string) Option {
	return func(c *Client) { c.language = lang }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		language: "en_US",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LatestVersion returns the newest available Data Dragon version
// (index 0 of versions.json).
func (c *Client) LatestVersion(ctx context.Context) (string, error) {
	url := c.baseURL + "/api/versions.json"

	var versions []string
	if err := c.getJSON(ctx, url, &versions); err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "", &ParseError{URL: url, Err: fmt.Errorf("empty version list")}
	}
	return versions[0], nil
}

func (c *Client) ChampionList(ctx context.Context, version string) (*ChampionList, error) {
	url := fmt.Sprintf("%s/cdn/%s/data/%s/champion.json", c.baseURL, version, c.language)

	var list ChampionList
	if err := c.getJSON(ctx, url, &list); err != nil {
		return nil, err
	}
	if list.Data == nil {
		return nil, &ParseError{URL: url, Err: fmt.Errorf("missing data envelope")}
	}
	return &list, nil
}

func (c *Client) ChampionDetail(ctx context.Context, championID, version string) (*ChampionDetail, error) {
	url := fmt.Sprintf("%s/cdn/%s/data/%s/champion/%s.json", c.baseURL, version, c.language, championID)

	var doc championDetailDoc
	if err := c.getJSON(ctx, url, &doc); err != nil {
		return nil, err
	}
	detail, ok := doc.Data[championID]
	if !ok {
		return nil, &ParseError{URL: url, Err: fmt.Errorf("champion %s not in response", championID)}
	}
	return &detail, nil
}

func (c *Client) Items(ctx context.Context, version string) (*ItemList, error) {
	url := fmt.Sprintf("%s/cdn/%s/data/%s/item.json", c.baseURL, version, c.language)

	var list ItemList
	if err := c.getJSON(ctx, url, &list); err != nil {
		return nil, err
	}
	if list.Data == nil {
		return nil, &ParseError{URL: url, Err: fmt.Errorf("missing data envelope")}
	}
	return &list, nil
}

func (c *Client) RunePaths(ctx context.Context, version string) ([]RunePathData, error) {
	url := fmt.Sprintf("%s/cdn/%s/data/%s/runesReforged.json", c.baseURL, version, c.language)

	var paths []RunePathData
	if err := c.getJSON(ctx, url, &paths); err != nil {
		return nil, err
	}
	return paths, nil
}

func (c *Client) SummonerSpells(ctx context.Context, version string) (*SummonerSpellList, error) {
	url := fmt.Sprintf("%s/cdn/%s/data/%s/summoner.json", c.baseURL, version, c.language)

	var list SummonerSpellList
	if err := c.getJSON(ctx, url, &list); err != nil {
		return nil, err
	}
	if list.Data == nil {
		return nil, &ParseError{URL: url, Err: fmt.Errorf("missing data envelope")}
	}
	return &list, nil
}

// Icon URL helpers. These build CDN URLs only; nothing is fetched.

func (c *Client) ChampionIconURL(championID, version string) string {
	return fmt.Sprintf("%s/cdn/%s/img/champion/%s.png", c.baseURL, version, championID)
}

func (c *Client) SpellIconURL(spellID, version string) string {
	return fmt.Sprintf("%s/cdn/%s/img/spell/%s.png", c.baseURL, version, spellID)
}

func (c *Client) PassiveIconURL(passiveImage, version string) string {
	return fmt.Sprintf("%s/cdn/%s/img/passive/%s", c.baseURL, version, passiveImage)
}

func (c *Client) ItemIconURL(itemID, version string) string {
	return fmt.Sprintf("%s/cdn/%s/img/item/%s.png", c.baseURL, version, itemID)
}

func (c *Client) SplashURL(championID string, skinNum int) string {
	return fmt.Sprintf("%s/cdn/img/champion/splash/%s_%d.jpg", c.baseURL, championID, skinNum)
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &TransportError{URL: url, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &TransportError{URL: url, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ParseError{URL: url, Err: err}
	}
	return nil
}
