package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

var ErrNotFound = errors.New("riot: resource not found")

// Client is the read surface of the match-history API. The production
// implementation is HTTPClient; development mode swaps in MockClient.
type Client interface {
	AccountByRiotID(ctx context.Context, gameName, tagLine string) (*Account, error)
	MatchIDs(ctx context.Context, puuid string, start, count int) ([]string, error)
	MatchDetails(ctx context.Context, matchID string) (*MatchPayload, error)
}

type Account struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

type MatchPayload struct {
	MatchInfo    MatchInfo     `json:"matchInfo"`
	Players      []Player      `json:"players"`
	Teams        []TeamResult  `json:"teams"`
	RoundResults []RoundResult `json:"roundResults"`
}

type MatchInfo struct {
	MatchID          string `json:"matchId"`
	MapID            string `json:"mapId"`
	GameStartMillis  int64  `json:"gameStartMillis"`
	GameLengthMillis int64  `json:"gameLengthMillis"`
	QueueID          string `json:"queueId"`
}

type Player struct {
	Puuid       string      `json:"puuid"`
	TeamID      string      `json:"teamId"`
	CharacterID string      `json:"characterId"`
	Stats       PlayerStats `json:"stats"`
}

type PlayerStats struct {
	Score       int `json:"score"`
	Kills       int `json:"kills"`
	Deaths      int `json:"deaths"`
	Assists     int `json:"assists"`
	TotalDamage int `json:"totalDamage"`
	Headshots   int `json:"headshots"`
	Bodyshots   int `json:"bodyshots"`
	Legshots    int `json:"legshots"`
}

type TeamResult struct {
	TeamID string `json:"teamId"`
	Won    bool   `json:"won"`
}

type RoundResult struct {
	RoundNum int `json:"roundNum"`
}

type matchListResponse struct {
	History []struct {
		MatchID string `json:"matchId"`
	} `json:"history"`
}

// HTTPClient wraps the external match-history REST API. Requests share a
// limiter pinned at one request per 1.5s, which keeps a full sync batch
// under the published 100 requests / 2 minutes budget.
type HTTPClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewHTTPClient(apiKey, region string) *HTTPClient {
	return &HTTPClient{
		apiKey:     apiKey,
		baseURL:    fmt.Sprintf("https://%s.api.riotgames.com", region),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(1500*time.Millisecond), 1),
	}
}

func (c *HTTPClient) get(ctx context.Context, endpoint string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Riot-Token", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("riot API returned %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) AccountByRiotID(ctx context.Context, gameName, tagLine string) (*Account, error) {
	endpoint := fmt.Sprintf("/riot/account/v1/accounts/by-riot-id/%s/%s",
		url.PathEscape(gameName), url.PathEscape(tagLine))

	var acct Account
	if err := c.get(ctx, endpoint, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

func (c *HTTPClient) MatchIDs(ctx context.Context, puuid string, start, count int) ([]string, error) {
	endpoint := fmt.Sprintf("/val/match/v1/matchlists/by-puuid/%s?start=%d&count=%d",
		url.PathEscape(puuid), start, count)

	var list matchListResponse
	if err := c.get(ctx, endpoint, &list); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(list.History))
	for _, entry := range list.History {
		ids = append(ids, entry.MatchID)
	}
	return ids, nil
}

func (c *HTTPClient) MatchDetails(ctx context.Context, matchID string) (*MatchPayload, error) {
	var payload MatchPayload
	if err := c.get(ctx, "/val/match/v1/matches/"+url.PathEscape(matchID), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}
