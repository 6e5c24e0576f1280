package riot

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"hash/fnv"
	mathrand "math/rand"
	"strconv"
	"strings"
	"time"
)

// MockUser is a canned identity used when mock auth is enabled.
type MockUser struct {
	Puuid        string
	Email        string
	GameName     string
	TagLine      string
	AccessToken  string
	RefreshToken string
	IsAdmin      bool
}

var MockUsers = []MockUser{
	{
		Puuid:        "mock-puuid-player1",
		Email:        "player1@example.com",
		GameName:     "SamplePlayer",
		TagLine:      "0001",
		AccessToken:  "mock-access-token-1",
		RefreshToken: "mock-refresh-token-1",
	},
	{
		Puuid:        "mock-puuid-player2",
		Email:        "player2@example.com",
		GameName:     "TestUser",
		TagLine:      "0002",
		AccessToken:  "mock-access-token-2",
		RefreshToken: "mock-refresh-token-2",
	},
	{
		Puuid:        "mock-puuid-admin",
		Email:        "admin@sensilog.com",
		GameName:     "AdminUser",
		TagLine:      "0999",
		AccessToken:  "mock-access-token-admin",
		RefreshToken: "mock-refresh-token-admin",
		IsAdmin:      true,
	},
}

// MockAuthURL returns an in-app login URL plus a CSRF state, standing in for
// the provider authorize endpoint during development.
func MockAuthURL(frontendURL string) (authURL, state string, err error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("failed to generate state: %w", err)
	}
	state = hex.EncodeToString(buf)
	return frontendURL + "/auth/mock?state=" + state, state, nil
}

// VerifyMockCode resolves a "mock-code-N" authorization code to the canned
// token pair of mock user N. Unknown codes fall back to the first user.
func VerifyMockCode(code string) *TokenResponse {
	idx, err := strconv.Atoi(strings.TrimPrefix(code, "mock-code-"))
	if err != nil || idx < 0 || idx >= len(MockUsers) {
		idx = 0
	}
	user := MockUsers[idx]
	return &TokenResponse{
		AccessToken:  user.AccessToken,
		RefreshToken: user.RefreshToken,
		ExpiresIn:    3600,
	}
}

// MockUserInfo resolves a mock access token to its identity.
func MockUserInfo(accessToken string) (*UserInfo, error) {
	for _, user := range MockUsers {
		if user.AccessToken == accessToken {
			return &UserInfo{
				Puuid:    user.Puuid,
				Email:    user.Email,
				GameName: user.GameName,
				TagLine:  user.TagLine,
			}, nil
		}
	}
	return nil, errors.New("invalid access token")
}

// MockIsAdmin reports whether the canned identity carries the admin flag.
func MockIsAdmin(puuid string) bool {
	for _, user := range MockUsers {
		if user.Puuid == puuid {
			return user.IsAdmin
		}
	}
	return false
}

var mockAgents = []string{"Jett", "Phoenix", "Sage", "Sova", "Brimstone", "Viper", "Cypher", "Reyna"}
var mockMaps = []string{"Bind", "Haven", "Split", "Ascent", "Pearl", "Breeze", "Fracture", "Icebox"}
var mockModes = []string{"Competitive", "Unrated", "Spike Rush"}

// MockClient implements Client with deterministic generated data. Match i for
// a given puuid always carries the same counters; only its timestamp floats
// with the wall clock.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (c *MockClient) AccountByRiotID(_ context.Context, gameName, tagLine string) (*Account, error) {
	for _, user := range MockUsers {
		if strings.EqualFold(user.GameName, gameName) && user.TagLine == tagLine {
			return &Account{Puuid: user.Puuid, GameName: user.GameName, TagLine: user.TagLine}, nil
		}
	}
	return nil, ErrNotFound
}

func (c *MockClient) MatchIDs(_ context.Context, puuid string, start, count int) ([]string, error) {
	ids := make([]string, 0, count)
	for i := start; i < start+count; i++ {
		ids = append(ids, mockMatchID(puuid, i))
	}
	return ids, nil
}

func (c *MockClient) MatchDetails(_ context.Context, matchID string) (*MatchPayload, error) {
	puuid, index, ok := parseMockMatchID(matchID)
	if !ok {
		return nil, ErrNotFound
	}
	return mockPayload(puuid, index, time.Now()), nil
}

// GenerateMockMatches produces count transformed matches for puuid, newest
// first at two-hour intervals, for the development mock-data endpoint.
func GenerateMockMatches(puuid string, count int) []Match {
	return generateMockMatches(puuid, count, time.Now())
}

func generateMockMatches(puuid string, count int, now time.Time) []Match {
	matches := make([]Match, 0, count)
	for i := 0; i < count; i++ {
		m, err := TransformMatch(mockPayload(puuid, i, now), puuid)
		if err != nil {
			continue
		}
		matches = append(matches, *m)
	}
	return matches
}

func mockMatchID(puuid string, index int) string {
	return fmt.Sprintf("mock-match-%s-%d", puuid, index)
}

func parseMockMatchID(matchID string) (puuid string, index int, ok bool) {
	rest, found := strings.CutPrefix(matchID, "mock-match-")
	if !found {
		return "", 0, false
	}
	sep := strings.LastIndex(rest, "-")
	if sep < 0 {
		return "", 0, false
	}
	index, err := strconv.Atoi(rest[sep+1:])
	if err != nil {
		return "", 0, false
	}
	return rest[:sep], index, true
}

func mockPayload(puuid string, index int, now time.Time) *MatchPayload {
	h := fnv.New64a()
	h.Write([]byte(puuid))
	rng := mathrand.New(mathrand.NewSource(int64(h.Sum64()) + int64(index)))

	kills := rng.Intn(30) + 5
	deaths := rng.Intn(25) + 3
	assists := rng.Intn(15) + 2
	rounds := rng.Intn(10) + 13
	damage := rng.Intn(4000) + 1500
	headshots := int(float64(kills) * (rng.Float64()*0.4 + 0.1))
	bodyshots := kills * 6 / 10
	legshots := kills - headshots - bodyshots
	if legshots < 0 {
		legshots = 0
	}

	start := now.Add(-time.Duration(index) * 2 * time.Hour)
	won := rng.Float64() > 0.5

	rrs := make([]RoundResult, rounds)
	for i := range rrs {
		rrs[i] = RoundResult{RoundNum: i + 1}
	}

	return &MatchPayload{
		MatchInfo: MatchInfo{
			MatchID:          mockMatchID(puuid, index),
			MapID:            mockMaps[rng.Intn(len(mockMaps))],
			QueueID:          mockModes[rng.Intn(len(mockModes))],
			GameStartMillis:  start.UnixMilli(),
			GameLengthMillis: int64(rounds) * 2 * 60 * 1000,
		},
		Players: []Player{{
			Puuid:       puuid,
			TeamID:      "Blue",
			CharacterID: mockAgents[rng.Intn(len(mockAgents))],
			Stats: PlayerStats{
				Score:       damage / rounds * 12 / 10,
				Kills:       kills,
				Deaths:      deaths,
				Assists:     assists,
				TotalDamage: damage,
				Headshots:   headshots,
				Bodyshots:   bodyshots,
				Legshots:    legshots,
			},
		}},
		Teams:        []TeamResult{{TeamID: "Blue", Won: won}, {TeamID: "Red", Won: !won}},
		RoundResults: rrs,
	}
}
