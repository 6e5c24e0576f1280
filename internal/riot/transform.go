package riot

import (
	"errors"
	"math"
	"time"
)

var ErrPlayerNotInMatch = errors.New("riot: player not found in match payload")

// Match is the internal shape a raw match payload is flattened into before
// persistence. Derived metrics are computed here, once, at ingestion.
type Match struct {
	MatchID       string
	GameStartTime time.Time
	GameEndTime   time.Time
	MapName       string
	GameMode      string
	AgentName     string

	Kills         int
	Deaths        int
	Assists       int
	CombatScore   float64
	DamageDealt   int
	HeadshotCount int
	BodyshotCount int
	LegshotCount  int

	KDRatio            float64
	ADR                float64
	HeadshotPercentage float64

	RoundsPlayed int
	TeamWon      bool
	RankTier     *string
}

// TransformMatch flattens a raw payload into the internal match shape for the
// player identified by puuid.
func TransformMatch(payload *MatchPayload, puuid string) (*Match, error) {
	var player *Player
	for i := range payload.Players {
		if payload.Players[i].Puuid == puuid {
			player = &payload.Players[i]
			break
		}
	}
	if player == nil {
		return nil, ErrPlayerNotInMatch
	}

	info := payload.MatchInfo
	rounds := len(payload.RoundResults)

	teamWon := false
	for _, team := range payload.Teams {
		if team.TeamID == player.TeamID {
			teamWon = team.Won
			break
		}
	}

	stats := player.Stats
	var adr float64
	if rounds > 0 {
		adr = float64(stats.TotalDamage) / float64(rounds)
	}

	start := time.UnixMilli(info.GameStartMillis).UTC()
	return &Match{
		MatchID:            info.MatchID,
		GameStartTime:      start,
		GameEndTime:        start.Add(time.Duration(info.GameLengthMillis) * time.Millisecond),
		MapName:            info.MapID,
		GameMode:           info.QueueID,
		AgentName:          player.CharacterID,
		Kills:              stats.Kills,
		Deaths:             stats.Deaths,
		Assists:            stats.Assists,
		CombatScore:        float64(stats.Score),
		DamageDealt:        stats.TotalDamage,
		HeadshotCount:      stats.Headshots,
		BodyshotCount:      stats.Bodyshots,
		LegshotCount:       stats.Legshots,
		KDRatio:            kdRatio(stats.Kills, stats.Deaths),
		ADR:                math.Round(adr),
		HeadshotPercentage: headshotPercentage(stats.Headshots, stats.Bodyshots, stats.Legshots),
		RoundsPlayed:       rounds,
		TeamWon:            teamWon,
		// Rank tier is not part of the match payload.
		RankTier: nil,
	}, nil
}

func kdRatio(kills, deaths int) float64 {
	if deaths > 0 {
		return float64(kills) / float64(deaths)
	}
	return float64(kills)
}

func headshotPercentage(head, body, leg int) float64 {
	total := head + body + leg
	if total == 0 {
		return 0
	}
	return math.Round(float64(head) / float64(total) * 100)
}
