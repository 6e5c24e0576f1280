package riot

import (
	"errors"
	"testing"
	"time"
)

func samplePayload() *MatchPayload {
	rounds := make([]RoundResult, 20)
	for i := range rounds {
		rounds[i] = RoundResult{RoundNum: i + 1}
	}
	return &MatchPayload{
		MatchInfo: MatchInfo{
			MatchID:          "match-123",
			MapID:            "Ascent",
			QueueID:          "Competitive",
			GameStartMillis:  1735689600000, // 2025-01-01T00:00:00Z
			GameLengthMillis: 40 * 60 * 1000,
		},
		Players: []Player{{
			Puuid:       "puuid-1",
			TeamID:      "Blue",
			CharacterID: "Jett",
			Stats: PlayerStats{
				Score:       265,
				Kills:       20,
				Deaths:      8,
				Assists:     4,
				TotalDamage: 3130,
				Headshots:   12,
				Bodyshots:   30,
				Legshots:    8,
			},
		}},
		Teams:        []TeamResult{{TeamID: "Blue", Won: true}, {TeamID: "Red", Won: false}},
		RoundResults: rounds,
	}
}

func TestTransformMatch(t *testing.T) {
	t.Run("flattens payload for the player", func(t *testing.T) {
		m, err := TransformMatch(samplePayload(), "puuid-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if m.MatchID != "match-123" || m.MapName != "Ascent" || m.AgentName != "Jett" {
			t.Errorf("unexpected identity fields: %+v", m)
		}
		if m.Kills != 20 || m.Deaths != 8 || m.Assists != 4 {
			t.Errorf("unexpected counters: %+v", m)
		}
		if m.RoundsPlayed != 20 {
			t.Errorf("expected 20 rounds, got %d", m.RoundsPlayed)
		}
		if !m.TeamWon {
			t.Error("expected team win")
		}
		if m.RankTier != nil {
			t.Error("rank tier should not be set from a match payload")
		}
	})

	t.Run("derives kd adr and headshot percentage", func(t *testing.T) {
		m, err := TransformMatch(samplePayload(), "puuid-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if m.KDRatio != 2.5 {
			t.Errorf("expected kd 2.5, got %v", m.KDRatio)
		}
		// 3130 damage / 20 rounds = 156.5, rounded to 157
		if m.ADR != 157 {
			t.Errorf("expected adr 157, got %v", m.ADR)
		}
		// 12 / (12+30+8) = 24%
		if m.HeadshotPercentage != 24 {
			t.Errorf("expected hs%% 24, got %v", m.HeadshotPercentage)
		}
	})

	t.Run("zero deaths means kd equals kills", func(t *testing.T) {
		payload := samplePayload()
		payload.Players[0].Stats.Deaths = 0

		m, err := TransformMatch(payload, "puuid-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.KDRatio != 20 {
			t.Errorf("expected kd 20, got %v", m.KDRatio)
		}
	})

	t.Run("no shots means zero headshot percentage", func(t *testing.T) {
		payload := samplePayload()
		payload.Players[0].Stats.Headshots = 0
		payload.Players[0].Stats.Bodyshots = 0
		payload.Players[0].Stats.Legshots = 0

		m, err := TransformMatch(payload, "puuid-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.HeadshotPercentage != 0 {
			t.Errorf("expected hs%% 0, got %v", m.HeadshotPercentage)
		}
	})

	t.Run("computes game times from millis", func(t *testing.T) {
		m, err := TransformMatch(samplePayload(), "puuid-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		wantStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		if !m.GameStartTime.Equal(wantStart) {
			t.Errorf("expected start %v, got %v", wantStart, m.GameStartTime)
		}
		if m.GameEndTime.Sub(m.GameStartTime) != 40*time.Minute {
			t.Errorf("unexpected game length: %v", m.GameEndTime.Sub(m.GameStartTime))
		}
	})

	t.Run("unknown player returns error", func(t *testing.T) {
		_, err := TransformMatch(samplePayload(), "someone-else")
		if !errors.Is(err, ErrPlayerNotInMatch) {
			t.Errorf("expected ErrPlayerNotInMatch, got %v", err)
		}
	})
}
