package main

import "testing"

func TestPlayMatchAIVsAIEndsByIsolation(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardWidth = 5
	settings.BoardHeight = 5
	settings.Player1Type = PlayerAI
	settings.Player2Type = PlayerAI
	settings.TurnTimeMs = 50

	result := PlayMatch(NewAIPlayer(), NewAIPlayer(), settings)

	if result.ID == "" {
		t.Fatalf("expected a match id")
	}
	if result.Winner != Player1 && result.Winner != Player2 {
		t.Fatalf("unexpected winner %d", result.Winner)
	}
	if result.Reason != WinReasonIsolation {
		t.Fatalf("expected isolation finish, got %q", result.Reason)
	}
	if result.Plies < 2 {
		t.Fatalf("expected at least two plies, got %d", result.Plies)
	}
	if len(result.History) != result.Plies {
		t.Fatalf("history length %d does not match ply count %d", len(result.History), result.Plies)
	}
	for _, entry := range result.History {
		if !entry.IsAi {
			t.Fatalf("expected every move to come from an AI")
		}
	}
}

func TestPlayMatchForfeitOnNoMoveAgent(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardWidth = 5
	settings.BoardHeight = 5
	settings.TurnTimeMs = 50

	// An agent that never produces a move forfeits immediately.
	result := PlayMatch(stallingPlayer{}, NewAIPlayer(), settings)

	if result.Winner != Player2 {
		t.Fatalf("expected Player2 to win by forfeit, got %d", result.Winner)
	}
	if result.Reason != WinReasonForfeit {
		t.Fatalf("expected forfeit, got %q", result.Reason)
	}
	if result.Plies != 0 {
		t.Fatalf("expected no recorded plies, got %d", result.Plies)
	}
}

type stallingPlayer struct{}

func (stallingPlayer) IsHuman() bool { return false }

func (stallingPlayer) ChooseMove(GameState, TimeLeftFunc) Move { return NoMove }
