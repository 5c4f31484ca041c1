package main

import "testing"

func TestHumanVsHumanPlacementsAndJumps(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardWidth = 5
	settings.BoardHeight = 5
	settings.Player1Type = PlayerHuman
	settings.Player2Type = PlayerHuman

	controller := NewGameController(settings)
	controller.StartGame(settings)

	if applied, reason := controller.ApplyHumanMove(NewMove(2, 2)); !applied {
		t.Fatalf("expected first placement to apply: %s", reason)
	}
	if applied, reason := controller.ApplyHumanMove(NewMove(4, 4)); !applied {
		t.Fatalf("expected second placement to apply: %s", reason)
	}
	if applied, _ := controller.ApplyHumanMove(NewMove(4, 4)); applied {
		t.Fatalf("jump onto an occupied cell applied")
	}
	if applied, reason := controller.ApplyHumanMove(NewMove(0, 1)); !applied {
		t.Fatalf("expected knight jump to apply: %s", reason)
	}

	state := controller.State()
	if !state.PlayerLocation(Player1).Equals(NewMove(0, 1)) {
		t.Fatalf("expected Player1 at (0,1), got (%d,%d)", state.PlayerLocation(Player1).X, state.PlayerLocation(Player1).Y)
	}
	if state.ToMove != Player2 {
		t.Fatalf("expected Player2 to move")
	}
	if size := controller.History().Size(); size != 3 {
		t.Fatalf("expected 3 history entries, got %d", size)
	}
}

func TestIsolationEndsTheGame(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardWidth = 3
	settings.BoardHeight = 3
	settings.Player1Type = PlayerHuman
	settings.Player2Type = PlayerHuman

	controller := NewGameController(settings)
	controller.StartGame(settings)

	// (1,1) on a 3x3 board has no knight jump at all: Player1 is isolated the
	// moment Player2 places.
	if applied, reason := controller.ApplyHumanMove(NewMove(1, 1)); !applied {
		t.Fatalf("expected placement to apply: %s", reason)
	}
	if applied, reason := controller.ApplyHumanMove(NewMove(0, 0)); !applied {
		t.Fatalf("expected placement to apply: %s", reason)
	}

	state := controller.State()
	if state.Status != StatusPlayer2Won {
		t.Fatalf("expected Player2 to win by isolation, got status %d", state.Status)
	}
	if reason := controller.WinReason(); reason != WinReasonIsolation {
		t.Fatalf("expected win reason %q, got %q", WinReasonIsolation, reason)
	}
}

func TestApplyHumanMoveRejectedWhenNotRunning(t *testing.T) {
	settings := DefaultGameSettings()
	settings.Player1Type = PlayerHuman
	settings.Player2Type = PlayerHuman

	controller := NewGameController(settings)
	if applied, reason := controller.ApplyHumanMove(NewMove(3, 3)); applied || reason == "" {
		t.Fatalf("expected move rejection before the game starts")
	}
}

func TestUpdateSettingsSwitchesPlayerTypes(t *testing.T) {
	settings := DefaultGameSettings()
	settings.Player1Type = PlayerHuman
	settings.Player2Type = PlayerHuman

	controller := NewGameController(settings)
	updated := controller.Settings()
	updated.Player1Type = PlayerAI
	updated.TurnTimeMs = 500
	controller.UpdateSettings(updated)

	got := controller.Settings()
	if got.Player1Type != PlayerAI {
		t.Fatalf("expected Player1 to become an AI")
	}
	if got.TurnTimeMs != 500 {
		t.Fatalf("expected turn budget 500ms, got %d", got.TurnTimeMs)
	}
}
