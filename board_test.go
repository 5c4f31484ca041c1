package main

import "testing"

// placePlayer drops a player onto a cell the way ForecastMove would: the cell
// blocks and the position updates, without touching whose turn it is.
func placePlayer(state *GameState, player PlayerID, x, y int) {
	state.Board.Block(x, y)
	state.Positions[player] = NewMove(x, y)
}

func TestBlankSpacesRowMajorOrder(t *testing.T) {
	board := NewBoard(3, 2)
	board.Block(1, 0)

	blanks := board.BlankSpaces()
	want := []Move{{0, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}}
	if len(blanks) != len(want) {
		t.Fatalf("expected %d blanks, got %d", len(want), len(blanks))
	}
	for i, move := range want {
		if !blanks[i].Equals(move) {
			t.Fatalf("blank %d: expected (%d,%d), got (%d,%d)", i, move.X, move.Y, blanks[i].X, blanks[i].Y)
		}
	}
}

func TestLegalMovesUnplacedPlayerGetsEveryBlank(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardWidth = 5
	settings.BoardHeight = 5
	state := DefaultGameState(settings)
	placePlayer(&state, Player1, 2, 2)

	moves := state.LegalMoves(Player2)
	if len(moves) != 24 {
		t.Fatalf("expected 24 legal placements, got %d", len(moves))
	}
	for _, move := range moves {
		if move.Equals(NewMove(2, 2)) {
			t.Fatalf("occupied cell (2,2) offered as a placement")
		}
	}
}

func TestLegalMovesCornerClipsToBoard(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardWidth = 5
	settings.BoardHeight = 5
	state := DefaultGameState(settings)
	placePlayer(&state, Player1, 0, 0)

	moves := state.LegalMoves(Player1)
	want := []Move{{1, 2}, {2, 1}}
	if len(moves) != len(want) {
		t.Fatalf("expected %d moves from the corner, got %d", len(want), len(moves))
	}
	for i, move := range want {
		if !moves[i].Equals(move) {
			t.Fatalf("move %d: expected (%d,%d), got (%d,%d)", i, move.X, move.Y, moves[i].X, moves[i].Y)
		}
	}
}

func TestForecastMoveLeavesReceiverUntouched(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardWidth = 7
	settings.BoardHeight = 7
	state := DefaultGameState(settings)
	state.Status = StatusRunning
	placePlayer(&state, Player1, 2, 2)
	placePlayer(&state, Player2, 4, 4)
	state.ToMove = Player1

	emptyBefore := state.Board.CountEmpty()
	next := state.ForecastMove(NewMove(3, 4))

	if state.Board.CountEmpty() != emptyBefore {
		t.Fatalf("forecast mutated the original board")
	}
	if !state.PlayerLocation(Player1).Equals(NewMove(2, 2)) {
		t.Fatalf("forecast moved the player on the original state")
	}
	if next.Board.CountEmpty() != emptyBefore-1 {
		t.Fatalf("expected one fewer empty cell, got %d vs %d", next.Board.CountEmpty(), emptyBefore)
	}
	if !next.PlayerLocation(Player1).Equals(NewMove(3, 4)) {
		t.Fatalf("mover did not land on the target cell")
	}
	if next.ToMove != Player2 {
		t.Fatalf("turn did not flip to the opponent")
	}
}

func TestIsLegalRejectsOutOfTurnAndOccupied(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardWidth = 5
	settings.BoardHeight = 5
	state := DefaultGameState(settings)
	placePlayer(&state, Player1, 2, 2)
	placePlayer(&state, Player2, 4, 3)
	state.ToMove = Player1

	if state.IsLegal(NewMove(2, 1), Player2) {
		t.Fatalf("out-of-turn move accepted")
	}
	if state.IsLegal(NewMove(4, 3), Player1) {
		t.Fatalf("jump onto an occupied cell accepted")
	}
	if !state.IsLegal(NewMove(0, 1), Player1) {
		t.Fatalf("legal knight jump rejected")
	}
}

func TestBothPlayersStuckSideToMoveLoses(t *testing.T) {
	settings := DefaultGameSettings()
	settings.BoardWidth = 3
	settings.BoardHeight = 3
	state := DefaultGameState(settings)
	state.Status = StatusRunning

	// (1,0) and (2,2) have no open knight jump once (0,1), (0,2) and (2,1)
	// are gone: both players are stuck and Player2 must move first.
	placePlayer(&state, Player1, 1, 0)
	placePlayer(&state, Player2, 2, 2)
	state.Board.Block(0, 1)
	state.Board.Block(0, 2)
	state.Board.Block(2, 1)
	state.ToMove = Player2

	if state.IsLoser(Player1) {
		t.Fatalf("Player1 is not to move and must not be the loser")
	}
	if !state.IsLoser(Player2) {
		t.Fatalf("expected the side to move to lose when both players are stuck")
	}
	if !state.IsWinner(Player1) {
		t.Fatalf("expected Player1 to win the mutual stalemate")
	}
}

func TestCenterOfDefaultBoard(t *testing.T) {
	board := NewBoard(7, 7)
	if center := board.Center(); !center.Equals(NewMove(3, 3)) {
		t.Fatalf("expected center (3,3), got (%d,%d)", center.X, center.Y)
	}
}
