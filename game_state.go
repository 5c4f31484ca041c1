package main

type PlayerID int

type GameStatus int

const (
	Player1 PlayerID = iota
	Player2
)

const (
	StatusNotStarted GameStatus = iota
	StatusRunning
	StatusPlayer1Won
	StatusPlayer2Won
)

// knightOffsets is the fixed enumeration order for moves of a placed player.
// Legal-move order must stay deterministic: search tie-breaks depend on it.
var knightOffsets = [8][2]int{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

// GameState is an immutable-per-ply snapshot of an isolation match. Search
// never mutates a state in place; ForecastMove returns a fresh value and the
// input stays valid for the caller.
type GameState struct {
	Board     Board
	Positions [2]Move
	ToMove    PlayerID
	Status    GameStatus
}

func DefaultGameState(settings GameSettings) GameState {
	state := GameState{}
	state.Reset(settings)
	return state
}

func (s *GameState) Reset(settings GameSettings) {
	s.Board = NewBoard(settings.BoardWidth, settings.BoardHeight)
	s.Positions = [2]Move{NoMove, NoMove}
	s.ToMove = settings.FirstPlayer
	s.Status = StatusNotStarted
}

func (s GameState) Clone() GameState {
	clone := s
	clone.Board = s.Board.Clone()
	return clone
}

func otherPlayer(player PlayerID) PlayerID {
	if player == Player1 {
		return Player2
	}
	return Player1
}

func (s GameState) Opponent(player PlayerID) PlayerID {
	return otherPlayer(player)
}

func (s GameState) PlayerLocation(player PlayerID) Move {
	return s.Positions[player]
}

// LegalMoves enumerates the moves available to player in deterministic order:
// every blank cell (row-major) before the first placement, knight jumps to
// blank cells afterwards.
func (s GameState) LegalMoves(player PlayerID) []Move {
	position := s.Positions[player]
	if position.IsNoMove() {
		return s.Board.BlankSpaces()
	}
	moves := make([]Move, 0, len(knightOffsets))
	for _, offset := range knightOffsets {
		x := position.X + offset[0]
		y := position.Y + offset[1]
		if s.Board.IsEmpty(x, y) {
			moves = append(moves, Move{X: x, Y: y})
		}
	}
	return moves
}

func (s GameState) CurrentLegalMoves() []Move {
	return s.LegalMoves(s.ToMove)
}

func (s GameState) IsLegal(move Move, player PlayerID) bool {
	if player != s.ToMove {
		return false
	}
	for _, legal := range s.LegalMoves(player) {
		if legal.Equals(move) {
			return true
		}
	}
	return false
}

// ForecastMove applies move for the side to move on a copy of the state:
// the target cell becomes blocked, the mover lands on it and the turn flips.
// The receiver is left untouched.
func (s GameState) ForecastMove(move Move) GameState {
	next := s.Clone()
	next.Board.Block(move.X, move.Y)
	next.Positions[s.ToMove] = move
	next.ToMove = otherPlayer(s.ToMove)
	return next
}

// IsLoser reports whether player has lost: no legal move left. Blocked cells
// never reopen, so this is permanent. When both players are stuck the side to
// move loses, since it must move first.
func (s GameState) IsLoser(player PlayerID) bool {
	if len(s.LegalMoves(player)) > 0 {
		return false
	}
	if len(s.LegalMoves(otherPlayer(player))) == 0 {
		return s.ToMove == player
	}
	return true
}

func (s GameState) IsWinner(player PlayerID) bool {
	return s.IsLoser(otherPlayer(player))
}

func playerName(player PlayerID) string {
	if player == Player1 {
		return "Player1"
	}
	return "Player2"
}
