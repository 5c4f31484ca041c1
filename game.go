package main

import "time"

const (
	WinReasonIsolation = "isolation"
	WinReasonTimeout   = "timeout"
	WinReasonForfeit   = "forfeit"
)

// Game drives one isolation match between two players (human or AI). The AI
// thinks asynchronously; Tick is polled from the outside and applies pending
// or ready moves, enforces the per-turn clock and settles the result.
type Game struct {
	settings  GameSettings
	state     GameState
	history   MoveHistory
	players   [2]IPlayer
	turnStart time.Time
	deadline  time.Time
	winReason string
}

func NewGame(settings GameSettings) Game {
	g := Game{}
	g.Reset(settings)
	return g
}

func (g *Game) Reset(settings GameSettings) {
	g.settings = settings
	g.state.Reset(settings)
	g.history.Clear()
	g.createPlayers()
	g.winReason = ""
	g.turnStart = time.Now()
	g.deadline = time.Time{}
}

func (g *Game) createPlayers() {
	g.players[Player1] = newPlayer(g.settings.Player1Type)
	g.players[Player2] = newPlayer(g.settings.Player2Type)
}

func newPlayer(playerType PlayerType) IPlayer {
	if playerType == PlayerAI {
		return NewAIPlayer()
	}
	return NewHumanPlayer()
}

func (g *Game) Start() {
	if g.state.Status == StatusNotStarted {
		g.state.Status = StatusRunning
		g.startTurn()
	}
}

func (g *Game) State() GameState {
	return g.state.Clone()
}

func (g *Game) History() MoveHistory {
	return g.history
}

func (g *Game) Settings() GameSettings {
	return g.settings
}

func (g *Game) WinReason() string {
	return g.winReason
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

func (g *Game) currentPlayer() IPlayer {
	return g.players[g.state.ToMove]
}

func (g *Game) CurrentPlayerIsHuman() bool {
	player := g.currentPlayer()
	return player != nil && player.IsHuman()
}

func (g *Game) AiThinking() bool {
	if ai, ok := g.currentPlayer().(*AIPlayer); ok {
		return ai.IsThinking()
	}
	return false
}

func (g *Game) turnBudget() time.Duration {
	ms := g.settings.TurnTimeMs
	if ms <= 0 {
		ms = GetConfig().TurnTimeMs
	}
	return time.Duration(ms) * time.Millisecond
}

// startTurn resets the turn clock. Human turns are untimed in interactive
// play; AI turns get the configured budget.
func (g *Game) startTurn() {
	g.turnStart = time.Now()
	if g.CurrentPlayerIsHuman() {
		g.deadline = time.Time{}
		return
	}
	g.deadline = g.turnStart.Add(g.turnBudget())
}

func (g *Game) timeLeftFunc() TimeLeftFunc {
	deadline := g.deadline
	return func() float64 {
		return float64(time.Until(deadline)) / float64(time.Millisecond)
	}
}

// Tick advances the game one step and reports whether anything changed.
func (g *Game) Tick() bool {
	if g.state.Status != StatusRunning {
		return false
	}

	// The side to move is already out of moves: the opponent wins.
	if g.state.IsLoser(g.state.ToMove) {
		g.finish(otherPlayer(g.state.ToMove), WinReasonIsolation)
		return true
	}

	player := g.currentPlayer()
	if human, ok := player.(*HumanPlayer); ok {
		if !human.HasPendingMove() {
			return false
		}
		move := human.TakePendingMove()
		return g.applyMove(move, false)
	}

	ai, ok := player.(*AIPlayer)
	if !ok {
		return false
	}
	if ai.HasMoveReady() {
		move := ai.TakeMove()
		if move.IsNoMove() {
			g.finish(otherPlayer(g.state.ToMove), WinReasonForfeit)
			return true
		}
		return g.applyMove(move, true)
	}
	if !ai.IsThinking() {
		ai.StartThinking(g.state.Clone(), g.timeLeftFunc())
		return false
	}
	// Thinking past the deadline forfeits the turn and the match.
	if !g.deadline.IsZero() && time.Now().After(g.deadline) {
		g.finish(otherPlayer(g.state.ToMove), WinReasonTimeout)
		return true
	}
	return false
}

// TryApplyMove submits a human move from the HTTP layer.
func (g *Game) TryApplyMove(move Move) (bool, string) {
	if g.state.Status != StatusRunning {
		return false, "game not running"
	}
	if !g.CurrentPlayerIsHuman() {
		return false, "not human turn"
	}
	if !g.state.IsLegal(move, g.state.ToMove) {
		return false, "illegal move"
	}
	if !g.applyMove(move, false) {
		return false, "illegal move"
	}
	return true, ""
}

func (g *Game) SubmitHumanMove(move Move) bool {
	if human, ok := g.currentPlayer().(*HumanPlayer); ok {
		human.SetPendingMove(move)
		return true
	}
	return false
}

func (g *Game) applyMove(move Move, isAi bool) bool {
	if !g.state.IsLegal(move, g.state.ToMove) {
		g.finish(otherPlayer(g.state.ToMove), WinReasonForfeit)
		return true
	}
	mover := g.state.ToMove
	elapsedMs := float64(time.Since(g.turnStart).Milliseconds())
	g.state = g.state.ForecastMove(move)
	g.history.Push(HistoryEntry{Move: move, Player: mover, ElapsedMs: elapsedMs, IsAi: isAi})
	appLog.Infow("move played",
		"player", playerName(mover),
		"move", move,
		"elapsed_ms", elapsedMs,
		"is_ai", isAi,
	)
	if g.state.IsLoser(g.state.ToMove) {
		g.finish(mover, WinReasonIsolation)
		return true
	}
	g.startTurn()
	return true
}

func (g *Game) finish(winner PlayerID, reason string) {
	if winner == Player1 {
		g.state.Status = StatusPlayer1Won
	} else {
		g.state.Status = StatusPlayer2Won
	}
	g.winReason = reason
	appLog.Infow("game over", "winner", playerName(winner), "reason", reason, "plies", g.history.Size())
}
