package main

import (
	"time"

	"github.com/google/uuid"
)

type MatchResult struct {
	ID      string         `json:"id"`
	Winner  PlayerID       `json:"winner"`
	Reason  string         `json:"reason"`
	Plies   int            `json:"plies"`
	History []HistoryEntry `json:"history"`
}

// PlayMatch pits two agents against each other synchronously, enforcing the
// per-turn clock the way a tournament driver would: each turn gets a fresh
// deadline and the mover forfeits by overrunning it, returning NoMove or
// returning an illegal move.
func PlayMatch(player1, player2 IPlayer, settings GameSettings) MatchResult {
	result := MatchResult{ID: uuid.NewString()}
	players := [2]IPlayer{player1, player2}
	state := DefaultGameState(settings)
	state.Status = StatusRunning
	budget := time.Duration(settings.TurnTimeMs) * time.Millisecond
	if budget <= 0 {
		budget = time.Duration(GetConfig().TurnTimeMs) * time.Millisecond
	}
	var history MoveHistory

	appLog.Infow("match started", "match_id", result.ID, "board", settings.BoardWidth, "turn_time_ms", settings.TurnTimeMs)
	for {
		mover := state.ToMove
		if state.IsLoser(mover) {
			result.Winner = otherPlayer(mover)
			result.Reason = WinReasonIsolation
			break
		}
		turnStart := time.Now()
		deadline := turnStart.Add(budget)
		timeLeft := func() float64 {
			return float64(time.Until(deadline)) / float64(time.Millisecond)
		}
		move := players[mover].ChooseMove(state.Clone(), timeLeft)
		elapsedMs := float64(time.Since(turnStart).Milliseconds())
		if timeLeft() < 0 {
			result.Winner = otherPlayer(mover)
			result.Reason = WinReasonTimeout
			break
		}
		if move.IsNoMove() || !state.IsLegal(move, mover) {
			result.Winner = otherPlayer(mover)
			result.Reason = WinReasonForfeit
			break
		}
		state = state.ForecastMove(move)
		history.Push(HistoryEntry{Move: move, Player: mover, ElapsedMs: elapsedMs, IsAi: !players[mover].IsHuman()})
	}

	result.Plies = history.Size()
	result.History = history.All()
	appLog.Infow("match finished",
		"match_id", result.ID,
		"winner", playerName(result.Winner),
		"reason", result.Reason,
		"plies", result.Plies,
	)
	return result
}
