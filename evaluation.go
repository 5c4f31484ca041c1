package main

import (
	"fmt"
	"math"
)

// scoreFunc maps a state to a desirability score from player's point of view,
// higher is better. Score functions are pure: they never mutate the state and
// are called once per expanded node, so they must stay cheap.
type scoreFunc func(state GameState, player PlayerID, cfg Config) float64

var scoreFns = map[string]scoreFunc{
	ScoreFnChaser:   aggressiveChaser,
	ScoreFnMobility: mobilityRatio,
	ScoreFnBlend:    mobilityBlend,
}

func scoreFnByName(name string) (scoreFunc, error) {
	fn, ok := scoreFns[name]
	if !ok {
		return nil, fmt.Errorf("unknown ai_score_fn %q", name)
	}
	return fn, nil
}

// evaluateState is the single evaluation entry used by the search core. The
// terminal checks run before any heuristic work: a player with no moves left
// has lost outright and no heuristic may override that.
func evaluateState(state GameState, player PlayerID, score scoreFunc, cfg Config) float64 {
	if state.IsLoser(player) {
		return math.Inf(-1)
	}
	if state.IsWinner(player) {
		return math.Inf(1)
	}
	return score(state, player, cfg)
}

// occupancyFraction is occupied cells over total cells.
func occupancyFraction(board Board) float64 {
	total := board.CellCount()
	if total == 0 {
		return 0.0
	}
	occupied := total - board.CountEmpty()
	return float64(occupied) / float64(total)
}

// manhattanDistance between the two players' positions; zero while either
// player is still unplaced.
func manhattanDistance(state GameState, player PlayerID) int {
	own := state.PlayerLocation(player)
	opp := state.PlayerLocation(otherPlayer(player))
	if own.IsNoMove() || opp.IsNoMove() {
		return 0
	}
	dx := own.X - opp.X
	if dx < 0 {
		dx = -dx
	}
	dy := own.Y - opp.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// aggressiveChaser rewards own mobility and penalizes the opponent's,
// weighted so the agent actively hunts the opponent down.
func aggressiveChaser(state GameState, player PlayerID, cfg Config) float64 {
	weight := cfg.AiChaserWeight
	if weight <= 0 {
		weight = 2.0
	}
	ownMoves := len(state.LegalMoves(player))
	oppMoves := len(state.LegalMoves(otherPlayer(player)))
	return float64(ownMoves) - weight*float64(oppMoves)
}

// mobilityRatio scales own mobility by how crowded the board is. A fully
// empty board has zero occupancy; the raw move count is returned unscaled
// rather than dividing by zero.
func mobilityRatio(state GameState, player PlayerID, cfg Config) float64 {
	ownMoves := float64(len(state.LegalMoves(player)))
	occupancy := occupancyFraction(state.Board)
	if occupancy == 0.0 {
		return ownMoves
	}
	return ownMoves / occupancy
}

// mobilityBlend is the default heuristic: own mobility, plus taxicab distance
// to the opponent, minus board occupancy, minus opponent mobility.
func mobilityBlend(state GameState, player PlayerID, cfg Config) float64 {
	ownMoves := len(state.LegalMoves(player))
	oppMoves := len(state.LegalMoves(otherPlayer(player)))
	distance := manhattanDistance(state, player)
	occupancy := occupancyFraction(state.Board)
	return float64(ownMoves+distance-oppMoves) - occupancy
}
