package main

import (
	"math"
	"time"
)

// iterativeSearch re-runs the root search at depths 1, 2, 3, … retaining the
// last depth that finished inside the time budget. Only errTimeout stops the
// loop; the half-finished depth is discarded in full and the caller gets the
// previous depth's result together with the timeout. If no depth completed,
// the retained move is NoMove and the score stays at negative infinity.
func iterativeSearch(state GameState, ctx *searchContext, search searchFunc) (float64, Move, error) {
	bestScore := math.Inf(-1)
	bestMove := NoMove
	for depth := 1; ; depth++ {
		depthStart := time.Now()
		score, move, err := search(state, ctx, depth)
		if err != nil {
			return bestScore, bestMove, err
		}
		bestScore = score
		bestMove = move
		if ctx.stats != nil {
			ctx.stats.CompletedDepths = depth
			ctx.stats.DepthDurations = append(ctx.stats.DepthDurations, time.Since(depthStart))
		}
	}
}
