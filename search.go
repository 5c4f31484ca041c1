package main

import (
	"errors"
	"math"
	"time"
)

// TimeLeftFunc reports the milliseconds remaining in the current turn. The
// search treats it as a read-only oracle and polls it at every node.
type TimeLeftFunc func() float64

// errTimeout is the cooperative abort signal. It is raised at the node that
// detects the exhausted budget, propagated unmodified through every pending
// recursive call, and recovered exactly once in ChooseMove.
var errTimeout = errors.New("search: time budget exhausted")

type SearchStats struct {
	Nodes           int64
	Evaluations     int64
	Cutoffs         int64
	CompletedDepths int
	DepthDurations  []time.Duration
	Start           time.Time
}

type searchContext struct {
	player   PlayerID
	score    scoreFunc
	timeLeft TimeLeftFunc
	marginMs float64
	stats    *SearchStats
	cfg      Config
}

func newSearchContext(player PlayerID, timeLeft TimeLeftFunc, cfg Config, stats *SearchStats) (*searchContext, error) {
	score, err := scoreFnByName(cfg.AiScoreFn)
	if err != nil {
		return nil, err
	}
	return &searchContext{
		player:   player,
		score:    score,
		timeLeft: timeLeft,
		marginMs: cfg.AiTimeoutMarginMs,
		stats:    stats,
		cfg:      cfg,
	}, nil
}

func (ctx *searchContext) checkDeadline() error {
	if ctx.timeLeft == nil {
		return nil
	}
	if ctx.timeLeft() <= ctx.marginMs {
		return errTimeout
	}
	return nil
}

// evaluate scores a frontier state for the agent's own player, regardless of
// which layer the search is currently in.
func (ctx *searchContext) evaluate(state GameState) float64 {
	if ctx.stats != nil {
		ctx.stats.Evaluations++
	}
	return evaluateState(state, ctx.player, ctx.score, ctx.cfg)
}

// searchFunc is a root search call at a fixed depth, maximizing on layer one.
type searchFunc func(state GameState, ctx *searchContext, depth int) (float64, Move, error)

func searchFnForMethod(method string) searchFunc {
	if method == MethodAlphaBeta {
		return alphabetaRoot
	}
	return minimaxRoot
}

func minimaxRoot(state GameState, ctx *searchContext, depth int) (float64, Move, error) {
	return minimax(state, ctx, depth, true)
}

func alphabetaRoot(state GameState, ctx *searchContext, depth int) (float64, Move, error) {
	return alphabeta(state, ctx, depth, math.Inf(-1), math.Inf(1), true)
}

// minimax is plain depth-limited minimax. Ties keep the first-seen move, so
// the chosen move is reproducible from the legal-move enumeration order.
// A node with no legal moves degenerates to its sentinel best value (-Inf for
// a maximizing layer, +Inf for a minimizing one) with NoMove, which callers
// treat as a terminal result: the side to move there has lost.
func minimax(state GameState, ctx *searchContext, depth int, maximizing bool) (float64, Move, error) {
	if err := ctx.checkDeadline(); err != nil {
		return 0, NoMove, err
	}
	if depth == 0 {
		return ctx.evaluate(state), NoMove, nil
	}
	if ctx.stats != nil {
		ctx.stats.Nodes++
	}
	best := math.Inf(-1)
	if !maximizing {
		best = math.Inf(1)
	}
	bestMove := NoMove
	for _, move := range state.CurrentLegalMoves() {
		score, _, err := minimax(state.ForecastMove(move), ctx, depth-1, !maximizing)
		if err != nil {
			return 0, NoMove, err
		}
		if maximizing {
			if score > best {
				best = score
				bestMove = move
			}
		} else {
			if score < best {
				best = score
				bestMove = move
			}
		}
	}
	return best, bestMove, nil
}

// alphabeta prunes siblings that provably cannot affect the root value. The
// root call with an infinite window returns the same score as minimax at the
// same depth; only the amount of work differs. Alpha and beta travel by value
// so sibling subtrees never share bounds. Unlike minimax, a dead node returns
// its evaluation immediately instead of falling through an empty loop.
func alphabeta(state GameState, ctx *searchContext, depth int, alpha, beta float64, maximizing bool) (float64, Move, error) {
	if err := ctx.checkDeadline(); err != nil {
		return 0, NoMove, err
	}
	moves := state.CurrentLegalMoves()
	if depth == 0 || len(moves) == 0 {
		return ctx.evaluate(state), NoMove, nil
	}
	if ctx.stats != nil {
		ctx.stats.Nodes++
	}
	if maximizing {
		best := math.Inf(-1)
		bestMove := NoMove
		for _, move := range moves {
			score, _, err := alphabeta(state.ForecastMove(move), ctx, depth-1, alpha, beta, false)
			if err != nil {
				return 0, NoMove, err
			}
			if score > best {
				best = score
				bestMove = move
			}
			if best > alpha {
				alpha = best
			}
			if beta <= alpha {
				if ctx.stats != nil {
					ctx.stats.Cutoffs++
				}
				break
			}
		}
		return best, bestMove, nil
	}
	best := math.Inf(1)
	bestMove := NoMove
	for _, move := range moves {
		score, _, err := alphabeta(state.ForecastMove(move), ctx, depth-1, alpha, beta, true)
		if err != nil {
			return 0, NoMove, err
		}
		if score < best {
			best = score
			bestMove = move
		}
		if best < beta {
			beta = best
		}
		if beta <= alpha {
			if ctx.stats != nil {
				ctx.stats.Cutoffs++
			}
			break
		}
	}
	return best, bestMove, nil
}
