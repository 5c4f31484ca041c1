package main

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type AIPlayer struct {
	moveMutex  sync.Mutex
	workerDone chan struct{}
	thinking   atomic.Bool
	moveReady  atomic.Bool
	readyMove  Move
}

func NewAIPlayer() *AIPlayer {
	return &AIPlayer{}
}

func (a *AIPlayer) IsHuman() bool {
	return false
}

// ChooseMove picks a move for the side to move before the turn clock runs
// out. Each call is stateless apart from the time budget: nothing carries
// over between turns.
func (a *AIPlayer) ChooseMove(state GameState, timeLeft TimeLeftFunc) Move {
	config := GetConfig()
	stats := &SearchStats{Start: time.Now()}
	move := selectMove(state, timeLeft, config, stats)
	if config.AiLogSearchStats {
		logSearchStats(stats, config, move)
	}
	return move
}

// selectMove is the move-selection entry point. The only timeout catch point
// lives here: a timeout surfacing from the search yields the move retained
// from the last fully completed depth, which is NoMove when not even depth 1
// finished.
func selectMove(state GameState, timeLeft TimeLeftFunc, config Config, stats *SearchStats) Move {
	legalMoves := state.CurrentLegalMoves()
	if len(legalMoves) == 0 {
		return NoMove
	}
	// Fixed opening: the very first move of the game takes the center.
	if len(legalMoves) == state.Board.CellCount() {
		return state.Board.Center()
	}
	ctx, err := newSearchContext(state.ToMove, timeLeft, config, stats)
	if err != nil {
		appLog.Errorw("invalid search configuration, playing first legal move", "error", err)
		return legalMoves[0]
	}
	search := searchFnForMethod(config.AiMethod)
	var move Move
	if config.AiIterative {
		_, move, err = iterativeSearch(state, ctx, search)
	} else {
		_, move, err = search(state, ctx, config.AiSearchDepth)
	}
	if err != nil && !errors.Is(err, errTimeout) {
		appLog.Errorw("search failed", "error", err)
		return NoMove
	}
	if move.IsNoMove() {
		if errors.Is(err, errTimeout) && (stats == nil || stats.CompletedDepths == 0) {
			return NoMove
		}
		// Every continuation is a proven loss. Play the first legal move
		// instead of resigning while moves remain.
		move = legalMoves[0]
	}
	return move
}

func (a *AIPlayer) StartThinking(state GameState, timeLeft TimeLeftFunc) {
	if a.thinking.Load() {
		return
	}
	if a.workerDone != nil {
		<-a.workerDone
	}
	a.thinking.Store(true)
	a.moveReady.Store(false)

	stateCopy := state.Clone()
	done := make(chan struct{})
	a.workerDone = done
	go func() {
		defer close(done)
		move := a.ChooseMove(stateCopy, timeLeft)
		a.moveMutex.Lock()
		a.readyMove = move
		a.moveMutex.Unlock()
		a.moveReady.Store(true)
		a.thinking.Store(false)
	}()
}

func (a *AIPlayer) IsThinking() bool {
	return a.thinking.Load()
}

func (a *AIPlayer) HasMoveReady() bool {
	return a.moveReady.Load()
}

func (a *AIPlayer) TakeMove() Move {
	a.moveMutex.Lock()
	defer a.moveMutex.Unlock()
	a.moveReady.Store(false)
	return a.readyMove
}

func logSearchStats(stats *SearchStats, config Config, move Move) {
	elapsed := time.Duration(0)
	if !stats.Start.IsZero() {
		elapsed = time.Since(stats.Start)
	}
	parts := make([]string, 0, len(stats.DepthDurations))
	for _, d := range stats.DepthDurations {
		parts = append(parts, fmt.Sprintf("%dms", d.Milliseconds()))
	}
	nps := 0.0
	if elapsed > 0 {
		nps = float64(stats.Nodes) / elapsed.Seconds()
	}
	appLog.Infow("search stats",
		"method", config.AiMethod,
		"score_fn", config.AiScoreFn,
		"iterative", config.AiIterative,
		"move", fmt.Sprintf("(%d,%d)", move.X, move.Y),
		"elapsed_ms", elapsed.Milliseconds(),
		"completed_depths", stats.CompletedDepths,
		"nodes", stats.Nodes,
		"evaluations", stats.Evaluations,
		"cutoffs", stats.Cutoffs,
		"nps", nps,
		"depth_times", strings.Join(parts, ","),
	)
}
