// meta/meta.go
package meta

import (
	"time"

	"growth/game"
)

// GOROUTINES defines the default number of workers for root move ranking.
const GOROUTINES = 8

// MIN_DEPTH is the first iterative deepening depth. It always completes.
const MIN_DEPTH = 2

// TOP_MOVES is the number of ranked moves a search returns.
const TOP_MOVES = 5

// BUDGET is the default wall-clock budget for iterative deepening.
const BUDGET = 30 * time.Second

// MAX_MOVES caps a self-play game.
const MAX_MOVES = 2 * game.Size * game.Size
