// Package optimizer defines the ask/tell contract used by the tuning loop and
// ships a (1+1) evolution strategy implementing it.
//
// Callers must not use an optimizer from more than one goroutine.
package optimizer

import (
	"github.com/pkg/errors"
)

var (
	ErrBudgetExhausted = errors.New("optimizer budget exhausted")
	ErrDimension       = errors.New("optimizer dimension mismatch")
)

type Recommendation struct {
	X           []float64
	Loss        float64
	Evaluations int
}

type Optimizer interface {
	// Suggest queues a point to be returned by a following Ask.
	// It does not consume budget.
	Suggest(x []float64) error
	Ask() []float64
	Tell(x []float64, loss float64) error
	// Recommend returns the best point known so far, independent of the last one told.
	Recommend() Recommendation
	NumAsk() int
	NumTell() int
	Budget() int
}
