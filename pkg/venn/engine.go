package venn

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Outcome is the result a predicate reports back to the engine.
type Outcome struct {
	kind    outcomeKind
	choices int
}

type outcomeKind uint8

const (
	outcomeAdvance outcomeKind = iota
	outcomeSameRound
	outcomeFail
	outcomeChoices
)

// Advance moves the engine to the first round of the next predicate.
func Advance() Outcome {
	return Outcome{kind: outcomeAdvance}
}

// SameRound moves the engine to the next round of the same predicate.
func SameRound() Outcome {
	return Outcome{kind: outcomeSameRound}
}

// Fail rejects the current branch; the engine backtracks.
func Fail() Outcome {
	return Outcome{kind: outcomeFail}
}

// Choices announces n alternatives for the current round. The engine calls
// Retry once per alternative, rewinding the trail between attempts.
func Choices(n int) Outcome {
	return Outcome{kind: outcomeChoices, choices: n}
}

func (o Outcome) String() string {
	switch o.kind {
	case outcomeAdvance:
		return "Advance"
	case outcomeSameRound:
		return "SameRound"
	case outcomeFail:
		return "Fail"
	default:
		return fmt.Sprintf("Choices(%d)", o.choices)
	}
}

// Predicate is one stage of the search pipeline. Try opens a round; it may
// succeed outright or announce choices, in which case Retry is called with
// ascending choice indices until one chain of descendants succeeds or all
// are exhausted. Retry must not announce further choices; a predicate
// wanting nested choice points opens them in later rounds.
//
// Predicates see the shared Search state and record all reversible writes
// on its trail; the engine owns checkpointing and rewinding.
type Predicate interface {
	Name() string
	Try(s *Search, round int) Outcome
	Retry(s *Search, round, choice int) Outcome
}

// frame is one entry of the engine's explicit search stack.
type frame struct {
	pred     int
	round    int
	inChoice bool
	choice   int
	choices  int
	mark     int
}

// Engine drives a predicate pipeline over a Search, backtracking through
// the trail. It enumerates every branch: the run ends when the stack
// empties, and counting predicates in the pipeline accumulate totals along
// the way. The final predicate must never Advance; pipelines end with a
// predicate that fails (after counting) to force exhaustive backtracking.
type Engine struct {
	preds []Predicate
	log   *slog.Logger
}

// NewEngine builds an engine over the given pipeline. A nil logger
// disables engine logging.
func NewEngine(preds []Predicate, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{preds: preds, log: log}
}

const ctxCheckInterval = 1 << 12

// Run explores the full search tree. It returns nil after exhausting every
// branch, or the context's error if cancelled mid-search.
func (e *Engine) Run(ctx context.Context, s *Search) error {
	if len(e.preds) == 0 {
		return nil
	}
	stack := make([]frame, 1, 64)
	stack[0] = frame{mark: s.Trail.Mark()}
	steps := 0

	for len(stack) > 0 {
		steps++
		if steps%ctxCheckInterval == 1 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		top := &stack[len(stack)-1]
		// Every iteration restarts from the frame's checkpoint, so a failed
		// retry or a popped descendant leaves no residue.
		s.Trail.RewindTo(top.mark)
		p := e.preds[top.pred]

		var out Outcome
		if !top.inChoice {
			out = p.Try(s, top.round)
			s.Stats.Tries++
		} else {
			if top.choice >= top.choices {
				stack = popThrough(stack)
				s.Stats.Backtracks++
				continue
			}
			out = p.Retry(s, top.round, top.choice)
			top.choice++
			s.Stats.Retries++
		}

		switch out.kind {
		case outcomeFail:
			if !top.inChoice {
				stack = popThrough(stack)
				s.Stats.Backtracks++
			}
			// In choice mode the next iteration tries the next alternative.
		case outcomeChoices:
			if top.inChoice {
				panic(fmt.Sprintf("venn: predicate %s announced choices from Retry", p.Name()))
			}
			top.inChoice = true
			top.choices = out.choices
			top.choice = 0
			// Re-checkpoint after Try's writes: they are shared by every
			// alternative and must survive per-retry rewinds. The frame's
			// eventual pop rewinds to the frame below instead.
			top.mark = s.Trail.Mark()
		case outcomeAdvance:
			if top.pred+1 >= len(e.preds) {
				panic(fmt.Sprintf("venn: predicate %s advanced past the end of the pipeline", p.Name()))
			}
			stack = append(stack, frame{pred: top.pred + 1, mark: s.Trail.Mark()})
		case outcomeSameRound:
			stack = append(stack, frame{pred: top.pred, round: top.round + 1, mark: s.Trail.Mark()})
		}
	}
	e.log.Debug("search exhausted", "steps", steps, "backtracks", s.Stats.Backtracks)
	return nil
}

// popThrough removes the failed top frame and every frame below it that
// holds no remaining alternatives. Frames outside choice mode ran their Try
// exactly once; re-entering them would repeat its effects, so failure falls
// through to the nearest open choice point.
func popThrough(stack []frame) []frame {
	stack = stack[:len(stack)-1]
	for len(stack) > 0 && !stack[len(stack)-1].inChoice {
		stack = stack[:len(stack)-1]
	}
	return stack
}
