// Package session holds the state of one exploration session and the pure
// reducer that moves it between states. Callers own a State and replace it
// with Reduce(state, action) on every event.
package session

import (
	"github.com/spigell/career-navigator/internal/careers"
	"github.com/spigell/career-navigator/internal/ranking"
)

type State struct {
	// Response is the last successful result set.
	Response *careers.CareerPathResponse
	// Ranked is Response.Paths ordered by Strategy. Expansion indexes refer to it.
	Ranked    []careers.CareerPath
	Strategy  ranking.Strategy
	Expansion Expansion
	Busy      bool
	Err       error
	// Generation increases with every submission and reset. Completions
	// carrying an older generation are stale.
	Generation uint64
}

// New returns an empty session ranking with s.
func New(s ranking.Strategy) State {
	return State{Strategy: s, Ranked: []careers.CareerPath{}}
}

// HasResult reports whether a result set has been received.
func (s State) HasResult() bool {
	return s.Response != nil
}

// Action is one of the event types below.
type Action interface {
	isAction()
}

type SubmitStarted struct{}

type SubmitSucceeded struct {
	Generation uint64
	Response   *careers.CareerPathResponse
}

type SubmitFailed struct {
	Generation uint64
	Err        error
}

type SetStrategy struct {
	Strategy ranking.Strategy
}

type TogglePath struct {
	Index int
}

type ToggleStep struct {
	Key StepKey
}

// Reset discards the result set, for example when a new resume is loaded.
type Reset struct {
	Strategy ranking.Strategy
}

func (SubmitStarted) isAction()   {}
func (SubmitSucceeded) isAction() {}
func (SubmitFailed) isAction()    {}
func (SetStrategy) isAction()     {}
func (TogglePath) isAction()      {}
func (ToggleStep) isAction()      {}
func (Reset) isAction()           {}

// Reduce returns the state that follows s after a. It never modifies s.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SubmitStarted:
		s.Busy = true
		s.Generation++
		return s

	case SubmitSucceeded:
		s.Busy = false
		if a.Generation != s.Generation {
			return s
		}
		resp := a.Response
		if resp == nil {
			resp = &careers.CareerPathResponse{}
		}
		s.Response = resp
		s.Ranked = ranking.Rank(resp.Paths, s.Strategy)
		s.Expansion = NewExpansion(len(s.Ranked))
		s.Err = nil
		return s

	case SubmitFailed:
		s.Busy = false
		if a.Generation != s.Generation {
			return s
		}
		s.Err = a.Err
		return s

	case SetStrategy:
		s.Strategy = a.Strategy
		if s.Response != nil {
			s.Ranked = ranking.Rank(s.Response.Paths, a.Strategy)
		}
		return s

	case TogglePath:
		if a.Index < 0 || a.Index >= len(s.Ranked) {
			return s
		}
		s.Expansion = s.Expansion.SetExpandedPath(a.Index)
		return s

	case ToggleStep:
		if a.Key.Path < 0 || a.Key.Path >= len(s.Ranked) {
			return s
		}
		if a.Key.Step < 0 || a.Key.Step >= len(s.Ranked[a.Key.Path].Transitions) {
			return s
		}
		s.Expansion = s.Expansion.ToggleStep(a.Key)
		return s

	case Reset:
		next := New(a.Strategy)
		next.Busy = s.Busy
		next.Generation = s.Generation + 1
		return next

	default:
		return s
	}
}
