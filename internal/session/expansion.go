package session

import "maps"

// StepKey identifies one transition of one path in the displayed order.
type StepKey struct {
	Path int
	Step int
}

// Expansion tracks which path and which steps are disclosed. At most one path
// is expanded at a time, while steps are toggled independently of each other.
// Values are immutable: every mutating method returns a new Expansion.
type Expansion struct {
	path  int
	open  bool
	steps map[StepKey]bool
}

// NewExpansion returns the state after a fetch of n paths: the first path
// expanded when there is one, no steps expanded.
func NewExpansion(n int) Expansion {
	return Expansion{open: n > 0}
}

// Path returns the expanded path index, if any.
func (e Expansion) Path() (int, bool) {
	return e.path, e.open
}

// PathExpanded reports whether path i is the expanded one.
func (e Expansion) PathExpanded(i int) bool {
	return e.open && e.path == i
}

// SetExpandedPath collapses path i if it is expanded and expands it otherwise.
// Step entries of other paths are kept.
func (e Expansion) SetExpandedPath(i int) Expansion {
	next := Expansion{path: i, open: true, steps: e.steps}
	if e.PathExpanded(i) {
		next.path, next.open = 0, false
	}
	return next
}

// ToggleStep flips the step at k; absent steps count as collapsed.
func (e Expansion) ToggleStep(k StepKey) Expansion {
	steps := make(map[StepKey]bool, len(e.steps)+1)
	maps.Copy(steps, e.steps)
	steps[k] = !steps[k]

	return Expansion{path: e.path, open: e.open, steps: steps}
}

// StepExpanded reports whether the step at k is expanded.
func (e Expansion) StepExpanded(k StepKey) bool {
	return e.steps[k]
}

// entries returns a copy of every step entry recorded so far, including collapsed ones.
func (e Expansion) entries() map[StepKey]bool {
	return maps.Clone(e.steps)
}
