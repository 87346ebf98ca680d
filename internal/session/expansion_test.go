package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToggleStepTwiceRestoresValue(t *testing.T) {
	key := StepKey{Path: 1, Step: 2}

	e := NewExpansion(3)
	assert.False(t, e.StepExpanded(key))

	e = e.ToggleStep(key)
	assert.True(t, e.StepExpanded(key))

	e = e.ToggleStep(key)
	assert.False(t, e.StepExpanded(key))
}

func TestToggleStepIsIndependent(t *testing.T) {
	e := NewExpansion(2).
		ToggleStep(StepKey{Path: 0, Step: 0}).
		ToggleStep(StepKey{Path: 1, Step: 0})

	assert.True(t, e.StepExpanded(StepKey{Path: 0, Step: 0}))
	assert.False(t, e.StepExpanded(StepKey{Path: 0, Step: 1}))
	assert.True(t, e.StepExpanded(StepKey{Path: 1, Step: 0}))

	e = e.ToggleStep(StepKey{Path: 0, Step: 0})
	assert.False(t, e.StepExpanded(StepKey{Path: 0, Step: 0}))
	assert.True(t, e.StepExpanded(StepKey{Path: 1, Step: 0}))
}

func TestStepKeysDoNotCollide(t *testing.T) {
	// "1-12" and "11-2" style keys must stay distinct.
	e := NewExpansion(0).ToggleStep(StepKey{Path: 1, Step: 12})
	assert.True(t, e.StepExpanded(StepKey{Path: 1, Step: 12}))
	assert.False(t, e.StepExpanded(StepKey{Path: 11, Step: 2}))
}

func TestSetExpandedPathTwiceCollapses(t *testing.T) {
	e := NewExpansion(0).SetExpandedPath(2)
	idx, ok := e.Path()
	assert.True(t, ok)
	assert.Equal(t, 2, idx)

	e = e.SetExpandedPath(2)
	_, ok = e.Path()
	assert.False(t, ok)
}

func TestSetExpandedPathIsExclusiveButKeepsSteps(t *testing.T) {
	e := NewExpansion(0).
		SetExpandedPath(2).
		ToggleStep(StepKey{Path: 2, Step: 0}).
		SetExpandedPath(3)

	idx, ok := e.Path()
	assert.True(t, ok)
	assert.Equal(t, 3, idx)
	assert.False(t, e.PathExpanded(2))
	assert.True(t, e.PathExpanded(3))
	assert.Equal(t, map[StepKey]bool{{Path: 2, Step: 0}: true}, e.entries())
}

func TestNewExpansion(t *testing.T) {
	idx, ok := NewExpansion(4).Path()
	assert.True(t, ok)
	assert.Equal(t, 0, idx)

	_, ok = NewExpansion(0).Path()
	assert.False(t, ok)
	assert.Empty(t, NewExpansion(4).entries())
}

func TestExpansionValuesAreImmutable(t *testing.T) {
	key := StepKey{Path: 0, Step: 1}
	before := NewExpansion(1)
	after := before.ToggleStep(key)

	assert.False(t, before.StepExpanded(key))
	assert.True(t, after.StepExpanded(key))

	steps := after.entries()
	steps[key] = false
	assert.True(t, after.StepExpanded(key))
}
