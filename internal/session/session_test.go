package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/career-navigator/internal/careers"
	"github.com/spigell/career-navigator/internal/ranking"
)

func f(v float64) *float64 { return &v }

func response() *careers.CareerPathResponse {
	return &careers.CareerPathResponse{Paths: []careers.CareerPath{
		{
			Roles:          []string{"Dev", "Lead"},
			Score:          f(0.4),
			TimelineMonths: f(6),
			Transitions:    []careers.Transition{{Step: 1, FromRole: "Dev", ToRole: "Lead"}},
		},
		{
			Roles:          []string{"Dev", "Senior", "Architect"},
			Score:          f(0.9),
			TimelineMonths: f(30),
			Transitions: []careers.Transition{
				{Step: 1, FromRole: "Dev", ToRole: "Senior"},
				{Step: 2, FromRole: "Senior", ToRole: "Architect"},
			},
		},
	}}
}

func succeed(s State, resp *careers.CareerPathResponse) State {
	s = Reduce(s, SubmitStarted{})
	return Reduce(s, SubmitSucceeded{Generation: s.Generation, Response: resp})
}

func TestSubmitSuccessRanksAndResetsExpansion(t *testing.T) {
	s := New(ranking.Default)
	s = Reduce(s, SubmitStarted{})
	assert.True(t, s.Busy)

	s = Reduce(s, SubmitSucceeded{Generation: s.Generation, Response: response()})
	assert.False(t, s.Busy)
	require.True(t, s.HasResult())
	require.Len(t, s.Ranked, 2)
	assert.Equal(t, "Architect", s.Ranked[0].Destination())

	idx, ok := s.Expansion.Path()
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.Empty(t, s.Expansion.entries())
}

func TestSubmitSuccessClearsErrorAndSteps(t *testing.T) {
	s := succeed(New(ranking.Default), response())
	s = Reduce(s, ToggleStep{Key: StepKey{Path: 0, Step: 1}})
	s = Reduce(s, TogglePath{Index: 1})

	s = Reduce(s, SubmitStarted{})
	s = Reduce(s, SubmitFailed{Generation: s.Generation, Err: errors.New("down")})
	require.Error(t, s.Err)

	s = succeed(s, response())
	assert.NoError(t, s.Err)
	assert.Empty(t, s.Expansion.entries())
	assert.True(t, s.Expansion.PathExpanded(0))
}

func TestEmptyResultCollapsesEverything(t *testing.T) {
	s := succeed(New(ranking.Default), &careers.CareerPathResponse{})
	assert.True(t, s.HasResult())
	assert.Empty(t, s.Ranked)
	_, ok := s.Expansion.Path()
	assert.False(t, ok)

	s = succeed(New(ranking.Default), nil)
	assert.True(t, s.HasResult())
	assert.Empty(t, s.Ranked)
}

func TestFailureKeepsPreviousResult(t *testing.T) {
	s := succeed(New(ranking.Default), response())
	s = Reduce(s, ToggleStep{Key: StepKey{Path: 1, Step: 0}})
	before := s

	s = Reduce(s, SubmitStarted{})
	failure := errors.New("connection refused")
	s = Reduce(s, SubmitFailed{Generation: s.Generation, Err: failure})

	assert.False(t, s.Busy)
	assert.Same(t, before.Response, s.Response)
	assert.Equal(t, before.Ranked, s.Ranked)
	assert.Equal(t, before.Expansion, s.Expansion)
	assert.ErrorIs(t, s.Err, failure)
}

func TestStaleCompletionIsDropped(t *testing.T) {
	s := Reduce(New(ranking.Default), SubmitStarted{})
	stale := s.Generation

	s = Reduce(s, Reset{Strategy: ranking.Default})
	assert.True(t, s.Busy, "the request is still running")

	s = Reduce(s, SubmitSucceeded{Generation: stale, Response: response()})
	assert.False(t, s.Busy)
	assert.False(t, s.HasResult())

	s = Reduce(s, SubmitStarted{})
	s = Reduce(s, Reset{Strategy: ranking.Default})
	s = Reduce(s, SubmitFailed{Generation: s.Generation - 1, Err: errors.New("late")})
	assert.NoError(t, s.Err)
}

func TestSetStrategyReranksWithoutTouchingExpansion(t *testing.T) {
	s := succeed(New(ranking.Default), response())
	s = Reduce(s, TogglePath{Index: 1})
	s = Reduce(s, ToggleStep{Key: StepKey{Path: 1, Step: 0}})
	expansion := s.Expansion

	s = Reduce(s, SetStrategy{Strategy: ranking.FastTrack})
	assert.Equal(t, ranking.FastTrack, s.Strategy)
	assert.Equal(t, "Lead", s.Ranked[0].Destination())
	assert.Equal(t, expansion, s.Expansion)

	// Same response object, only the order changed.
	assert.Equal(t, "Lead", s.Response.Paths[0].Destination())
}

func TestSetStrategyBeforeResult(t *testing.T) {
	s := Reduce(New(ranking.Default), SetStrategy{Strategy: ranking.HighSalary})
	assert.Equal(t, ranking.HighSalary, s.Strategy)
	assert.Empty(t, s.Ranked)

	s = succeed(s, response())
	assert.Equal(t, ranking.HighSalary, s.Strategy)
	assert.Len(t, s.Ranked, 2)
}

func TestToggleOutOfRangeIsIgnored(t *testing.T) {
	s := succeed(New(ranking.Default), response())
	before := s.Expansion

	s = Reduce(s, TogglePath{Index: 5})
	s = Reduce(s, TogglePath{Index: -1})
	s = Reduce(s, ToggleStep{Key: StepKey{Path: 0, Step: 2}})
	s = Reduce(s, ToggleStep{Key: StepKey{Path: 2, Step: 0}})

	assert.Equal(t, before, s.Expansion)
}

func TestResetDiscardsResult(t *testing.T) {
	s := succeed(New(ranking.HighMatch), response())
	s = Reduce(s, SubmitStarted{})
	s = Reduce(s, SubmitFailed{Generation: s.Generation, Err: errors.New("x")})

	s = Reduce(s, Reset{Strategy: ranking.Default})
	assert.False(t, s.HasResult())
	assert.Empty(t, s.Ranked)
	assert.NoError(t, s.Err)
	assert.Equal(t, ranking.Default, s.Strategy)
	_, ok := s.Expansion.Path()
	assert.False(t, ok)
}

func TestReduceDoesNotModifyInput(t *testing.T) {
	s := succeed(New(ranking.Default), response())
	snapshot := s.Expansion.entries()

	next := Reduce(s, ToggleStep{Key: StepKey{Path: 0, Step: 0}})
	assert.Equal(t, snapshot, s.Expansion.entries())
	assert.NotEqual(t, s.Expansion, next.Expansion)
}
