package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/career-navigator/internal/careers"
)

func f(v float64) *float64 { return &v }

func named(name string) careers.CareerPath {
	return careers.CareerPath{Roles: []string{name}}
}

func destinations(paths []careers.CareerPath) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, p.Destination())
	}
	return out
}

func TestRankFastTrackMissingTimelineSortsLast(t *testing.T) {
	three, missing, one := named("three"), named("missing"), named("one")
	three.TimelineMonths = f(3)
	one.TimelineMonths = f(1)

	ranked := Rank([]careers.CareerPath{three, missing, one}, FastTrack)

	assert.Equal(t, []string{"one", "three", "missing"}, destinations(ranked))
}

func TestRankFastTrackPresentZeroIsRealValue(t *testing.T) {
	missing, zero, two := named("missing"), named("zero"), named("two")
	zero.TimelineMonths = f(0)
	two.TimelineMonths = f(2)

	ranked := Rank([]careers.CareerPath{missing, two, zero}, FastTrack)

	assert.Equal(t, []string{"zero", "two", "missing"}, destinations(ranked))
}

func TestRankStrategies(t *testing.T) {
	a, b, c := named("a"), named("b"), named("c")
	a.Score, b.Score, c.Score = f(0.2), f(0.9), nil
	a.SkillMatch, b.SkillMatch, c.SkillMatch = f(10), nil, f(80)
	a.SalaryGrowth, b.SalaryGrowth, c.SalaryGrowth = f(5000), f(20000), f(1000)
	a.TimelineMonths, b.TimelineMonths, c.TimelineMonths = f(24), f(6), f(12)

	paths := []careers.CareerPath{a, b, c}

	tests := []struct {
		strategy Strategy
		expect   []string
	}{
		{Default, []string{"b", "a", "c"}},
		{HighMatch, []string{"c", "a", "b"}},
		{FastTrack, []string{"b", "c", "a"}},
		{HighSalary, []string{"b", "a", "c"}},
		{Strategy("bogus"), []string{"b", "a", "c"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.strategy), func(t *testing.T) {
			assert.Equal(t, tt.expect, destinations(Rank(paths, tt.strategy)))
		})
	}
}

func TestRankIsStable(t *testing.T) {
	paths := make([]careers.CareerPath, 0, 6)
	for _, name := range []string{"p0", "p1", "p2", "p3", "p4", "p5"} {
		p := named(name)
		p.Score = f(0.5)
		p.SkillMatch = f(50)
		p.SalaryGrowth = f(100)
		p.TimelineMonths = f(12)
		paths = append(paths, p)
	}

	for _, s := range Strategies() {
		assert.Equal(t, destinations(paths), destinations(Rank(paths, s)), s)
	}

	// Missing keys are equal to each other too.
	bare := []careers.CareerPath{named("x"), named("y"), named("z")}
	for _, s := range Strategies() {
		assert.Equal(t, []string{"x", "y", "z"}, destinations(Rank(bare, s)), s)
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	a, b, c := named("a"), named("b"), named("c")
	a.Score, b.Score, c.Score = f(0.1), f(0.5), f(0.9)
	a.TimelineMonths, b.TimelineMonths, c.TimelineMonths = f(1), f(2), f(3)

	paths := []careers.CareerPath{a, b, c}

	byScore := Rank(paths, Default)
	byTime := Rank(paths, FastTrack)

	assert.Equal(t, []string{"a", "b", "c"}, destinations(paths))
	assert.Equal(t, []string{"c", "b", "a"}, destinations(byScore))
	assert.Equal(t, []string{"a", "b", "c"}, destinations(byTime))

	byScore[0] = named("replaced")
	assert.Equal(t, "c", paths[2].Destination())
}

func TestRankKeepsEveryPath(t *testing.T) {
	paths := []careers.CareerPath{named("a"), named("b"), named("c"), named("d")}
	for _, s := range Strategies() {
		require.Len(t, Rank(paths, s), len(paths))
	}

	assert.NotNil(t, Rank(nil, Default))
	assert.Empty(t, Rank(nil, Default))
}

func TestSortKeySubstitutesMissingValues(t *testing.T) {
	p := named("bare")
	assert.Equal(t, MissingScore, sortKey(p, Default))
	assert.Equal(t, MissingSkillMatch, sortKey(p, HighMatch))
	assert.Equal(t, MissingTimelineMonths, sortKey(p, FastTrack))
	assert.Equal(t, MissingSalaryGrowth, sortKey(p, HighSalary))
}

func TestParseStrategy(t *testing.T) {
	for _, s := range Strategies() {
		got, err := ParseStrategy(" " + string(s) + " ")
		require.NoError(t, err)
		assert.Equal(t, s, got)
		assert.NotEmpty(t, Describe(s))
	}

	got, err := ParseStrategy("all")
	require.NoError(t, err)
	assert.Equal(t, Default, got)

	got, err = ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, Default, got)

	_, err = ParseStrategy("cheapest")
	assert.Error(t, err)
}
