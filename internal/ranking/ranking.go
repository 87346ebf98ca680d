// Package ranking orders recommended career paths by a selectable strategy.
// Ranking only reorders: every input path is always present in the output.
package ranking

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/spigell/career-navigator/internal/careers"
)

// Strategy selects the ordering rule applied to the path list.
type Strategy string

const (
	Default    Strategy = "default"
	HighMatch  Strategy = "high-match"
	FastTrack  Strategy = "fast-track"
	HighSalary Strategy = "high-salary"
)

// Values substituted for metrics missing from the payload.
const (
	MissingScore          = 0.0
	MissingSkillMatch     = 0.0
	MissingSalaryGrowth   = 0.0
	MissingTimelineMonths = 999.0
)

type descriptor struct {
	strategy    Strategy
	description string
	key         func(careers.CareerPath) float64
	ascending   bool
}

var descriptors = []descriptor{
	{Default, "best overall score first", scoreKey, false},
	{HighMatch, "highest skill match first", skillMatchKey, false},
	{FastTrack, "shortest timeline first", timelineKey, true},
	{HighSalary, "largest salary growth first", salaryGrowthKey, false},
}

// Strategies returns every strategy in display order.
func Strategies() []Strategy {
	out := make([]Strategy, 0, len(descriptors))
	for _, d := range descriptors {
		out = append(out, d.strategy)
	}
	return out
}

// Describe returns a short human description of s.
func Describe(s Strategy) string {
	return lookup(s).description
}

// ParseStrategy accepts the strategy names and "all", the alias the UI uses for default.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", "all":
		return Default, nil
	}

	for _, d := range descriptors {
		if string(d.strategy) == name {
			return d.strategy, nil
		}
	}

	return "", fmt.Errorf("unknown strategy %q", name)
}

// Rank returns a new slice holding paths ordered by s. The sort is stable and
// paths is left untouched. Unknown strategies rank like Default.
func Rank(paths []careers.CareerPath, s Strategy) []careers.CareerPath {
	ranked := slices.Clone(paths)
	if ranked == nil {
		ranked = []careers.CareerPath{}
	}

	d := lookup(s)
	slices.SortStableFunc(ranked, func(a, b careers.CareerPath) int {
		if d.ascending {
			return cmp.Compare(d.key(a), d.key(b))
		}
		return cmp.Compare(d.key(b), d.key(a))
	})

	return ranked
}

// sortKey returns the value s sorts p by, with the missing-value substitution applied.
func sortKey(p careers.CareerPath, s Strategy) float64 {
	return lookup(s).key(p)
}

func lookup(s Strategy) descriptor {
	for _, d := range descriptors {
		if d.strategy == s {
			return d
		}
	}
	return descriptors[0]
}

func scoreKey(p careers.CareerPath) float64 {
	return valueOr(p.Score, MissingScore)
}

func skillMatchKey(p careers.CareerPath) float64 {
	return valueOr(p.SkillMatch, MissingSkillMatch)
}

func salaryGrowthKey(p careers.CareerPath) float64 {
	return valueOr(p.SalaryGrowth, MissingSalaryGrowth)
}

func timelineKey(p careers.CareerPath) float64 {
	return valueOr(p.TimelineMonths, MissingTimelineMonths)
}

func valueOr(v *float64, missing float64) float64 {
	if v == nil {
		return missing
	}
	return *v
}
