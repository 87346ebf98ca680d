// Package present renders resumes and ranked career paths as terminal text.
package present

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ecodeclub/ekit/slice"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/spigell/career-navigator/internal/careers"
	"github.com/spigell/career-navigator/internal/links"
	"github.com/spigell/career-navigator/internal/session"
)

const (
	NoRecommendations = "No recommendations found."
	indent            = "    "
)

type Renderer struct {
	w     io.Writer
	links *links.Resolver
}

// NewRenderer writes to w and resolves references with resolver, or the default one when nil.
func NewRenderer(w io.Writer, resolver *links.Resolver) *Renderer {
	if resolver == nil {
		resolver = links.NewResolver("")
	}
	return &Renderer{w: w, links: resolver}
}

// Welcome prints the resume summary.
func (r *Renderer) Welcome(resume *careers.ParsedResume) {
	if resume == nil {
		return
	}

	r.printf("Welcome, %s\n", orDash(resume.FullName))
	r.printf("%s • %s years experience\n", orDash(resume.CurrentRole), formatNumber(resume.YearsTotalExperience))
	if names := resume.SkillNames(); len(names) > 0 {
		r.printf("Detected skills: %s\n", strings.Join(names, ", "))
	}
	r.printf("\n")
}

// Session prints the ranked paths of s with the disclosure state of s.
func (r *Renderer) Session(s session.State) {
	if s.Err != nil {
		r.printf("! %s\n\n", s.Err.Error())
	}

	if !s.HasResult() {
		return
	}

	if len(s.Ranked) == 0 {
		r.printf("%s\n", NoRecommendations)
		return
	}

	r.printf("Recommended paths (%s)\n\n", s.Strategy)
	for i, p := range s.Ranked {
		r.path(i, p, s.Expansion)
	}
}

// PathTitle is the one-line label of path i used in menus.
func PathTitle(i int, p careers.CareerPath) string {
	return fmt.Sprintf("Path %d: %s", i+1, strings.Join(p.Roles, " → "))
}

// StepTitle is the one-line label of a transition used in menus.
func StepTitle(t careers.Transition) string {
	return fmt.Sprintf("Step %d: %s → %s", t.Step, t.FromRole, t.ToRole)
}

func (r *Renderer) path(i int, p careers.CareerPath, e session.Expansion) {
	marker := ""
	if i == 0 {
		marker = " ★ Recommended"
	}

	r.printf("%s [score %s]%s\n", PathTitle(i, p), ScoreBadge(p.Score), marker)
	r.printf("%stimeline: %s months | salary growth: %s | skill match: %s | difficulty: %s/10 (%s) | steps: %d\n",
		indent,
		optional(p.TimelineMonths, formatNumber),
		optional(p.SalaryGrowth, formatMoney),
		optional(p.SkillMatch, func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) + "%" }),
		strconv.FormatFloat(p.Difficulty, 'f', 1, 64),
		DifficultyLabel(p.Difficulty),
		len(p.Transitions),
	)

	r.list(indent+"your matching skills", p.MatchedSkills)
	r.list(indent+"skills to acquire", p.MissingSkills)

	if !e.PathExpanded(i) {
		r.printf("\n")
		return
	}

	for j, t := range p.Transitions {
		r.transition(t, e.StepExpanded(session.StepKey{Path: i, Step: j}))
	}

	r.printf("%sfinal destination: %s (total salary increase %s)\n",
		indent, orDash(p.Destination()), optional(p.SalaryGrowth, formatMoney))

	for _, c := range p.CommunityResources {
		r.printf("%scommunity [%s] %s - %s\n", indent, c.Type, c.Name, r.links.Resolve(referenceOf(c.URL, c.Name)))
		if c.Description != "" {
			r.printf("%s%s%s\n", indent, indent, c.Description)
		}
	}

	r.list(indent+"mentorship", p.MentorshipOpportunities)
	r.printf("\n")
}

func (r *Renderer) transition(t careers.Transition, expanded bool) {
	pad := indent + indent
	r.printf("%s%s\n", indent, StepTitle(t))
	r.printf("%sduration: %s months | salary jump: %s | success rate: %s%% | difficulty: %s/10\n",
		pad,
		formatNumber(t.DurationMonths),
		formatMoney(t.SalaryIncrease),
		formatNumber(math.Round(t.SuccessRate*100)),
		formatNumber(t.Difficulty),
	)

	if !expanded {
		return
	}

	r.list(pad+"skills to learn", t.SkillsToLearn)

	for _, res := range t.LearningResources {
		kind := ParseResourceType(res.ResourceType)
		cost := "paid"
		if IsFree(res.Cost) {
			cost = "free"
		}
		r.printf("%s%s %s - %s\n", pad, kind.Icon(), res.Title, r.links.Resolve(referenceOf(res.URL, res.Title)))
		r.printf("%s%sskill: %s | provider: %s | %s | %s (%s) | %s\n",
			pad, indent, res.Skill, res.Provider, res.Duration, res.Cost, cost, ParseLevel(res.Difficulty))
		if res.WhyRecommended != "" {
			r.printf("%s%s%s\n", pad, indent, res.WhyRecommended)
		}
	}

	for _, c := range t.Certifications {
		r.printf("%s🏅 %s %s - %s\n", pad, c.Name, ParseImportance(c.Importance).Mark(), r.links.Resolve(referenceOf(c.URL, c.Name)))
		r.printf("%s%sprovider: %s | study: %s | cost: %s | valid: %s\n",
			pad, indent, c.Provider, c.StudyDuration, c.EstimatedCost, c.Validity)
	}

	for _, pr := range t.PracticalProjects {
		r.printf("%s🛠 %s (%s)\n", pad, pr.ProjectTitle, pr.EstimatedTime)
		if pr.Description != "" {
			r.printf("%s%s%s\n", pad, indent, pr.Description)
		}
		for _, ref := range pr.Resources {
			r.printf("%s%s%s\n", pad, indent, r.links.Resolve(ref))
		}
	}

	r.list(pad+"skills you already have", t.SkillsMatch)
}

func (r *Renderer) list(label string, items []string) {
	items = slice.FindAll(items, func(s string) bool { return strings.TrimSpace(s) != "" })
	if len(items) == 0 {
		return
	}
	r.printf("%s: %s\n", label, strings.Join(items, ", "))
}

func (r *Renderer) printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

// referenceOf prefers the url field and falls back to the display name.
func referenceOf(url, name string) string {
	if strings.TrimSpace(url) != "" {
		return url
	}
	return name
}

func optional(v *float64, format func(float64) string) string {
	if v == nil {
		return "?"
	}
	return format(*v)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var numbers = message.NewPrinter(language.English)

// formatMoney renders v as a signed whole dollar amount with thousands separators.
func formatMoney(v float64) string {
	sign := "+"
	if v < 0 {
		sign = "-"
		v = -v
	}

	return sign + "$" + numbers.Sprintf("%d", int64(math.Round(v)))
}
