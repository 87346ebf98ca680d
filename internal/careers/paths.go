package careers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// CareerPathRequest is the body sent to the recommendation endpoint.
// TargetRole is nil when the user did not ask for a specific destination.
type CareerPathRequest struct {
	CurrentRole string   `json:"current_role"`
	UserSkills  []string `json:"user_skills"`
	TargetRole  *string  `json:"target_role"`
}

type CareerPathResponse struct {
	Paths           []CareerPath `json:"paths"`
	RecommendedPath *CareerPath  `json:"recommended_path,omitempty"`
	SkillGaps       []SkillGap   `json:"skill_gaps,omitempty"`
}

type SkillGap struct {
	Roles           []string `json:"roles"`
	MatchPercentage float64  `json:"match_percentage"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
}

// CareerPath is one recommended route. The sortable metrics are pointers so a
// missing value can be told apart from a zero one.
type CareerPath struct {
	Roles                   []string            `json:"roles"`
	Score                   *float64            `json:"score,omitempty"`
	TimelineMonths          *float64            `json:"timeline_months,omitempty"`
	SalaryGrowth            *float64            `json:"salary_growth,omitempty"`
	SkillMatch              *float64            `json:"skill_match,omitempty"`
	Difficulty              float64             `json:"difficulty"`
	MatchedSkills           []string            `json:"matched_skills"`
	MissingSkills           []string            `json:"missing_skills"`
	Transitions             []Transition        `json:"transitions"`
	CommunityResources      []CommunityResource `json:"community_resources,omitempty"`
	MentorshipOpportunities []string            `json:"mentorship_opportunities,omitempty"`
}

type Transition struct {
	Step              int                `json:"step"`
	FromRole          string             `json:"from_role"`
	ToRole            string             `json:"to_role"`
	DurationMonths    float64            `json:"duration_months"`
	SalaryIncrease    float64            `json:"salary_increase"`
	SuccessRate       float64            `json:"success_rate"`
	Difficulty        float64            `json:"difficulty"`
	SkillsToLearn     []string           `json:"skills_to_learn"`
	SkillsMatch       []string           `json:"skills_match"`
	LearningResources []LearningResource `json:"learning_resources"`
	Certifications    []Certification    `json:"certifications"`
	PracticalProjects []PracticalProject `json:"practical_projects"`
}

type LearningResource struct {
	ResourceType   string `json:"resource_type"`
	Title          string `json:"title"`
	URL            string `json:"url"`
	Skill          string `json:"skill"`
	Provider       string `json:"provider"`
	Duration       string `json:"duration"`
	Cost           string `json:"cost"`
	Difficulty     string `json:"difficulty"`
	WhyRecommended string `json:"why_recommended"`
}

type Certification struct {
	Name          string `json:"name"`
	URL           string `json:"url"`
	Importance    string `json:"importance"`
	Provider      string `json:"provider"`
	StudyDuration string `json:"study_duration"`
	EstimatedCost string `json:"estimated_cost"`
	Validity      string `json:"validity"`
}

type PracticalProject struct {
	ProjectTitle  string   `json:"project_title"`
	Description   string   `json:"description"`
	EstimatedTime string   `json:"estimated_time"`
	Resources     []string `json:"resources"`
}

type CommunityResource struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Recommend posts the request to the recommendation endpoint.
func (c *Client) Recommend(ctx context.Context, req *CareerPathRequest) (*CareerPathResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("career path request is required")
	}

	var raw map[string]any
	if err := c.postJSON(ctx, c.APIURL+careerPaths, req, &raw); err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}

	return DecodeResponse(raw)
}

// DecodeResponse maps a loosely typed JSON object onto a CareerPathResponse.
// A nil object is an empty result, not an error.
func DecodeResponse(raw map[string]any) (*CareerPathResponse, error) {
	var resp CareerPathResponse
	if raw == nil {
		return &resp, nil
	}

	if err := decode(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode career paths: %w", err)
	}

	return &resp, nil
}

func (r *CareerPathResponse) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Paths)
}

// DumpToTmpFile writes the paths as indented JSON to a new temporary file and returns its name.
func DumpToTmpFile(paths []CareerPath) (string, error) {
	file, err := os.CreateTemp("", "career_paths_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(paths); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// Destination returns the last role of the path.
func (p CareerPath) Destination() string {
	if len(p.Roles) == 0 {
		return ""
	}
	return p.Roles[len(p.Roles)-1]
}

// Inconsistencies lists places where roles and transitions disagree.
// Paths are never rejected for these; callers only log them.
func (p CareerPath) Inconsistencies() []string {
	var problems []string

	if len(p.Transitions) > 0 && len(p.Roles) != len(p.Transitions)+1 {
		problems = append(problems, fmt.Sprintf("%d roles for %d transitions", len(p.Roles), len(p.Transitions)))
	}

	for i := 1; i < len(p.Roles) && i <= len(p.Transitions); i++ {
		if p.Roles[i] != p.Transitions[i-1].ToRole {
			problems = append(problems, fmt.Sprintf("role %d is %q but transition %d leads to %q",
				i, p.Roles[i], i-1, p.Transitions[i-1].ToRole))
		}
	}

	return problems
}
