package careers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ecodeclub/ekit/slice"
	"go.uber.org/zap"
)

const resumeField = "file"

// ErrUnsupportedResume is returned for files other than PDF or DOCX.
var ErrUnsupportedResume = errors.New("resume must be a .pdf or .docx file")

// ResumeParser turns a resume file into a ParsedResume.
type ResumeParser interface {
	ParseResume(ctx context.Context, path string) (*ParsedResume, error)
}

type Skill struct {
	Name            string  `json:"name"`
	Category        string  `json:"category,omitempty"`
	Proficiency     int     `json:"proficiency,omitempty"`
	YearsExperience float64 `json:"years_experience,omitempty"`
}

type Experience struct {
	Company        string   `json:"company"`
	Role           string   `json:"role"`
	DurationMonths int      `json:"duration_months"`
	Description    string   `json:"description,omitempty"`
	SkillsUsed     []string `json:"skills_used,omitempty"`
}

type ParsedResume struct {
	FullName             string       `json:"full_name"`
	Email                string       `json:"email,omitempty"`
	Phone                string       `json:"phone,omitempty"`
	CurrentRole          string       `json:"current_role"`
	YearsTotalExperience float64      `json:"years_total_experience"`
	Skills               []Skill      `json:"skills"`
	Experience           []Experience `json:"experience,omitempty"`
	Education            []string     `json:"education,omitempty"`
	Certifications       []string     `json:"certifications,omitempty"`
	Industry             string       `json:"industry,omitempty"`
	Summary              string       `json:"summary,omitempty"`
}

// SkillNames returns the skill names in resume order, skipping blank ones.
func (r *ParsedResume) SkillNames() []string {
	if r == nil {
		return []string{}
	}

	names := slice.Map(r.Skills, func(_ int, s Skill) string {
		return strings.TrimSpace(s.Name)
	})

	return slice.FindAll(names, func(name string) bool {
		return name != ""
	})
}

// DecodeResume maps a loosely typed JSON object onto a ParsedResume.
func DecodeResume(raw map[string]any) (*ParsedResume, error) {
	var resume ParsedResume
	if err := decode(raw, &resume); err != nil {
		return nil, fmt.Errorf("decode resume: %w", err)
	}

	return &resume, nil
}

// CheckResumeFile reports whether path has an extension the parser accepts.
func CheckResumeFile(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".docx":
		return nil
	default:
		return fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedResume)
	}
}

// ParseResume uploads the file at path to the resume ingestion endpoint.
func (c *Client) ParseResume(ctx context.Context, path string) (*ParsedResume, error) {
	if err := CheckResumeFile(path); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	c.logger.Info("uploading resume", zap.String("file", filepath.Base(path)))

	raw, err := c.postFile(ctx, c.APIURL+parseResume, resumeField, filepath.Base(path), file)
	if err != nil {
		return nil, fmt.Errorf("parse resume: %w", err)
	}

	return DecodeResume(raw)
}
