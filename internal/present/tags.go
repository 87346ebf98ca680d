package present

import (
	"math"
	"strings"
)

// ResourceType is the closed set of learning resource kinds.
type ResourceType int

const (
	ResourceOther ResourceType = iota
	ResourceYouTube
	ResourceCourse
	ResourceDocumentation
	ResourceCertification
	ResourceBook
)

var resourceTypes = map[string]ResourceType{
	"youtube":       ResourceYouTube,
	"course":        ResourceCourse,
	"documentation": ResourceDocumentation,
	"certification": ResourceCertification,
	"book":          ResourceBook,
}

var resourceIcons = map[ResourceType]string{
	ResourceOther:         "•",
	ResourceYouTube:       "▶",
	ResourceCourse:        "🎓",
	ResourceDocumentation: "📄",
	ResourceCertification: "🏅",
	ResourceBook:          "📘",
}

func ParseResourceType(tag string) ResourceType {
	return resourceTypes[strings.ToLower(strings.TrimSpace(tag))]
}

func (t ResourceType) Icon() string {
	return resourceIcons[t]
}

// Level is the closed set of resource difficulty tags.
type Level int

const (
	LevelUnknown Level = iota
	LevelBeginner
	LevelIntermediate
	LevelAdvanced
)

var levels = map[string]Level{
	"beginner":     LevelBeginner,
	"intermediate": LevelIntermediate,
	"advanced":     LevelAdvanced,
}

var levelLabels = map[Level]string{
	LevelUnknown:      "Unrated",
	LevelBeginner:     "Beginner",
	LevelIntermediate: "Intermediate",
	LevelAdvanced:     "Advanced",
}

func ParseLevel(tag string) Level {
	return levels[strings.ToLower(strings.TrimSpace(tag))]
}

func (l Level) String() string {
	return levelLabels[l]
}

// Importance is the closed set of certification importance tags.
type Importance int

const (
	ImportanceUnknown Importance = iota
	ImportanceRequired
	ImportanceHighlyRecommended
	ImportanceOptional
)

var importances = map[string]Importance{
	"required":           ImportanceRequired,
	"highly recommended": ImportanceHighlyRecommended,
	"optional":           ImportanceOptional,
}

var importanceMarks = map[Importance]string{
	ImportanceUnknown:           "",
	ImportanceRequired:          "[required]",
	ImportanceHighlyRecommended: "[highly recommended]",
	ImportanceOptional:          "[optional]",
}

func ParseImportance(tag string) Importance {
	return importances[strings.ToLower(strings.TrimSpace(tag))]
}

func (i Importance) Mark() string {
	return importanceMarks[i]
}

// IsFree reports whether a cost tag denotes a free resource.
func IsFree(cost string) bool {
	return strings.EqualFold(strings.TrimSpace(cost), "free")
}

// DifficultyLabel maps a 0-10 difficulty to a word.
func DifficultyLabel(difficulty float64) string {
	switch {
	case difficulty <= 3:
		return "Easy"
	case difficulty <= 6:
		return "Moderate"
	default:
		return "Challenging"
	}
}

// ScoreBadge turns a 0-1 score into the 0-100 number shown to users.
func ScoreBadge(score *float64) string {
	if score == nil {
		return "?"
	}
	return formatNumber(math.Round(*score * 100))
}
