package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/spigell/career-navigator/internal/careers"
	"github.com/spigell/career-navigator/internal/logger"
	"github.com/spigell/career-navigator/internal/utils"
	"go.uber.org/zap"
)

const (
	pdfMIMEType         = "application/pdf"
	defaultMaxLogLength = 200
)

//go:embed prompt.md
var promptTemplate string

type documentGenerator interface {
	GenerateFromDocument(ctx context.Context, prompt, mimeType string, document []byte) (string, error)
	Model() string
}

// ResumeParser reads PDF resumes locally and asks Gemini to structure them.
type ResumeParser struct {
	generator documentGenerator
	logger    *zap.Logger
	maxLogLen int
}

var _ careers.ResumeParser = (*ResumeParser)(nil)

func NewResumeParser(generator documentGenerator, log *zap.Logger, maxLogLength int) *ResumeParser {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &ResumeParser{
		generator: generator,
		logger:    logger.WithFields(log, zap.String(logger.FieldParser, "gemini")),
		maxLogLen: maxLogLength,
	}
}

// ParseResume only accepts PDF input: DOCX has no inline MIME type Gemini reads.
func (p *ResumeParser) ParseResume(ctx context.Context, path string) (*careers.ParsedResume, error) {
	if err := careers.CheckResumeFile(path); err != nil {
		return nil, err
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, fmt.Errorf("%s: gemini parser reads pdf only: %w", filepath.Base(path), careers.ErrUnsupportedResume)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resume: %w", err)
	}

	prompt := buildPrompt()

	p.logger.Debug("gemini generate content request",
		zap.String("model", p.generator.Model()),
		zap.String("file", filepath.Base(path)),
		zap.Int("document_size", len(data)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
	)

	raw, err := p.generator.GenerateFromDocument(ctx, prompt, pdfMIMEType, data)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, p.maxLogLen)),
	)

	return parseResponse(raw)
}

func buildPrompt() string {
	if strings.TrimSpace(promptTemplate) == "" {
		return "Extract the resume into JSON with keys full_name, current_role, years_total_experience and skills."
	}
	return promptTemplate
}

func parseResponse(raw string) (*careers.ParsedResume, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	// Some answers nest the object under a single "resume" key.
	if nested, ok := data["resume"].(map[string]any); ok && len(data) == 1 {
		data = nested
	}

	return careers.DecodeResume(data)
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
