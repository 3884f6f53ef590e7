package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/naukri-ai/talent-ranker/internal/ai"
	"github.com/naukri-ai/talent-ranker/internal/candidate"
	"github.com/naukri-ai/talent-ranker/internal/logger"

	"go.uber.org/zap"
)

//go:embed prompts/cultural_fit.md
var culturalFitTemplate string

//go:embed prompts/skill_gap.md
var skillGapTemplate string

//go:embed prompts/interview_questions.md
var interviewTemplate string

//go:embed prompts/verify_employment.md
var verifyTemplate string

//go:embed prompts/compare_profiles.md
var compareTemplate string

const (
	defaultMaxLogLength = 200
	defaultNumQuestions = 5

	// Profile texts for comparison are capped so two large documents fit a
	// single prompt.
	maxProfileRunes = 8000
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Analyzer implements ai.Analyzer on top of the Gemini generator.
type Analyzer struct {
	generator contentGenerator
	log       *zap.Logger
	maxLogLen int
}

// NewAnalyzer builds a Gemini-backed analyzer. maxLogLength bounds prompt
// and response previews in debug logs.
func NewAnalyzer(generator contentGenerator, log *zap.Logger, maxLogLength int) *Analyzer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Analyzer{
		generator: generator,
		log:       log,
		maxLogLen: maxLogLength,
	}
}

var _ ai.Analyzer = (*Analyzer)(nil)

// CulturalFit asks the model for a single bounded scalar; everything else in
// the response is discarded. The result is clamped to [0,1].
func (a *Analyzer) CulturalFit(ctx context.Context, cand *candidate.Candidate, jobDescription, companyCulture string) (float64, error) {
	if cand == nil {
		return 0, fmt.Errorf("candidate is required")
	}

	candidateJSON, err := json.MarshalIndent(cand, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("marshal candidate payload: %w", err)
	}

	prompt := fillTemplate(culturalFitTemplate, map[string]string{
		"{{JOB_DESCRIPTION}}": jobDescription,
		"{{COMPANY_CULTURE}}": companyCulture,
		"{{CANDIDATE_JSON}}":  string(candidateJSON),
	})

	raw, err := a.generate(ctx, "cultural_fit", cand.ID, prompt)
	if err != nil {
		return 0, err
	}

	var payload map[string]any
	if err := decodeJSON(raw, &payload); err != nil {
		return 0, &ai.MalformedResponseError{Raw: raw, Err: err}
	}

	score, ok := coerceFloat(payload["cultural_fit_score"])
	if !ok {
		return 0, &ai.MalformedResponseError{Raw: raw, Err: fmt.Errorf("missing cultural_fit_score")}
	}

	return clamp01(score), nil
}

// SkillGap returns a per-skill learning-path narrative for the missing
// skills. An empty missing list needs no model call.
func (a *Analyzer) SkillGap(ctx context.Context, candidateSkills, missingSkills []string) (map[string]string, error) {
	if len(missingSkills) == 0 {
		return map[string]string{"status": "All required skills met"}, nil
	}

	prompt := fillTemplate(skillGapTemplate, map[string]string{
		"{{MISSING_SKILLS}}":   strings.Join(missingSkills, ", "),
		"{{CANDIDATE_SKILLS}}": strings.Join(candidateSkills, ", "),
	})

	raw, err := a.generate(ctx, "skill_gap", "", prompt)
	if err != nil {
		return nil, err
	}

	var payload map[string]any
	if err := decodeJSON(raw, &payload); err != nil {
		return nil, &ai.MalformedResponseError{Raw: raw, Err: err}
	}

	analysis := make(map[string]string, len(payload))
	for skill, text := range payload {
		analysis[skill] = coerceString(text)
	}
	return analysis, nil
}

// InterviewQuestions generates up to n tailored questions. Missing skills
// are derived from the wanted list so questions probe learning ability too.
func (a *Analyzer) InterviewQuestions(ctx context.Context, cand *candidate.Candidate, wantedSkills []string, n int) ([]ai.Question, error) {
	if cand == nil {
		return nil, fmt.Errorf("candidate is required")
	}
	if n <= 0 {
		n = defaultNumQuestions
	}

	candidateJSON, err := json.MarshalIndent(cand, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal candidate payload: %w", err)
	}

	missing := missingFrom(cand.Skills, wantedSkills)
	missingText := "None"
	if len(missing) > 0 {
		missingText = strings.Join(missing, ", ")
	}

	prompt := fillTemplate(interviewTemplate, map[string]string{
		"{{CANDIDATE_JSON}}": string(candidateJSON),
		"{{WANTED_SKILLS}}":  strings.Join(wantedSkills, ", "),
		"{{MISSING_SKILLS}}": missingText,
		"{{NUM_QUESTIONS}}":  strconv.Itoa(n),
	})

	raw, err := a.generate(ctx, "interview_questions", cand.ID, prompt)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Questions []ai.Question `json:"questions"`
	}
	if err := decodeJSON(raw, &payload); err != nil {
		return nil, &ai.MalformedResponseError{Raw: raw, Err: err}
	}

	if len(payload.Questions) > n {
		payload.Questions = payload.Questions[:n]
	}
	return payload.Questions, nil
}

// VerifyEmployment screens an employment history for red flags.
func (a *Analyzer) VerifyEmployment(ctx context.Context, name string, history []ai.EmploymentRecord) (*ai.Verification, error) {
	historyJSON, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal employment history: %w", err)
	}

	prompt := fillTemplate(verifyTemplate, map[string]string{
		"{{CANDIDATE_NAME}}":     name,
		"{{EMPLOYMENT_HISTORY}}": string(historyJSON),
	})

	raw, err := a.generate(ctx, "verify_employment", "", prompt)
	if err != nil {
		return nil, err
	}

	var verification ai.Verification
	if err := decodeJSON(raw, &verification); err != nil {
		return nil, &ai.MalformedResponseError{Raw: raw, Err: err}
	}
	return &verification, nil
}

// CompareProfiles recommends the better of two profiles for the criteria.
func (a *Analyzer) CompareProfiles(ctx context.Context, first, second, criteria string) (*ai.Comparison, error) {
	prompt := fillTemplate(compareTemplate, map[string]string{
		"{{CRITERIA}}":       criteria,
		"{{FIRST_PROFILE}}":  truncateRunes(first, maxProfileRunes),
		"{{SECOND_PROFILE}}": truncateRunes(second, maxProfileRunes),
	})

	raw, err := a.generate(ctx, "compare_profiles", "", prompt)
	if err != nil {
		return nil, err
	}

	var payload struct {
		BestCandidate any               `json:"best_candidate"`
		Reasoning     string            `json:"reasoning"`
		First         ai.ProfileSummary `json:"candidate_1_summary"`
		Second        ai.ProfileSummary `json:"candidate_2_summary"`
	}
	if err := decodeJSON(raw, &payload); err != nil {
		return nil, &ai.MalformedResponseError{Raw: raw, Err: err}
	}

	best, ok := coerceFloat(payload.BestCandidate)
	if !ok || (int(best) != 1 && int(best) != 2) {
		return nil, &ai.MalformedResponseError{Raw: raw, Err: fmt.Errorf("best_candidate must be 1 or 2")}
	}

	return &ai.Comparison{
		BestCandidate: int(best),
		Reasoning:     payload.Reasoning,
		First:         payload.First,
		Second:        payload.Second,
	}, nil
}

func (a *Analyzer) generate(ctx context.Context, op, subject, prompt string) (string, error) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, a.maxLogLen)),
	}
	if subject != "" {
		fields = append(fields, zap.String("candidate_id", subject))
	}
	a.log.Debug("gemini analyzer request", fields...)

	raw, err := a.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	a.log.Debug("gemini analyzer response",
		zap.String("op", op),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, a.maxLogLen)),
	)

	return raw, nil
}

func fillTemplate(template string, values map[string]string) string {
	for placeholder, value := range values {
		template = strings.ReplaceAll(template, placeholder, value)
	}
	return template
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

// missingFrom lists wanted skills the candidate does not have, by
// case-insensitive containment.
func missingFrom(candidateSkills, wantedSkills []string) []string {
	missing := make([]string, 0)
	for _, wanted := range wantedSkills {
		wantedLower := strings.ToLower(strings.TrimSpace(wanted))
		if wantedLower == "" {
			continue
		}

		found := false
		for _, skill := range candidateSkills {
			skillLower := strings.ToLower(strings.TrimSpace(skill))
			if strings.Contains(skillLower, wantedLower) || strings.Contains(wantedLower, skillLower) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, wantedLower)
		}
	}
	return missing
}
