package ai

import (
	"context"

	"github.com/naukri-ai/talent-ranker/internal/candidate"
)

// NeutralCulturalFit is substituted when the analyzer is unavailable, fails,
// or no company culture text is supplied.
const NeutralCulturalFit = 0.5

// Question is one generated interview question with its assessment metadata.
type Question struct {
	Question  string   `json:"question"`
	Type      string   `json:"type"`
	Evaluates string   `json:"evaluates"`
	Skills    []string `json:"skills"`
}

// EmploymentRecord is one entry of a candidate's employment history as
// supplied for verification.
type EmploymentRecord struct {
	Company   string `json:"company"`
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Verification is the structured outcome of an employment-history check.
type Verification struct {
	OverallStatus   string   `json:"overall_status"`
	RedFlags        []string `json:"red_flags"`
	ConfidenceScore float64  `json:"confidence_score"`
	Notes           string   `json:"notes"`
}

// ProfileSummary describes one side of a two-candidate comparison.
type ProfileSummary struct {
	KeyStrengths []string `json:"key_strengths"`
	RedFlags     []string `json:"red_flags"`
}

// Comparison is the structured outcome of comparing two candidate profiles
// against recruiter criteria.
type Comparison struct {
	BestCandidate int            `json:"best_candidate"`
	Reasoning     string         `json:"reasoning"`
	First         ProfileSummary `json:"candidate_1_summary"`
	Second        ProfileSummary `json:"candidate_2_summary"`
}

// Analyzer is the single seam through which LLM calls enter the pipeline.
// Implementations are not deterministic; nothing on this interface may
// change the ranking order except the bounded cultural-fit scalar consumed
// by the refiner.
type Analyzer interface {
	// CulturalFit estimates alignment between a candidate and the company
	// culture text on a 0.0-1.0 scale.
	CulturalFit(ctx context.Context, cand *candidate.Candidate, jobDescription, companyCulture string) (float64, error)

	// SkillGap produces a per-skill learning-path narrative for the
	// candidate's missing skills.
	SkillGap(ctx context.Context, candidateSkills, missingSkills []string) (map[string]string, error)

	// InterviewQuestions generates up to n questions tailored to the
	// candidate profile and the wanted skills.
	InterviewQuestions(ctx context.Context, cand *candidate.Candidate, wantedSkills []string, n int) ([]Question, error)

	// VerifyEmployment screens an employment history for red flags.
	VerifyEmployment(ctx context.Context, name string, history []EmploymentRecord) (*Verification, error)

	// CompareProfiles recommends the better of two candidate profiles for
	// the recruiter's criteria.
	CompareProfiles(ctx context.Context, first, second, criteria string) (*Comparison, error)
}
