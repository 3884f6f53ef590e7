package matching

import (
	"encoding/json"
	"os"

	"github.com/naukri-ai/talent-ranker/internal/candidate"
)

// Result is one scored candidate for one requirement. Results are created
// fresh per match call and never cached across requests.
type Result struct {
	Candidate *candidate.Candidate `json:"candidate"`

	// Score is the overall weighted score on the [0,1] scale.
	Score float64 `json:"score"`

	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`

	SkillMatch      float64 `json:"skill_match"`
	ExperienceMatch float64 `json:"experience_match"`
	SeniorityMatch  float64 `json:"seniority_match"`
	EmploymentMatch float64 `json:"employment_match"`
	LocationMatch   float64 `json:"location_match"`

	// Qualitative annotations attached by later stages. Never part of the
	// deterministic ranking order.
	SkillGapAnalysis   map[string]string `json:"skill_gap_analysis,omitempty"`
	InterviewQuestions []string          `json:"interview_questions,omitempty"`
}

type Results struct {
	Items []*Result
}

func (r *Results) Len() int {
	return len(r.Items)
}

func (r *Results) FindByCandidateID(id string) *Result {
	for _, item := range r.Items {
		if item.Candidate != nil && item.Candidate.ID == id {
			return item
		}
	}
	return nil
}

func (r *Results) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "match_results_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.Items); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func (r *Results) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(r.Items)
}

// ResultsFromFile reads a previously dumped result list, e.g. as input to the
// ranking refiner.
func ResultsFromFile(path string) (*Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var items []*Result
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	return &Results{Items: items}, nil
}

// GapSummary is the deterministic part of a skill-gap analysis: which wanted
// skills the candidate has, which are missing, and the coverage percentage.
type GapSummary struct {
	MatchingSkills []string `json:"matching_skills"`
	MissingSkills  []string `json:"missing_skills"`
	Coverage       float64  `json:"coverage"`
}

// AnalyzeSkillGaps summarizes a candidate's coverage of the wanted skills.
// Coverage is a percentage of wanted skills matched, rounded to two decimals
// by the caller's serializer.
func AnalyzeSkillGaps(candidateSkills, wantedSkills []string) GapSummary {
	_, matched, missing := MatchSkills(wantedSkills, candidateSkills, nil)

	coverage := 0.0
	if len(wantedSkills) > 0 {
		coverage = float64(len(matched)) / float64(len(wantedSkills)) * 100
	}

	return GapSummary{
		MatchingSkills: matched,
		MissingSkills:  missing,
		Coverage:       coverage,
	}
}
