// Package ranking implements the optional second scoring pass: it re-weights
// an already-matched candidate list with criteria the structured fields alone
// cannot provide, including an AI-derived cultural-fit scalar.
package ranking

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/naukri-ai/talent-ranker/internal/ai"
	"github.com/naukri-ai/talent-ranker/internal/candidate"
	"github.com/naukri-ai/talent-ranker/internal/matching"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// experienceCeiling normalizes parsed experience years onto [0,1].
const experienceCeilingYears = 20.0

// educationScore is a placeholder until education data exists in the
// dataset; it is a constant, not a bug.
const educationScore = 0.7

const neutralScore = 0.5

// refinerSeniority is the refiner's own seniority table. It is deliberately
// distinct from the matcher's ordinal ladder: this one is already a [0,1]
// score, not a rank.
var refinerSeniority = map[string]float64{
	"junior":    0.3,
	"midlevel":  0.6,
	"senior":    0.9,
	"lead":      1.0,
	"principal": 1.0,
}

// Weights is the refinement-stage weight vector.
type Weights struct {
	SkillMatch  float64 `mapstructure:"skill-match" validate:"gte=0"`
	Experience  float64 `mapstructure:"experience" validate:"gte=0"`
	Seniority   float64 `mapstructure:"seniority" validate:"gte=0"`
	Education   float64 `mapstructure:"education" validate:"gte=0"`
	CulturalFit float64 `mapstructure:"cultural-fit" validate:"gte=0"`
}

func DefaultWeights() Weights {
	return Weights{
		SkillMatch:  0.4,
		Experience:  0.25,
		Seniority:   0.15,
		Education:   0.1,
		CulturalFit: 0.1,
	}
}

func (w Weights) sum() float64 {
	return w.SkillMatch + w.Experience + w.Seniority + w.Education + w.CulturalFit
}

var validate = validator.New()

func (w Weights) Validate() error {
	if err := validate.Struct(w); err != nil {
		return fmt.Errorf("invalid ranking weights: %w", err)
	}
	if w.sum() <= 0 {
		return fmt.Errorf("invalid ranking weights: at least one weight must be positive")
	}
	return nil
}

// Scores breaks down a refined candidate's overall score.
type Scores struct {
	Overall     float64 `json:"overall"`
	SkillMatch  float64 `json:"skill_match"`
	Experience  float64 `json:"experience"`
	Seniority   float64 `json:"seniority"`
	Education   float64 `json:"education"`
	CulturalFit float64 `json:"cultural_fit"`
}

// Ranked wraps a match result with its refinement-stage scores.
type Ranked struct {
	*matching.Result

	Ranking Scores `json:"ranking_scores"`

	// Note explains a degraded sub-score, e.g. an analyzer failure that
	// fell back to the neutral default.
	Note string `json:"note,omitempty"`
}

// Refiner blends deterministic sub-scores with the analyzer's cultural-fit
// scalar. The analyzer is optional: without one (or without a culture text)
// cultural fit is the neutral default and the pass stays fully
// deterministic.
type Refiner struct {
	weights  Weights
	analyzer ai.Analyzer
	logger   *zap.Logger
}

type Option func(*Refiner)

func WithWeights(w Weights) Option {
	return func(r *Refiner) { r.weights = w }
}

func WithAnalyzer(analyzer ai.Analyzer) Option {
	return func(r *Refiner) { r.analyzer = analyzer }
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *Refiner) { r.logger = logger }
}

func NewRefiner(opts ...Option) (*Refiner, error) {
	refiner := &Refiner{
		weights: DefaultWeights(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(refiner)
	}

	if err := refiner.weights.Validate(); err != nil {
		return nil, err
	}
	return refiner, nil
}

// FromCandidate wraps a bare candidate so it can enter the refinement pass
// without a prior matching stage; its skill score defaults to neutral.
func FromCandidate(cand *candidate.Candidate) *matching.Result {
	return &matching.Result{Candidate: cand, Score: neutralScore}
}

// Rank re-scores the results and returns them sorted by the refined overall
// score, descending. A failed analyzer call degrades that one candidate's
// cultural fit to the neutral default with a note; the batch always
// completes.
func (r *Refiner) Rank(ctx context.Context, results *matching.Results, jobDescription, companyCulture string) ([]*Ranked, error) {
	if results == nil {
		return nil, fmt.Errorf("results are required")
	}

	ranked := make([]*Ranked, 0, results.Len())

	for _, result := range results.Items {
		if result == nil || result.Candidate == nil {
			continue
		}

		cultural, note, err := r.culturalFit(ctx, result.Candidate, jobDescription, companyCulture)
		if err != nil {
			return nil, err
		}

		scores := Scores{
			SkillMatch:  result.Score,
			Experience:  experienceScore(result.Candidate.ExperienceYears),
			Seniority:   seniorityScore(result.Candidate.Seniority),
			Education:   educationScore,
			CulturalFit: cultural,
		}
		scores.Overall = r.combine(scores)

		ranked = append(ranked, &Ranked{
			Result:  result,
			Ranking: scores,
			Note:    note,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Ranking.Overall > ranked[j].Ranking.Overall
	})

	return ranked, nil
}

func (r *Refiner) combine(s Scores) float64 {
	total := r.weights.sum()
	score := (s.SkillMatch*r.weights.SkillMatch +
		s.Experience*r.weights.Experience +
		s.Seniority*r.weights.Seniority +
		s.Education*r.weights.Education +
		s.CulturalFit*r.weights.CulturalFit) / total

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// culturalFit delegates to the analyzer when a culture text is supplied.
// Recoverable analyzer failures are absorbed: the candidate keeps the
// neutral default and an explanatory note, and the rest of the batch is
// unaffected. Anything else, such as a canceled context, aborts the batch.
func (r *Refiner) culturalFit(ctx context.Context, cand *candidate.Candidate, jobDescription, companyCulture string) (float64, string, error) {
	if r.analyzer == nil || strings.TrimSpace(companyCulture) == "" {
		return ai.NeutralCulturalFit, "", nil
	}

	score, err := r.analyzer.CulturalFit(ctx, cand, jobDescription, companyCulture)
	if err != nil {
		if !ai.IsRecoverable(err) {
			return 0, "", fmt.Errorf("cultural fit for %s: %w", cand.ID, err)
		}

		r.logger.Warn("cultural fit evaluation failed, using neutral default",
			zap.String("candidate_id", cand.ID),
			zap.Error(err),
		)
		return ai.NeutralCulturalFit, fmt.Sprintf("cultural fit unavailable: %v", err), nil
	}

	return score, "", nil
}

// experienceScore parses the leading numeric token out of an experience
// bucket ("3-5" reads as 3, "10+" as 10) and normalizes it against the
// 20-year ceiling. Unparseable labels score neutral.
func experienceScore(experience string) float64 {
	experience = strings.TrimSpace(experience)
	if experience == "" {
		return neutralScore
	}

	var yearsText string
	switch {
	case strings.Contains(experience, "-"):
		yearsText = strings.SplitN(experience, "-", 2)[0]
	case strings.Contains(experience, "+"):
		yearsText = strings.TrimSuffix(experience, "+")
	default:
		yearsText = experience
	}

	years, err := strconv.ParseFloat(strings.TrimSpace(yearsText), 64)
	if err != nil {
		return neutralScore
	}

	score := years / experienceCeilingYears
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

func seniorityScore(seniority string) float64 {
	if score, ok := refinerSeniority[strings.ToLower(strings.TrimSpace(seniority))]; ok {
		return score
	}
	return neutralScore
}
