package matching

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"github.com/naukri-ai/talent-ranker/internal/candidate"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Mode selects the matching policy.
//
// Strict mode pre-filters on exact seniority / experience / employment /
// location equality and hard-excludes candidates missing any required skill.
// Lenient mode never excludes: every constraint only shapes the weighted
// score.
type Mode string

const (
	ModeStrict  Mode = "strict"
	ModeLenient Mode = "lenient"
)

// DefaultTopN is the number of results returned when the caller does not ask
// for a specific cut-off.
const DefaultTopN = 10

// Engine ranks a read-only candidate pool against a job requirement. The
// same inputs always produce the same ordering: scoring is pure and ties
// keep the dataset order.
type Engine struct {
	store        *candidate.Candidates
	mode         Mode
	weights      Weights
	skillWeights SkillWeights
	workers      int
	logger       *zap.Logger
}

type Option func(*Engine)

func WithMode(mode Mode) Option {
	return func(e *Engine) { e.mode = mode }
}

func WithWeights(w Weights) Option {
	return func(e *Engine) { e.weights = w }
}

func WithSkillWeights(w SkillWeights) Option {
	return func(e *Engine) { e.skillWeights = w }
}

func WithWorkers(n int) Option {
	return func(e *Engine) { e.workers = n }
}

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// NewEngine validates configuration once and returns a ready engine. A nil
// store or an unusable weight vector is a construction error, not a per-call
// one.
func NewEngine(store *candidate.Candidates, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("candidate store is required")
	}

	engine := &Engine{
		store:        store,
		mode:         ModeLenient,
		weights:      DefaultWeights(),
		skillWeights: DefaultSkillWeights(),
		workers:      runtime.GOMAXPROCS(0),
		logger:       zap.NewNop(),
	}

	for _, opt := range opts {
		opt(engine)
	}

	if engine.mode != ModeStrict && engine.mode != ModeLenient {
		return nil, fmt.Errorf("unknown matching mode: %s", engine.mode)
	}
	if err := engine.weights.Validate(); err != nil {
		return nil, err
	}
	if engine.workers < 1 {
		engine.workers = 1
	}

	return engine, nil
}

// Match scores the pool against the requirement and returns the top-N
// results sorted by score descending. topN <= 0 returns an empty list; a
// topN past the pool size returns the whole sorted pool.
func (e *Engine) Match(ctx context.Context, req *Requirement, topN int) (*Results, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if topN <= 0 {
		return &Results{Items: []*Result{}}, nil
	}

	pool := e.store.Items
	if e.mode == ModeStrict {
		pool = e.prefilter(req, pool)
	}

	scored, err := e.scorePool(ctx, req, pool)
	if err != nil {
		return nil, err
	}

	items := make([]*Result, 0, len(scored))
	for _, entry := range scored {
		if entry.result == nil {
			continue
		}
		if e.mode == ModeStrict && len(entry.missingRequired) > 0 {
			continue
		}
		items = append(items, entry.result)
	}

	// Stable sort: exact ties keep dataset order, so identical inputs
	// always rank identically.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})

	if topN < len(items) {
		items = items[:topN]
	}

	e.logger.Debug("match completed",
		zap.Int("pool", e.store.Len()),
		zap.Int("admitted", len(pool)),
		zap.Int("returned", len(items)),
		zap.String("mode", string(e.mode)),
	)

	return &Results{Items: items}, nil
}

type scoredEntry struct {
	result          *Result
	missingRequired []string
}

// scorePool evaluates candidates concurrently. Each candidate's score
// depends only on immutable inputs, so parallel and sequential evaluation
// produce identical results; the indexed slice keeps dataset order.
func (e *Engine) scorePool(ctx context.Context, req *Requirement, pool []*candidate.Candidate) ([]scoredEntry, error) {
	scored := make([]scoredEntry, len(pool))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(e.workers)

	for idx, cand := range pool {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			scored[idx] = e.score(req, cand)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	return scored, nil
}

func (e *Engine) score(req *Requirement, cand *candidate.Candidate) scoredEntry {
	reqScore, matchedReq, missingReq := MatchSkills(req.RequiredSkills, cand.Skills, e.skillWeights)
	prefScore, matchedPref, missingPref := MatchSkills(req.PreferredSkills, cand.Skills, e.skillWeights)

	sub := SubScores{
		Skills:     blendSkillScores(req, reqScore, prefScore),
		Experience: 1.0,
		Seniority:  1.0,
		Employment: 1.0,
		Location:   1.0,
	}

	if req.ExperienceYears != "" {
		sub.Experience = MatchExperience(req.ExperienceYears, cand.ExperienceYears)
	}
	if req.Seniority != "" {
		sub.Seniority = MatchSeniority(req.Seniority, cand.Seniority)
	}
	if req.EmploymentType != "" {
		sub.Employment = MatchEmployment(req.EmploymentType, cand.EmploymentType)
	}
	if len(req.Locations) > 0 {
		sub.Location = MatchLocation(req.Locations, cand.Location)
	}

	matched, missing := mergeSkillSets(matchedReq, matchedPref, missingReq, missingPref)

	return scoredEntry{
		result: &Result{
			Candidate:       cand,
			Score:           e.weights.Combine(sub),
			MatchedSkills:   matched,
			MissingSkills:   missing,
			SkillMatch:      sub.Skills,
			ExperienceMatch: sub.Experience,
			SeniorityMatch:  sub.Seniority,
			EmploymentMatch: sub.Employment,
			LocationMatch:   sub.Location,
		},
		missingRequired: missingReq,
	}
}

// blendSkillScores folds preferred skills into the skill dimension at a
// fixed 5:3 required:preferred ratio.
func blendSkillScores(req *Requirement, required, preferred float64) float64 {
	hasRequired := len(req.RequiredSkills) > 0
	hasPreferred := len(req.PreferredSkills) > 0

	switch {
	case hasRequired && hasPreferred:
		return (5*required + 3*preferred) / 8
	case hasPreferred:
		return preferred
	default:
		return required
	}
}

// mergeSkillSets combines the required and preferred match results into one
// matched set and one missing set. A token present in both lists counts
// once, and a token matched anywhere never appears as missing.
func mergeSkillSets(matchedReq, matchedPref, missingReq, missingPref []string) ([]string, []string) {
	matched := dedupe(append(append([]string{}, matchedReq...), matchedPref...))

	matchedSet := make(map[string]struct{}, len(matched))
	for _, token := range matched {
		matchedSet[token] = struct{}{}
	}

	missing := make([]string, 0, len(missingReq)+len(missingPref))
	seen := make(map[string]struct{})
	for _, token := range append(append([]string{}, missingReq...), missingPref...) {
		if _, ok := matchedSet[token]; ok {
			continue
		}
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		missing = append(missing, token)
	}

	return matched, missing
}

func dedupe(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, ok := seen[token]; ok {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}

// prefilter applies the strict-mode hard filters. Each step logs its drop
// accounting so operators can see where candidates were excluded.
func (e *Engine) prefilter(req *Requirement, pool []*candidate.Candidate) []*candidate.Candidate {
	steps := []struct {
		name  string
		keep  func(*candidate.Candidate) bool
		armed bool
	}{
		{
			name:  "seniority",
			armed: req.Seniority != "",
			keep: func(c *candidate.Candidate) bool {
				return strings.EqualFold(c.Seniority, req.Seniority)
			},
		},
		{
			name:  "experience",
			armed: req.ExperienceYears != "",
			keep: func(c *candidate.Candidate) bool {
				return strings.EqualFold(c.ExperienceYears, req.ExperienceYears)
			},
		},
		{
			name:  "employment_type",
			armed: req.EmploymentType != "",
			keep: func(c *candidate.Candidate) bool {
				return strings.EqualFold(c.EmploymentType, req.EmploymentType)
			},
		},
		{
			name:  "location",
			armed: len(req.Locations) > 0,
			keep: func(c *candidate.Candidate) bool {
				return MatchLocation(req.Locations, c.Location) >= 1.0
			},
		},
	}

	for _, step := range steps {
		if !step.armed {
			continue
		}

		initial := len(pool)
		kept := make([]*candidate.Candidate, 0, initial)
		for _, cand := range pool {
			if step.keep(cand) {
				kept = append(kept, cand)
			}
		}
		pool = kept

		e.logger.Debug("strict filter step",
			zap.String("name", step.name),
			zap.Int("initial", initial),
			zap.Int("dropped", initial-len(pool)),
			zap.Int("left", len(pool)),
		)
	}

	return pool
}
