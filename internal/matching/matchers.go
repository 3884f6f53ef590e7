package matching

import (
	"regexp"
	"strings"
)

// Field matchers are pure functions: one candidate dimension against one
// requirement dimension, returning a score in [0,1] and, for skills, the
// matched/missing token sets. Unknown values on either side fall back to a
// neutral 0.5 instead of excluding the candidate.

const neutralScore = 0.5

// experienceRank orders the coarse experience buckets. Buckets are labels,
// not numbers, so ordering must go through this table.
var experienceRank = map[string]int{
	"1-3":  1,
	"3-5":  2,
	"5-10": 3,
	"10+":  4,
	"15+":  5,
}

var seniorityRank = map[string]int{
	"junior":   1,
	"midlevel": 2,
	"senior":   3,
}

var skillCleaner = regexp.MustCompile(`[^\w\s-]`)

// NormalizeSkill lowercases a skill token, strips punctuation and collapses
// whitespace so "Node.JS " and "node.js" compare equal.
func NormalizeSkill(skill string) string {
	cleaned := skillCleaner.ReplaceAllString(strings.ToLower(skill), "")
	return strings.Join(strings.Fields(cleaned), " ")
}

func normalizeAll(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, skill := range skills {
		if normalized := NormalizeSkill(skill); normalized != "" {
			out = append(out, normalized)
		}
	}
	return out
}

// skillTokenMatches reports whether a required token matches a candidate
// token: equality or substring containment in either direction.
func skillTokenMatches(required, candidate string) bool {
	return strings.Contains(candidate, required) || strings.Contains(required, candidate)
}

// SkillWeights maps normalized skill tokens to their weight in the weighted
// matching policy. Skills absent from the map weigh defaultSkillWeight.
type SkillWeights map[string]float64

const defaultSkillWeight = 1.0

// DefaultSkillWeights reflects current hiring priorities: applied-AI skills
// weigh above the 1.0 baseline.
func DefaultSkillWeights() SkillWeights {
	return SkillWeights{
		"python":           1.0,
		"javascript":       0.9,
		"react":            0.9,
		"nodejs":           0.9,
		"machine learning": 1.2,
		"data science":     1.1,
		"cloud computing":  1.0,
		"aws":              1.0,
		"azure":            1.0,
		"kubernetes":       1.1,
		"docker":           1.0,
		"devops":           1.0,
		"rag":              1.2,
		"langchain":        1.2,
		"llama index":      1.2,
		"langflow":         1.1,
		"agentic ai":       1.3,
		"generative-ai":    1.3,
	}
}

func (w SkillWeights) weight(skill string) float64 {
	if w == nil {
		return defaultSkillWeight
	}
	if weight, ok := w[skill]; ok {
		return weight
	}
	return defaultSkillWeight
}

// MatchSkills scores a candidate's skills against a list of wanted tokens.
// Every wanted token is either matched (substring/equality after
// normalization) or reported as a gap; the two sets are disjoint. With a nil
// weight map every skill counts equally, which is the unweighted policy. An
// empty wanted list is a perfect score with no gaps.
func MatchSkills(wanted, candidateSkills []string, weights SkillWeights) (float64, []string, []string) {
	wanted = normalizeAll(wanted)
	if len(wanted) == 0 {
		return 1.0, []string{}, []string{}
	}
	candidateSkills = normalizeAll(candidateSkills)

	matched := make([]string, 0, len(wanted))
	gaps := make([]string, 0)

	var matchedWeight, totalWeight float64
	for _, token := range wanted {
		weight := weights.weight(token)
		totalWeight += weight

		found := false
		for _, skill := range candidateSkills {
			if skillTokenMatches(token, skill) {
				found = true
				break
			}
		}

		if found {
			matched = append(matched, token)
			matchedWeight += weight
		} else {
			gaps = append(gaps, token)
		}
	}

	if totalWeight <= 0 {
		return 0.0, matched, gaps
	}
	return matchedWeight / totalWeight, matched, gaps
}

// MatchExperience compares experience buckets by ordinal rank. Meeting or
// exceeding the requirement is a full match; falling short degrades down to a
// 10% floor instead of zero, so under-qualified but plausible candidates stay
// rankable. Unknown buckets on either side score the neutral 0.5.
func MatchExperience(required, candidate string) float64 {
	return ordinalRatio(experienceRank, required, candidate)
}

// MatchSeniority applies the same ordinal-ratio rule over the three-level
// seniority ladder.
func MatchSeniority(required, candidate string) float64 {
	return ordinalRatio(seniorityRank, required, candidate)
}

func ordinalRatio(ranks map[string]int, required, candidate string) float64 {
	reqRank := ranks[strings.ToLower(strings.TrimSpace(required))]
	candRank := ranks[strings.ToLower(strings.TrimSpace(candidate))]

	if reqRank == 0 || candRank == 0 {
		return neutralScore
	}
	if candRank >= reqRank {
		return 1.0
	}

	score := 0.1 + (float64(candRank)/float64(reqRank))*0.9
	if score < 0.1 {
		score = 0.1
	}
	return score
}

// MatchEmployment scores employment-type compatibility. Remote on either
// side counts as flexible rather than a mismatch.
func MatchEmployment(required, candidate string) float64 {
	required = strings.ToLower(strings.TrimSpace(required))
	candidate = strings.ToLower(strings.TrimSpace(candidate))

	if required == candidate {
		return 1.0
	}
	if strings.Contains(required, "remote") || strings.Contains(candidate, "remote") {
		return 0.8
	}
	return 0.0
}

// MatchLocation scores region overlap. No requirement means no constraint;
// remote anywhere in either list keeps the candidate viable at 0.8.
func MatchLocation(required, candidate []string) float64 {
	if len(required) == 0 {
		return 1.0
	}

	reqLower := lowerAll(required)
	candLower := lowerAll(candidate)

	for _, loc := range reqLower {
		for _, have := range candLower {
			if loc == have {
				return 1.0
			}
		}
	}

	if containsToken(reqLower, "remote") || containsToken(candLower, "remote") {
		return 0.8
	}
	return 0.0
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		out = append(out, strings.ToLower(strings.TrimSpace(value)))
	}
	return out
}

func containsToken(values []string, token string) bool {
	for _, value := range values {
		if value == token {
			return true
		}
	}
	return false
}
