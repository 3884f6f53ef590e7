// Package report renders a human-readable candidate evaluation report from a
// match result and its qualitative annotations.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/naukri-ai/talent-ranker/internal/ai"
	"github.com/naukri-ai/talent-ranker/internal/matching"
)

// Recommendation bands over the 0-100 display scale.
const (
	stronglyRecommendedFloor = 80.0
	recommendedFloor         = 60.0
	cautionFloor             = 40.0
)

// Build renders a markdown evaluation report. Scores are stored on the [0,1]
// scale and rendered x100 for display only. The gap analysis and questions
// are optional annotations; absent sections are omitted.
func Build(result *matching.Result, jobTitle string, gapAnalysis map[string]string, questions []ai.Question) string {
	if result == nil || result.Candidate == nil {
		return ""
	}

	display := result.Score * 100

	var b strings.Builder
	b.WriteString("# Candidate Evaluation Report\n\n")
	fmt.Fprintf(&b, "## Position: %s\n\n", jobTitle)
	fmt.Fprintf(&b, "## Candidate: %s\n\n", result.Candidate.Name)
	fmt.Fprintf(&b, "## Match Score: %.1f/100\n\n", display)

	b.WriteString("## Skills Assessment\n")
	fmt.Fprintf(&b, "**Matched Skills:** %s\n\n", joinOrNone(result.MatchedSkills))
	fmt.Fprintf(&b, "**Missing Skills:** %s\n", joinOrNone(result.MissingSkills))

	if len(gapAnalysis) > 0 {
		b.WriteString("\n## Skill Gap Analysis\n")
		for _, skill := range sortedKeys(gapAnalysis) {
			fmt.Fprintf(&b, "- **%s:** %s\n", skill, gapAnalysis[skill])
		}
	}

	if len(questions) > 0 {
		b.WriteString("\n## Recommended Interview Questions\n")
		for i, question := range questions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, question.Question)
		}
	}

	b.WriteString("\n## Overall Recommendation\n")
	b.WriteString(recommendation(display))
	b.WriteString("\n")

	return b.String()
}

func recommendation(score float64) string {
	switch {
	case score >= stronglyRecommendedFloor:
		return "**Strongly Recommended** - This candidate has an excellent match with the required skills and experience."
	case score >= recommendedFloor:
		return "**Recommended** - This candidate meets most requirements and shows potential for growth."
	case score >= cautionFloor:
		return "**Consider with Caution** - This candidate has some relevant skills but significant gaps exist."
	default:
		return "**Not Recommended** - This candidate does not meet the minimum requirements for this position."
	}
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "None"
	}
	return strings.Join(values, ", ")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
