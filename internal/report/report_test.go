package report

import (
	"strings"
	"testing"

	"github.com/naukri-ai/talent-ranker/internal/ai"
	"github.com/naukri-ai/talent-ranker/internal/candidate"
	"github.com/naukri-ai/talent-ranker/internal/matching"
)

func testResult(score float64) *matching.Result {
	return &matching.Result{
		Candidate:     &candidate.Candidate{ID: "c1", Name: "Asha"},
		Score:         score,
		MatchedSkills: []string{"python", "rag"},
		MissingSkills: []string{"kubernetes"},
	}
}

func TestBuild(t *testing.T) {
	gap := map[string]string{"kubernetes": "Start with minikube"}
	questions := []ai.Question{{Question: "Explain RAG retrieval"}}

	out := Build(testResult(0.85), "Backend Engineer", gap, questions)

	for _, expected := range []string{
		"## Position: Backend Engineer",
		"## Candidate: Asha",
		"## Match Score: 85.0/100",
		"**Matched Skills:** python, rag",
		"**Missing Skills:** kubernetes",
		"- **kubernetes:** Start with minikube",
		"1. Explain RAG retrieval",
		"**Strongly Recommended**",
	} {
		if !strings.Contains(out, expected) {
			t.Fatalf("expected report to contain %q, got:\n%s", expected, out)
		}
	}
}

func TestBuildOmitsEmptySections(t *testing.T) {
	out := Build(testResult(0.5), "Backend Engineer", nil, nil)

	if strings.Contains(out, "Skill Gap Analysis") {
		t.Fatalf("expected no gap section without analysis")
	}
	if strings.Contains(out, "Interview Questions") {
		t.Fatalf("expected no questions section without questions")
	}
}

func TestBuildEmptySkillListsRenderNone(t *testing.T) {
	result := &matching.Result{Candidate: &candidate.Candidate{Name: "Ravi"}}

	out := Build(result, "Role", nil, nil)

	if !strings.Contains(out, "**Matched Skills:** None") {
		t.Fatalf("expected None for empty matched skills, got:\n%s", out)
	}
	if !strings.Contains(out, "**Missing Skills:** None") {
		t.Fatalf("expected None for empty missing skills, got:\n%s", out)
	}
}

func TestBuildNilResult(t *testing.T) {
	if out := Build(nil, "Role", nil, nil); out != "" {
		t.Fatalf("expected an empty report for a nil result, got %q", out)
	}
}

func TestRecommendationBands(t *testing.T) {
	cases := []struct {
		name     string
		score    float64
		expected string
	}{
		{name: "strong", score: 80, expected: "Strongly Recommended"},
		{name: "recommended", score: 60, expected: "**Recommended**"},
		{name: "caution", score: 40, expected: "Consider with Caution"},
		{name: "rejected", score: 39.9, expected: "Not Recommended"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := recommendation(tc.score); !strings.Contains(got, tc.expected) {
				t.Fatalf("recommendation(%v) = %q, expected to contain %q", tc.score, got, tc.expected)
			}
		})
	}
}
