package candidate

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/google/uuid"
)

// Generator produces synthetic candidate profiles for local testing and
// demos. The output matches the dataset schema consumed by Load.
type Generator struct {
	rng *rand.Rand

	names           []string
	locations       []string
	skills          []string
	seniorities     []string
	employmentTypes []string
	experienceYears []string
}

// NewGenerator creates a fixture generator. The seed makes output
// reproducible; pass a varying value for fresh data.
func NewGenerator(seed int64) *Generator {
	firstNames := []string{"John", "Sarah", "Michael", "Emily", "William", "Olivia", "James", "Ava", "Robert", "Sophia"}
	lastNames := []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}

	names := make([]string, 0, len(firstNames)*len(lastNames))
	for _, first := range firstNames {
		for _, last := range lastNames {
			names = append(names, first+" "+last)
		}
	}

	return &Generator{
		rng:   rand.New(rand.NewSource(seed)),
		names: names,
		locations: []string{
			"Europe", "Asia", "North America", "South America", "Africa", "Australia",
		},
		skills: []string{
			"langchain", "rag", "agentic ai", "generative-ai", "llama index",
			"langflow", "python", "javascript", "react", "node.js",
			"machine learning", "data science", "cloud computing",
			"devops", "kubernetes", "docker", "aws", "azure",
		},
		seniorities:     []string{"junior", "midlevel", "senior"},
		employmentTypes: []string{"full-time", "part-time", "contract", "remote"},
		experienceYears: []string{"1-3", "3-5", "5-10", "10+", "15+"},
	}
}

func (g *Generator) candidate() *Candidate {
	return &Candidate{
		ID:              uuid.NewString(),
		Name:            g.names[g.rng.Intn(len(g.names))],
		Seniority:       g.seniorities[g.rng.Intn(len(g.seniorities))],
		Skills:          g.sample(g.skills, 3+g.rng.Intn(4)),
		Location:        g.sample(g.locations, 1+g.rng.Intn(2)),
		EmploymentType:  g.employmentTypes[g.rng.Intn(len(g.employmentTypes))],
		ExperienceYears: g.experienceYears[g.rng.Intn(len(g.experienceYears))],
	}
}

// Generate returns n synthetic candidates.
func (g *Generator) Generate(n int) *Candidates {
	candidates := &Candidates{Items: make([]*Candidate, 0, n)}
	for i := 0; i < n; i++ {
		candidates.Items = append(candidates.Items, g.candidate())
	}
	return candidates
}

// SaveJSON generates n candidates and writes them to path as a JSON array of
// records, the format Load expects.
func (g *Generator) SaveJSON(path string, n int) error {
	candidates := g.Generate(n)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dataset file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(candidates.Items); err != nil {
		return fmt.Errorf("writing dataset file: %w", err)
	}
	return nil
}

func (g *Generator) sample(values []string, n int) []string {
	if n > len(values) {
		n = len(values)
	}
	perm := g.rng.Perm(len(values))
	picked := make([]string, 0, n)
	for _, idx := range perm[:n] {
		picked = append(picked, values[idx])
	}
	return picked
}
