package candidate

import (
	"encoding/json"
	"os"
	"sort"
	"strings"
)

// Candidate is a single profile from the dataset. Records are immutable after
// load; matching never mutates them.
type Candidate struct {
	// ID is a synthetic identifier assigned at load time. Names are not
	// unique in the dataset, so the ID is the only safe join key.
	ID              string   `json:"id" mapstructure:"-"`
	Name            string   `json:"name" mapstructure:"name"`
	Seniority       string   `json:"seniority" mapstructure:"seniority"`
	Skills          []string `json:"skills" mapstructure:"skills"`
	Location        []string `json:"location" mapstructure:"location"`
	EmploymentType  string   `json:"employment_type" mapstructure:"employment_type"`
	ExperienceYears string   `json:"experience_years" mapstructure:"experience_years"`
}

type Candidates struct {
	Items []*Candidate
}

func (c *Candidates) Len() int {
	return len(c.Items)
}

func (c *Candidates) FindByID(id string) *Candidate {
	for _, item := range c.Items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

// FindByName returns the first candidate with the given name. Names are not
// unique; prefer FindByID when the ID is known.
func (c *Candidates) FindByName(name string) *Candidate {
	for _, item := range c.Items {
		if strings.EqualFold(item.Name, name) {
			return item
		}
	}
	return nil
}

func (c *Candidates) Names() []string {
	names := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		names = append(names, item.Name)
	}
	return names
}

func (c *Candidates) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "candidates_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c.Items); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// SkillCount pairs a normalized skill token with the number of candidates
// listing it.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// TopSkills returns the most common skills across the pool, most frequent
// first. Ties are ordered alphabetically so reports stay reproducible.
func (c *Candidates) TopSkills(n int) []SkillCount {
	counts := make(map[string]int)
	for _, item := range c.Items {
		for _, skill := range item.Skills {
			skill = strings.ToLower(strings.TrimSpace(skill))
			if skill == "" {
				continue
			}
			counts[skill]++
		}
	}

	top := make([]SkillCount, 0, len(counts))
	for skill, count := range counts {
		top = append(top, SkillCount{Skill: skill, Count: count})
	}

	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Skill < top[j].Skill
	})

	if n > 0 && n < len(top) {
		top = top[:n]
	}
	return top
}

// SkillsBySeniority returns the top skills among candidates with the given
// seniority level.
func (c *Candidates) SkillsBySeniority(seniority string, n int) []SkillCount {
	subset := &Candidates{}
	for _, item := range c.Items {
		if strings.EqualFold(item.Seniority, seniority) {
			subset.Items = append(subset.Items, item)
		}
	}
	return subset.TopSkills(n)
}

// Distribution is a generic value frequency report over one candidate field.
type Distribution struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

func (c *Candidates) SeniorityDistribution() []Distribution {
	return c.distribution(func(item *Candidate) string { return item.Seniority })
}

func (c *Candidates) ExperienceDistribution() []Distribution {
	return c.distribution(func(item *Candidate) string { return item.ExperienceYears })
}

func (c *Candidates) EmploymentTypeDistribution() []Distribution {
	return c.distribution(func(item *Candidate) string { return item.EmploymentType })
}

func (c *Candidates) distribution(field func(*Candidate) string) []Distribution {
	counts := make(map[string]int)
	for _, item := range c.Items {
		value := strings.ToLower(strings.TrimSpace(field(item)))
		if value == "" {
			value = "unknown"
		}
		counts[value]++
	}

	dist := make([]Distribution, 0, len(counts))
	for value, count := range counts {
		dist = append(dist, Distribution{Value: value, Count: count})
	}

	sort.Slice(dist, func(i, j int) bool {
		if dist[i].Count != dist[j].Count {
			return dist[i].Count > dist[j].Count
		}
		return dist[i].Value < dist[j].Value
	})
	return dist
}
