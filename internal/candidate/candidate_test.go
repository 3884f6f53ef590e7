package candidate

import "testing"

func statsPool() *Candidates {
	return &Candidates{Items: []*Candidate{
		{ID: "1", Name: "Asha", Seniority: "senior", Skills: []string{"Python", "RAG"}, ExperienceYears: "5-10", EmploymentType: "full-time"},
		{ID: "2", Name: "Ravi", Seniority: "midlevel", Skills: []string{"python", "docker"}, ExperienceYears: "3-5", EmploymentType: "full-time"},
		{ID: "3", Name: "Meera", Seniority: "senior", Skills: []string{"Python"}, ExperienceYears: "5-10", EmploymentType: "contract"},
	}}
}

func TestFindByID(t *testing.T) {
	pool := statsPool()

	if got := pool.FindByID("2"); got == nil || got.Name != "Ravi" {
		t.Fatalf("unexpected candidate: %+v", got)
	}
	if got := pool.FindByID("nope"); got != nil {
		t.Fatalf("expected nil for an unknown ID, got %+v", got)
	}
}

func TestFindByName(t *testing.T) {
	pool := statsPool()

	if got := pool.FindByName("asha"); got == nil || got.ID != "1" {
		t.Fatalf("expected a case-insensitive name match, got %+v", got)
	}
}

func TestTopSkills(t *testing.T) {
	top := statsPool().TopSkills(2)

	if len(top) != 2 {
		t.Fatalf("expected 2 skills, got %d", len(top))
	}
	if top[0].Skill != "python" || top[0].Count != 3 {
		t.Fatalf("expected python to lead with 3, got %+v", top[0])
	}
	// docker and rag tie at 1; alphabetical order breaks the tie.
	if top[1].Skill != "docker" {
		t.Fatalf("expected alphabetical tie-break, got %+v", top[1])
	}
}

func TestSkillsBySeniority(t *testing.T) {
	top := statsPool().SkillsBySeniority("senior", 0)

	if len(top) != 2 {
		t.Fatalf("expected 2 distinct skills among seniors, got %d", len(top))
	}
	if top[0].Skill != "python" || top[0].Count != 2 {
		t.Fatalf("unexpected leading skill: %+v", top[0])
	}
}

func TestDistributions(t *testing.T) {
	pool := statsPool()

	seniority := pool.SeniorityDistribution()
	if seniority[0].Value != "senior" || seniority[0].Count != 2 {
		t.Fatalf("unexpected seniority distribution: %+v", seniority)
	}

	employment := pool.EmploymentTypeDistribution()
	if employment[0].Value != "full-time" || employment[0].Count != 2 {
		t.Fatalf("unexpected employment distribution: %+v", employment)
	}
}

func TestDistributionDefaultsBlankValues(t *testing.T) {
	pool := &Candidates{Items: []*Candidate{{Name: "Asha"}}}

	dist := pool.SeniorityDistribution()
	if len(dist) != 1 || dist[0].Value != "unknown" {
		t.Fatalf("expected blank values to report as unknown, got %+v", dist)
	}
}
