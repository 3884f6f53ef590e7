package candidate

import (
	"path/filepath"
	"testing"
)

func TestGeneratorDeterministicWithSeed(t *testing.T) {
	first := NewGenerator(42).Generate(20)
	second := NewGenerator(42).Generate(20)

	if first.Len() != 20 || second.Len() != 20 {
		t.Fatalf("expected 20 candidates, got %d and %d", first.Len(), second.Len())
	}

	for i := range first.Items {
		a, b := first.Items[i], second.Items[i]
		if a.Name != b.Name || a.Seniority != b.Seniority || a.ExperienceYears != b.ExperienceYears {
			t.Fatalf("same seed produced different candidates at %d: %+v vs %+v", i, a, b)
		}
		if len(a.Skills) != len(b.Skills) {
			t.Fatalf("same seed produced different skill counts at %d", i)
		}
		for j := range a.Skills {
			if a.Skills[j] != b.Skills[j] {
				t.Fatalf("same seed produced different skills at %d", i)
			}
		}
	}
}

func TestGeneratorFieldsAreValid(t *testing.T) {
	pool := NewGenerator(1).Generate(50)

	for _, item := range pool.Items {
		if item.ID == "" || item.Name == "" {
			t.Fatalf("expected ID and name to be set: %+v", item)
		}
		if len(item.Skills) < 3 || len(item.Skills) > 6 {
			t.Fatalf("expected 3-6 skills, got %d", len(item.Skills))
		}
		if len(item.Location) < 1 || len(item.Location) > 2 {
			t.Fatalf("expected 1-2 locations, got %d", len(item.Location))
		}
	}
}

func TestGeneratorSaveJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.json")

	if err := NewGenerator(7).SaveJSON(path, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pool, recordErrs, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recordErrs) != 0 {
		t.Fatalf("unexpected record errors: %v", recordErrs)
	}
	if pool.Len() != 10 {
		t.Fatalf("expected 10 candidates, got %d", pool.Len())
	}
}
