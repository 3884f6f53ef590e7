package candidate

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "candidates.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing dataset: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeDataset(t, `[
		{
			"name": "Asha",
			"seniority": "senior",
			"skills": ["python", "rag"],
			"location": ["Bangalore"],
			"employment_type": "full-time",
			"experience_years": "5-10"
		},
		{
			"name": "Ravi",
			"seniority": "midlevel",
			"skills": ["python"],
			"location": ["Pune"],
			"employment_type": "contract",
			"experience_years": "3-5"
		}
	]`)

	pool, recordErrs, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recordErrs) != 0 {
		t.Fatalf("unexpected record errors: %v", recordErrs)
	}
	if pool.Len() != 2 {
		t.Fatalf("expected 2 candidates, got %d", pool.Len())
	}

	first := pool.Items[0]
	if first.Name != "Asha" || first.Seniority != "senior" || first.ExperienceYears != "5-10" {
		t.Fatalf("unexpected first candidate: %+v", first)
	}
	if first.ID == "" {
		t.Fatalf("expected a synthetic ID to be assigned")
	}
	if first.ID == pool.Items[1].ID {
		t.Fatalf("expected unique IDs per record")
	}
}

func TestLoadDefaultsMalformedRecords(t *testing.T) {
	path := writeDataset(t, `[
		{"name": "  ", "skills": null},
		{"name": "Ravi", "skills": {"not": "a list"}}
	]`)

	pool, recordErrs, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pool.Len() != 2 {
		t.Fatalf("malformed records must still be loaded, got %d", pool.Len())
	}

	first := pool.Items[0]
	if first.Name != "Unknown" {
		t.Fatalf("expected a blank name to default, got %q", first.Name)
	}
	if first.Skills == nil || first.Location == nil {
		t.Fatalf("expected nil slices to default to empty")
	}

	if len(recordErrs) != 1 {
		t.Fatalf("expected one record error, got %d", len(recordErrs))
	}
	if recordErrs[0].Index != 1 {
		t.Fatalf("expected the error to point at record 1, got %d", recordErrs[0].Index)
	}
}

func TestLoadWeaklyTypedFields(t *testing.T) {
	// Numbers where strings are expected decode instead of erroring.
	path := writeDataset(t, `[{"name": "Asha", "experience_years": 5}]`)

	pool, recordErrs, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recordErrs) != 0 {
		t.Fatalf("unexpected record errors: %v", recordErrs)
	}
	if pool.Items[0].ExperienceYears != "5" {
		t.Fatalf("expected weak typing to coerce the number, got %q", pool.Items[0].ExperienceYears)
	}
}

func TestLoadFatalErrors(t *testing.T) {
	if _, _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}

	path := writeDataset(t, `{"not": "a list"}`)
	if _, _, err := Load(path); err == nil {
		t.Fatalf("expected an error for a non-list dataset")
	}
}
