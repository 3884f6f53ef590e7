package matching

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Requirement is the job specification a candidate pool is matched against.
// Optional fields left empty do not constrain the match: the corresponding
// dimension scores a full 1.0 for every candidate.
type Requirement struct {
	RequiredSkills  []string `json:"required_skills" mapstructure:"required-skills"`
	PreferredSkills []string `json:"preferred_skills" mapstructure:"preferred-skills"`
	Seniority       string   `json:"seniority" mapstructure:"seniority" validate:"omitempty,oneof=junior midlevel senior"`
	ExperienceYears string   `json:"experience_years" mapstructure:"experience-years"`
	EmploymentType  string   `json:"employment_type" mapstructure:"employment-type"`
	Locations       []string `json:"locations" mapstructure:"locations"`
}

var validate = validator.New()

// Validate checks the requirement once at the boundary. Matchers themselves
// never re-validate.
func (r *Requirement) Validate() error {
	if r == nil {
		return fmt.Errorf("requirement is required")
	}
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid requirement: %w", err)
	}
	return nil
}
