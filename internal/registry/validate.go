// internal/registry/validate.go
package registry

import (
	"fmt"
	"strings"

	"github.com/lancechain/registry_be/internal/models"
)

// Pure shape checks. Every mutation runs these before touching state so a
// violation aborts the call with nothing written.

func requireText(field, value string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "must not be empty"}
	}
	if len(value) > maxLen {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must be at most %d bytes", maxLen)}
	}
	return nil
}

func requirePositive(field string, value uint64) error {
	if value == 0 {
		return &ValidationError{Field: field, Reason: "must be greater than zero"}
	}
	return nil
}

func validateSkills(field string, skills []string) error {
	if len(skills) < models.SkillsMinCount || len(skills) > models.SkillsMaxCount {
		return &ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("must have between %d and %d entries", models.SkillsMinCount, models.SkillsMaxCount),
		}
	}
	for _, s := range skills {
		if strings.TrimSpace(s) == "" {
			return &ValidationError{Field: field, Reason: "entries must not be empty"}
		}
	}
	return nil
}

func validateExperiences(experiences []models.Experience) error {
	if len(experiences) > models.ExperiencesMaxCount {
		return &ValidationError{
			Field:  "experiences",
			Reason: fmt.Sprintf("must have at most %d entries", models.ExperiencesMaxCount),
		}
	}
	return nil
}

func validatePortfolio(items []models.PortfolioItem) error {
	if len(items) > models.PortfolioMaxCount {
		return &ValidationError{
			Field:  "portfolio",
			Reason: fmt.Sprintf("must have at most %d entries", models.PortfolioMaxCount),
		}
	}
	return nil
}

func validateProfileFields(name, photo, education string, skills []string, experiences []models.Experience, portfolio []models.PortfolioItem) error {
	if err := requireText("name", name, models.NameMaxLen); err != nil {
		return err
	}
	if err := requireText("photo", photo, models.PhotoMaxLen); err != nil {
		return err
	}
	if err := requireText("education", education, models.EducationMaxLen); err != nil {
		return err
	}
	if err := validateSkills("skills", skills); err != nil {
		return err
	}
	if err := validateExperiences(experiences); err != nil {
		return err
	}
	return validatePortfolio(portfolio)
}
