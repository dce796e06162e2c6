// utils/validator.go - Input validation
package utils

import (
	"regexp"
	"strings"
)

// Section is one required whitepaper section and the keyword that marks it.
type Section struct {
	Keyword string `json:"keyword"`
	Label   string `json:"label"`
}

// SectionCheck reports whether a section keyword appears in a document.
type SectionCheck struct {
	Section
	Found bool `json:"found"`
}

// RequiredSections is the checklist every new whitepaper must satisfy.
var RequiredSections = []Section{
	{Keyword: "abstract", Label: "Abstract"},
	{Keyword: "problem", Label: "Problem Statement"},
	{Keyword: "solution", Label: "Solution / BGI Solution"},
	{Keyword: "budget", Label: "Budget"},
	{Keyword: "milestone", Label: "Milestones"},
}

// CheckSections looks for each keyword as a case-insensitive substring of content.
func CheckSections(content string, sections []Section) []SectionCheck {
	lowered := strings.ToLower(content)
	checks := make([]SectionCheck, 0, len(sections))
	for _, section := range sections {
		checks = append(checks, SectionCheck{
			Section: section,
			Found:   strings.Contains(lowered, section.Keyword),
		})
	}
	return checks
}

// AllSectionsPresent reports whether every check passed.
func AllSectionsPresent(checks []SectionCheck) bool {
	for _, check := range checks {
		if !check.Found {
			return false
		}
	}
	return true
}

// MissingSections returns the checks that did not pass, in checklist order.
func MissingSections(checks []SectionCheck) []SectionCheck {
	var missing []SectionCheck
	for _, check := range checks {
		if !check.Found {
			missing = append(missing, check)
		}
	}
	return missing
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail reports whether email looks deliverable.
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}
