package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSectionsIsCaseInsensitive(t *testing.T) {
	checks := CheckSections("ABSTRACT: water for all", RequiredSections)
	require.Len(t, checks, len(RequiredSections))

	assert.Equal(t, "Abstract", checks[0].Label)
	assert.True(t, checks[0].Found)
	for _, check := range checks[1:] {
		assert.False(t, check.Found, check.Keyword)
	}
}

func TestCheckSectionsNoKeywords(t *testing.T) {
	checks := CheckSections("nothing relevant here", RequiredSections)
	assert.False(t, AllSectionsPresent(checks))
	assert.Len(t, MissingSections(checks), 5)
}

func TestCheckSectionsMatchesSubstrings(t *testing.T) {
	doc := "Abstract\nThe problem.\nOur solutions.\nBudgeting\nMilestones"
	checks := CheckSections(doc, RequiredSections)
	assert.True(t, AllSectionsPresent(checks))
	assert.Empty(t, MissingSections(checks))
}

func TestMissingSectionsKeepsChecklistOrder(t *testing.T) {
	checks := CheckSections("abstract problem solution", RequiredSections)
	missing := MissingSections(checks)
	require.Len(t, missing, 2)
	assert.Equal(t, "budget", missing[0].Keyword)
	assert.Equal(t, "milestone", missing[1].Keyword)
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "title", SanitizeInput("  ti\x00tle \n"))
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("ada@example.org"))
	assert.True(t, ValidateEmail(" lin.wu+grants@swarm.example.co "))
	assert.False(t, ValidateEmail(""))
	assert.False(t, ValidateEmail("ada@localhost"))
	assert.False(t, ValidateEmail("ada example.org"))
}
