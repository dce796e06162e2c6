package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"whitepaper-portal-api/config"
	"whitepaper-portal-api/models"
	"whitepaper-portal-api/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProposalMarkdown(t *testing.T) {
	sub := &models.Submission{
		ID:                "abc",
		CreatedAt:         time.Date(2026, 3, 2, 14, 5, 0, 0, time.UTC),
		UserName:          "Ada",
		UserEmail:         "ada@example.org",
		Title:             "AquaGuard",
		WhitepaperContent: "## Abstract\nClean water.\n## Budget\n20k",
		Status:            models.StatusUnderReview,
	}

	doc := proposalMarkdown(sub)
	assert.True(t, strings.HasPrefix(doc, "# AquaGuard\n"))
	assert.Contains(t, doc, "- **Status:** Under Review\n")
	assert.Contains(t, doc, "- **Submitted:** Monday, March 2, 2026 at 02:05 PM\n")
	assert.Contains(t, doc, "- [x] Abstract\n")
	assert.Contains(t, doc, "- [ ] Problem Statement\n")
	assert.Contains(t, doc, "- [x] Budget\n")
	assert.True(t, strings.HasSuffix(doc, "## Budget\n20k\n"))
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	err := writeTable(&buf, []models.Submission{
		{ID: "p2", Status: models.StatusFunded, UserName: "Ada", Title: "AquaGuard", CreatedAt: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
		{ID: "p1", Status: models.StatusSubmitted, UserName: "Lin", Title: "SolarMesh", CreatedAt: time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"ID", "STATUS", "CREATED", "AUTHOR", "TITLE"}, strings.Fields(lines[0]))
	assert.Contains(t, lines[1], "funded")
	assert.Contains(t, lines[1], "Jan 5, 2026")
	assert.Contains(t, lines[2], "SolarMesh")
}

func TestRootCommandWiring(t *testing.T) {
	root := rootCmd()
	for _, name := range []string{"list", "show", "advance", "migrate"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}

type publishedEvent struct {
	subject string
	data    []byte
}

type eventRecorder struct {
	events []publishedEvent
}

func (r *eventRecorder) Publish(subject string, data []byte) error {
	r.events = append(r.events, publishedEvent{subject: subject, data: data})
	return nil
}

func TestStatusNotifiersPublishEvents(t *testing.T) {
	prev := config.Cfg
	config.Cfg.SMTPHost = ""
	config.Cfg.NATSSubject = "proposals"
	t.Cleanup(func() { config.Cfg = prev })

	rec := &eventRecorder{}
	notifier, mailer := statusNotifiers(rec)
	assert.Nil(t, mailer)
	require.Len(t, notifier, 1)

	sub := &models.Submission{ID: "abc", Title: "AquaGuard", Status: models.StatusFunded}
	notifier.Notify(context.Background(), services.NewProposalEvent(services.EventStatusChanged, sub))

	require.Len(t, rec.events, 1)
	assert.Equal(t, "proposals.status_changed", rec.events[0].subject)
	assert.Contains(t, string(rec.events[0].data), `"status":"funded"`)

	none, _ := statusNotifiers(nil)
	assert.Empty(t, none)
}
