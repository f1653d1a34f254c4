package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepNext(t *testing.T) {
	for i := 0; i < len(Steps)-1; i++ {
		next, err := Steps[i].Next()
		require.NoError(t, err)
		assert.Equal(t, Steps[i+1], next)
	}

	last, err := StepCompletion.Next()
	require.NoError(t, err)
	assert.Equal(t, StepCompletion, last)

	_, err = Step("bogus").Next()
	assert.ErrorIs(t, err, ErrInvalidStep)
	assert.False(t, Step("bogus").Valid())
}

func TestConversationAdvance(t *testing.T) {
	c := &Conversation{CurrentStep: StepBusinessName}
	require.NoError(t, c.Advance())
	assert.Equal(t, StepIndustrySelection, c.CurrentStep)

	c.CurrentStep = ""
	assert.ErrorIs(t, c.Advance(), ErrInvalidStep)
}

func TestProjectProgress(t *testing.T) {
	p := &Project{}
	assert.Equal(t, 0, p.Progress())

	p.BusinessName, p.Industry = "Acme", "plumbing"
	assert.Equal(t, 40, p.Progress())

	p.Description, p.TemplateID = "We fix pipes", DefaultTemplateID
	assert.Equal(t, 80, p.Progress(), "target audience is never collected in chat")

	p.Status = StatusCompleted
	assert.Equal(t, 100, p.Progress())
}

func TestProjectComplete(t *testing.T) {
	p := &Project{Status: StatusContentReview}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	assert.ErrorIs(t, p.Complete("  ", "css", now), ErrIncompleteSite)
	assert.Equal(t, StatusContentReview, p.Status)
	assert.Nil(t, p.CompletedAt)

	require.NoError(t, p.Complete("<html></html>", "body{}", now))
	assert.Equal(t, StatusCompleted, p.Status)
	assert.Equal(t, 100, p.CompletionPercentage)
	assert.Equal(t, now, *p.CompletedAt)
}

func TestNewServices(t *testing.T) {
	s := NewServices([]string{"A", "B", "C"})
	require.Len(t, s, 3)
	assert.True(t, s[0].IsPrimary)
	assert.False(t, s[1].IsPrimary)
	assert.Equal(t, 2, s[2].DisplayOrder)
	assert.Equal(t, []string{"A", "B", "C"}, ServiceNames(s))
}
