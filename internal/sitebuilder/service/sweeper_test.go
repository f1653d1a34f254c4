package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/domain"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/repository"
)

func TestSweeper_RunOnce(t *testing.T) {
	repo := repository.NewProjectRepository(setupTestRedis(t))
	ctx := context.Background()

	create := func(status string) string {
		p := &domain.Project{OwnerID: owner, Status: status}
		conv := &domain.Conversation{CurrentStep: domain.StepBusinessName}
		require.NoError(t, repo.Create(ctx, p, conv))
		return p.ID
	}
	draft := create(domain.StatusDraft)
	inProgress := create(domain.StatusInProgress)
	completed := create(domain.StatusCompleted)

	s := NewSweeper(repo, repository.NewKeyedMutex(), time.Hour)

	paused, err := s.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, paused, "fresh projects are not stale")

	s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	paused, err = s.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, paused)

	for id, want := range map[string]string{
		draft:      domain.StatusPaused,
		inProgress: domain.StatusPaused,
		completed:  domain.StatusCompleted,
	} {
		p, err := repo.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, p.Status, id)
	}

	// the completed project leaves the index; the paused ones were re-scored by their save
	ids, err := repo.StaleProjectIDs(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{draft, inProgress}, ids)

	paused, err = s.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, paused)

	ids, err = repo.StaleProjectIDs(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Empty(t, ids, "paused projects are not rescanned")
}

func TestSweeper_ForgetsExpiredProjects(t *testing.T) {
	client := setupTestRedis(t)
	repo := repository.NewProjectRepository(client)
	ctx := context.Background()

	p := &domain.Project{OwnerID: owner, Status: domain.StatusDraft}
	require.NoError(t, repo.Create(ctx, p, &domain.Conversation{CurrentStep: domain.StepBusinessName}))
	require.NoError(t, client.Del(ctx, "site:project:"+p.ID, "site:conv:"+p.ID).Err())

	s := NewSweeper(repo, repository.NewKeyedMutex(), time.Minute)
	s.now = func() time.Time { return time.Now().Add(time.Hour) }

	paused, err := s.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, paused)

	ids, err := repo.StaleProjectIDs(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSweeper_StartStopsWithContext(t *testing.T) {
	repo := repository.NewProjectRepository(setupTestRedis(t))
	s := NewSweeper(repo, repository.NewKeyedMutex(), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx, "* * * * * *") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestSweeper_RejectsBadSchedule(t *testing.T) {
	repo := repository.NewProjectRepository(setupTestRedis(t))
	s := NewSweeper(repo, repository.NewKeyedMutex(), time.Hour)

	err := s.Start(context.Background(), "not a schedule")
	assert.Error(t, err)
}
