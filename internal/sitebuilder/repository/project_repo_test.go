package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, client.Ping(context.Background()).Err())

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return client, mr
}

func newProject(owner string) (*domain.Project, *domain.Conversation) {
	return &domain.Project{
			OwnerID: owner,
			Status:  domain.StatusDraft,
		}, &domain.Conversation{
			CurrentStep: domain.StepBusinessName,
			Context:     domain.ConversationContext{SchemaVersion: domain.ContextSchemaVersion},
		}
}

func TestProjectRepository_Create(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewProjectRepository(client)
	ctx := context.Background()

	p, conv := newProject("user123")
	require.NoError(t, repo.Create(ctx, p, conv))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, p.ID, conv.ProjectID)
	assert.False(t, p.CreatedAt.IsZero())

	assert.True(t, mr.Exists("site:project:"+p.ID))
	assert.True(t, mr.Exists("site:conv:"+p.ID))
	members, err := mr.SMembers("site:user:user123:projects")
	require.NoError(t, err)
	assert.Equal(t, []string{p.ID}, members)

	ttl := mr.TTL("site:project:" + p.ID)
	assert.Equal(t, projectTTL, ttl)

	got, conv2, services, err := repo.Load(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "user123", got.OwnerID)
	assert.Equal(t, domain.StepBusinessName, conv2.CurrentStep)
	assert.Empty(t, services)
}

func TestProjectRepository_GetMissing(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewProjectRepository(client)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)

	_, _, _, err = repo.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestProjectRepository_SaveTurn(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewProjectRepository(client)
	ctx := context.Background()

	p, conv := newProject("user123")
	require.NoError(t, repo.Create(ctx, p, conv))

	t.Run("commits all records and bumps version", func(t *testing.T) {
		p.BusinessName = "ABC Plumbing"
		conv.CurrentStep = domain.StepServicesSelection
		conv.TotalMessages = 1
		services := domain.NewServices([]string{"Pipe Repair", "Drain Cleaning"})

		require.NoError(t, repo.SaveTurn(ctx, p, conv, services))
		assert.Equal(t, int64(1), conv.Version)
		assert.Equal(t, 20, p.CompletionPercentage)

		got, gotConv, gotServices, err := repo.Load(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "ABC Plumbing", got.BusinessName)
		assert.Equal(t, domain.StepServicesSelection, gotConv.CurrentStep)
		assert.Equal(t, int64(1), gotConv.Version)
		require.Len(t, gotServices, 2)
		assert.True(t, gotServices[0].IsPrimary)
		assert.False(t, gotServices[1].IsPrimary)
	})

	t.Run("nil services keep stored services", func(t *testing.T) {
		conv.TotalMessages = 2
		require.NoError(t, repo.SaveTurn(ctx, p, conv, nil))

		services, err := repo.GetServices(ctx, p.ID)
		require.NoError(t, err)
		assert.Len(t, services, 2)
	})

	t.Run("stale version is rejected", func(t *testing.T) {
		_, stale, _, err := repo.Load(ctx, p.ID)
		require.NoError(t, err)

		conv.TotalMessages = 3
		require.NoError(t, repo.SaveTurn(ctx, p, conv, nil))

		stale.TotalMessages = 99
		err = repo.SaveTurn(ctx, p, stale, nil)
		assert.ErrorIs(t, err, domain.ErrConcurrentUpdate)

		got, err := repo.GetConversation(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, got.TotalMessages)
	})

	t.Run("missing conversation", func(t *testing.T) {
		ghost := &domain.Project{ID: "ghost", OwnerID: "user123"}
		err := repo.SaveTurn(ctx, ghost, &domain.Conversation{}, nil)
		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
	})
}

func TestProjectRepository_ListByOwner(t *testing.T) {
	client, mr := setupTestRedis(t)
	repo := NewProjectRepository(client)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		p, conv := newProject("owner-a")
		p.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Create(ctx, p, conv))
		ids = append(ids, p.ID)
	}
	other, otherConv := newProject("owner-b")
	require.NoError(t, repo.Create(ctx, other, otherConv))

	projects, err := repo.ListByOwner(ctx, "owner-a")
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, ids[2], projects[0].ID)
	assert.Equal(t, ids[0], projects[2].ID)

	mr.Del("site:project:" + ids[1])
	projects, err = repo.ListByOwner(ctx, "owner-a")
	require.NoError(t, err)
	assert.Len(t, projects, 2)

	empty, err := repo.ListByOwner(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestProjectRepository_StaleProjectIDs(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewProjectRepository(client)
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now.Add(-96 * time.Hour) }
	old, oldConv := newProject("u")
	require.NoError(t, repo.Create(ctx, old, oldConv))

	repo.now = func() time.Time { return now }
	fresh, freshConv := newProject("u")
	require.NoError(t, repo.Create(ctx, fresh, freshConv))

	ids, err := repo.StaleProjectIDs(ctx, now.Add(-72*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{old.ID}, ids)

	require.NoError(t, repo.Forget(ctx, old.ID))
	ids, err = repo.StaleProjectIDs(ctx, now.Add(-72*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, ids)
}
