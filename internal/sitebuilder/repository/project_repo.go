package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/domain"
)

const (
	projectKeyPrefix  = "site:project:"     // site:project:{id}
	convKeyPrefix     = "site:conv:"        // site:conv:{id}
	servicesKeyPrefix = "site:services:"    // site:services:{id}
	userSetPrefix     = "site:user:"        // site:user:{owner}:projects
	activityKey       = "site:activity"     // project ids scored by last update (unix seconds)
	projectTTL        = 30 * 24 * time.Hour // refreshed on every save
)

// ProjectRepository handles Redis operations for website projects and their conversations
type ProjectRepository struct {
	client *redis.Client
	now    func() time.Time
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(client *redis.Client) *ProjectRepository {
	return &ProjectRepository{client: client, now: time.Now}
}

// Create stores a new project together with its conversation.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project, conv *domain.Conversation) error {
	now := r.now().UTC()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	conv.ProjectID = p.ID
	conv.UpdatedAt = now

	projectData, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	convData, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation: %w", err)
	}

	userKey := r.userSetKey(p.OwnerID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.projectKey(p.ID), projectData, projectTTL)
		pipe.Set(ctx, r.convKey(p.ID), convData, projectTTL)
		pipe.SAdd(ctx, userKey, p.ID)
		pipe.Expire(ctx, userKey, projectTTL)
		pipe.ZAdd(ctx, activityKey, redis.Z{Score: float64(now.Unix()), Member: p.ID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// Get retrieves a project by id.
func (r *ProjectRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	var p domain.Project
	if err := r.getJSON(ctx, r.projectKey(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetConversation retrieves the conversation cursor of a project.
func (r *ProjectRepository) GetConversation(ctx context.Context, id string) (*domain.Conversation, error) {
	var c domain.Conversation
	if err := r.getJSON(ctx, r.convKey(id), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// GetServices retrieves the service records of a project. A project without
// services yields an empty slice.
func (r *ProjectRepository) GetServices(ctx context.Context, id string) ([]domain.Service, error) {
	var services []domain.Service
	err := r.getJSON(ctx, r.servicesKey(id), &services)
	if errors.Is(err, domain.ErrProjectNotFound) {
		return []domain.Service{}, nil
	}
	if err != nil {
		return nil, err
	}
	return services, nil
}

// Load reads the project, its conversation and its services.
func (r *ProjectRepository) Load(ctx context.Context, id string) (*domain.Project, *domain.Conversation, []domain.Service, error) {
	p, err := r.Get(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	conv, err := r.GetConversation(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	services, err := r.GetServices(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	return p, conv, services, nil
}

// SaveTurn commits the result of one conversation turn in a single MULTI/EXEC.
// conv.Version must equal the stored version; on success it is incremented.
// A nil services slice leaves the stored services untouched.
func (r *ProjectRepository) SaveTurn(ctx context.Context, p *domain.Project, conv *domain.Conversation, services []domain.Service) error {
	now := r.now().UTC()
	convKey := r.convKey(p.ID)

	next := *conv
	next.ProjectID = p.ID
	next.Version = conv.Version + 1
	next.UpdatedAt = now

	saved := *p
	saved.UpdatedAt = now
	saved.CompletionPercentage = saved.Progress()

	projectData, err := json.Marshal(&saved)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	convData, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation: %w", err)
	}
	var servicesData []byte
	if services != nil {
		if servicesData, err = json.Marshal(services); err != nil {
			return fmt.Errorf("failed to marshal services: %w", err)
		}
	}

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, convKey).Bytes()
		if errors.Is(err, redis.Nil) {
			return domain.ErrProjectNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to read conversation: %w", err)
		}
		var stored struct {
			Version int64 `json:"version"`
		}
		if err := json.Unmarshal(raw, &stored); err != nil {
			return fmt.Errorf("failed to unmarshal conversation: %w", err)
		}
		if stored.Version != conv.Version {
			return domain.ErrConcurrentUpdate
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, r.projectKey(p.ID), projectData, projectTTL)
			pipe.Set(ctx, convKey, convData, projectTTL)
			if servicesData != nil {
				pipe.Set(ctx, r.servicesKey(p.ID), servicesData, projectTTL)
			} else {
				pipe.Expire(ctx, r.servicesKey(p.ID), projectTTL)
			}
			pipe.Expire(ctx, r.userSetKey(p.OwnerID), projectTTL)
			pipe.ZAdd(ctx, activityKey, redis.Z{Score: float64(now.Unix()), Member: p.ID})
			return nil
		})
		return err
	}

	err = r.client.Watch(ctx, txf, convKey)
	if errors.Is(err, redis.TxFailedErr) {
		return domain.ErrConcurrentUpdate
	}
	if err != nil {
		if errors.Is(err, domain.ErrConcurrentUpdate) || errors.Is(err, domain.ErrProjectNotFound) {
			return err
		}
		return fmt.Errorf("failed to save turn: %w", err)
	}

	*p = saved
	*conv = next
	return nil
}

// ListByOwner retrieves the projects owned by ownerID, newest first.
func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Project, error) {
	ids, err := r.client.SMembers(ctx, r.userSetKey(ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects for owner: %w", err)
	}
	if len(ids) == 0 {
		return []*domain.Project{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.projectKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}

	projects := make([]*domain.Project, 0, len(values))
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			// expired between SMEMBERS and MGET
			continue
		}
		var p domain.Project
		if err := json.Unmarshal([]byte(s), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal project: %w", err)
		}
		projects = append(projects, &p)
	}
	sortNewestFirst(projects)
	return projects, nil
}

// StaleProjectIDs returns the ids of projects not updated since before.
func (r *ProjectRepository) StaleProjectIDs(ctx context.Context, before time.Time) ([]string, error) {
	ids, err := r.client.ZRangeByScore(ctx, activityKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(before.Unix(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to query activity index: %w", err)
	}
	return ids, nil
}

// Forget drops a project id from the activity index. Used when the project
// itself has expired.
func (r *ProjectRepository) Forget(ctx context.Context, id string) error {
	if err := r.client.ZRem(ctx, activityKey, id).Err(); err != nil {
		return fmt.Errorf("failed to remove project from activity index: %w", err)
	}
	return nil
}

func (r *ProjectRepository) getJSON(ctx context.Context, key string, dst any) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ErrProjectNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return nil
}

func sortNewestFirst(projects []*domain.Project) {
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})
}

// Helper methods for key generation
func (r *ProjectRepository) projectKey(id string) string {
	return projectKeyPrefix + id
}

func (r *ProjectRepository) convKey(id string) string {
	return convKeyPrefix + id
}

func (r *ProjectRepository) servicesKey(id string) string {
	return servicesKeyPrefix + id
}

func (r *ProjectRepository) userSetKey(ownerID string) string {
	return fmt.Sprintf("%s%s:projects", userSetPrefix, ownerID)
}
