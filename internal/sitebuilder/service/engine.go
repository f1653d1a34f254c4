// Package service runs the website-building conversation: one chat turn in,
// one assistant reply out, with every turn committed atomically.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/logging"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/archive"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/catalog"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/classifier"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/content"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/domain"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/export"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/render"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/repository"
)

const defaultLockTimeout = 10 * time.Second

// ProjectStore persists projects, conversations and services.
type ProjectStore interface {
	Create(ctx context.Context, p *domain.Project, conv *domain.Conversation) error
	Get(ctx context.Context, id string) (*domain.Project, error)
	Load(ctx context.Context, id string) (*domain.Project, *domain.Conversation, []domain.Service, error)
	SaveTurn(ctx context.Context, p *domain.Project, conv *domain.Conversation, services []domain.Service) error
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Project, error)
	StaleProjectIDs(ctx context.Context, before time.Time) ([]string, error)
	Forget(ctx context.Context, id string) error
}

// ContentGenerator produces marketing copy. Implementations never fail; they
// degrade to fallback copy instead.
type ContentGenerator interface {
	GenerateWebsiteContent(ctx context.Context, info content.BusinessInfo) (*domain.WebsiteContent, content.Source)
	RecognizeBusiness(ctx context.Context, businessName string, labels, catalogServices []string) content.Recognition
}

// SiteArchiver keeps completed sites beyond the Redis TTL.
type SiteArchiver interface {
	Archive(ctx context.Context, p *domain.Project) error
	Get(ctx context.Context, ownerID, projectID string) (*archive.Site, error)
}

// RenderFunc builds the final HTML and CSS of a project.
type RenderFunc func(p *domain.Project, services []domain.Service) (html, css string, err error)

// Engine drives conversations.
type Engine struct {
	store       ProjectStore
	locker      repository.Locker
	content     ContentGenerator
	classifier  *classifier.Classifier
	table       *catalog.Table
	archiver    SiteArchiver
	render      RenderFunc
	now         func() time.Time
	lockTimeout time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

func WithArchiver(a SiteArchiver) Option {
	return func(e *Engine) { e.archiver = a }
}

func WithRenderer(r RenderFunc) Option {
	return func(e *Engine) { e.render = r }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithLockTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.lockTimeout = d
		}
	}
}

// WithCatalog swaps the industry table used for classification and suggestions.
func WithCatalog(t *catalog.Table) Option {
	return func(e *Engine) {
		e.table = t
		e.classifier = classifier.New(t)
	}
}

// NewEngine creates an Engine.
func NewEngine(store ProjectStore, locker repository.Locker, gen ContentGenerator, opts ...Option) *Engine {
	e := &Engine{
		store:       store,
		locker:      locker,
		content:     gen,
		classifier:  classifier.Default(),
		table:       catalog.Default(),
		render:      render.Site,
		now:         time.Now,
		lockTimeout: defaultLockTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartResult is the outcome of starting a conversation.
type StartResult struct {
	Project     *domain.Project
	Message     string
	CurrentStep domain.Step
}

// Start creates a project and runs the welcome step.
func (e *Engine) Start(ctx context.Context, ownerID, projectName string) (*StartResult, error) {
	if strings.TrimSpace(projectName) == "" {
		projectName = "Website Project " + ownerID
	}
	p := e.newProject(ownerID)
	p.ProjectName = projectName
	conv := newConversation()

	t := &turn{project: p, conv: conv}
	msg, err := e.dispatch(ctx, t, "")
	if err != nil {
		return nil, err
	}
	if err := e.store.Create(ctx, p, conv); err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info("conversation started",
		zap.String("project_id", p.ID),
		zap.String("owner_id", ownerID),
	)
	return &StartResult{Project: p, Message: msg, CurrentStep: conv.CurrentStep}, nil
}

// QuickStart creates a draft project with its name and industry already known.
// The conversation still begins at the welcome step.
func (e *Engine) QuickStart(ctx context.Context, ownerID, businessName, industry string) (*domain.Project, error) {
	businessName = strings.TrimSpace(businessName)
	if businessName == "" {
		return nil, fmt.Errorf("business name is required")
	}
	if strings.TrimSpace(industry) == "" {
		industry = e.table.Fallback.Label
	}

	p := e.newProject(ownerID)
	p.ProjectName = businessName + " Website"
	p.BusinessName = businessName
	p.Industry = industry

	if err := e.store.Create(ctx, p, newConversation()); err != nil {
		return nil, err
	}
	return p, nil
}

// Process applies one chat message to a project and returns the reply.
func (e *Engine) Process(ctx context.Context, ownerID, projectID, message string) (*ChatResponse, error) {
	lockCtx, cancel := context.WithTimeout(ctx, e.lockTimeout)
	unlock, err := e.locker.Lock(lockCtx, projectID)
	cancel()
	if err != nil {
		return nil, err
	}
	defer unlock()

	p, conv, services, err := e.store.Load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != ownerID {
		return nil, domain.ErrProjectNotFound
	}
	if p.Status == domain.StatusPaused {
		p.Status = domain.StatusInProgress
	}

	from := conv.CurrentStep
	t := &turn{project: p, conv: conv, services: services}
	reply, err := e.dispatch(ctx, t, message)
	if err != nil {
		return nil, err
	}
	conv.TotalMessages++

	if err := e.store.SaveTurn(ctx, p, conv, t.newServices); err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx)
	log.Info("chat turn processed",
		zap.String("project_id", p.ID),
		zap.String("from_step", from.String()),
		zap.String("to_step", conv.CurrentStep.String()),
		zap.Int("total_messages", conv.TotalMessages),
	)

	if t.completed && e.archiver != nil {
		if err := e.archiver.Archive(ctx, p); err != nil {
			log.Warn("failed to archive completed site", zap.String("project_id", p.ID), zap.Error(err))
		}
	}

	return newChatResponse(reply, p, conv, t.services), nil
}

// ProjectStatus summarises a project for status polling.
type ProjectStatus struct {
	ID            string      `json:"id"`
	BusinessName  string      `json:"business_name"`
	Status        string      `json:"status"`
	Progress      int         `json:"progress"`
	CurrentStep   domain.Step `json:"current_step"`
	ServicesCount int         `json:"services_count"`
	CreatedAt     time.Time   `json:"created_at"`
}

// Status reports where a project stands.
func (e *Engine) Status(ctx context.Context, ownerID, projectID string) (*ProjectStatus, error) {
	p, conv, services, err := e.store.Load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != ownerID {
		return nil, domain.ErrProjectNotFound
	}
	return &ProjectStatus{
		ID:            p.ID,
		BusinessName:  p.BusinessName,
		Status:        p.Status,
		Progress:      p.Progress(),
		CurrentStep:   conv.CurrentStep,
		ServicesCount: len(services),
		CreatedAt:     p.CreatedAt,
	}, nil
}

// ProjectSummary is one row of a project listing.
type ProjectSummary struct {
	ID           string    `json:"id"`
	ProjectName  string    `json:"project_name"`
	BusinessName string    `json:"business_name"`
	Industry     string    `json:"industry"`
	Status       string    `json:"status"`
	Progress     int       `json:"progress"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// List returns the owner's projects, newest first.
func (e *Engine) List(ctx context.Context, ownerID string) ([]ProjectSummary, error) {
	projects, err := e.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]ProjectSummary, 0, len(projects))
	for _, p := range projects {
		out = append(out, ProjectSummary{
			ID:           p.ID,
			ProjectName:  p.ProjectName,
			BusinessName: p.BusinessName,
			Industry:     p.Industry,
			Status:       p.Status,
			Progress:     p.Progress(),
			CreatedAt:    p.CreatedAt,
			UpdatedAt:    p.UpdatedAt,
		})
	}
	return out, nil
}

// Update applies the user-editable fields and returns the names of those changed.
func (e *Engine) Update(ctx context.Context, ownerID, projectID string, req domain.UpdateProjectRequest) ([]string, error) {
	lockCtx, cancel := context.WithTimeout(ctx, e.lockTimeout)
	unlock, err := e.locker.Lock(lockCtx, projectID)
	cancel()
	if err != nil {
		return nil, err
	}
	defer unlock()

	p, conv, _, err := e.store.Load(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.OwnerID != ownerID {
		return nil, domain.ErrProjectNotFound
	}

	updated := make([]string, 0, 5)
	set := func(field string, dst *string, v *string) {
		if v == nil {
			return
		}
		*dst = strings.TrimSpace(*v)
		updated = append(updated, field)
	}
	set("project_name", &p.ProjectName, req.ProjectName)
	set("business_description", &p.Description, req.Description)
	set("location", &p.Location, req.Location)
	set("phone", &p.Phone, req.Phone)
	set("email", &p.Email, req.Email)

	if len(updated) == 0 {
		return updated, nil
	}
	if err := e.store.SaveTurn(ctx, p, conv, nil); err != nil {
		return nil, err
	}
	return updated, nil
}

// Preview returns the rendered HTML of a completed project. Projects that
// have expired from the store are served from the archive when one is configured.
func (e *Engine) Preview(ctx context.Context, ownerID, projectID string) (string, error) {
	p, err := e.store.Get(ctx, projectID)
	if errors.Is(err, domain.ErrProjectNotFound) && e.archiver != nil {
		site, aerr := e.archiver.Get(ctx, ownerID, projectID)
		if aerr != nil {
			return "", aerr
		}
		return site.HTML, nil
	}
	if err != nil {
		return "", err
	}
	if p.OwnerID != ownerID {
		return "", domain.ErrProjectNotFound
	}
	if strings.TrimSpace(p.FinalHTML) == "" {
		return "", domain.ErrProjectNotCompleted
	}
	return p.FinalHTML, nil
}

// Export packages a completed project for download, falling back to the
// archive like Preview does.
func (e *Engine) Export(ctx context.Context, ownerID, projectID string) (*export.Bundle, error) {
	p, _, services, err := e.store.Load(ctx, projectID)
	if errors.Is(err, domain.ErrProjectNotFound) && e.archiver != nil {
		site, aerr := e.archiver.Get(ctx, ownerID, projectID)
		if aerr != nil {
			return nil, aerr
		}
		return export.Build(site.Project(), nil)
	}
	if err != nil {
		return nil, err
	}
	if p.OwnerID != ownerID {
		return nil, domain.ErrProjectNotFound
	}
	return export.Build(p, services)
}

func (e *Engine) newProject(ownerID string) *domain.Project {
	now := e.now().UTC()
	return &domain.Project{
		OwnerID:     ownerID,
		ContentTone: domain.ToneProfessional,
		PageType:    domain.PageTypeOnePage,
		Status:      domain.StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func newConversation() *domain.Conversation {
	return &domain.Conversation{
		CurrentStep: domain.StepWelcome,
		Context:     domain.ConversationContext{SchemaVersion: domain.ContextSchemaVersion},
	}
}
