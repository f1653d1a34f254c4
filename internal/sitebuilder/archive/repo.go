// Package archive keeps completed websites in Postgres after their
// conversation state expires from Redis.
package archive

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/domain"
)

// querier is the part of *pgxpool.Pool the repository uses.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repo struct {
	db querier
}

func NewRepo(db querier) *Repo {
	return &Repo{db: db}
}

// Site is an archived completed website.
type Site struct {
	ProjectID    string    `json:"project_id"`
	OwnerID      string    `json:"owner_id"`
	BusinessName string    `json:"business_name"`
	Industry     string    `json:"industry"`
	HTML         string    `json:"html"`
	CSS          string    `json:"css"`
	CompletedAt  time.Time `json:"completed_at"`
}

const schema = `
create table if not exists completed_sites (
	project_id    text primary key,
	owner_id      text not null,
	business_name text not null,
	industry      text not null default '',
	html          text not null,
	css           text not null default '',
	completed_at  timestamptz not null
);
create index if not exists completed_sites_owner_idx on completed_sites (owner_id);
`

func (r *Repo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create completed_sites: %w", err)
	}
	return nil
}

// Project rebuilds the completed project an archived site came from. Fields
// the archive does not keep, such as contact details and services, stay empty.
func (s *Site) Project() *domain.Project {
	completed := s.CompletedAt
	return &domain.Project{
		ID:           s.ProjectID,
		OwnerID:      s.OwnerID,
		BusinessName: s.BusinessName,
		Industry:     s.Industry,
		PageType:     domain.PageTypeOnePage,
		Status:       domain.StatusCompleted,
		FinalHTML:    s.HTML,
		FinalCSS:     s.CSS,
		CreatedAt:    completed,
		UpdatedAt:    completed,
		CompletedAt:  &completed,
	}
}

// Archive upserts the rendered site of a completed project.
func (r *Repo) Archive(ctx context.Context, p *domain.Project) error {
	if p.Status != domain.StatusCompleted || p.CompletedAt == nil {
		return domain.ErrProjectNotCompleted
	}

	const q = `
insert into completed_sites (project_id, owner_id, business_name, industry, html, css, completed_at)
values ($1, $2, $3, $4, $5, $6, $7)
on conflict (project_id) do update
set business_name = excluded.business_name,
    industry = excluded.industry,
    html = excluded.html,
    css = excluded.css,
    completed_at = excluded.completed_at;
`
	_, err := r.db.Exec(ctx, q, p.ID, p.OwnerID, p.BusinessName, p.Industry, p.FinalHTML, p.FinalCSS, *p.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to archive site: %w", err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, ownerID, projectID string) (*Site, error) {
	const q = `
select project_id, owner_id, business_name, industry, html, css, completed_at
from completed_sites
where owner_id = $1 and project_id = $2;
`
	var s Site
	err := r.db.QueryRow(ctx, q, ownerID, projectID).
		Scan(&s.ProjectID, &s.OwnerID, &s.BusinessName, &s.Industry, &s.HTML, &s.CSS, &s.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get archived site: %w", err)
	}
	return &s, nil
}
