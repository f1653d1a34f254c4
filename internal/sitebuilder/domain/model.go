package domain

import (
	"strings"
	"time"
)

// Project status values
const (
	StatusDraft         = "draft"
	StatusInProgress    = "in_progress"
	StatusContentReview = "content_review"
	StatusDesignReview  = "design_review"
	StatusCompleted     = "completed"
	StatusPublished     = "published"
	StatusPaused        = "paused"
)

// Content tones
const (
	ToneProfessional = "professional"
	ToneFriendly     = "friendly"
	ToneCreative     = "creative"
)

const (
	PageTypeOnePage   = "one_page"
	DefaultTemplateID = "professional_universal_v1"
)

// Project is one website-building session.
type Project struct {
	ID             string `json:"project_id"`
	OwnerID        string `json:"owner_id"`
	ProjectName    string `json:"project_name"`
	BusinessName   string `json:"business_name"`
	Industry       string `json:"industry"`
	Description    string `json:"business_description"`
	TargetAudience string `json:"target_audience"`
	Location       string `json:"location"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	TemplateID     string `json:"template_id"`
	ContentTone    string `json:"content_tone"`
	PageType       string `json:"page_type"`

	GeneratedContent *WebsiteContent `json:"generated_content,omitempty"`
	FinalHTML        string          `json:"final_html,omitempty"`
	FinalCSS         string          `json:"final_css,omitempty"`

	Status               string     `json:"status"`
	CompletionPercentage int        `json:"completion_percentage"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
}

// Complete marks the project completed with its rendered site.
func (p *Project) Complete(html, css string, now time.Time) error {
	if strings.TrimSpace(html) == "" {
		return ErrIncompleteSite
	}
	p.FinalHTML = html
	p.FinalCSS = css
	p.Status = StatusCompleted
	p.CompletionPercentage = 100
	p.CompletedAt = &now
	return nil
}

// Progress reports how many of the core business facts are filled, 0-100.
func (p *Project) Progress() int {
	if p.Status == StatusCompleted || p.Status == StatusPublished {
		return 100
	}
	fields := []string{p.BusinessName, p.Industry, p.Description, p.TargetAudience, p.TemplateID}
	filled := 0
	for _, f := range fields {
		if f != "" {
			filled++
		}
	}
	return filled * 100 / len(fields)
}

// Service is one offering of a project's business.
type Service struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	IsPrimary    bool   `json:"is_primary"`
	DisplayOrder int    `json:"display_order"`
}

// NewServices builds service records from names, marking the first as primary.
func NewServices(names []string) []Service {
	out := make([]Service, 0, len(names))
	for i, name := range names {
		out = append(out, Service{
			Name:         name,
			IsPrimary:    i == 0,
			DisplayOrder: i,
		})
	}
	return out
}

// ServiceNames returns the names of services in display order.
func ServiceNames(services []Service) []string {
	names := make([]string, 0, len(services))
	for _, s := range services {
		names = append(names, s.Name)
	}
	return names
}

// Conversation is the state-machine cursor of a project.
type Conversation struct {
	ProjectID     string              `json:"project_id"`
	CurrentStep   Step                `json:"current_step"`
	Context       ConversationContext `json:"context"`
	TotalMessages int                 `json:"total_messages"`
	Version       int64               `json:"version"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// Advance moves the cursor one step forward.
func (c *Conversation) Advance() error {
	next, err := c.CurrentStep.Next()
	if err != nil {
		return err
	}
	c.CurrentStep = next
	return nil
}

const ContextSchemaVersion = 1

// ConversationContext holds partial answers carried between steps.
type ConversationContext struct {
	SchemaVersion      int              `json:"schema_version"`
	RawBusinessName    *string          `json:"raw_business_name,omitempty"`
	DetectedIndustries []string         `json:"detected_industries,omitempty"`
	IndustryInput      *string          `json:"industry_input,omitempty"`
	SuggestedServices  []string         `json:"suggested_services,omitempty"`
	SelectedServices   []string         `json:"selected_services,omitempty"`
	Details            *BusinessDetails `json:"details,omitempty"`
	TemplateChoice     *string          `json:"template_choice,omitempty"`
	RecognitionSource  string           `json:"recognition_source,omitempty"`
	ContentSource      string           `json:"content_source,omitempty"`
	RevisionRequests   int              `json:"revision_requests"`
}

// BusinessDetails is what the business_details step extracts from free text.
type BusinessDetails struct {
	Description string `json:"description"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// WebsiteContent is the generated marketing copy for a project.
type WebsiteContent struct {
	HeroHeadline    string            `json:"hero_headline"`
	HeroDescription string            `json:"hero_description"`
	AboutContent    string            `json:"about_content"`
	Services        map[string]string `json:"services"`
	ServicesContent string            `json:"services_content"`
	ContactContent  string            `json:"contact_content"`
	MetaDescription string            `json:"meta_description"`
}

// BlogPost is generated blog copy.
type BlogPost struct {
	Title           string `json:"title"`
	Excerpt         string `json:"excerpt"`
	Content         string `json:"content"`
	MetaDescription string `json:"meta_description"`
	Tags            string `json:"tags"`
}

// CreateProjectRequest represents data needed to start a new project
type CreateProjectRequest struct {
	OwnerID      string
	ProjectName  string
	BusinessName string
	Industry     string
}

// UpdateProjectRequest carries the user-editable project fields
type UpdateProjectRequest struct {
	ProjectName *string
	Description *string
	Location    *string
	Phone       *string
	Email       *string
}
