// Package content produces marketing copy through an external generative
// provider and falls back to deterministic templates whenever that fails.
package content

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/logging"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/catalog"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/domain"
)

// Source tells whether copy came from the provider or the fallback templates.
type Source string

const (
	SourceProvider Source = "provider"
	SourceFallback Source = "fallback"

	DefaultTimeout = 20 * time.Second

	maxSuggestedServices = 10
)

// BusinessInfo is the project data a website-content prompt is built from.
type BusinessInfo struct {
	CompanyName    string
	Industry       string
	Location       string
	Services       []string
	TargetAudience string
	Tone           string
}

// Recognition is the personalised acknowledgement of a newly named business.
type Recognition struct {
	Message  string
	Services []string
	Source   Source
}

// BlogRequest describes a blog post to generate.
type BlogRequest struct {
	Topic       string `json:"topic"`
	ContentType string `json:"content_type"`
	Language    string `json:"language"`
}

// Orchestrator wraps a Provider with prompt building, JSON parsing and fallbacks.
type Orchestrator struct {
	provider Provider
	table    *catalog.Table
	timeout  time.Duration
	metrics  *Metrics
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTimeout bounds every provider call.
func WithTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithCatalog overrides the industry table used for fallback sentences.
func WithCatalog(t *catalog.Table) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.table = t
		}
	}
}

// NewOrchestrator creates an orchestrator around provider. A nil provider
// behaves like NoopProvider.
func NewOrchestrator(provider Provider, opts ...Option) *Orchestrator {
	if provider == nil {
		provider = NoopProvider{}
	}
	o := &Orchestrator{
		provider: provider,
		table:    catalog.Default(),
		timeout:  DefaultTimeout,
		metrics:  &Metrics{},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Metrics returns the orchestrator's call counters.
func (o *Orchestrator) Metrics() MetricsSnapshot {
	return o.metrics.Snapshot()
}

func (o *Orchestrator) complete(ctx context.Context, req CompletionRequest) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	start := time.Now()
	text, err := o.provider.Complete(cctx, req)
	o.metrics.recordCall(time.Since(start), err)
	return text, err
}

func (o *Orchestrator) degrade(ctx context.Context, operation string, err error) {
	o.metrics.recordFallback()
	logging.FromContext(ctx).Warn("content provider degraded to fallback",
		zap.String("operation", operation),
		zap.Error(err),
	)
}

// GenerateWebsiteContent returns copy for every section of the site. Keys the
// provider leaves out are filled from the fallback, so the result is always complete.
func (o *Orchestrator) GenerateWebsiteContent(ctx context.Context, info BusinessInfo) (*domain.WebsiteContent, Source) {
	fb := FallbackWebsiteContent(info)

	text, err := o.complete(ctx, CompletionRequest{
		System:      websiteSystem,
		Prompt:      websitePrompt(info),
		MaxTokens:   1000,
		Temperature: 0.7,
	})
	if err != nil {
		o.degrade(ctx, "generate_website_content", err)
		return fb, SourceFallback
	}

	obj, err := extractObject(text)
	if err != nil {
		o.degrade(ctx, "generate_website_content", err)
		return fb, SourceFallback
	}

	c := &domain.WebsiteContent{
		HeroHeadline:    stringField(obj, "hero_headline"),
		HeroDescription: stringField(obj, "hero_description"),
		AboutContent:    stringField(obj, "about_content"),
		Services:        stringMapField(obj, "services"),
		ServicesContent: stringField(obj, "services_content"),
		ContactContent:  stringField(obj, "contact_content"),
		MetaDescription: stringField(obj, "meta_description"),
	}
	fillWebsiteContent(c, fb)
	return c, SourceProvider
}

// RecognizeBusiness acknowledges a business and refines its service suggestions.
// catalogServices is returned unchanged when the provider is unavailable.
func (o *Orchestrator) RecognizeBusiness(ctx context.Context, businessName string, labels, catalogServices []string) Recognition {
	fallback := Recognition{
		Message:  FallbackRecognition(o.table, businessName, labels),
		Services: catalogServices,
		Source:   SourceFallback,
	}
	if len(labels) == 0 {
		return fallback
	}

	text, err := o.complete(ctx, CompletionRequest{
		System:      recognitionSystem,
		Prompt:      recognitionPrompt(businessName, labels),
		MaxTokens:   400,
		Temperature: 0.7,
	})
	if err != nil {
		o.degrade(ctx, "recognize_business", err)
		return fallback
	}

	obj, err := extractObject(text)
	if err != nil {
		o.degrade(ctx, "recognize_business", err)
		return fallback
	}
	msg := stringField(obj, "recognition_message")
	if msg == "" {
		o.degrade(ctx, "recognize_business", errNoJSONObject)
		return fallback
	}

	rec := Recognition{Message: msg, Services: catalogServices, Source: SourceProvider}
	if suggested := firstOccurrences(stringListField(obj, "suggested_services"), maxSuggestedServices); len(suggested) > 0 {
		rec.Services = suggested
	}
	return rec
}

// firstOccurrences drops case-insensitive repeats keeping the first spelling,
// then truncates to limit.
func firstOccurrences(names []string, limit int) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		key := strings.ToLower(n)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, n)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// GenerateBlogPost writes a blog post on req.Topic.
func (o *Orchestrator) GenerateBlogPost(ctx context.Context, req BlogRequest) (*domain.BlogPost, Source) {
	fb := FallbackBlogPost(req.Topic)

	text, err := o.complete(ctx, CompletionRequest{
		System:      blogSystem,
		Prompt:      blogPrompt(req),
		MaxTokens:   1500,
		Temperature: 0.7,
	})
	if err != nil {
		o.degrade(ctx, "generate_blog_post", err)
		return fb, SourceFallback
	}
	obj, err := extractObject(text)
	if err != nil {
		o.degrade(ctx, "generate_blog_post", err)
		return fb, SourceFallback
	}

	post := &domain.BlogPost{
		Title:           orDefault(stringField(obj, "title"), fb.Title),
		Excerpt:         orDefault(stringField(obj, "excerpt"), fb.Excerpt),
		Content:         orDefault(stringField(obj, "content"), fb.Content),
		MetaDescription: orDefault(stringField(obj, "meta_description"), fb.MetaDescription),
		Tags:            orDefault(stringField(obj, "tags"), fb.Tags),
	}
	return post, SourceProvider
}
