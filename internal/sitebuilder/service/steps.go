package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/logging"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/catalog"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/classifier"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/content"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/domain"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/intake"
)

var (
	approveWords = []string{"great", "good", "perfect", "looks good", "approve"}
	changeWords  = []string{"change", "different", "modify", "adjust"}
)

// turn is the in-memory state one message mutates before it is committed.
type turn struct {
	project     *domain.Project
	conv        *domain.Conversation
	services    []domain.Service
	newServices []domain.Service // non-nil when this turn creates the service records
	completed   bool
}

func (e *Engine) dispatch(ctx context.Context, t *turn, input string) (string, error) {
	switch t.conv.CurrentStep {
	case domain.StepWelcome:
		return e.stepWelcome(t)
	case domain.StepBusinessName:
		return e.stepBusinessName(ctx, t, input)
	case domain.StepIndustrySelection:
		return e.stepIndustrySelection(t, input)
	case domain.StepServicesSelection:
		return e.stepServicesSelection(t, input)
	case domain.StepBusinessDetails:
		return e.stepBusinessDetails(t, input)
	case domain.StepTemplateSelection:
		return e.stepTemplateSelection(t, input)
	case domain.StepContentGeneration:
		return e.stepContentGeneration(ctx, t, input)
	case domain.StepContentReview:
		return e.stepContentReview(t, input)
	case domain.StepFinalReview:
		return e.stepFinalReview(ctx, t, input)
	case domain.StepCompletion:
		return msgCompletion, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidStep, string(t.conv.CurrentStep))
	}
}

func (e *Engine) stepWelcome(t *turn) (string, error) {
	if err := t.conv.Advance(); err != nil {
		return "", err
	}
	return msgWelcome, nil
}

func (e *Engine) stepBusinessName(ctx context.Context, t *turn, input string) (string, error) {
	name := strings.TrimSpace(input)
	if utf8.RuneCountInString(name) < 2 {
		return msgAskBusinessName, nil
	}

	p, c := t.project, &t.conv.Context
	p.BusinessName = name
	if p.Status == domain.StatusDraft {
		p.Status = domain.StatusInProgress
	}
	c.RawBusinessName = &name

	labels := e.classifier.Classify(strings.ToLower(name))
	if !classifier.Detected(labels) {
		if err := t.conv.Advance(); err != nil {
			return "", err
		}
		return msgNameAskIndustry(name), nil
	}

	// skip industry_selection: the name already tells us the industry
	p.Industry = classifier.Primary(labels)
	c.DetectedIndustries = labels
	c.IndustryInput = &name

	union := e.table.Union(labels, catalog.UnionLimit)
	rec := e.content.RecognizeBusiness(ctx, name, labels, union)
	c.SuggestedServices = rec.Services
	c.RecognitionSource = string(rec.Source)

	for i := 0; i < 2; i++ {
		if err := t.conv.Advance(); err != nil {
			return "", err
		}
	}
	return msgNameRecognized(name, rec.Message, rec.Services), nil
}

func (e *Engine) stepIndustrySelection(t *turn, input string) (string, error) {
	in := strings.TrimSpace(input)
	if in == "" {
		return msgAskIndustry, nil
	}

	p, c := t.project, &t.conv.Context
	labels := e.classifier.Classify(strings.ToLower(in))
	industry := classifier.Primary(labels)
	p.Industry = industry
	c.DetectedIndustries = labels
	c.IndustryInput = &in

	suggestions := e.table.ServicesOrDefault(industry)
	c.SuggestedServices = suggestions

	recognition, ok := e.table.Recognition(industry, p.BusinessName)
	if !ok {
		recognition = msgDefaultIndustryRecognition(p.BusinessName, industry)
	}

	if err := t.conv.Advance(); err != nil {
		return "", err
	}
	return msgIndustryRecognized(recognition, p.BusinessName, suggestions), nil
}

func (e *Engine) stepServicesSelection(t *turn, input string) (string, error) {
	if utf8.RuneCountInString(strings.TrimSpace(input)) < 3 {
		return msgAskServices, nil
	}

	names := intake.ParseServices(input, t.project.Industry, e.table)
	services := domain.NewServices(names)
	t.newServices = services
	t.services = services
	t.conv.Context.SelectedServices = names

	if err := t.conv.Advance(); err != nil {
		return "", err
	}
	return msgServicesNoted(t.project.BusinessName, services), nil
}

func (e *Engine) stepBusinessDetails(t *turn, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return msgAskDetails, nil
	}

	p := t.project
	d := intake.ParseBusinessDetails(input)
	p.Description = d.Description
	if d.Email != "" {
		p.Email = d.Email
	}
	if d.Phone != "" {
		p.Phone = d.Phone
	}
	t.conv.Context.Details = &d

	if err := t.conv.Advance(); err != nil {
		return "", err
	}
	return msgTemplatePresentation(p.BusinessName, p.Industry), nil
}

func (e *Engine) stepTemplateSelection(t *turn, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return msgAskTemplate, nil
	}

	tpl := intake.ParseTemplateChoice(input)
	t.project.TemplateID = tpl
	t.conv.Context.TemplateChoice = &tpl

	if err := t.conv.Advance(); err != nil {
		return "", err
	}
	return msgToneQuestion(tpl, t.project.BusinessName), nil
}

func (e *Engine) stepContentGeneration(ctx context.Context, t *turn, input string) (string, error) {
	p := t.project
	p.ContentTone = intake.ParseTone(input)

	generated, source := e.content.GenerateWebsiteContent(ctx, content.BusinessInfo{
		CompanyName:    p.BusinessName,
		Industry:       p.Industry,
		Location:       p.Location,
		Services:       domain.ServiceNames(t.services),
		TargetAudience: p.TargetAudience,
		Tone:           p.ContentTone,
	})
	p.GeneratedContent = generated
	p.Status = domain.StatusContentReview
	t.conv.Context.ContentSource = string(source)

	if err := t.conv.Advance(); err != nil {
		return "", err
	}
	return msgContentPreview(p.BusinessName, generated, t.services), nil
}

func (e *Engine) stepContentReview(t *turn, input string) (string, error) {
	in := strings.TrimSpace(input)
	if in == "" {
		return msgAskReviewFeedback, nil
	}

	feedback := strings.ToLower(in)
	switch {
	case containsAny(feedback, approveWords):
		if err := t.conv.Advance(); err != nil {
			return "", err
		}
		return msgFinalSummary(t.project, len(t.services)), nil
	case strings.Contains(feedback, "too long"):
		t.conv.Context.RevisionRequests++
		return msgTooLong, nil
	case strings.Contains(feedback, "too short"):
		t.conv.Context.RevisionRequests++
		return msgTooShort, nil
	case containsAny(feedback, changeWords):
		t.conv.Context.RevisionRequests++
		return msgChangeRequest(in), nil
	default:
		return msgBeSpecific, nil
	}
}

func (e *Engine) stepFinalReview(ctx context.Context, t *turn, input string) (string, error) {
	in := strings.TrimSpace(input)
	if in == "" {
		return msgAskBuild, nil
	}
	if !strings.Contains(strings.ToLower(in), "build") {
		return msgWhatToChange, nil
	}

	p := t.project
	html, css, err := e.render(p, t.services)
	if err == nil {
		err = p.Complete(html, css, e.now().UTC())
	}
	if err != nil {
		logging.FromContext(ctx).Warn("failed to build final website",
			zap.String("project_id", p.ID),
			zap.Error(err),
		)
		return msgBuildFailed, nil
	}
	t.completed = true

	if err := t.conv.Advance(); err != nil {
		return "", err
	}
	return msgCongratulations(p.BusinessName), nil
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
