package domain

import "fmt"

// Step is one stage of the website-building conversation.
type Step string

const (
	StepWelcome           Step = "welcome"
	StepBusinessName      Step = "business_name"
	StepIndustrySelection Step = "industry_selection"
	StepServicesSelection Step = "services_selection"
	StepBusinessDetails   Step = "business_details"
	StepTemplateSelection Step = "template_selection"
	StepContentGeneration Step = "content_generation"
	StepContentReview     Step = "content_review"
	StepFinalReview       Step = "final_review"
	StepCompletion        Step = "completion"
)

// Steps lists every step in conversation order.
var Steps = []Step{
	StepWelcome,
	StepBusinessName,
	StepIndustrySelection,
	StepServicesSelection,
	StepBusinessDetails,
	StepTemplateSelection,
	StepContentGeneration,
	StepContentReview,
	StepFinalReview,
	StepCompletion,
}

// Index returns the position of s in Steps, or -1 if s is not a known step.
func (s Step) Index() int {
	for i, step := range Steps {
		if step == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s belongs to the fixed step list.
func (s Step) Valid() bool {
	return s.Index() >= 0
}

// Next returns the step after s. The terminal step returns itself.
func (s Step) Next() (Step, error) {
	i := s.Index()
	if i < 0 {
		return s, fmt.Errorf("%w: %q", ErrInvalidStep, string(s))
	}
	if i == len(Steps)-1 {
		return s, nil
	}
	return Steps[i+1], nil
}

func (s Step) String() string {
	return string(s)
}
