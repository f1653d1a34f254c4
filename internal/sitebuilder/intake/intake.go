// Package intake turns the user's free-text answers into structured project data.
package intake

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/catalog"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/domain"
)

const (
	// MaxServices caps how many services a single answer may yield.
	MaxServices = 8
	// fallbackServiceCount is how many catalog services stand in for an unusable answer.
	fallbackServiceCount = 3
	minServiceRunes      = 3
)

// separators are applied in order; each pass re-splits every fragment.
var separators = []string{",", "\n", ";", " and ", " & "}

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`[+]?[\d\s\-()]{10,}`)
)

// ParseServices splits a free-text service list into title-cased names.
// When nothing usable remains it falls back to the first catalog entries of industry.
func ParseServices(input, industry string, table *catalog.Table) []string {
	fragments := []string{input}
	for _, sep := range separators {
		next := make([]string, 0, len(fragments))
		for _, f := range fragments {
			for _, part := range strings.Split(f, sep) {
				if part = strings.TrimSpace(part); part != "" {
					next = append(next, part)
				}
			}
		}
		fragments = next
	}

	services := make([]string, 0, MaxServices)
	for _, f := range fragments {
		if utf8.RuneCountInString(f) < minServiceRunes {
			continue
		}
		services = append(services, catalog.TitleCase(f))
		if len(services) == MaxServices {
			break
		}
	}
	if len(services) > 0 {
		return services
	}

	if table != nil {
		if defaults := table.Services(industry); len(defaults) > 0 {
			if len(defaults) > fallbackServiceCount {
				defaults = defaults[:fallbackServiceCount]
			}
			return defaults
		}
	}
	return []string{"Main Service"}
}

// ParseBusinessDetails pulls an email and a phone number out of free text and
// keeps the whole answer as the business description.
func ParseBusinessDetails(input string) domain.BusinessDetails {
	d := domain.BusinessDetails{Description: input}
	if m := emailPattern.FindString(input); m != "" {
		d.Email = m
	}
	if m := phonePattern.FindString(input); m != "" {
		d.Phone = strings.TrimSpace(m)
	}
	return d
}

// ParseTone picks the content tone named in input, defaulting to professional.
func ParseTone(input string) string {
	lower := strings.ToLower(input)
	switch {
	case strings.Contains(lower, domain.ToneFriendly):
		return domain.ToneFriendly
	case strings.Contains(lower, domain.ToneCreative):
		return domain.ToneCreative
	default:
		return domain.ToneProfessional
	}
}

// ParseTemplateChoice resolves the user's template answer. Only the universal
// template is offered, so every answer selects it.
func ParseTemplateChoice(string) string {
	return domain.DefaultTemplateID
}
