package content

import (
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/catalog"
)

const (
	websiteSystem = "You are an expert copywriter specializing in business websites. " +
		"Generate compelling, professional content that drives conversions."
	recognitionSystem = "You are Clippy 2.0, an enthusiastic AI assistant that helps build websites. " +
		"You're knowledgeable about different industries and always encouraging. Keep responses concise but warm."
	blogSystem = "You are an expert business advisor and content creator. " +
		"Write practical, actionable content that helps small businesses succeed online."
)

var blogLanguages = map[string]string{
	"en": "English",
	"nl": "Dutch",
	"de": "German",
	"fr": "French",
	"es": "Spanish",
	"pt": "Portuguese",
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func websitePrompt(info BusinessInfo) string {
	industry := orDefault(catalog.Humanize(info.Industry), "business")
	var b strings.Builder
	fmt.Fprintf(&b, "Generate professional website content for a %s company:\n\n", industry)
	fmt.Fprintf(&b, "Company Name: %s\n", orDefault(info.CompanyName, "Business"))
	fmt.Fprintf(&b, "Industry: %s\n", orDefault(catalog.Title(info.Industry), "General Business"))
	fmt.Fprintf(&b, "Location: %s\n", orDefault(info.Location, "Not specified"))
	fmt.Fprintf(&b, "Services: %s\n", orDefault(strings.Join(info.Services, ", "), "Professional services"))
	fmt.Fprintf(&b, "Target Audience: %s\n", orDefault(info.TargetAudience, "Business clients"))
	fmt.Fprintf(&b, "Tone: %s\n\n", orDefault(info.Tone, "professional"))
	b.WriteString("Generate content for:\n")
	b.WriteString("1. Homepage hero section (compelling headline + description)\n")
	b.WriteString("2. About Us page content\n")
	b.WriteString("3. Services overview and a one-sentence description of each listed service\n")
	b.WriteString("4. Contact page content\n")
	b.WriteString("5. SEO meta description\n\n")
	b.WriteString("Make it engaging, professional, and conversion-focused.\n")
	b.WriteString("Return as JSON format with keys: hero_headline, hero_description, about_content, ")
	b.WriteString("services (an object mapping each service name to its description), services_content, ")
	b.WriteString("contact_content, meta_description")
	return b.String()
}

func recognitionPrompt(businessName string, labels []string) string {
	var industryContext string
	if len(labels) > 1 {
		titles := make([]string, 0, len(labels))
		for _, l := range labels {
			titles = append(titles, catalog.Title(l))
		}
		industryContext = "multiple industries: " + strings.Join(titles, ", ")
	} else {
		industryContext = "the " + catalog.Title(labels[0]) + " industry"
	}

	return fmt.Sprintf(`A business owner just told me their business name is %q and I've detected they operate in %s.

As Clippy 2.0, a friendly AI website builder assistant, I need to:
1. Give an enthusiastic, personalized recognition of their business
2. Suggest 8-10 relevant services they might offer
3. Keep the tone conversational and encouraging

Make the recognition message feel personal and specific to their business name and industry.
For multi-industry businesses, acknowledge how they combine different services.

Return as JSON:
{
    "recognition_message": "Enthusiastic recognition message mentioning the business name and industry",
    "suggested_services": ["Service 1", "Service 2", "..."]
}`, businessName, industryContext)
}

func blogPrompt(req BlogRequest) string {
	return fmt.Sprintf(`Write a comprehensive %s blog post about: %s

Target audience: Small business owners and entrepreneurs
Language: %s
Focus: Actionable advice that helps grow online business

Include:
1. Engaging title
2. Brief excerpt/summary (max 300 characters)
3. Full article content (800-1200 words)
4. SEO meta description
5. Suggested tags (comma-separated)

Make it practical, actionable, and relate back to website/online business success.
Return as JSON: title, excerpt, content, meta_description, tags`,
		orDefault(req.ContentType, "tutorial"), req.Topic, orDefault(blogLanguages[req.Language], "English"))
}
