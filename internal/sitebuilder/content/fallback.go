package content

import (
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/catalog"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/domain"
)

// FallbackWebsiteContent builds copy from the business facts alone. Every key is set.
func FallbackWebsiteContent(info BusinessInfo) *domain.WebsiteContent {
	name := orDefault(info.CompanyName, "Your Business")
	industry := orDefault(catalog.Humanize(info.Industry), "business")
	title := catalog.TitleCase(industry)

	services := make(map[string]string, len(info.Services))
	for _, s := range info.Services {
		services[s] = FallbackServiceDescription(s)
	}

	return &domain.WebsiteContent{
		HeroHeadline:    fmt.Sprintf("Professional %s Services", title),
		HeroDescription: fmt.Sprintf("Welcome to %s. We provide excellent %s services with dedication and expertise.", name, industry),
		AboutContent:    fmt.Sprintf("%s is a trusted %s company committed to delivering exceptional results.", name, industry),
		Services:        services,
		ServicesContent: fmt.Sprintf("We offer comprehensive %s solutions tailored to meet your specific needs.", industry),
		ContactContent:  fmt.Sprintf("Get in touch with %s today to discuss your requirements.", name),
		MetaDescription: fmt.Sprintf("%s - Professional %s services. Contact us for expert solutions.", name, industry),
	}
}

// FallbackServiceDescription is the stock one-liner for a service.
func FallbackServiceDescription(service string) string {
	return fmt.Sprintf("Professional %s services tailored to your needs.", strings.ToLower(service))
}

// fillWebsiteContent copies fallback values into every empty field of c.
func fillWebsiteContent(c, fb *domain.WebsiteContent) {
	fill := func(dst *string, src string) {
		if strings.TrimSpace(*dst) == "" {
			*dst = src
		}
	}
	fill(&c.HeroHeadline, fb.HeroHeadline)
	fill(&c.HeroDescription, fb.HeroDescription)
	fill(&c.AboutContent, fb.AboutContent)
	fill(&c.ServicesContent, fb.ServicesContent)
	fill(&c.ContactContent, fb.ContactContent)
	fill(&c.MetaDescription, fb.MetaDescription)

	if c.Services == nil {
		c.Services = make(map[string]string, len(fb.Services))
	}
	for name, desc := range fb.Services {
		if strings.TrimSpace(c.Services[name]) == "" {
			c.Services[name] = desc
		}
	}
}

// FallbackRecognition acknowledges a business from the static sentence table.
func FallbackRecognition(table *catalog.Table, businessName string, labels []string) string {
	if len(labels) > 1 {
		titles := make([]string, 0, len(labels))
		for _, l := range labels {
			titles = append(titles, catalog.Title(l))
		}
		return fmt.Sprintf("Excellent! **%s** spans multiple industries: **%s**. I'll help you create a comprehensive website!",
			businessName, strings.Join(titles, " & "))
	}

	primary := ""
	if len(labels) == 1 {
		primary = labels[0]
	}
	if msg, ok := table.Recognition(primary, businessName); ok {
		return msg
	}
	return fmt.Sprintf("Perfect! I can see that **%s** is in the **%s** industry.", businessName, catalog.Title(primary))
}

// FallbackBlogPost is the stock blog copy for topic.
func FallbackBlogPost(topic string) *domain.BlogPost {
	return &domain.BlogPost{
		Title:           "How to " + topic,
		Excerpt:         fmt.Sprintf("Learn practical strategies for %s to grow your online business.", topic),
		Content:         fmt.Sprintf("This comprehensive guide covers everything you need to know about %s...", topic),
		MetaDescription: fmt.Sprintf("Learn %s with our step-by-step guide for small businesses.", topic),
		Tags:            "business, tutorial, online, growth",
	}
}
