package service

import (
	"fmt"
	"html"
	"strings"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/catalog"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/domain"
)

const (
	msgWelcome = "Hello, I'm Clippy 2.0, I am here to help you build your website. What is the name of your business?"

	msgAskBusinessName   = "Please enter your business name (at least 2 characters). What would you like to call your business?"
	msgAskIndustry       = "Please tell me what type of business you have so I can help you better!"
	msgAskServices       = "Please tell me about the services you offer. What does your business do for customers?"
	msgAskDetails        = "Please share some information about your business - even a brief description helps!"
	msgAskTemplate       = "Please choose a template (1, 2, or 3) or tell me what style you prefer!"
	msgAskReviewFeedback = "Please let me know what you think of the content - any changes needed?"
	msgAskBuild          = `Please type "BUILD MY WEBSITE" to create your site, or let me know if you want to make changes!`
)

const msgIndustryCategories = `**Please choose from these popular categories:**

🏗️ **Construction & Building** - Contractors, renovations, building services
💻 **Technology & IT** - Software, web services, tech consulting
🍽️ **Restaurant & Food** - Restaurants, catering, food services
🏥 **Healthcare & Wellness** - Medical, dental, fitness, wellness
🚗 **Automotive** - Car repair, maintenance, auto services
💼 **Professional Services** - Consulting, legal, accounting, business services
🎨 **Creative & Design** - Photography, graphic design, arts
🛍️ **Retail & E-commerce** - Stores, online shopping, products

**Or simply tell me what type of business you have!**`

const msgServicesAlternatives = `**Or you can also:**
- Simply type your services in your own words
- Describe what your business does
- Don't worry about getting it perfect - I'll help you refine everything!`

const msgTooLong = `I understand you'd like shorter content!

I have two options:

**Option 1: Shorter Content** ✂️
I'll create a more concise version that fits perfectly on a one-page site.

**Option 2: Multi-Page Website** 📄
Keep the detailed content but spread it across multiple pages (Home, Services, About, Contact).

Which would you prefer?
- Type "shorter" for concise one-page content
- Type "multi-page" to upgrade to a multi-page website`

const msgTooShort = `Perfect! I'll add more detailed content to better showcase your business.

What would you like me to expand on?
• More detailed service descriptions
• Longer about us section
• Customer testimonials section
• Your experience and expertise
• Company history and values

Or I can expand everything to create richer, more comprehensive content?`

const msgBeSpecific = `I'd love to help you perfect the content!

Please be specific about what you'd like me to change:

• "Make it shorter" - Reduce content length
• "Make it longer" - Add more details
• "Change the about section" - Modify specific parts
• "More professional tone" - Adjust writing style
• "Add [specific information]" - Include details

What specifically would you like me to adjust?`

const msgBuildFailed = `I encountered an issue building your final website files.
Don't worry - all your content is saved!

Our technical team will review your project and have your website ready shortly.
You'll receive an email with your completed website within 24 hours.

Thank you for your patience! 😊`

const msgWhatToChange = `No problem! What would you like to review or change?

• Business information
• Services offered
• Website content
• Template choice
• Content tone

Just let me know what to adjust, or type "BUILD MY WEBSITE" when you're ready! 🚀`

const msgCompletion = `Your website project is complete! 🎉

If you need any assistance:
• Contact our support team
• Request design changes
• Upgrade to multi-page website
• Add new features

We're here to help your business succeed online! 😊`

// esc escapes text that came from the user or a provider. Messages carry
// HTML markup, so nothing untrusted is inserted raw.
func esc(s string) string {
	return html.EscapeString(s)
}

func serviceChecklist(businessName string, services []string) string {
	var b strings.Builder
	b.WriteString("Now, let's talk about your services. I've prepared some common services for your industry type.\n")
	b.WriteString("**Please select which services you offer:**\n\n")
	b.WriteString(`<div class="services-selection mt-3 mb-3">` + "\n")

	shown := services
	if len(shown) > catalog.PreviewLimit {
		shown = shown[:catalog.PreviewLimit]
	}
	for i, name := range shown {
		s := esc(name)
		id := fmt.Sprintf("service_%d", i+1)
		b.WriteString(`<div class="form-check mb-2">` + "\n")
		fmt.Fprintf(&b, `<input class="form-check-input" type="checkbox" id="%s" name="services" value="%s">`+"\n", id, s)
		fmt.Fprintf(&b, `<label class="form-check-label" for="%s"><strong>%s</strong></label>`+"\n", id, s)
		b.WriteString("</div>\n")
	}
	if len(services) > catalog.PreviewLimit {
		b.WriteString(`<p class="text-muted mt-2"><em>...and we can add more services later!</em></p>` + "\n")
	}
	b.WriteString("</div>\n\n")
	b.WriteString(`<div class="mt-4 mb-3">` + "\n")
	b.WriteString(`<button type="button" class="btn btn-primary" onclick="submitSelectedServices()">✅ Submit Selected Services</button>` + "\n")
	b.WriteString("</div>\n\n")
	b.WriteString(msgServicesAlternatives)
	fmt.Fprintf(&b, "\n\nWhat services does **%s** provide? 🛠️", esc(businessName))
	return b.String()
}

func msgNameRecognized(businessName, recognition string, services []string) string {
	return fmt.Sprintf("Great! **%s** is a wonderful name! 🎉\n\n%s\n\n%s",
		esc(businessName), esc(recognition), serviceChecklist(businessName, services))
}

func msgNameAskIndustry(businessName string) string {
	return fmt.Sprintf("Great! **%s** is a wonderful name! 🎉\n\n"+
		"Now, to help me create the perfect website for you, what industry or profession best describes your business?\n\n%s",
		esc(businessName), msgIndustryCategories)
}

func msgIndustryRecognized(recognition, businessName string, services []string) string {
	return esc(recognition) + "\n\n" + serviceChecklist(businessName, services)
}

func msgServicesNoted(businessName string, services []domain.Service) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Excellent! I've noted that **%s** offers these services:\n\n", esc(businessName))
	for _, s := range services {
		fmt.Fprintf(&b, "• **%s**\n", esc(s.Name))
	}
	b.WriteString("\nNow I need a few more details to create compelling content for your website:\n\n")
	b.WriteString(`**1. Where are you located?** - City, region, or "We serve [area]"` + "\n\n")
	b.WriteString("**2. Contact information:**\n- Phone number (optional)\n- Email address (optional)\n\n")
	b.WriteString("You can answer all at once or one at a time - whatever feels comfortable! 😊")
	return b.String()
}

func msgTemplatePresentation(businessName, industry string) string {
	return fmt.Sprintf(`Fantastic! I have all the information I need about **%s**! 🎉

Perfect! I've designed a **professional, universal template** that's perfect for your business in the %s industry.

This template features:
• Modern, responsive design that works on all devices
• Professional service showcase section
• About section with your company story
• Contact form and business information
• Fully customizable colors and fonts
• Fast loading and SEO optimized

**Ready to Create Your Website!**
💡 Type "yes" or "1" to use this template.
✨ We'll customize colors, content, and styling to match your business perfectly!`,
		esc(businessName), orIndustry(industry))
}

func msgToneQuestion(templateID, businessName string) string {
	return fmt.Sprintf(`Perfect choice! ✨ I'll use **%s** for **%s**.

🤖 **Now I'm generating your website content...**

I'm creating:
• Compelling headlines and descriptions
• Professional service descriptions
• About us section highlighting your expertise
• Contact information and call-to-actions

**While I work, let me ask:**
What tone would you prefer for your website content?

📝 **Professional** - Formal, trustworthy, business-focused
😊 **Friendly** - Warm, approachable, conversational
🎨 **Creative** - Unique, artistic, standout messaging

Type "professional", "friendly", or "creative" (or I'll use professional as default).`,
		templateID, esc(businessName))
}

func msgContentPreview(businessName string, c *domain.WebsiteContent, services []domain.Service) string {
	var b strings.Builder
	b.WriteString("🎉 **Content Generated Successfully!**\n\n")
	fmt.Fprintf(&b, "Here's what I've created for **%s**:\n\n", esc(businessName))
	b.WriteString("**🏆 HERO SECTION:**\n")
	fmt.Fprintf(&b, "*%s*\n\n%s\n\n", esc(c.HeroHeadline), esc(c.HeroDescription))
	b.WriteString("**📋 SERVICES SECTION:**")

	for i, s := range services {
		if i == 3 {
			fmt.Fprintf(&b, "\n...and %d more services", len(services)-3)
			break
		}
		desc := c.Services[s.Name]
		if desc == "" {
			desc = fmt.Sprintf("Professional %s services tailored to your needs.", strings.ToLower(s.Name))
		}
		fmt.Fprintf(&b, "\n• **%s:** %s", esc(s.Name), esc(desc))
	}

	fmt.Fprintf(&b, "\n\n**ℹ️ ABOUT US:**\n%s\n\n---\n\n", esc(c.AboutContent))
	b.WriteString(`**What do you think?**

✅ **"Looks great!"** - Proceed with this content
✏️ **"Change [section]"** - Request specific changes
📏 **"Too long"** - I'll create a shorter version
📏 **"Too short"** - I'll expand the content
🎨 **"Different tone"** - I'll adjust the writing style

What would you like to do?`)
	return b.String()
}

func msgFinalSummary(p *domain.Project, serviceCount int) string {
	return fmt.Sprintf(`🎉 **Excellent!** I'm so glad you love the content for **%s**!

**📋 FINAL PROJECT SUMMARY:**

✅ **Business:** %s
✅ **Industry:** %s
✅ **Services:** %d services defined
✅ **Template:** %s
✅ **Content:** %s tone
✅ **Page Type:** One-page website

**🚀 Ready to build your website?**

Once you confirm, I'll:
• Generate the final HTML and CSS code
• Apply your chosen template and styling
• Create a fully functional website
• Provide you with the files and instructions

**Type "BUILD MY WEBSITE" to create your site!** 🎯

Or if you want to make any last-minute changes, just let me know what to adjust.`,
		esc(p.BusinessName), esc(p.BusinessName), orIndustry(p.Industry), serviceCount, p.TemplateID, catalog.TitleCase(p.ContentTone))
}

func msgChangeRequest(input string) string {
	return fmt.Sprintf(`I'd be happy to make those changes!

You mentioned: "%s"

To make the perfect adjustments:

**Which section needs changes?**
• Hero headline/description
• Service descriptions
• About us content
• Overall tone/style

**What specific changes?**
• Different wording
• More/less formal tone
• Add specific information
• Remove certain parts

Please tell me exactly what to change and I'll update it right away! ✨`, esc(input))
}

func msgCongratulations(businessName string) string {
	return fmt.Sprintf(`🎉🎊 **CONGRATULATIONS!** 🎊🎉

Your website for **%s** is now complete!

**✨ What you've got:**
• Professional one-page website
• Mobile-responsive design
• SEO-optimized content
• Contact forms and call-to-actions
• Modern, fast-loading code

**🚀 Next Steps:**
1. **Preview your website** - Check the design and content
2. **Request hosting** - We'll deploy it to your domain
3. **Make final tweaks** - Small adjustments as needed
4. **Go live!** - Launch your professional web presence

**📞 Ready to publish?**
Your website is saved in your dashboard. Contact our team to:
• Set up hosting and domain
• Make any final adjustments
• Launch your site to the world!

Thank you for letting me help build your website! 😊

**Clippy 2.0 signing off!** ✨`, esc(businessName))
}

// msgDefaultIndustryRecognition is escaped by msgIndustryRecognized.
func msgDefaultIndustryRecognition(businessName, industry string) string {
	return fmt.Sprintf("Perfect! I understand that **%s** is in the **%s** industry.", businessName, catalog.Title(industry))
}

func orIndustry(label string) string {
	if label == "" {
		return "General Business"
	}
	return catalog.Title(label)
}
