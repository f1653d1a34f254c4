// Package render turns a completed project into its one-page website.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/catalog"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/domain"
)

// Stylesheet is the fixed CSS shipped with every site.
const Stylesheet = `* { margin: 0; padding: 0; box-sizing: border-box; }
body { font-family: Arial, sans-serif; line-height: 1.6; }
header { background: #333; color: white; padding: 1rem; }
nav a { color: white; margin: 0 1rem; text-decoration: none; }
.hero { background: #f4f4f4; padding: 3rem 1rem; text-align: center; }
section { padding: 2rem 1rem; }
.services-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(300px, 1fr)); gap: 1rem; }
.service-card { background: #f9f9f9; padding: 1rem; border-radius: 5px; }
`

const defaultServiceCopy = "Professional service tailored to your needs."

var pageTemplate = template.Must(template.New("site").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Name}}</title>
    <meta name="description" content="{{.Meta}}">
    <link rel="stylesheet" href="style.css">
</head>
<body>
    <header>
        <h1>{{.Name}}</h1>
        <nav>
            <a href="#services">Services</a>
            <a href="#about">About</a>
            <a href="#contact">Contact</a>
        </nav>
    </header>
    <section class="hero">
        <h2>{{.Headline}}</h2>
        <p>{{.Description}}</p>
    </section>
    <section id="services">
        <h2>Our Services</h2>
        <div class="services-grid">
{{- range .Services}}
            <div class="service-card">
                <h3>{{.Name}}</h3>
                <p>{{.Copy}}</p>
            </div>
{{- end}}
        </div>
    </section>
    <section id="about">
        <h2>About Us</h2>
        <p>{{.About}}</p>
    </section>
    <section id="contact">
        <h2>Contact Us</h2>
        <p>Location: {{.Location}}</p>
        <p>Phone: {{.Phone}}</p>
        <p>Email: {{.Email}}</p>
    </section>
</body>
</html>
`))

type serviceCard struct {
	Name string
	Copy string
}

type page struct {
	Name        string
	Meta        string
	Headline    string
	Description string
	Services    []serviceCard
	About       string
	Location    string
	Phone       string
	Email       string
}

// Site renders the HTML page and stylesheet for p.
func Site(p *domain.Project, services []domain.Service) (html, css string, err error) {
	if strings.TrimSpace(p.BusinessName) == "" {
		return "", "", fmt.Errorf("render site: %w", domain.ErrIncompleteSite)
	}

	content := p.GeneratedContent
	if content == nil {
		content = &domain.WebsiteContent{}
	}

	pg := page{
		Name:        p.BusinessName,
		Meta:        content.MetaDescription,
		Headline:    firstNonEmpty(content.HeroHeadline, Tagline(p.Industry)),
		Description: firstNonEmpty(content.HeroDescription, p.Description),
		About:       firstNonEmpty(p.Description, content.AboutContent),
		Location:    p.Location,
		Phone:       p.Phone,
		Email:       p.Email,
	}
	for _, s := range services {
		pg.Services = append(pg.Services, serviceCard{
			Name: s.Name,
			Copy: firstNonEmpty(s.Description, content.Services[s.Name], defaultServiceCopy),
		})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pg); err != nil {
		return "", "", fmt.Errorf("render site: %w", err)
	}
	return buf.String(), Stylesheet, nil
}

// Tagline is the hero line used when no generated headline exists.
func Tagline(industry string) string {
	if industry == "" {
		return "Professional Services You Can Trust"
	}
	return fmt.Sprintf("Professional %s Services", catalog.Title(industry))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
