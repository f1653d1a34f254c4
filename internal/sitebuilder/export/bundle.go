// Package export packages a completed website into a downloadable zip archive.
package export

import (
	"archive/zip"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/catalog"
	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/domain"
)

// File is one entry of a bundle.
type File struct {
	Name string
	Body []byte
}

// Bundle is the exported site, entries in archive order.
type Bundle struct {
	Filename string
	Modified time.Time
	Files    []File
}

// Build collects the files of a completed project.
func Build(p *domain.Project, services []domain.Service) (*Bundle, error) {
	if p.Status != domain.StatusCompleted || strings.TrimSpace(p.FinalHTML) == "" {
		return nil, domain.ErrProjectNotCompleted
	}

	modified := p.CreatedAt
	if p.CompletedAt != nil {
		modified = *p.CompletedAt
	}

	return &Bundle{
		Filename: Filename(p.BusinessName),
		Modified: modified.UTC().Truncate(time.Second),
		Files: []File{
			{Name: "index.html", Body: []byte(p.FinalHTML)},
			{Name: "style.css", Body: []byte(p.FinalCSS)},
			{Name: "project-info.txt", Body: []byte(projectInfo(p, services))},
			{Name: "README.txt", Body: []byte(readme(p))},
		},
	}, nil
}

// Filename is the download name for a business, spaces replaced by underscores.
func Filename(businessName string) string {
	name := strings.ReplaceAll(strings.TrimSpace(businessName), " ", "_")
	if name == "" {
		name = "site"
	}
	return name + "_website.zip"
}

// WriteZip writes the bundle as a deflated zip. The same bundle always yields
// the same bytes.
func (b *Bundle) WriteZip(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, f := range b.Files {
		hdr := &zip.FileHeader{
			Name:     f.Name,
			Method:   zip.Deflate,
			Modified: b.Modified,
		}
		fw, err := zw.CreateHeader(hdr)
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", f.Name, err)
		}
		if _, err := fw.Write(f.Body); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return nil
}

func projectInfo(p *domain.Project, services []domain.Service) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Business Name: %s\n", p.BusinessName)
	fmt.Fprintf(&b, "Industry: %s\n", catalog.Title(p.Industry))
	fmt.Fprintf(&b, "Project Type: %s\n", p.PageType)
	b.WriteString("Services:\n")
	for _, s := range services {
		fmt.Fprintf(&b, "- %s\n", s.Name)
	}
	fmt.Fprintf(&b, "Location: %s\n", p.Location)
	fmt.Fprintf(&b, "Contact: %s | %s\n", p.Email, p.Phone)
	fmt.Fprintf(&b, "Status: %s\n", p.Status)
	fmt.Fprintf(&b, "Created: %s\n", p.CreatedAt.Format("2006-01-02"))
	return b.String()
}

func readme(p *domain.Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Website\n\n", p.BusinessName)
	b.WriteString("Files included:\n")
	b.WriteString("- index.html: Main website file\n")
	b.WriteString("- style.css: Website styling\n")
	b.WriteString("- project-info.txt: Project details\n\n")
	b.WriteString("To use:\n")
	b.WriteString("1. Upload files to your web hosting\n")
	b.WriteString("2. Set index.html as your main page\n")
	b.WriteString("3. Your website is ready!\n\n")
	fmt.Fprintf(&b, "Created: %s\n", p.CreatedAt.Format("2006-01-02"))
	fmt.Fprintf(&b, "Project ID: %s\n", p.ID)
	return b.String()
}
