// Package catalog holds the static industry table: classification keywords,
// candidate services and recognition sentences per industry label.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	// UnionLimit bounds the unioned suggestion list.
	UnionLimit = 10
	// PreviewLimit bounds how many suggestions are shown to the user.
	PreviewLimit = 8
)

//go:embed industries.yaml
var industriesYAML []byte

// Industry is one row of the industry table.
type Industry struct {
	Label       string   `yaml:"label"`
	Keywords    []string `yaml:"keywords"`
	Services    []string `yaml:"services"`
	Recognition string   `yaml:"recognition,omitempty"`
}

// Table is the immutable industry table.
type Table struct {
	Industries      []Industry `yaml:"industries"`
	Fallback        Industry   `yaml:"fallback"`
	DefaultServices []string   `yaml:"default_services"`

	byLabel map[string]*Industry
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the embedded table. It panics if the embedded document is malformed.
func Default() *Table {
	defaultOnce.Do(func() {
		t, err := Parse(industriesYAML)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded industries.yaml: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// Parse decodes an industry table document.
func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to decode industry table: %w", err)
	}
	if len(t.Industries) == 0 {
		return nil, fmt.Errorf("industry table has no industries")
	}
	t.byLabel = make(map[string]*Industry, len(t.Industries)+1)
	for i := range t.Industries {
		ind := &t.Industries[i]
		if ind.Label == "" {
			return nil, fmt.Errorf("industry %d has no label", i)
		}
		if _, dup := t.byLabel[ind.Label]; dup {
			return nil, fmt.Errorf("duplicate industry label %q", ind.Label)
		}
		for k, kw := range ind.Keywords {
			ind.Keywords[k] = strings.ToLower(kw)
		}
		t.byLabel[ind.Label] = ind
	}
	if t.Fallback.Label != "" {
		t.byLabel[t.Fallback.Label] = &t.Fallback
	}
	return &t, nil
}

// Labels returns every industry label in table order, excluding the fallback.
func (t *Table) Labels() []string {
	out := make([]string, 0, len(t.Industries))
	for _, ind := range t.Industries {
		out = append(out, ind.Label)
	}
	return out
}

// Lookup returns the industry row for label.
func (t *Table) Lookup(label string) (Industry, bool) {
	ind, ok := t.byLabel[label]
	if !ok {
		return Industry{}, false
	}
	return *ind, true
}

// Services returns a copy of the candidate services for label.
func (t *Table) Services(label string) []string {
	ind, ok := t.byLabel[label]
	if !ok {
		return nil
	}
	return append([]string(nil), ind.Services...)
}

// ServicesOrDefault returns the candidate services for label, or the default list.
func (t *Table) ServicesOrDefault(label string) []string {
	if s := t.Services(label); len(s) > 0 {
		return s
	}
	return append([]string(nil), t.DefaultServices...)
}

// Union concatenates the candidate lists of labels in order, drops repeats
// keeping the first occurrence and truncates to limit.
func (t *Table) Union(labels []string, limit int) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, limit)
	for _, label := range labels {
		for _, s := range t.Services(label) {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	if len(out) == 0 {
		return append([]string(nil), t.DefaultServices...)
	}
	return out
}

// Recognition returns the per-industry acknowledgement for businessName, if the table has one.
func (t *Table) Recognition(label, businessName string) (string, bool) {
	ind, ok := t.byLabel[label]
	if !ok || ind.Recognition == "" {
		return "", false
	}
	return strings.ReplaceAll(ind.Recognition, "{name}", businessName), true
}

// Title turns a label such as "beauty_salon" into "Beauty Salon".
func Title(label string) string {
	return TitleCase(strings.ReplaceAll(label, "_", " "))
}

// TitleCase capitalises the first letter of each word. Casers keep state, so
// one is built per call.
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// Humanize turns a label into lower-case words, "beauty_salon" -> "beauty salon".
func Humanize(label string) string {
	return strings.ReplaceAll(label, "_", " ")
}
