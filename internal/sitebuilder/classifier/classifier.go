// Package classifier maps free text such as a business name to an ordered
// list of industry labels.
package classifier

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/GoSim-25-26J-441/site-builder-backend/internal/sitebuilder/catalog"
)

// Unknown is the sole label returned when nothing matched.
const Unknown = "unknown"

type matcher struct {
	phrase  string
	pattern *regexp.Regexp
}

// wordChar is any Unicode letter, mark, digit or underscore. RE2's \b only
// knows ASCII, so "pet" would otherwise match inside "petúnia".
const wordChar = `\p{L}\p{M}\p{N}_`

func wordPattern(kw string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[^` + wordChar + `])(` + regexp.QuoteMeta(kw) + `)(?:$|[^` + wordChar + `])`)
}

// index returns the offset of the first match in text, or -1.
func (m matcher) index(text string) int {
	if m.pattern == nil {
		return strings.Index(text, m.phrase)
	}
	loc := m.pattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return -1
	}
	return loc[2]
}

type industryMatchers struct {
	label    string
	matchers []matcher
}

// Classifier is safe for concurrent use; it holds only compiled, read-only patterns.
type Classifier struct {
	industries      []industryMatchers
	fallbackLabel   string
	fallbackPhrases []string
}

// New compiles the keyword patterns of table.
func New(table *catalog.Table) *Classifier {
	c := &Classifier{
		industries:    make([]industryMatchers, 0, len(table.Industries)),
		fallbackLabel: table.Fallback.Label,
	}
	for _, ind := range table.Industries {
		im := industryMatchers{label: ind.Label}
		for _, kw := range ind.Keywords {
			if strings.Contains(kw, " ") {
				im.matchers = append(im.matchers, matcher{phrase: kw})
				continue
			}
			im.matchers = append(im.matchers, matcher{
				phrase:  kw,
				pattern: wordPattern(kw),
			})
		}
		c.industries = append(c.industries, im)
	}
	for _, kw := range table.Fallback.Keywords {
		c.fallbackPhrases = append(c.fallbackPhrases, strings.ToLower(kw))
	}
	return c
}

var (
	defaultOnce sync.Once
	defaultC    *Classifier
)

// Default returns a classifier over the embedded catalog.
func Default() *Classifier {
	defaultOnce.Do(func() {
		defaultC = New(catalog.Default())
	})
	return defaultC
}

// Classify is Default().Classify(text).
func Classify(text string) []string {
	return Default().Classify(text)
}

// Classify returns every industry whose keywords occur in text, ordered by
// where in the text they first occur. The result is never empty.
func (c *Classifier) Classify(text string) []string {
	lower := strings.ToLower(text)

	type hit struct {
		label  string
		offset int
		order  int
	}
	var hits []hit
	for order, ind := range c.industries {
		first := -1
		for _, m := range ind.matchers {
			if at := m.index(lower); at >= 0 && (first < 0 || at < first) {
				first = at
			}
		}
		if first >= 0 {
			hits = append(hits, hit{label: ind.label, offset: first, order: order})
		}
	}

	if len(hits) > 0 {
		sort.SliceStable(hits, func(i, j int) bool {
			if hits[i].offset != hits[j].offset {
				return hits[i].offset < hits[j].offset
			}
			return hits[i].order < hits[j].order
		})
		labels := make([]string, 0, len(hits))
		for _, h := range hits {
			labels = append(labels, h.label)
		}
		return labels
	}

	if c.fallbackLabel != "" {
		for _, kw := range c.fallbackPhrases {
			if strings.Contains(lower, kw) {
				return []string{c.fallbackLabel}
			}
		}
	}
	return []string{Unknown}
}

// Detected reports whether labels name a real industry.
func Detected(labels []string) bool {
	return len(labels) > 0 && labels[0] != Unknown
}

// Primary returns the first label, or Unknown.
func Primary(labels []string) string {
	if len(labels) == 0 {
		return Unknown
	}
	return labels[0]
}
