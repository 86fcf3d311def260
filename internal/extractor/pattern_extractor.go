package extractor

import (
	"regexp"
	"strings"

	"reposcope/internal/domain"
)

// defaultKeywords are the declaration-like tokens an identifier may follow.
var defaultKeywords = []string{
	"class", "function", "def", "const", "let", "var",
	"interface", "type", "component", "API", "endpoint", "service", "module",
}

// rule pairs a declaration keyword with its compiled capture pattern.
// Keyword matching is case-insensitive; the captured identifier keeps
// the case it was first seen with.
type rule struct {
	keyword string
	capture *regexp.Regexp
}

// PatternExtractor finds candidate entity names by applying an ordered
// list of keyword rules, and infers dependency edges from entity
// co-occurrence within a chunk.
type PatternExtractor struct {
	rules []rule
}

// NewPatternExtractor builds the default rule set plus any extra keywords.
func NewPatternExtractor(extraKeywords []string) *PatternExtractor {
	keywords := append(append([]string{}, defaultKeywords...), extraKeywords...)
	rules := make([]rule, 0, len(keywords))
	for _, kw := range keywords {
		rules = append(rules, rule{
			keyword: kw,
			capture: regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(kw) + `\s+([\p{L}\p{N}_]+)`),
		})
	}
	return &PatternExtractor{rules: rules}
}

// ExtractEntities unions every rule's captures across all chunks.
// The result is an ordered set: duplicates collapse, first occurrence
// fixes the position so later stages iterate deterministically.
func (p *PatternExtractor) ExtractEntities(chunks []domain.Chunk) []string {
	seen := make(map[string]struct{})
	var entities []string
	for _, chunk := range chunks {
		for _, r := range p.rules {
			for _, m := range r.capture.FindAllStringSubmatch(chunk.Text, -1) {
				name := m[1]
				if _, ok := seen[name]; ok {
					continue
				}
				seen[name] = struct{}{}
				entities = append(entities, name)
			}
		}
	}
	return entities
}

// FindDependencies emits a directed edge for every ordered pair of
// distinct entities found in the same chunk. The per-chunk scan walks
// the entity list in the order given, so edge direction reflects that
// scan order, not where the names sit in the chunk text. Deliberately
// quadratic in the number of co-occurring entities.
func (p *PatternExtractor) FindDependencies(chunks []domain.Chunk, entities []string) []domain.Edge {
	var deps []domain.Edge
	for _, chunk := range chunks {
		lower := strings.ToLower(chunk.Text)
		var found []string
		for _, e := range entities {
			if strings.Contains(lower, strings.ToLower(e)) {
				found = append(found, e)
			}
		}
		for i, source := range found {
			for _, target := range found[i+1:] {
				if source != target {
					deps = append(deps, domain.Edge{Source: source, Target: target})
				}
			}
		}
	}
	return deps
}
