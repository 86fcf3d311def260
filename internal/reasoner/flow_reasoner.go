package reasoner

import (
	"sort"
	"strings"
	"unicode"

	"reposcope/internal/graph"
)

// functionKeywords mark node names that read like callable behaviour.
var functionKeywords = []string{
	"handler", "process", "create", "update", "delete", "fetch", "get", "post", "put",
}

// Fixed phrasings used when the graph carries no structure at all.
var (
	fallbackFlow       = []string{"System initializes", "Processes input", "Returns output"}
	fallbackComponents = []string{"core system", "input handler", "output formatter"}
	fallbackFunctions  = []string{"main", "init", "run"}
)

// FlowReasoner derives an execution narrative and ranked name lists from
// a dependency graph.
type FlowReasoner struct {
	maxFlowSteps       int
	cycleFallbackNodes int
	maxComponents      int
	maxFunctions       int
}

func NewFlowReasoner(maxFlowSteps, cycleFallbackNodes, maxComponents, maxFunctions int) *FlowReasoner {
	if maxFlowSteps <= 0 {
		maxFlowSteps = 8
	}
	if cycleFallbackNodes <= 0 {
		cycleFallbackNodes = 10
	}
	if maxComponents <= 0 {
		maxComponents = 5
	}
	if maxFunctions <= 0 {
		maxFunctions = 5
	}
	return &FlowReasoner{
		maxFlowSteps:       maxFlowSteps,
		cycleFallbackNodes: cycleFallbackNodes,
		maxComponents:      maxComponents,
		maxFunctions:       maxFunctions,
	}
}

// BuildExecutionFlow narrates a linear pass through the graph in
// topological order. A cyclic graph falls back to the first nodes in
// insertion order. The closing "Return result from" phrasing only
// appears when the step slice reaches the genuinely last node of the
// full ordering; longer flows end on a plain processing step.
func (r *FlowReasoner) BuildExecutionFlow(g *graph.Digraph) []string {
	if g.NodeCount() == 0 {
		return append([]string{}, fallbackFlow...)
	}
	order, err := g.TopoSort()
	if err != nil {
		order = g.Nodes()
		if len(order) > r.cycleFallbackNodes {
			order = order[:r.cycleFallbackNodes]
		}
	}
	limit := len(order)
	if limit > r.maxFlowSteps {
		limit = r.maxFlowSteps
	}
	steps := make([]string, 0, limit)
	for i := 0; i < limit; i++ {
		switch {
		case i == 0:
			steps = append(steps, "Initialize "+order[i])
		case i == len(order)-1:
			steps = append(steps, "Return result from "+order[i])
		default:
			steps = append(steps, "Process "+order[i])
		}
	}
	return steps
}

// ExtractKeyComponents ranks nodes by degree centrality, ties broken by
// insertion order, and returns the top names.
func (r *FlowReasoner) ExtractKeyComponents(g *graph.Digraph) []string {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return append([]string{}, fallbackComponents...)
	}
	scores := g.DegreeCentrality()
	idxs := make([]int, len(nodes))
	for i := range idxs {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(a, b int) bool { return scores[idxs[a]] > scores[idxs[b]] })
	limit := len(idxs)
	if limit > r.maxComponents {
		limit = r.maxComponents
	}
	out := make([]string, 0, limit)
	for _, idx := range idxs[:limit] {
		out = append(out, nodes[idx])
	}
	return out
}

// ExtractKeyFunctions keeps nodes whose name carries a function-like
// keyword. Keywords match at name-segment boundaries (camelCase humps
// and separators), so getUser matches "get" while Widget does not. With
// no keyword hits it degrades to the first nodes unfiltered, and with
// no nodes at all to a fixed triple.
func (r *FlowReasoner) ExtractKeyFunctions(g *graph.Digraph) []string {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return append([]string{}, fallbackFunctions...)
	}
	var functions []string
	for _, node := range nodes {
		if matchesFunctionKeyword(node) {
			functions = append(functions, node)
		}
	}
	if len(functions) == 0 {
		functions = nodes
	}
	if len(functions) > r.maxFunctions {
		functions = functions[:r.maxFunctions]
	}
	return functions
}

func matchesFunctionKeyword(name string) bool {
	for _, seg := range nameSegments(name) {
		for _, kw := range functionKeywords {
			if strings.HasPrefix(seg, kw) {
				return true
			}
		}
	}
	return false
}

// nameSegments splits an identifier into lowercase segments at camelCase
// humps and non-alphanumeric separators. HTTPServer yields [http server].
func nameSegments(name string) []string {
	var segs []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			segs = append(segs, strings.ToLower(string(cur)))
			cur = nil
		}
	}
	runes := []rune(name)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && i > 0 &&
			(unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
			flush()
		}
		cur = append(cur, r)
	}
	flush()
	return segs
}
