package reasoner

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reposcope/internal/graph"
)

func newDefault() *FlowReasoner { return NewFlowReasoner(0, 0, 0, 0) }

func TestBuildExecutionFlow_EmptyGraphFallback(t *testing.T) {
	flow := newDefault().BuildExecutionFlow(graph.New())

	assert.Equal(t, []string{"System initializes", "Processes input", "Returns output"}, flow)
}

func TestBuildExecutionFlow_LinearChain(t *testing.T) {
	g := graph.New()
	g.AddEdge("Parser", "Engine")
	g.AddEdge("Engine", "Writer")

	flow := newDefault().BuildExecutionFlow(g)

	assert.Equal(t, []string{
		"Initialize Parser",
		"Process Engine",
		"Return result from Writer",
	}, flow)
}

func TestBuildExecutionFlow_SingleNode(t *testing.T) {
	g := graph.New()
	g.Add("Core")

	flow := newDefault().BuildExecutionFlow(g)

	assert.Equal(t, []string{"Initialize Core"}, flow)
}

func TestBuildExecutionFlow_CycleFallsBackToInsertionOrder(t *testing.T) {
	g := graph.New()
	g.AddEdge("A", "B")
	g.AddEdge("B", "C")
	g.AddEdge("C", "A")

	flow := newDefault().BuildExecutionFlow(g)

	assert.Equal(t, []string{
		"Initialize A",
		"Process B",
		"Return result from C",
	}, flow)
}

func TestBuildExecutionFlow_LongChainTruncatesWithoutClosingStep(t *testing.T) {
	g := graph.New()
	var prev string
	for i := 1; i <= 12; i++ {
		name := fmt.Sprintf("stage%02d", i)
		if prev != "" {
			g.AddEdge(prev, name)
		} else {
			g.Add(name)
		}
		prev = name
	}

	flow := newDefault().BuildExecutionFlow(g)

	require.Len(t, flow, 8)
	assert.Equal(t, "Initialize stage01", flow[0])
	// The final node of the full ordering sits beyond the truncation, so
	// no step uses the closing phrasing.
	for _, step := range flow {
		assert.False(t, strings.HasPrefix(step, "Return result from"), step)
	}
	assert.Equal(t, "Process stage08", flow[7])
}

func TestExtractKeyComponents_EmptyGraphFallback(t *testing.T) {
	components := newDefault().ExtractKeyComponents(graph.New())

	assert.Equal(t, []string{"core system", "input handler", "output formatter"}, components)
}

func TestExtractKeyComponents_RanksByDegree(t *testing.T) {
	g := graph.New()
	g.AddEdge("Hub", "A")
	g.AddEdge("Hub", "B")
	g.AddEdge("Hub", "C")
	g.AddEdge("A", "B")

	components := newDefault().ExtractKeyComponents(g)

	require.NotEmpty(t, components)
	assert.Equal(t, "Hub", components[0])
	assert.Len(t, components, 4)
}

func TestExtractKeyComponents_TopFiveOnly(t *testing.T) {
	g := graph.New()
	for i := 0; i < 9; i++ {
		g.Add(fmt.Sprintf("n%d", i))
	}

	components := newDefault().ExtractKeyComponents(g)

	// All degrees are zero, so stable sort keeps insertion order.
	assert.Equal(t, []string{"n0", "n1", "n2", "n3", "n4"}, components)
}

func TestExtractKeyFunctions_KeywordFilter(t *testing.T) {
	g := graph.New()
	g.Add("getUser")
	g.Add("setConfig")
	g.Add("Widget")

	functions := newDefault().ExtractKeyFunctions(g)

	assert.Equal(t, []string{"getUser"}, functions)
}

func TestExtractKeyFunctions_SegmentBoundaryMatching(t *testing.T) {
	g := graph.New()
	g.Add("UpdateHandler")
	g.Add("fetch_records")
	g.Add("Widget") // contains "get" as a raw substring, but not as a segment
	g.Add("Gadget")

	functions := newDefault().ExtractKeyFunctions(g)

	assert.Equal(t, []string{"UpdateHandler", "fetch_records"}, functions)
}

func TestExtractKeyFunctions_NoKeywordMatchesUsesNodes(t *testing.T) {
	g := graph.New()
	g.Add("Alpha")
	g.Add("Beta")

	functions := newDefault().ExtractKeyFunctions(g)

	assert.Equal(t, []string{"Alpha", "Beta"}, functions)
}

func TestExtractKeyFunctions_EmptyGraphFallback(t *testing.T) {
	functions := newDefault().ExtractKeyFunctions(graph.New())

	assert.Equal(t, []string{"main", "init", "run"}, functions)
}
