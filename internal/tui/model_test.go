package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reposcope/internal/domain"
)

type stubAnalyzer struct {
	matches []domain.ChunkMatch
	report  domain.Report
}

func (s stubAnalyzer) Search(string, int) []domain.ChunkMatch { return s.matches }
func (s stubAnalyzer) Report() domain.Report                  { return s.report }

func TestRenderSummary_ListsAllSections(t *testing.T) {
	m := New(stubAnalyzer{report: domain.Report{Components: [][]string{{"Foo", "Bar"}}}}, domain.Summary{
		ExecutionFlow: []string{"Initialize Foo", "Return result from Bar"},
		KeyComponents: []string{"Foo", "Bar"},
		KeyFunctions:  []string{"getFoo"},
	})

	out := m.renderSummary()

	assert.Contains(t, out, "1. Initialize Foo")
	assert.Contains(t, out, "2. Return result from Bar")
	assert.Contains(t, out, "getFoo")
	assert.Contains(t, out, "Foo, Bar")
}

func TestHighlightBestSentence_PicksOverlappingSentence(t *testing.T) {
	text := "The parser runs first. The billing engine computes invoices. Output goes last."

	out := highlightBestSentence(text, "billing invoices")

	require.NotEmpty(t, out)
	// All sentences survive, in order.
	assert.Contains(t, out, "parser runs first")
	assert.Contains(t, out, "billing engine computes invoices")
	assert.Contains(t, out, "Output goes last")
}

func TestTokenOverlapScore_CountsDistinctTokens(t *testing.T) {
	q := toTokenSet("billing billing invoices")

	score := tokenOverlapScore(q, "the billing system emits invoices for billing")

	assert.Equal(t, 2, score)
}

func TestHighlightBestSentence_EmptyInputs(t *testing.T) {
	assert.Equal(t, "   ", highlightBestSentence("   ", "query"))
	out := highlightBestSentence("One sentence here.", "")
	assert.Equal(t, "One sentence here.", strings.TrimSpace(out))
}
