package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reposcope/internal/domain"
)

func chunksOf(texts ...string) []domain.Chunk {
	chunks := make([]domain.Chunk, len(texts))
	for i, t := range texts {
		chunks[i] = domain.Chunk{Index: i, Text: t}
	}
	return chunks
}

func TestExtractEntities_DeclarationKeywords(t *testing.T) {
	p := NewPatternExtractor(nil)
	chunks := chunksOf("class Foo uses function doWork and const MAX_SIZE plus interface Reader")

	entities := p.ExtractEntities(chunks)

	assert.Equal(t, []string{"Foo", "doWork", "MAX_SIZE", "Reader"}, entities)
}

func TestExtractEntities_KeywordCaseInsensitiveIdentifierPreserved(t *testing.T) {
	p := NewPatternExtractor(nil)
	chunks := chunksOf("CLASS MyThing and Def helperFn and api UserApi")

	entities := p.ExtractEntities(chunks)

	assert.Contains(t, entities, "MyThing")
	assert.Contains(t, entities, "helperFn")
	assert.Contains(t, entities, "UserApi")
}

func TestExtractEntities_DuplicatesCollapseFirstSeenOrder(t *testing.T) {
	p := NewPatternExtractor(nil)
	chunks := chunksOf("class Foo then class Bar", "class Bar then class Foo")

	entities := p.ExtractEntities(chunks)

	assert.Equal(t, []string{"Foo", "Bar"}, entities)
}

func TestExtractEntities_Idempotent(t *testing.T) {
	p := NewPatternExtractor(nil)
	chunks := chunksOf("class Foo uses class Bar", "service Billing calls endpoint charge")

	first := p.ExtractEntities(chunks)
	second := p.ExtractEntities(chunks)

	assert.Equal(t, first, second)
}

func TestExtractEntities_ExtraKeywords(t *testing.T) {
	p := NewPatternExtractor([]string{"struct"})
	chunks := chunksOf("struct Point holds coordinates")

	entities := p.ExtractEntities(chunks)

	assert.Equal(t, []string{"Point"}, entities)
}

func TestExtractEntities_PlainProseYieldsNothing(t *testing.T) {
	p := NewPatternExtractor(nil)
	chunks := chunksOf("it was a bright cold day in april and the clocks were striking thirteen")

	assert.Empty(t, p.ExtractEntities(chunks))
}

func TestFindDependencies_EmptyEntities(t *testing.T) {
	p := NewPatternExtractor(nil)
	chunks := chunksOf("class Foo uses class Bar")

	assert.Empty(t, p.FindDependencies(chunks, nil))
}

func TestFindDependencies_PerChunkCoOccurrence(t *testing.T) {
	p := NewPatternExtractor(nil)
	chunks := chunksOf("class Foo uses class Bar", "class Bar calls class Baz")
	entities := p.ExtractEntities(chunks)
	require.Equal(t, []string{"Foo", "Bar", "Baz"}, entities)

	deps := p.FindDependencies(chunks, entities)

	assert.Equal(t, []domain.Edge{
		{Source: "Foo", Target: "Bar"},
		{Source: "Bar", Target: "Baz"},
	}, deps)
}

func TestFindDependencies_AllOrderedPairsWithinChunk(t *testing.T) {
	p := NewPatternExtractor(nil)
	chunks := chunksOf("class Alpha with class Beta and class Gamma")
	entities := []string{"Alpha", "Beta", "Gamma"}

	deps := p.FindDependencies(chunks, entities)

	assert.Equal(t, []domain.Edge{
		{Source: "Alpha", Target: "Beta"},
		{Source: "Alpha", Target: "Gamma"},
		{Source: "Beta", Target: "Gamma"},
	}, deps)
}

func TestFindDependencies_DirectionFollowsEntityListOrder(t *testing.T) {
	// Zed precedes Alpha in the chunk text, but the scan walks the entity
	// list, so the edge still points Alpha -> Zed.
	p := NewPatternExtractor(nil)
	chunks := chunksOf("class Zed is built before class Alpha")
	entities := []string{"Alpha", "Zed"}

	deps := p.FindDependencies(chunks, entities)

	assert.Equal(t, []domain.Edge{{Source: "Alpha", Target: "Zed"}}, deps)
}

func TestFindDependencies_SubstringMatchIsCaseInsensitive(t *testing.T) {
	p := NewPatternExtractor(nil)
	chunks := chunksOf("the FOO subsystem feeds the bar queue")
	entities := []string{"Foo", "Bar"}

	deps := p.FindDependencies(chunks, entities)

	assert.Equal(t, []domain.Edge{{Source: "Foo", Target: "Bar"}}, deps)
}
