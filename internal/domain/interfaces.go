package domain

// Chunk is a contiguous, bounded-size span of the input text.
type Chunk struct {
	Index       int
	Text        string
	Fingerprint []float64
}

// Edge is an inferred directed relation between two entities that
// co-occur within a chunk. Source is treated as depended upon by Target.
type Edge struct {
	Source string
	Target string
}

// Summary is the terminal output of the analysis pipeline and the only
// artifact exposed outside the core.
type Summary struct {
	ExecutionFlow []string `json:"execution_flow"`
	KeyComponents []string `json:"key_components"`
	KeyFunctions  []string `json:"key_functions"`
}

// Report carries per-stage detail from the last run for host-side display.
// Nothing in the pipeline consumes it.
type Report struct {
	Chunks     []Chunk
	Entities   []string
	EdgeCount  int
	Components [][]string
}

// ChunkMatch is a chunk matched against a search term with a relevance score.
type ChunkMatch struct {
	Chunk Chunk
	Score float64
}

// Segmenter splits raw text into bounded-size chunks.
type Segmenter interface {
	Segment(text string) []Chunk
}

// Fingerprinter converts chunk text into a fixed-length numeric digest.
// Identical text must always yield an identical vector.
type Fingerprinter interface {
	Name() string
	Dimension() int
	Fingerprint(text string) []float64
}

// Extractor derives candidate entity names and co-occurrence edges
// from a chunk sequence.
type Extractor interface {
	ExtractEntities(chunks []Chunk) []string
	FindDependencies(chunks []Chunk, entities []string) []Edge
}

// Analyzer defines the single entry point the host invokes.
type Analyzer interface {
	Analyze(text string) Summary
	Search(term string, topK int) []ChunkMatch
	Report() Report
}
