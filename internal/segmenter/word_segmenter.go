package segmenter

import (
	"strings"

	"reposcope/internal/domain"
)

// DefaultChunkSize is the running-size threshold at which a chunk closes.
const DefaultChunkSize = 1000

// WordSegmenter splits text into word-aligned chunks of bounded size.
type WordSegmenter struct {
	chunkSize int
}

func NewWordSegmenter(chunkSize int) *WordSegmenter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &WordSegmenter{chunkSize: chunkSize}
}

// Segment accumulates whitespace-delimited words into chunks. The running
// size counts len(word)+1 per word (the +1 models the separating space);
// a chunk closes once the counter reaches the threshold, so a single word
// longer than the threshold still lands in a chunk of its own. Rejoining
// all chunk texts reproduces the original word sequence.
func (s *WordSegmenter) Segment(text string) []domain.Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var chunks []domain.Chunk
	var current []string
	size := 0
	for _, word := range words {
		current = append(current, word)
		size += len(word) + 1
		if size >= s.chunkSize {
			chunks = append(chunks, domain.Chunk{Index: len(chunks), Text: strings.Join(current, " ")})
			current = nil
			size = 0
		}
	}
	if len(current) > 0 {
		chunks = append(chunks, domain.Chunk{Index: len(chunks), Text: strings.Join(current, " ")})
	}
	return chunks
}
