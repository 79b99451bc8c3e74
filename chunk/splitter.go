// Copyright 2026 beogip
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package chunk

import (
	"github.com/beogip/boredGPT/core"
)

// DefaultMaxChunkSize and DefaultOverlapSize match the splitter settings the
// blog index was originally built with.
const (
	DefaultMaxChunkSize = 4000
	DefaultOverlapSize  = 200
)

// Splitter cuts document text into bounded, overlapping chunks. It prefers
// breaking at paragraph boundaries, then sentence boundaries, and falls back
// to raw character offsets. Splitting is deterministic: identical input
// always yields identical chunks.
type Splitter struct {
	maxChunkSize int
	overlapSize  int
}

// NewSplitter creates a splitter. maxChunkSize must be positive and
// overlapSize must be non-negative and strictly smaller than maxChunkSize.
func NewSplitter(maxChunkSize, overlapSize int) (*Splitter, error) {
	if maxChunkSize <= 0 {
		return nil, ErrInvalidChunkSize
	}
	if overlapSize < 0 || overlapSize >= maxChunkSize {
		return nil, ErrInvalidOverlap
	}
	return &Splitter{
		maxChunkSize: maxChunkSize,
		overlapSize:  overlapSize,
	}, nil
}

// Split cuts text into pieces of at most maxChunkSize characters. Each piece
// after the first begins exactly overlapSize characters before the end of
// the previous piece. Empty input yields no pieces; no piece is ever empty.
//
// Sizes and offsets are measured in runes so a chunk boundary can never cut
// a multi-byte character in half.
func (s *Splitter) Split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= s.maxChunkSize {
		return []string{text}
	}

	var pieces []string
	start := 0
	for {
		remaining := len(runes) - start
		if remaining <= s.maxChunkSize {
			pieces = append(pieces, string(runes[start:]))
			return pieces
		}

		end := s.breakPoint(runes, start)
		pieces = append(pieces, string(runes[start:end]))
		start = end - s.overlapSize
	}
}

// SplitDocument splits a document and labels every chunk with its source URL
// and position.
func (s *Splitter) SplitDocument(doc core.Document) []core.Chunk {
	pieces := s.Split(doc.RawText)
	chunks := make([]core.Chunk, len(pieces))
	for i, piece := range pieces {
		chunks[i] = core.Chunk{
			Text:          piece,
			SourceURL:     doc.URL,
			SequenceIndex: i,
		}
	}
	return chunks
}

// breakPoint finds where the chunk starting at start should end. It tries
// paragraph breaks first, then sentence breaks, then gives up and cuts at
// the size limit. A candidate break must leave the next chunk's start
// (end - overlapSize) strictly past the current start, otherwise the
// splitter would stop making progress.
func (s *Splitter) breakPoint(runes []rune, start int) int {
	limit := start + s.maxChunkSize
	minEnd := start + s.overlapSize + 1

	if end := lastParagraphBreak(runes, start, limit); end >= minEnd {
		return end
	}
	if end := lastSentenceBreak(runes, start, limit); end >= minEnd {
		return end
	}
	return limit
}

// lastParagraphBreak returns the position just past the last blank line in
// runes[start:limit], or -1 if there is none.
func lastParagraphBreak(runes []rune, start, limit int) int {
	for i := limit - 1; i > start; i-- {
		if runes[i] == '\n' && runes[i-1] == '\n' {
			return i + 1
		}
	}
	return -1
}

// lastSentenceBreak returns the position just past the last sentence
// terminator (followed by whitespace) or line break in runes[start:limit],
// or -1 if there is none.
func lastSentenceBreak(runes []rune, start, limit int) int {
	for i := limit - 1; i > start; i-- {
		if runes[i] == '\n' {
			return i + 1
		}
		if i+1 < limit && isSentenceEnd(runes[i]) && runes[i+1] == ' ' {
			return i + 2
		}
	}
	return -1
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}
