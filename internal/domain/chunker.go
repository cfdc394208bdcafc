package domain

import (
	"strings"
	"unicode/utf8"
)

const (
	chunkSize    = 1000
	chunkOverlap = 200
	maxChunks    = 10
)

var chunkSeparators = []string{"\n\n", "\n", ".", " ", ""}

// SplitText breaks text into overlapping chunks for embedding. It walks the
// separator list from coarsest to finest, keeping chunks under chunkSize and
// carrying chunkOverlap characters between neighbours. At most maxChunks are
// returned.
func SplitText(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	chunks := splitRecursive(text, chunkSeparators)
	if len(chunks) > maxChunks {
		chunks = chunks[:maxChunks]
	}
	return chunks
}

func splitRecursive(text string, separators []string) []string {
	if len(text) <= chunkSize {
		return []string{text}
	}

	sep := separators[0]
	rest := separators
	if len(rest) > 1 {
		rest = rest[1:]
	}

	var parts []string
	if sep == "" {
		for rest := text; rest != ""; {
			if len(rest) <= chunkSize {
				parts = append(parts, rest)
				break
			}
			end := boundaryBefore(rest, chunkSize)
			parts = append(parts, rest[:end])
			rest = rest[end:]
		}
	} else {
		parts = strings.Split(text, sep)
	}

	var chunks []string
	var current strings.Builder
	for _, part := range parts {
		piece := part
		if sep != "" {
			piece = part + sep
		}

		if len(piece) > chunkSize {
			if current.Len() > 0 {
				chunks = appendChunk(chunks, current.String())
				current.Reset()
			}
			chunks = append(chunks, splitRecursive(piece, rest)...)
			continue
		}

		if current.Len()+len(piece) > chunkSize && current.Len() > 0 {
			chunk := current.String()
			chunks = appendChunk(chunks, chunk)
			current.Reset()
			// carry the tail forward so neighbouring chunks overlap
			if len(chunk) > chunkOverlap {
				current.WriteString(chunk[boundaryAfter(chunk, len(chunk)-chunkOverlap):])
			} else {
				current.WriteString(chunk)
			}
		}
		current.WriteString(piece)
	}
	if current.Len() > 0 {
		chunks = appendChunk(chunks, current.String())
	}
	return chunks
}

// boundaryBefore moves a byte index back onto the nearest rune start so a
// cut never splits a multibyte character.
func boundaryBefore(s string, i int) int {
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// boundaryAfter moves a byte index forward onto the nearest rune start.
func boundaryAfter(s string, i int) int {
	for i < len(s) && !utf8.RuneStart(s[i]) {
		i++
	}
	return i
}

func appendChunk(chunks []string, chunk string) []string {
	chunk = strings.TrimSpace(chunk)
	if chunk == "" {
		return chunks
	}
	return append(chunks, chunk)
}
