package domain

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("just a short note")
	assert.Equal(t, []string{"just a short note"}, chunks)
}

func TestSplitTextEmpty(t *testing.T) {
	assert.Nil(t, SplitText(""))
	assert.Nil(t, SplitText("   \n\t  "))
}

func TestSplitTextRespectsChunkSize(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 50; i++ {
		b.WriteString(strings.Repeat("word ", 40))
		b.WriteString("\n\n")
	}

	chunks := SplitText(b.String())
	assert.NotEmpty(t, chunks)
	for i, c := range chunks {
		// overlap can push a chunk slightly past the target
		assert.LessOrEqual(t, len(c), chunkSize+chunkOverlap, "chunk %d too large", i)
		assert.NotEmpty(t, strings.TrimSpace(c))
	}
}

func TestSplitTextCapsChunkCount(t *testing.T) {
	huge := strings.Repeat("sentence goes here. ", 5000)
	chunks := SplitText(huge)
	assert.Len(t, chunks, maxChunks)
}

func TestSplitTextNeighboursOverlap(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 200; i++ {
		b.WriteString("Paragraphs repeat with slight variation number ")
		b.WriteString(strings.Repeat("x", i%7))
		b.WriteString(". ")
	}

	chunks := SplitText(b.String())
	if len(chunks) < 2 {
		t.Skip("input did not produce multiple chunks")
	}

	first := chunks[0]
	tail := first[len(first)-40:]
	assert.Contains(t, chunks[1], strings.TrimSpace(tail)[:10])
}

func TestSplitTextKeepsRunesIntact(t *testing.T) {
	// unbreakable multibyte runs force the hard byte-split fallback; cuts
	// must still land on rune boundaries
	inputs := map[string]string{
		"three-byte runes": strings.Repeat("€", 600),
		"four-byte runes":  strings.Repeat("𝄞", 600),
		"mixed widths":     strings.Repeat("a€𝄞", 500),
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			chunks := SplitText(input)
			assert.NotEmpty(t, chunks)
			for i, c := range chunks {
				assert.True(t, utf8.ValidString(c), "chunk %d is not valid UTF-8: %q", i, c)
			}
		})
	}
}

func TestSplitTextOverlapOnRuneBoundary(t *testing.T) {
	// sentences of multibyte runes exercise the overlap carry, not just the
	// hard fallback
	var b strings.Builder
	for i := 0; i < 60; i++ {
		b.WriteString(strings.Repeat("ба", 30))
		b.WriteString(". ")
	}

	chunks := SplitText(b.String())
	assert.Greater(t, len(chunks), 1)
	for i, c := range chunks {
		assert.True(t, utf8.ValidString(c), "chunk %d is not valid UTF-8", i)
	}
}

func TestSplitTextUnbreakableRun(t *testing.T) {
	// no separators at all, falls through to hard slicing
	blob := strings.Repeat("a", 2500)
	chunks := SplitText(blob)
	assert.GreaterOrEqual(t, len(chunks), 3)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), chunkSize)
	}
}
