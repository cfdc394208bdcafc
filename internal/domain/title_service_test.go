package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTitles(t *testing.T) {
	raw := `1. "Why Nobody Talks About This"
2) The Truth About Passive Income
3. **Secrets of the Algorithm**
4. Five Mistakes Beginners Make
5. One Weird Trick

extra line seven
line eight never makes it`

	titles := ParseTitles(raw)

	assert.Len(t, titles, 6)
	assert.Equal(t, "Why Nobody Talks About This", titles[0])
	assert.Equal(t, "The Truth About Passive Income", titles[1])
	assert.Equal(t, "Secrets of the Algorithm", titles[2])
	assert.Equal(t, "extra line seven", titles[5])
}

func TestParseTitlesSkipsBlankLines(t *testing.T) {
	titles := ParseTitles("\n\n1. Only One\n\n")
	assert.Equal(t, []string{"Only One"}, titles)
}

func TestParseTitlesEmpty(t *testing.T) {
	assert.Empty(t, ParseTitles(""))
}

func TestIsYouTubeURL(t *testing.T) {
	assert.True(t, IsYouTubeURL("https://www.youtube.com/watch?v=abc12345678"))
	assert.True(t, IsYouTubeURL("https://youtu.be/abc12345678"))
	assert.False(t, IsYouTubeURL("how to grow tomatoes"))
	assert.False(t, IsYouTubeURL("https://vimeo.com/12345"))
}
