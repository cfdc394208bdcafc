package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPCMRoundTrip(t *testing.T) {
	pcm := make([]byte, 3200)
	for i := range pcm {
		pcm[i] = byte(i % 251)
	}

	wav := BuildWAV(pcm, 16000)
	got, rate, err := ExtractPCM(wav)
	require.NoError(t, err)
	assert.Equal(t, 16000, rate)
	assert.Equal(t, pcm, got)
}

func TestExtractPCMRejectsGarbage(t *testing.T) {
	_, _, err := ExtractPCM([]byte("definitely not a wav file"))
	assert.Error(t, err)

	_, _, err = ExtractPCM(nil)
	assert.Error(t, err)
}

func TestExtractPCMRejectsTruncatedHeader(t *testing.T) {
	wav := BuildWAV(make([]byte, 100), 16000)
	_, _, err := ExtractPCM(wav[:20])
	assert.Error(t, err)
}
