package infra

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGemini(handler http.Handler) (*GeminiClient, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return &GeminiClient{
		apiKey:  "test-key",
		baseURL: srv.URL,
		client:  srv.Client(),
	}, srv
}

func TestGeminiGenerate(t *testing.T) {
	client, srv := newTestGemini(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req geminiGenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "write a hook", req.Contents[0].Parts[0].Text)

		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"Here is your hook."}]}}]}`)
	}))
	defer srv.Close()

	out, err := client.Generate(context.Background(), "write a hook")
	require.NoError(t, err)
	assert.Equal(t, "Here is your hook.", out)
}

func TestGeminiGenerateWithImage(t *testing.T) {
	image := []byte{0xff, 0xd8, 0xff, 0x01}

	client, srv := newTestGemini(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req geminiGenerateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		parts := req.Contents[0].Parts
		require.Len(t, parts, 2)
		assert.Equal(t, "describe this", parts[0].Text)
		require.NotNil(t, parts[1].InlineData)
		assert.Equal(t, "image/jpeg", parts[1].InlineData.MimeType)
		assert.Equal(t, base64.StdEncoding.EncodeToString(image), parts[1].InlineData.Data)

		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"A thumbnail."}]}}]}`)
	}))
	defer srv.Close()

	out, err := client.GenerateWithImage(context.Background(), "describe this", image, "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "A thumbnail.", out)
}

func TestGeminiGenerateEmptyResponse(t *testing.T) {
	client, srv := newTestGemini(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"candidates":[]}`)
	}))
	defer srv.Close()

	_, err := client.Generate(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

func TestGeminiGenerateAPIError(t *testing.T) {
	client, srv := newTestGemini(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"error":{"message":"API key not valid"}}`)
	}))
	defer srv.Close()

	_, err := client.Generate(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}

func TestGeminiEmbed(t *testing.T) {
	client, srv := newTestGemini(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models/text-embedding-004:embedContent", r.URL.Path)
		fmt.Fprint(w, `{"embedding":{"values":[0.1,0.2,0.3]}}`)
	}))
	defer srv.Close()

	vec, err := client.Embed(context.Background(), "some chunk")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestGeminiEmbedEmptyVector(t *testing.T) {
	client, srv := newTestGemini(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"embedding":{"values":[]}}`)
	}))
	defer srv.Close()

	_, err := client.Embed(context.Background(), "some chunk")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty vector")
}
