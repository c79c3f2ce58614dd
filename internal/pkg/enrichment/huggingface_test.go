package enrichment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorlink/mentorlink/internal/pkg/apperrors"
)

func newTestClient(serverURL, apiKey string) *HuggingFaceClient {
	return NewHuggingFaceClient(Config{BaseURL: serverURL, APIKey: apiKey}, zerolog.Nop())
}

func TestAvailable(t *testing.T) {
	assert.False(t, newTestClient("http://localhost", "").Available())
	assert.True(t, newTestClient("http://localhost", "hf_key").Available())
}

func TestScoreSimilarity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer hf_key", r.Header.Get("Authorization"))
		w.Write([]byte(`[0.87]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "hf_key")

	score, err := client.ScoreSimilarity(context.Background(), "machine learning", "ml study group")
	require.NoError(t, err)
	assert.InDelta(t, 87.0, score, 1e-9)
}

func TestScoreSimilarity_NoAPIKey(t *testing.T) {
	client := newTestClient("http://localhost", "")

	_, err := client.ScoreSimilarity(context.Background(), "a", "b")
	assert.ErrorIs(t, err, apperrors.ErrEnrichmentUnavailable)
}

func TestScoreSimilarity_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL, "hf_key")

	_, err := client.ScoreSimilarity(context.Background(), "a", "b")
	assert.ErrorIs(t, err, apperrors.ErrEnrichmentUnavailable)
}

func TestScoreSimilarity_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"loading"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "hf_key")

	_, err := client.ScoreSimilarity(context.Background(), "a", "b")
	assert.ErrorIs(t, err, apperrors.ErrEnrichmentUnavailable)
}

func TestScoreSimilarity_ClampsRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[1.4]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "hf_key")

	score, err := client.ScoreSimilarity(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, 100.0, score)
}
