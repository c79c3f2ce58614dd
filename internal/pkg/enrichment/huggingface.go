// Package enrichment implements the optional external similarity signal used
// to refine community recommendations. The provider is best effort: callers
// must treat every failure as a cue to fall back to local scoring.
package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/mentorlink/mentorlink/internal/pkg/apperrors"
)

// Config contains the Hugging Face inference API settings
type Config struct {
	BaseURL string        `yaml:"base_url"`
	APIKey  string        `yaml:"api_key"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// DefaultConfig returns the standard inference endpoint and model
func DefaultConfig() Config {
	return Config{
		BaseURL: "https://api-inference.huggingface.co",
		Model:   "sentence-transformers/all-MiniLM-L6-v2",
		Timeout: 10 * time.Second,
	}
}

// HuggingFaceClient scores text similarity through the Hugging Face
// sentence-similarity inference API. Without an API key the client reports
// itself unavailable and is never called.
type HuggingFaceClient struct {
	config     Config
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewHuggingFaceClient creates a client from config. Zero-valued fields fall
// back to defaults.
func NewHuggingFaceClient(config Config, logger zerolog.Logger) *HuggingFaceClient {
	defaults := DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.Model == "" {
		config.Model = defaults.Model
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	return &HuggingFaceClient{
		config:     config,
		httpClient: &http.Client{Timeout: config.Timeout},
		logger:     logger,
	}
}

// Available reports whether an API key is configured
func (c *HuggingFaceClient) Available() bool {
	return c.config.APIKey != ""
}

type similarityRequest struct {
	Inputs similarityInputs `json:"inputs"`
}

type similarityInputs struct {
	SourceSentence string   `json:"source_sentence"`
	Sentences      []string `json:"sentences"`
}

// ScoreSimilarity returns a 0..100 similarity score between the two texts.
// Any transport or decoding failure is wrapped in ErrEnrichmentUnavailable
// so callers can detect it with errors.Is and fall back.
func (c *HuggingFaceClient) ScoreSimilarity(ctx context.Context, sourceText, candidateText string) (float64, error) {
	if !c.Available() {
		return 0, apperrors.ErrEnrichmentUnavailable
	}

	payload, err := json.Marshal(similarityRequest{
		Inputs: similarityInputs{
			SourceSentence: sourceText,
			Sentences:      []string{candidateText},
		},
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrEnrichmentUnavailable, err)
	}

	url := fmt.Sprintf("%s/models/%s", c.config.BaseURL, c.config.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrEnrichmentUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrEnrichmentUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrEnrichmentUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("model", c.config.Model).
			Msg("Enrichment API returned non-OK status")
		return 0, fmt.Errorf("%w: status %d", apperrors.ErrEnrichmentUnavailable, resp.StatusCode)
	}

	// The sentence-similarity pipeline returns one cosine score per
	// candidate sentence in [0, 1].
	var scores []float64
	if err := json.Unmarshal(body, &scores); err != nil || len(scores) == 0 {
		return 0, fmt.Errorf("%w: unexpected response", apperrors.ErrEnrichmentUnavailable)
	}

	score := scores[0] * 100
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, nil
}
