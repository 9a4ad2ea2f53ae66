package llm

import (
	"context"
	"fmt"
	"math"

	"github.com/google/generative-ai-go/genai"
	"github.com/jonathan/resume-matcher/internal/logger"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// maxBatchSize is the most texts Gemini accepts in one batch embedding request
const maxBatchSize = 100

// Embedder maps phrases to unit-length vectors, one per input, in input order
type Embedder interface {
	EmbedStrings(ctx context.Context, texts []string) ([][]float64, error)
}

// GeminiEmbedder implements Embedder with a Gemini embedding model
type GeminiEmbedder struct {
	client *genai.Client
	model  string
	config *Config
}

// NewGeminiEmbedder creates an embedder bound to config.EmbeddingModel
func NewGeminiEmbedder(ctx context.Context, config *Config, apiKey string) (*GeminiEmbedder, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if config.EmbeddingModel == "" {
		return nil, &EmbeddingError{Message: "no embedding model configured"}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiEmbedder{client: client, model: config.EmbeddingModel, config: config}, nil
}

// EmbedStrings embeds texts in batches and normalizes every vector to unit length
func (e *GeminiEmbedder) EmbedStrings(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()
	}

	em := e.client.EmbeddingModel(e.model)
	out := make([][]float64, 0, len(texts))
	for start := 0; start < len(texts); start += maxBatchSize {
		end := min(start+maxBatchSize, len(texts))

		batch := em.NewBatch()
		for _, t := range texts[start:end] {
			batch.AddContent(genai.Text(t))
		}

		res, err := em.BatchEmbedContents(ctx, batch)
		if err != nil {
			return nil, &EmbeddingError{Message: fmt.Sprintf("batch of %d texts", end-start), Cause: err}
		}
		if len(res.Embeddings) != end-start {
			return nil, &EmbeddingError{Message: fmt.Sprintf("expected %d embeddings, got %d", end-start, len(res.Embeddings))}
		}

		for _, emb := range res.Embeddings {
			vec := make([]float64, len(emb.Values))
			for i, v := range emb.Values {
				vec[i] = float64(v)
			}
			out = append(out, Normalize(vec))
		}
	}
	return out, nil
}

// Close releases resources held by the embedder
func (e *GeminiEmbedder) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

// Normalize scales v to unit length in place and returns it. A zero vector is
// returned unchanged.
func Normalize(v []float64) []float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] /= norm
	}
	return v
}

// Dot returns the dot product of two vectors of equal length. For unit vectors
// this is their cosine similarity.
func Dot(a, b []float64) float64 {
	n := min(len(a), len(b))
	var s float64
	for i := 0; i < n; i++ {
		s += a[i] * b[i]
	}
	return s
}

// LoadEmbedder builds the process-wide embedder and probes it with one call.
// Any failure is logged and yields nil, which callers treat as "semantic
// coverage unavailable".
func LoadEmbedder(ctx context.Context, config *Config, apiKey string, log *zap.Logger) Embedder {
	log = logger.OrNop(log)
	if apiKey == "" {
		log.Info("embedding model disabled: no API key configured")
		return nil
	}

	embedder, err := NewGeminiEmbedder(ctx, config, apiKey)
	if err != nil {
		log.Warn("embedding model unavailable", zap.Error(err))
		return nil
	}

	if err := Probe(ctx, embedder); err != nil {
		log.Warn("embedding model probe failed", zap.String(logger.FieldModel, embedder.model), zap.Error(err))
		_ = embedder.Close()
		return nil
	}

	log.Info("embedding model loaded", zap.String(logger.FieldModel, embedder.model))
	return embedder
}

// Probe embeds a single phrase and checks the result is usable
func Probe(ctx context.Context, e Embedder) error {
	vecs, err := e.EmbedStrings(ctx, []string{"python"})
	if err != nil {
		return err
	}
	if len(vecs) != 1 || len(vecs[0]) == 0 {
		return &EmbeddingError{Message: "probe returned no vector"}
	}
	return nil
}
