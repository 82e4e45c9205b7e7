package embedding

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/agentroute/agentroute/core"
)

// OpenAIOptions configure the OpenAI embedding adapter. Fields mirror a
// minimal subset of the Embeddings API parameters.
type OpenAIOptions struct {
	Model      openai.EmbeddingModel
	Dimensions int
}

// OpenAIEmbedder wraps the OpenAI Embeddings API behind the generic Embedder
// interface.
type OpenAIEmbedder struct {
	client *openai.Client
	opts   OpenAIOptions
}

var _ Embedder = (*OpenAIEmbedder)(nil)

// NewOpenAIEmbedder creates a new embedder using the official client.
func NewOpenAIEmbedder(optFns ...func(o *OpenAIOptions)) *OpenAIEmbedder {
	client := openai.NewClient()
	return NewOpenAIEmbedderFromClient(&client, optFns...)
}

// NewOpenAIEmbedderFromClient creates a new embedder from an existing client.
func NewOpenAIEmbedderFromClient(client *openai.Client, optFns ...func(o *OpenAIOptions)) *OpenAIEmbedder {
	opts := OpenAIOptions{
		Model:      openai.EmbeddingModelTextEmbedding3Small,
		Dimensions: 384,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &OpenAIEmbedder{client: client, opts: opts}
}

// Embed implements Embedder. Failures are wrapped in
// core.ErrEmbeddingUnavailable so the router can degrade scoring.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model:      e.opts.Model,
		Input:      openai.EmbeddingNewParamsInputUnion{OfString: openai.String(text)},
		Dimensions: openai.Int(int64(e.opts.Dimensions)),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrEmbeddingUnavailable, err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: empty embedding response", core.ErrEmbeddingUnavailable)
	}
	vec := resp.Data[0].Embedding
	if len(vec) != e.opts.Dimensions {
		return nil, fmt.Errorf("%w: got %d dimensions, want %d", core.ErrEmbeddingUnavailable, len(vec), e.opts.Dimensions)
	}
	return vec, nil
}

// Dimension implements Embedder.
func (e *OpenAIEmbedder) Dimension() int { return e.opts.Dimensions }
