package heuristic

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/pdrpinto/wikisearch"
	"github.com/pdrpinto/wikisearch/pkg/logger"
)

// NN estimates the number of links between two titles with a trained Model.
type NN struct {
	embedder        *Embedder
	model           *Model
	defaultEstimate float64
	logger          logger.Logger
}

var _ wikisearch.Heuristic[string] = (*NN)(nil)

// NNOption configures an NN heuristic.
type NNOption func(*NN)

// WithDefaultEstimate sets the estimate used when a title has no embedding.
func WithDefaultEstimate(estimate float64) NNOption {
	return func(h *NN) { h.defaultEstimate = estimate }
}

func WithLogger(l logger.Logger) NNOption {
	return func(h *NN) { h.logger = l }
}

// NewNN checks that the model takes two embeddings as input.
func NewNN(embedder *Embedder, model *Model, opts ...NNOption) (*NN, error) {
	if model.InputDim() != 2*embedder.Dim() {
		return nil, fmt.Errorf("%w: model takes %d inputs, embeddings have dimension %d",
			ErrInputDimension, model.InputDim(), embedder.Dim())
	}
	h := &NN{
		embedder: embedder,
		model:    model,
		logger:   logger.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// Estimate never returns a negative value; a negative model output is
// clamped to zero.
func (h *NN) Estimate(current, destination string) float64 {
	currentEmbedding, ok := h.embedder.Embed(current)
	if !ok {
		return h.defaultEstimate
	}
	destinationEmbedding, ok := h.embedder.Embed(destination)
	if !ok {
		return h.defaultEstimate
	}

	input := make([]float64, 0, len(currentEmbedding)+len(destinationEmbedding))
	input = append(input, currentEmbedding...)
	input = append(input, destinationEmbedding...)

	output, err := h.model.Predict(input)
	if err != nil {
		h.logger.Error("heuristic model failed", zap.String("current", current), zap.Error(err))
		return h.defaultEstimate
	}
	if math.IsNaN(output) {
		return output
	}
	return math.Max(0, math.Round(output))
}
