// Package mock provides test doubles for studiochat interfaces using
// function fields.
package mock

import (
	"context"

	studiochat "github.com/poly-workshop/studiochat"
)

// Interface compliance checks.
var (
	_ studiochat.Gateway     = (*Gateway)(nil)
	_ studiochat.DeltaStream = (*DeltaStream)(nil)
)

// Gateway is a test double for studiochat.Gateway.
// Set the function fields for the methods you need.
type Gateway struct {
	ListModelsFn       func(ctx context.Context) ([]studiochat.Model, error)
	StreamCompletionFn func(ctx context.Context, model string, messages []studiochat.ChatMessage) (studiochat.DeltaStream, error)
}

// ListModels delegates to ListModelsFn.
func (g *Gateway) ListModels(ctx context.Context) ([]studiochat.Model, error) {
	return g.ListModelsFn(ctx)
}

// StreamCompletion delegates to StreamCompletionFn.
func (g *Gateway) StreamCompletion(ctx context.Context, model string, messages []studiochat.ChatMessage) (studiochat.DeltaStream, error) {
	return g.StreamCompletionFn(ctx, model, messages)
}
