// Package generation defines the request lifecycle contract between the
// workflow controller and the post generation backend.
package generation

import (
	"context"

	"github.com/GintasS/social-media-post-generator/internal/models"
)

// Result classifies how a generation call settled.
type Result string

const (
	// ResultSuccess means the backend returned at least one post.
	ResultSuccess Result = "success"
	// ResultEmpty means the call completed but produced zero posts.
	ResultEmpty Result = "empty"
	// ResultRemoteError means the backend completed the call but flagged
	// the generation itself as failed.
	ResultRemoteError Result = "remote_error"
	// ResultTransportFailure means no usable response was obtained at all.
	ResultTransportFailure Result = "transport_failure"
)

// Outcome is the settled state of a single generation call. Exactly one of
// the four results applies; Posts is non-empty only for ResultSuccess and
// Err is non-nil only for ResultTransportFailure.
type Outcome struct {
	Result Result
	Posts  []models.GeneratedPost
	Err    error
}

// Success builds a settled outcome carrying the generated posts.
func Success(posts []models.GeneratedPost) Outcome {
	return Outcome{Result: ResultSuccess, Posts: posts}
}

// Empty builds the zero-posts outcome.
func Empty() Outcome {
	return Outcome{Result: ResultEmpty}
}

// RemoteError builds the backend-flagged failure outcome.
func RemoteError() Outcome {
	return Outcome{Result: ResultRemoteError}
}

// TransportFailure builds the could-not-reach-the-service outcome.
func TransportFailure(err error) Outcome {
	return Outcome{Result: ResultTransportFailure, Err: err}
}

// Generator performs one generation call. Implementations are stateless per
// call and must not retain anything after returning; serializing concurrent
// calls is the caller's job. Termination is bounded only by the transport's
// own timeout (or ctx).
type Generator interface {
	Generate(ctx context.Context, draft models.ProductDraft, settings models.ModelSettings, options models.GenerationOptions) Outcome
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, draft models.ProductDraft, settings models.ModelSettings, options models.GenerationOptions) Outcome

func (f GeneratorFunc) Generate(ctx context.Context, draft models.ProductDraft, settings models.ModelSettings, options models.GenerationOptions) Outcome {
	return f(ctx, draft, settings, options)
}
