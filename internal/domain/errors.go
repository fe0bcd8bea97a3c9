package domain

import "errors"

var (
	// ErrNoData signals that no collection produced any usable hit for a query.
	ErrNoData = errors.New("no data available")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrOracleUnavailable signals that the LLM oracle could not be reached or
	// returned an unusable response.
	ErrOracleUnavailable = errors.New("oracle unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrIndexUnavailable signals a similarity index backend failure.
	ErrIndexUnavailable = errors.New("index unavailable")
	// ErrInvalidQuery signals a request that cannot enter the pipeline.
	ErrInvalidQuery = errors.New("invalid query")
)
