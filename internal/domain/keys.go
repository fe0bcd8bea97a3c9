package domain

// KeyPrefix namespaces every Redis key the service owns: search indexes,
// document hashes and the embedding cache.
const KeyPrefix = "dinewise:"
