// Package config defines the dotted configuration keys shared by the config
// store consumers. The file subpackage provides the TOML-backed store.
package config

// LLM provider keys.
const (
	KeyLLMProvider = "llm.provider"
	KeyLLMModel    = "llm.model"
	KeyLLMBaseURL  = "llm.base_url"
	KeyLLMAPIKey   = "llm.api_key"
	KeyLLMRate     = "llm.requests_per_second"
)

// Analysis pipeline keys.
const (
	KeyChunkSize      = "analysis.chunk_size"
	KeyChunkOverlap   = "analysis.chunk_overlap"
	KeyMapConcurrency = "analysis.map_concurrency"
	KeyMaxChars       = "analysis.max_chars"
)

// Storage keys.
const (
	KeyDataDir = "storage.data_dir"
)
