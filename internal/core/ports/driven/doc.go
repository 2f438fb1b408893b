// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - Fetcher: Acquires raw document bytes from a source URI
//   - Normaliser: Extracts text from raw documents
//   - LLMService: Language model operations
//   - CheckpointStore: Durable session state for the human-gate suspension
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - PromptStore: User-customisable prompt templates; adapters fall back to
//     embedded defaults when nil
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
