// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentStore: Document and chunk persistence
//   - VectorIndex: Embedding storage and nearest-neighbour search
//   - EmbeddingService: Maps text to fixed-length vectors
//   - Normaliser: Transforms raw uploads into document text
//   - NormaliserRegistry: Selects the appropriate normaliser
//   - PostProcessor / PostProcessorPipeline: Splits documents into chunks
//   - Synthesiser: Extractive summary over retrieved chunks
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
