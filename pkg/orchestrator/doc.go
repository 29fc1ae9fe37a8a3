// Package orchestrator wires the loader → parser → model builder → renderer
// pipeline behind a single entry point. Generate renders an operation with a
// named renderer; Model stops after the builder.
package orchestrator
