// Package workspace manages scratch directories for publish checkouts,
// supporting both ephemeral (timestamped) and persistent (fixed-path) modes.
//
// Ephemeral mode creates timestamped directories (e.g., docpub-20260830-122336)
// suitable for one-shot CI runs, cleaning up completely after use.
//
// Persistent mode uses a fixed directory path that persists across runs,
// allowing the pages checkout to be reused between publishes.
package workspace
