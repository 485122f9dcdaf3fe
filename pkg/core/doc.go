// Package core defines the shared language of the ensvar system.
//
// This package contains:
//   - Adapter and target configuration, table metadata types
//   - Dialect configuration (identifier quoting, placeholder style)
//   - Record, the untyped row representation used by the mapping engine
//   - The error taxonomy shared by the mapper, schema and adapters
//
// The Golden Rule: pkg/core imports ONLY the standard library.
// All other packages depend on core, not the reverse.
package core
