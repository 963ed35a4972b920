// Package gen models a compiled interface-description schema as a
// normalized, queryable object graph for code generation.
//
// # Architecture
//
// The modeling pipeline follows this flow:
//
//	Declaration files (compiler/load)
//	        ↓
//	   Naming (resolved API identity)
//	        ↓
//	   API (entity graph: Service → Method → MessageType → Field)
//	        ↓
//	   Renderer (external)
//
// # Key Types
//
// The package provides several key types:
//
//   - Naming: The resolved identity of the API (name, namespace,
//     version, product branding), reconciled from the package paths and
//     the per-file metadata annotation
//   - API: The fully linked entity graph, with messages and enums
//     indexed by qualified path and shared by reference
//   - MessageType, EnumType, Service, Method, Field, EnumValue:
//     Wrappers around the raw declarations, each carrying derived
//     properties alongside transparent access to the wrapped declaration
//   - Config: Global configuration for one generation pass
//
// # Error Handling
//
// Naming failures abort the pass before any entity is built:
//
//   - AmbiguousVersionError: package paths disagree and no version
//     segment could be inferred
//   - ConflictingMetadataError: more than one distinct metadata
//     annotation exists across the input files
//
// Absent annotations are not errors: hosts, signatures, field headers
// and operation references all degrade to an explicit empty or
// placeholder value.
//
// Example error handling:
//
//	api, err := gen.NewAPI(files)
//	if err != nil {
//	    if gen.IsAmbiguousVersionError(err) {
//	        // Handle inconsistent package paths
//	    }
//	    return err
//	}
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	api, err := gen.NewAPI(files,
//	    gen.WithWorkers(4),
//	    gen.WithModuleSuffix("_pb"),
//	)
//
// # Concurrency
//
// One generation pass is a bounded, in-memory computation. Naming is
// resolved once and frozen before any entity derivation begins; per-file
// entity wrapping then runs on a bounded worker pool. The resulting
// graph is immutable and safe for concurrent readers.
package gen
