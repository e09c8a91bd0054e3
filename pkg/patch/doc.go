// Package patch turns declarative patch targets into live detours on the host.
//
// # Components
//
// A Descriptor names the target: owner type, member name, member kind and an
// optional exact parameter list. Descriptors are immutable values.
//
// The Resolver maps a Descriptor onto a Handle through a Backend. When the
// owner type cannot be named statically, a TypeProvider callback supplies it at
// resolution time. Resolution is cached, so repeated calls for the same
// descriptor return the same Handle.
//
// A Unit pairs one descriptor with its hooks (before, after, replace). Units
// are resolved lazily on first apply and at most once. Apply and Revert are
// idempotent.
//
// The Registry owns every Unit grouped by feature and enforces that at most
// one applied Unit exists per resolved target. Batch operations are not
// atomic: each Unit reports its own outcome in a BatchResult and the caller
// decides what to do with a partial result.
//
// # Errors
//
// Resolution failures are returned as *ResolutionError wrapping one of
// ErrTypeNotFound, ErrMemberNotFound, ErrAmbiguousOverload or
// ErrMissingTypeProvider. Application failures are returned as
// *ApplicationError wrapping ErrTargetAlreadyPatched, ErrUnresolvedTarget or
// ErrHostMutationFailed. Neither class is fatal to the process.
//
// # Usage
//
//	resolver := patch.NewResolver(backend.NewReflection(rt))
//	reg := patch.NewRegistry(resolver, patch.WithLogger(log))
//
//	_, err := reg.Register("god-mode",
//		patch.Method("PlayerAgent", "TakeDamage").Params("float"),
//		patch.Hooks{Before: func(inv *host.Invocation) bool { return false }},
//	)
//
//	res := reg.ApplyAll("god-mode")
//	for _, failed := range res.Failed() {
//		log.Warn("patch failed", logger.Error(failed.Err))
//	}
package patch
