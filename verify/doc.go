// Package verify checks collector invariants on a live VM.
//
// # Overview
//
// These checks are used by tests and by gcvmctl's --check flag to confirm
// that the heap is consistent between operations:
//
//   - LiveCount: the live-object counter equals the registry length
//   - MarkBits: no object is left marked outside a collection
//   - RootsLive: every root names a live object
//   - Reachability: the registry holds exactly the objects reachable from
//     the roots (only meaningful straight after a collection)
//
// # Quick Start
//
//	v.Collect()
//	if err := verify.PostCollect(v); err != nil {
//	    var verr *verify.ValidationError
//	    if errors.As(err, &verr) {
//	        fmt.Printf("%s failed at %s: %s\n", verr.Type, verr.Ref, verr.Message)
//	    }
//	}
//
// All checks return *ValidationError on failure.
package verify
