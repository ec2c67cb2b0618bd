// Package registry implements the provider catalog: named registration,
// capability-indexed lookup, aggregate health checking, and
// cross-provider metric fan-out.
//
// The capability index is a derived structure. It is rebuilt in full on
// every registration change rather than patched incrementally, keeping
// the invariant trivial: a name is in capability bucket C exactly when
// the provider currently registered under that name declares C.
//
// The registry is an explicit value owned by the application root and
// injected where needed; there is no package-level singleton.
package registry
