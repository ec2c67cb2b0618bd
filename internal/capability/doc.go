// Package capability defines the capability taxonomy and the per-capability
// operation contracts implemented by backend providers.
//
// A Capability is a tag (metrics, logs, tickets, repositories, traces,
// diagnostics, knowledge, utilities) classifying what a provider can do.
// Each capability has an explicit interface type; a provider implements
// the Provider base contract plus zero or more capability interfaces.
// The capability set is declared, not discovered by reflection, which is
// what lets the registry keep a cheap derived capability index.
//
// Result types in this package are backend-neutral: providers translate
// their backend's wire shapes into these before results cross the
// dispatch boundary.
package capability
