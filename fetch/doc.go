// Package fetch provides a thin HTTP fetch wrapper with typed error
// classification and an optional naive response cache.
//
// The cache is a plain map keyed by URL with no eviction policy; it is
// intended for short-lived tooling runs, not long-running services.
package fetch
