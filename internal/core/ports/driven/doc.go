// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): the design API, the LLM backend, the
// artifact store on disk, and the poll-history store.
//
// Implementations live in internal/adapters/driven.
package driven
