// Package audit manages the lifecycle of asynchronous audits.
//
// The Orchestrator validates requested root URLs, assigns audit IDs, and
// drives each audit through pending, running, and a terminal completed or
// failed state. Audit records live in a Store; execution state never
// leaves the orchestrator, so any store snapshot is safe to serve.
package audit
