// Package server exposes the audit engine over HTTP.
//
// The API is small: POST /audit starts an asynchronous audit and returns
// its ID, GET /audit/{audit_id} returns the current state of that audit,
// and GET /health answers liveness probes. Handlers are registered with
// huma on top of a chi router, which gives request validation and an
// OpenAPI description (served at /openapi.json, with Swagger UI at /docs)
// without hand-written plumbing.
//
// Starting an audit never blocks on the crawl: the handler stores a
// pending record and returns, and clients poll GET /audit/{audit_id}
// until the status turns completed or failed.
package server
