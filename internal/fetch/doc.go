// Package fetch implements the retrying JSON fetch client used for both
// dashboard feeds.
//
// Each call to FetchJSON makes up to a configured number of sequential
// attempts. Every attempt runs under its own deadline; between failed
// attempts the client waits a fixed delay (no exponential growth).
// Failures are classified into structured error codes:
//
//	NETWORK  - non-2xx HTTP status or transport failure
//	TIMEOUT  - the per-attempt deadline expired
//	PARSE    - the response body is not valid JSON
//
// NETWORK and TIMEOUT failures are retried; PARSE failures surface
// immediately since retrying will not fix a malformed body. The retry
// loop is an explicit bounded loop with an attempt counter, so the bound
// is directly testable.
package fetch
