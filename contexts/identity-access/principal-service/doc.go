// Package principal resolves caller identity inside Orbit: bearer tokens are
// verified and flattened into a Principal, and membership requests are
// accepted or rejected by scope administrators, assigning canonical role
// names through the identity provider.
//
// Layering:
// - domain: principal/request entities, claim resolution, decision gates
// - application: the request acceptance service and token facade
// - ports: stable boundaries for token verification/persistence/roles
// - adapters: JWT parser, memory store, HTTP handlers
// - transport: module-private DTOs for HTTP contracts
package principal
