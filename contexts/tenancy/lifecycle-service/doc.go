// Package lifecycle implements the tenancy lifecycle service inside Orbit:
// organizations containing spaces, with every mutation gated by the
// authorization decision engine and mirrored into downstream provisioning
// contexts via a concurrent fan-out.
//
// Layering:
// - domain: entities, the pure authorization engine, errors
// - application: the lifecycle orchestrator, fan-out coordinator, workers
// - ports: stable boundaries for persistence/provisioning/identity/events
// - adapters: concrete HTTP, memory, postgres, and identity implementations
// - transport: module-private DTOs for HTTP contracts
//
// Boundary notes:
// - Keep this module self-contained under the tenancy context.
// - Do not import other context adapters into domain/application.
package lifecycle
