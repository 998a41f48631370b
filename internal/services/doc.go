// Package services defines the [Service] interface for the backend that commits record operations.
//
// # Service Interface
//
// The roster orchestrator hands every completed create, update or delete to a Service before
// applying it locally. A nil error means the operation is accepted; any error leaves local state
// untouched and surfaces as a generic error notification.
//
// # Simulated Backend
//
// [Simulated] stands in for a remote API. It accepts every operation unless a failure has been
// armed with [Simulated.FailNext], which scripted runs use to exercise the failure path.
//
// Latency is not modelled here. The orchestrator owns the delays and the host owns time.
package services
