// Package roster sequences user intents into changes of the record collection.
//
// An [Orchestrator] owns every piece of mutable state: the records, the form draft, the field
// errors, the edit session, the search query, the outstanding delete confirmation, the in-flight
// operation and the notification. Hosts call one method per intent and render [Orchestrator.Snapshot]
// afterwards.
//
// # Timers
//
// Intents never block. Whenever a continuation must run later (an operation completing after its
// simulated latency, a notification expiring) the method returns a [schedule.Timer]. The host
// delivers it back through [Orchestrator.Fire] once the delay has elapsed. Superseded timers are
// recognised by their token and ignored.
//
// # Pending Gate
//
// While an operation is in flight, intents that would edit the form or start another operation are
// rejected. Searching, cancelling a delete confirmation and dismissing the notification stay
// available.
//
// # Positions
//
// Rows are addressed by their position in the visible (filtered) list. The orchestrator resolves a
// position to a record ID before touching the store.
package roster
