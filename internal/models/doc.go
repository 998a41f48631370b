// Package models defines the value types shared by the record manager core and its renderers.
//
// The package contains:
//   - [Record] : a stored user entry with a durable ID, a name, and an email
//   - [Draft] : the form contents being entered, independent of edit mode
//   - [ErrorSet] : field-scoped validation messages keyed by [Field]
//   - [Notification] : a transient status message with a [Kind]
//   - [Snapshot] : the complete state emitted after every intent
//
// All types are plain values. Slices and maps handed out in a [Snapshot] are copies.
package models
