// Package job implements the Job aggregate root and its lifecycle state machine.
//
// A Job is a freight load moving through a strictly monotonic six-state
// lifecycle (open, requested, assigned, picked_up, delivered, paid) with a
// time-boxed claim lock protecting the open->requested transition, per-transition
// audit timestamps, and an optional symmetric backhaul pairing link.
//
// The package enforces all state-transition legality and lock semantics in the
// domain model; command handlers add role/ownership authorization and
// repositories add the storage-level compare-and-swap that makes concurrent
// claims safe.
package job
