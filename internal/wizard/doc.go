// Package wizard owns the upload → decade → generate → result/error flow.
//
// The flow is a closed state enum driven by a pure Transition function.
// Transition never touches the outside world; it returns the effects the
// Controller must apply (release or acquire display references, start a
// generation job). Controllers are per browser session and are kept in a
// Store with an inactivity TTL.
package wizard
