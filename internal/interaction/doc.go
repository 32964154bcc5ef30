// Package interaction models the page's client-side behaviour as a small
// state machine.
//
// The generated page script is rendered from the same Table, so the Go
// Machine is the reference for what the browser does:
//
//	initial ──Decline──▶ declined(1) ──Decline──▶ ... ──▶ declined(5) ──Decline──▶ (no-op)
//	   │                    │                                   │
//	   └────────Accept──────┴──────────────Accept───────────────┴──▶ accepted (terminal)
//
// ImageError is accepted in every state and only swaps the displayed image.
package interaction
