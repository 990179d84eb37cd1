// Package models defines the core domain models for Tabkeep.
//
// A Ledger is one account's complete snapshot: the people in the group,
// every purchase (with per-item participant assignments and shared
// fees), and every payment recorded against the tracker. All money is
// integer cents. Relationships are by ID string, never by pointer, so
// a snapshot serializes cleanly as a single JSON document.
//
// The calculator package treats a Ledger as immutable input; mutation
// happens only in the service layer, which replaces the stored snapshot
// wholesale.
package models
