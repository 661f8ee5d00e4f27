// Package attendanceservice implements the attendance ledger inside the
// assembly-operations context.
//
// The module owns participant registration and per-pleno presence tracking.
// Check-in is idempotent and the stored total is always recomputed from the
// presence vector, never trusted from client input. Voting eligibility in the
// ballot core is derived from the credit totals this module maintains.
package attendanceservice
