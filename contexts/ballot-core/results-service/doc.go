// Package resultsservice computes election tallies and participation inside
// the ballot-core context.
//
// Results are derived on demand from the ballot store; nothing is
// materialized. Within one request the tally and the participation figures
// come from the same ballot snapshot. Ties rank by ballot position.
package resultsservice
