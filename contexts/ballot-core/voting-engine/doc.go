// Package votingengine implements the kiosk voting flow inside the
// ballot-core context.
//
// A session walks verified -> ballots_presented -> closed, or expires after
// the idle timeout. Ballots are immutable and unique per participant and
// election; the store's uniqueness constraint settles concurrent submissions.
// Cast events go through a transactional outbox relayed by the worker
// runtime.
package votingengine
