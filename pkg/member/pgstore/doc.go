// Package pgstore implements member.ConditionalStore on PostgreSQL.
//
// The schema lives in the embedded Migrations filesystem and is applied with
// pg.Migrate. Session metadata is cleared with a single conditional UPDATE so
// concurrent logouts and logins for the same member cannot interleave between
// a lookup and a write.
package pgstore
