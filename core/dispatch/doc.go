// Package dispatch keeps dispatch records in memory.
//
// A Manager owns every Record it creates. Records are addressed by a caller
// supplied ID and carry a description plus a list of response time samples.
// Create fails with ErrDuplicateKey on an id collision, Update and Delete fail
// with ErrNotFound on an unknown id, and Read reports absence through its
// boolean result.
//
// Manager itself is not safe for concurrent use. SyncManager adds the locking
// needed when records are served over HTTP.
package dispatch
