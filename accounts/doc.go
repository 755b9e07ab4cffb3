// Package accounts loads the account table backing login and verifies
// candidate passwords against stored derived keys.
//
// The backing file is a single JSON object mapping username to record. The
// table is cached in memory and reloaded wholesale whenever the file's
// modification time changes, so edits take effect without a restart.
package accounts
