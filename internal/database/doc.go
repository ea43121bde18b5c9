// Package database provides the SQLite-backed cache of breach range
// responses.
//
// The cache is keyed by the 5-character SHA-1 prefix the range API is
// queried with and stores the raw response body. Passwords, full digests
// and matched suffixes are never written.
//
// Design decision: SQLite via modernc.org/sqlite keeps the cache in a
// single CGO-free file under the XDG cache directory, and WAL mode lets
// `pwcheck cache --list` read while a batch run is writing.
package database
