// Package breach queries the HaveIBeenPwned "Pwned Passwords" range API.
//
// The password is hashed with SHA-1 and only the first five hex
// characters of the digest are sent. The API answers with every known
// suffix under that prefix and its breach count; the match happens
// locally:
//
//	GET https://api.pwnedpasswords.com/range/5BAA6
//
//	1E4C9B93F3F0682250B6CF8331B7EE68FD8:10434004
//	1E4FE6A2C8A2AB53F4D2B0C6D8E9D1BE2AB:3
//	...
//
// The transport is injected through the Doer interface so callers decide
// how requests leave the process (directly, through Tor, with retries).
// A RangeStore can be attached to reuse responses between runs.
package breach
