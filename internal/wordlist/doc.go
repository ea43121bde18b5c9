// Package wordlist checks whether a password appears in a local list of
// known-bad passwords, one candidate per line.
package wordlist
