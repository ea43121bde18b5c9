// Package main provides the entry point for the pwcheck CLI.
//
// pwcheck estimates how strong a password is. It classifies the characters,
// computes Shannon entropy and a simple score, and can optionally ask
// zxcvbn, look the password up in a local wordlist and check it against
// the HaveIBeenPwned range API.
//
// Usage:
//
//	pwcheck check
//	pwcheck check --hibp -w rockyou.txt
//	pwcheck check -i passwords.txt --json
//
// See --help for all available options.
package main

func main() {
	Execute()
}
