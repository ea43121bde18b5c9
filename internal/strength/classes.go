package strength

import "unicode"

// Classes records which character classes occur in a password.
//
// Classification is per code point using Unicode categories, so "É" is
// upper, "ß" is lower and "٣" (Arabic-Indic three) is a digit. Anything
// that is neither a letter nor a number counts as special, which puts
// whitespace, punctuation, symbols and emoji in that class.
type Classes struct {
	Upper   bool `json:"has_upper"`
	Lower   bool `json:"has_lower"`
	Digit   bool `json:"has_digit"`
	Special bool `json:"has_special"`
}

// Classify scans password once and reports which classes it contains.
// The empty string yields the zero Classes.
func Classify(password string) Classes {
	var c Classes
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			c.Upper = true
		case unicode.IsLower(r):
			c.Lower = true
		case unicode.IsDigit(r):
			c.Digit = true
		}
		if !unicode.IsLetter(r) && !unicode.IsNumber(r) {
			c.Special = true
		}
		if c.Count() == 4 {
			break
		}
	}
	return c
}

// Count returns how many of the four classes are present.
func (c Classes) Count() int {
	n := 0
	for _, present := range []bool{c.Upper, c.Lower, c.Digit, c.Special} {
		if present {
			n++
		}
	}
	return n
}
