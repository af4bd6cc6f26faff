package validation

import (
	"regexp"
	"strings"
	"unicode"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Fullname: letters, spaces, hyphens, apostrophes only.
var fullnameRe = regexp.MustCompile(`^[A-Za-zÇĞİÖŞÜçğıöşü\s\-']+$`)

// Turkish IBAN: TR + 2 check digits + 22 digits.
var ibanRe = regexp.MustCompile(`^TR\d{24}$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidPassword:
// - at least 8 characters
// - contains at least one letter
// - contains at least one number
// - contains at least one special character
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter, hasDigit, hasSpecial := false, false, false
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}
	return hasLetter && hasDigit && hasSpecial
}

func IsValidFullname(fullname string) bool {
	return fullname != "" && fullnameRe.MatchString(fullname)
}

// IsValidPhone accepts 10-11 digits with an optional leading +90 or 0.
func IsValidPhone(phone string) bool {
	p := strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
	p = strings.TrimPrefix(p, "+90")
	p = strings.TrimPrefix(p, "0")
	if len(p) != 10 {
		return false
	}
	for _, r := range p {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// IsValidIBAN checks the TR IBAN shape (spaces ignored, no mod-97 check).
func IsValidIBAN(iban string) bool {
	return ibanRe.MatchString(strings.ToUpper(strings.ReplaceAll(iban, " ", "")))
}
