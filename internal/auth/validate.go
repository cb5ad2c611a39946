// Copyright (c) 2024-2025 EleKnowledge AI
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"regexp"
	"unicode"
)

// =============================================================================
// FIELD VALIDATION
// =============================================================================

// Validation runs client-side before any identity call so obviously bad
// input never leaves the machine. The rules mirror the identity
// provider's password policy; the server remains the authority.

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var codeRe = regexp.MustCompile(`^[0-9]{6}$`)

// ValidateEmail checks the basic shape of an email address.
func ValidateEmail(email string) error {
	if email == "" {
		return &Error{Type: ErrTypeValidation, Message: "email is required"}
	}
	if !emailRe.MatchString(email) {
		return &Error{Type: ErrTypeValidation, Message: "enter a valid email address"}
	}
	return nil
}

// ValidatePassword checks the password policy: at least 8 characters
// with uppercase, lowercase, a digit, and a symbol.
func ValidatePassword(password string) error {
	if password == "" {
		return &Error{Type: ErrTypeValidation, Message: "password is required"}
	}
	if len([]rune(password)) < 8 {
		return &Error{Type: ErrTypeValidation, Message: "password must be at least 8 characters"}
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}

	switch {
	case !upper:
		return &Error{Type: ErrTypeValidation, Message: "password must contain an uppercase letter"}
	case !lower:
		return &Error{Type: ErrTypeValidation, Message: "password must contain a lowercase letter"}
	case !digit:
		return &Error{Type: ErrTypeValidation, Message: "password must contain a number"}
	case !symbol:
		return &Error{Type: ErrTypeValidation, Message: "password must contain a symbol"}
	}
	return nil
}

// PasswordStrength scores a password 0-4 for the signup strength meter.
func PasswordStrength(password string) int {
	score := 0
	if len([]rune(password)) >= 8 {
		score++
	}
	if len([]rune(password)) >= 12 {
		score++
	}
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	if upper && lower {
		score++
	}
	if digit && symbol {
		score++
	}
	return score
}

// ValidateCode checks a 6-digit verification code.
func ValidateCode(code string) error {
	if code == "" {
		return &Error{Type: ErrTypeValidation, Message: "verification code is required"}
	}
	if !codeRe.MatchString(code) {
		return &Error{Type: ErrTypeValidation, Message: "code must be 6 digits"}
	}
	return nil
}
