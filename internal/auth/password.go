package auth

import (
	"unicode"
	"unicode/utf8"

	"redline/internal/config"
)

// Policy is the password and lockout policy.
type Policy struct {
	MinPasswordLength   int
	RequireSpecialChars bool
	MaxLoginAttempts    int
	BcryptCost          int
}

// PolicyFrom builds a Policy from the security section of the config.
func PolicyFrom(s config.Security) Policy {
	return Policy{
		MinPasswordLength:   s.MinPasswordLength,
		RequireSpecialChars: s.RequireSpecialChars,
		MaxLoginAttempts:    s.MaxLoginAttempts,
		BcryptCost:          s.BcryptCost,
	}
}

// DefaultPolicy mirrors the default config.
func DefaultPolicy() Policy {
	return PolicyFrom(config.Default().Security)
}

// ValidationError reports a registration rule violation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ValidateUsername checks length and character rules.
func ValidateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	switch {
	case n == 0:
		return invalid("username", "Username is required")
	case n < 3:
		return invalid("username", "Username must be at least 3 characters long")
	case n > 20:
		return invalid("username", "Username must be 20 characters or less")
	}
	for _, c := range username {
		if !(c == '_' || c < unicode.MaxASCII && (unicode.IsLetter(c) || unicode.IsDigit(c))) {
			return invalid("username", "Username can only contain letters, numbers, and underscores")
		}
	}
	return nil
}

// ValidatePassword checks pw against the policy.
func (p Policy) ValidatePassword(pw string) error {
	if pw == "" {
		return invalid("password", "Password is required")
	}
	if utf8.RuneCountInString(pw) < p.MinPasswordLength {
		return invalid("password", "Password is too short")
	}
	c := classify(pw)
	if !c.upper || !c.lower || !c.digit {
		return invalid("password", "Password must contain uppercase, lowercase, and a digit")
	}
	if p.RequireSpecialChars && !c.special {
		return invalid("password", "Password must contain a special character")
	}
	return nil
}

type charClasses struct {
	lower, upper, digit, special bool
}

func classify(pw string) charClasses {
	var c charClasses
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			c.lower = true
		case unicode.IsUpper(r):
			c.upper = true
		case r >= '0' && r <= '9':
			c.digit = true
		}
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			c.special = true
		}
	}
	return c
}

// Strength is a coarse password strength rating.
type Strength int

const (
	StrengthNone Strength = iota
	StrengthWeak
	StrengthMedium
	StrengthStrong
	StrengthVeryStrong
)

func (s Strength) String() string {
	switch s {
	case StrengthWeak:
		return "[WEAK - EASILY COMPROMISED]"
	case StrengthMedium:
		return "[MEDIUM - MODERATE SECURITY]"
	case StrengthStrong:
		return "[STRONG - GOOD SECURITY]"
	case StrengthVeryStrong:
		return "[VERY STRONG - EXCELLENT SECURITY]"
	default:
		return ""
	}
}

// PasswordStrength scores length (8, 12, 16) and character variety.
func PasswordStrength(pw string) Strength {
	if pw == "" {
		return StrengthNone
	}

	score := 0
	for _, threshold := range []int{8, 12, 16} {
		if len(pw) >= threshold {
			score++
		}
	}
	c := classify(pw)
	for _, has := range []bool{c.lower, c.upper, c.digit, c.special} {
		if has {
			score++
		}
	}

	switch {
	case score <= 2:
		return StrengthWeak
	case score <= 4:
		return StrengthMedium
	case score <= 6:
		return StrengthStrong
	default:
		return StrengthVeryStrong
	}
}
