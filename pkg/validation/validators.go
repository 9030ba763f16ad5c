package validation

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Allow letters, numbers, spaces, and common professional punctuation: . ' - / & ( ) ,
	nameRegex = regexp.MustCompile(`^[\p{L}0-9 .'/&(),-]+$`)

	// Join and invite codes: 8 chars, uppercase alphanumerics
	joinCodeRegex = regexp.MustCompile(`^[A-Z0-9]{8}$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("join_code", JoinCode)
	_ = v.RegisterValidation("difficulty", Difficulty)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
}

// ValidName validates that a string contains only valid name characters
// Rejects most special symbols
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return nameRegex.MatchString(val)
}

// JoinCode validates the shape of a batch join or institution invite code.
// Lowercase input is accepted upstream; codes are uppercased before lookup.
func JoinCode(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return joinCodeRegex.MatchString(upper(val))
}

// Difficulty validates the interview difficulty enum
func Difficulty(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "beginner", "intermediate", "advanced":
		return true
	}
	return false
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, r := range val {
		if r > 0x1F000 {
			return false // Supplementary characters (mostly emoji/symbols)
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}

func upper(s string) string {
	out := []rune(s)
	for i, r := range out {
		out[i] = unicode.ToUpper(r)
	}
	return string(out)
}
