// Package validate holds the per-input-shape validation rules. Each function
// is pure: it takes the raw fields and returns a map of field name to
// failure description, empty on success.
package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	MaxContentLen       = 1000
	MaxDefinitionLen    = 500
	MaxUsageExamplesLen = 1000
	MaxBioLen           = 500
	MinPasswordLen      = 6
	MaxPasswordLen      = 128
)

var (
	usernameRe = regexp.MustCompile(`^[a-z0-9_]{5,20}$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

type FieldErrors map[string]string

// Registration checks the register payload. Uniqueness of username/email is
// the auth service's job; this only covers shape.
func Registration(username, email, password string) FieldErrors {
	errs := FieldErrors{}
	if !usernameRe.MatchString(username) {
		errs["username"] = "Username must be 5-20 characters of lowercase letters, numbers, and underscores"
	}
	if !emailRe.MatchString(email) {
		errs["email"] = "Email must be a valid email address"
	}
	if n := utf8.RuneCountInString(password); n < MinPasswordLen || n > MaxPasswordLen {
		errs["password"] = "Password must be 6-128 characters"
	}
	return errs
}

func Bio(bio string) FieldErrors {
	errs := FieldErrors{}
	if utf8.RuneCountInString(bio) > MaxBioLen {
		errs["bio"] = "Bio must be less than 500 characters"
	}
	return errs
}

// QuipInput checks content after trimming; the service trims before storing
// so the same whitespace rules apply here. Lengths count characters, not
// bytes, so multibyte text gets the full caps.
func QuipInput(content, definition, usageExamples string) FieldErrors {
	errs := FieldErrors{}
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		errs["content"] = "Content cannot be empty"
	} else if utf8.RuneCountInString(trimmed) > MaxContentLen {
		errs["content"] = "Content must be 1-1000 characters"
	}
	if utf8.RuneCountInString(strings.TrimSpace(definition)) > MaxDefinitionLen {
		errs["definition"] = "Definition must be less than 500 characters"
	}
	if utf8.RuneCountInString(strings.TrimSpace(usageExamples)) > MaxUsageExamplesLen {
		errs["usage_examples"] = "Usage examples must be less than 1000 characters"
	}
	return errs
}

func CommentInput(content string) FieldErrors {
	errs := FieldErrors{}
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		errs["content"] = "Content cannot be empty"
	} else if utf8.RuneCountInString(trimmed) > MaxContentLen {
		errs["content"] = "Comment must be 1-1000 characters"
	}
	return errs
}

// Details adapts field errors to the envelope's details object.
func (f FieldErrors) Details() map[string]any {
	if len(f) == 0 {
		return nil
	}
	return map[string]any{"validation_errors": map[string]string(f)}
}
