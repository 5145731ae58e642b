package validation

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/usermanager/internal/apperrors"
)

// rule passes or fails a single value with a fixed message.
type rule struct {
	ok  func(string) bool
	msg string
}

func notEmpty(msg string) rule {
	return rule{ok: func(s string) bool { return strings.TrimSpace(s) != "" }, msg: msg}
}

func lengthBetween(min, max int, msg string) rule {
	return rule{ok: func(s string) bool {
		n := utf8.RuneCountInString(s)
		return n >= min && n <= max
	}, msg: msg}
}

func minLength(min int, msg string) rule {
	return rule{ok: func(s string) bool { return utf8.RuneCountInString(s) >= min }, msg: msg}
}

func emailAddress(msg string) rule {
	return rule{ok: IsEmail, msg: msg}
}

func equals(other string, msg string) rule {
	return rule{ok: func(s string) bool { return s == other }, msg: msg}
}

// IsEmail accepts a bare addr-spec such as "alice@x.com". Display names
// and surrounding whitespace are rejected.
func IsEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Name == "" && addr.Address == s && strings.Contains(s, "@")
}

// field runs rules in order and stops at the first failure.
type field struct {
	name  string
	value string
	rules []rule
}

// report collects violations across fields in declaration order.
type report struct {
	violations []apperrors.FieldViolation
	failed     map[string]bool
}

func newReport() *report {
	return &report{failed: make(map[string]bool)}
}

func (r *report) check(fields ...field) {
	for _, f := range fields {
		for _, rl := range f.rules {
			if !rl.ok(f.value) {
				r.add(f.name, rl.msg)
				break
			}
		}
	}
}

func (r *report) add(name, msg string) {
	r.violations = append(r.violations, apperrors.FieldViolation{Field: name, Message: msg})
	r.failed[name] = true
}

func (r *report) passed(name string) bool { return !r.failed[name] }

func (r *report) err() error {
	if len(r.violations) == 0 {
		return nil
	}
	return apperrors.Validation(r.violations)
}
