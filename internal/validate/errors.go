// Package validate checks request payloads before they reach a service. Every
// rule is evaluated so a caller gets the full list of problems, keyed by a field
// path such as "events[1].checkin_start".
package validate

import "strings"

type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// Errors holds every violation found in one payload, in field order.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fe.Error())
	}
	return strings.Join(msgs, "; ")
}

// First is the violation shown to end users.
func (e Errors) First() FieldError {
	if len(e) == 0 {
		return FieldError{Message: "validation failed"}
	}
	return e[0]
}

// Has reports whether path has at least one violation.
func (e Errors) Has(path string) bool {
	for _, fe := range e {
		if fe.Path == path {
			return true
		}
	}
	return false
}

type checker struct {
	errs Errors
}

func (c *checker) add(path, msg string) {
	c.errs = append(c.errs, FieldError{Path: path, Message: msg})
}

func (c *checker) err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}
