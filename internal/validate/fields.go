package validate

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jirorimi/cup-registration/internal/jst"
)

var (
	datePattern          = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	datetimeLocalPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}$`)
)

func child(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// str reads a required string. Missing and null values report missing.
func (c *checker) str(obj map[string]any, key, path, missing string) (string, bool) {
	raw, ok := obj[key]
	if !ok || raw == nil {
		c.add(path, missing)
		return "", false
	}
	s, ok := raw.(string)
	if !ok {
		c.add(path, "must be a string")
		return "", false
	}
	return s, true
}

// text reads a required, non-empty string bounded in characters.
func (c *checker) text(obj map[string]any, key, path, label string, max int) string {
	s, ok := c.str(obj, key, path, label+" is required")
	if !ok {
		return ""
	}
	n := utf8.RuneCountInString(s)
	switch {
	case n == 0:
		c.add(path, label+" is required")
	case n > max:
		c.add(path, fmt.Sprintf("%s must be at most %d characters", label, max))
	}
	return s
}

func (c *checker) optionalText(obj map[string]any, key, path string) *string {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		c.add(path, "must be a string")
		return nil
	}
	return &s
}

func (c *checker) optionalBool(obj map[string]any, key, path string, def bool) bool {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return def
	}
	b, ok := raw.(bool)
	if !ok {
		c.add(path, "must be true or false")
		return def
	}
	return b
}

// integer accepts JSON numbers with no fractional part.
func (c *checker) integer(raw any, path string) (int, bool) {
	n, ok := raw.(json.Number)
	if !ok {
		c.add(path, "must be a number")
		return 0, false
	}
	if i, err := strconv.Atoi(n.String()); err == nil {
		return i, true
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		c.add(path, "must be an integer")
		return 0, false
	}
	return int(f), true
}

func (c *checker) intRange(obj map[string]any, key, path string, min, max int) int {
	raw, ok := obj[key]
	if !ok || raw == nil {
		c.add(path, "is required")
		return 0
	}
	n, ok := c.integer(raw, path)
	if !ok {
		return 0
	}
	if n < min {
		c.add(path, fmt.Sprintf("must be at least %d", min))
	} else if n > max {
		c.add(path, fmt.Sprintf("must be at most %d", max))
	}
	return n
}

// optionalCount reads a positive cap. Absent, null, "" and "NaN" all mean no cap.
func (c *checker) optionalCount(obj map[string]any, key, path string) *int {
	raw, ok := obj[key]
	if !ok || raw == nil {
		return nil
	}
	if s, isString := raw.(string); isString && (s == "" || strings.EqualFold(s, "NaN")) {
		return nil
	}
	n, ok := c.integer(raw, path)
	if !ok {
		return nil
	}
	if n < 1 {
		c.add(path, "must be at least 1")
		return nil
	}
	return &n
}

func oneOf[T ~string](c *checker, obj map[string]any, key, path string, allowed []T) T {
	s, ok := c.str(obj, key, path, "is required")
	if !ok {
		return ""
	}
	if slices.Contains(allowed, T(s)) {
		return T(s)
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	c.add(path, "must be one of "+strings.Join(names, ", "))
	return ""
}

func (c *checker) date(obj map[string]any, key, path, label string) string {
	s, ok := c.str(obj, key, path, label+" is required")
	if !ok {
		return ""
	}
	switch {
	case s == "":
		c.add(path, label+" is required")
	case !datePattern.MatchString(s):
		c.add(path, "must be in YYYY-MM-DD format")
	default:
		if _, err := jst.ParseDate(s); err != nil {
			c.add(path, "is not a valid date")
		}
	}
	return s
}

// window reads a local date-time. ok is false when the value cannot take part in
// ordering checks.
func (c *checker) window(obj map[string]any, key, path, label string) (string, time.Time, bool) {
	s, ok := c.str(obj, key, path, label+" is required")
	if !ok {
		return "", time.Time{}, false
	}
	if s == "" {
		c.add(path, label+" is required")
		return s, time.Time{}, false
	}
	if !datetimeLocalPattern.MatchString(s) {
		c.add(path, "must be in YYYY-MM-DDTHH:MM format")
		return s, time.Time{}, false
	}
	t, err := jst.ParseLocal(s)
	if err != nil {
		c.add(path, "is not a valid date and time")
		return s, time.Time{}, false
	}
	return s, t, true
}
