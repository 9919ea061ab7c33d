package config

import (
	"strconv"
	"strings"

	"github.com/km-arc/go-nestforge/framework/http/validation"
)

// Issue is one failed schema rule.
type Issue struct {
	Key     string
	Message string
}

// ValidationError lists every key that failed the schema.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		msgs = append(msgs, is.Message)
	}
	return "environment validation failed: " + strings.Join(msgs, " ")
}

// Schema declares constraints on environment keys.
//
//	config.NewSchema().
//	    Required("APP_NAME").
//	    MinLen("APP_KEY", 32).
//	    OneOf("APP_ENV", "local", "production", "testing")
type Schema struct {
	required map[string]bool
	rules    map[string][]string
	keys     []string
}

// NewSchema returns an empty schema.
func NewSchema() *Schema {
	return &Schema{required: make(map[string]bool), rules: make(map[string][]string)}
}

// Required fails when key is absent or blank.
func (s *Schema) Required(key string) *Schema {
	s.track(key)
	s.required[key] = true
	return s
}

// MinLen fails when key is set and shorter than n characters.
func (s *Schema) MinLen(key string, n int) *Schema {
	s.track(key)
	s.rules[key] = append(s.rules[key], "min:"+strconv.Itoa(n))
	return s
}

// OneOf fails when key is set to a value outside allowed.
func (s *Schema) OneOf(key string, allowed ...string) *Schema {
	s.track(key)
	s.rules[key] = append(s.rules[key], "in:"+strings.Join(allowed, ","))
	return s
}

func (s *Schema) track(key string) {
	if _, ok := s.rules[key]; !ok {
		s.keys = append(s.keys, key)
		s.rules[key] = nil
	}
}

// Rules compiles the schema into validation rule strings.
func (s *Schema) Rules() validation.Rules {
	out := make(validation.Rules, len(s.keys))
	for _, key := range s.keys {
		lead := "nullable"
		if s.required[key] {
			lead = "required"
		}
		out[key] = strings.Join(append([]string{lead}, s.rules[key]...), "|")
	}
	return out
}

// Validate checks store against the schema.
func (s *Schema) Validate(store *EnvStore) error {
	v := validation.Make(store.data(), s.Rules())
	if v.Passes() {
		return nil
	}

	bag := v.Errors()
	verr := &ValidationError{}
	for _, key := range bag.Fields() {
		for _, msg := range bag.Bag[key] {
			verr.Issues = append(verr.Issues, Issue{Key: key, Message: msg})
		}
	}
	return verr
}
