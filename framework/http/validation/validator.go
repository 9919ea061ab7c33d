package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ── Types ────────────────────────────────────────────────────────────────────

// Errors is the validation message bag.
// JSON output: {"errors": {"field": ["msg1", "msg2"]}}
type Errors struct {
	Bag map[string][]string `json:"errors"`
}

// Add appends a message for field.
func (e *Errors) Add(field, msg string) {
	if e.Bag == nil {
		e.Bag = make(map[string][]string)
	}
	e.Bag[field] = append(e.Bag[field], msg)
}

// Has returns true if there are any errors.
func (e *Errors) Has() bool { return len(e.Bag) > 0 }

// First returns the first error for a field.
func (e *Errors) First(field string) string {
	if msgs := e.Bag[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Fields returns the names of failing fields, sorted.
func (e *Errors) Fields() []string {
	out := make([]string, 0, len(e.Bag))
	for f := range e.Bag {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Error joins every message, field by field, so an *Errors can travel as an
// error value.
func (e *Errors) Error() string {
	var msgs []string
	for _, f := range e.Fields() {
		msgs = append(msgs, e.Bag[f]...)
	}
	return strings.Join(msgs, " ")
}

// Rules is a map of field → pipe-separated rule string.
// e.g. Rules{"APP_ENV": "required|in:local,production,testing"}
type Rules map[string]string

// Validator validates a flat map of input values.
type Validator struct {
	data   map[string]string
	rules  Rules
	errors *Errors
	ran    bool
}

// Make creates a new Validator.
func Make(data map[string]string, rules Rules) *Validator {
	return &Validator{data: data, rules: rules, errors: &Errors{}}
}

// Fails runs validation and returns true if any rule fails.
func (v *Validator) Fails() bool {
	v.validate()
	return v.errors.Has()
}

// Passes runs validation and returns true if all rules pass.
func (v *Validator) Passes() bool { return !v.Fails() }

// Errors returns the validation error bag.
func (v *Validator) Errors() *Errors { return v.errors }

// Validate runs validation and returns the bag as an error, or nil.
func (v *Validator) Validate() error {
	if v.Fails() {
		return v.errors
	}
	return nil
}

// ── Core validation loop ─────────────────────────────────────────────────────

func (v *Validator) validate() {
	if v.ran {
		return
	}
	v.ran = true

	fields := make([]string, 0, len(v.rules))
	for f := range v.rules {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	for _, field := range fields {
		value := v.data[field]
		for _, rule := range strings.Split(v.rules[field], "|") {
			rule = strings.TrimSpace(rule)
			if rule == "" {
				continue
			}
			name, param, _ := strings.Cut(rule, ":")
			check, ok := checks[name]
			if !ok {
				continue
			}
			msg, verdict := check(v, field, value, param)
			if verdict == fail {
				v.errors.Add(field, msg)
			}
			if verdict != pass {
				break // bail on first failure per field
			}
		}
	}
}

// ── Rules ────────────────────────────────────────────────────────────────────

type verdict int

const (
	pass verdict = iota
	fail
	stop // stop processing the field without an error
)

type check func(v *Validator, field, value, param string) (string, verdict)

var (
	alphaRe     = regexp.MustCompile(`^[a-zA-Z]+$`)
	alphaNumRe  = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	alphaDashRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
	urlRe       = regexp.MustCompile(`^https?://`)
)

var checks map[string]check

func init() {
	checks = map[string]check{
		"required": func(_ *Validator, f, val, _ string) (string, verdict) {
			return when(strings.TrimSpace(val) == "", "The %s field is required.", f)
		},
		"sometimes": func(_ *Validator, _, val, _ string) (string, verdict) {
			if val == "" {
				return "", stop
			}
			return "", pass
		},
		"nullable": func(_ *Validator, _, val, _ string) (string, verdict) {
			if val == "" {
				return "", stop
			}
			return "", pass
		},
		"numeric": func(_ *Validator, f, val, _ string) (string, verdict) {
			_, err := strconv.ParseFloat(val, 64)
			return when(err != nil, "The %s must be a number.", f)
		},
		"integer": func(_ *Validator, f, val, _ string) (string, verdict) {
			_, err := strconv.Atoi(val)
			return when(err != nil, "The %s must be an integer.", f)
		},
		"boolean": func(_ *Validator, f, val, _ string) (string, verdict) {
			switch strings.ToLower(val) {
			case "true", "false", "1", "0", "yes", "no":
				return "", pass
			}
			return fmt.Sprintf("The %s field must be true or false.", f), fail
		},
		"email": func(_ *Validator, f, val, _ string) (string, verdict) {
			_, err := mail.ParseAddress(val)
			return when(err != nil, "The %s must be a valid email address.", f)
		},
		"url": func(_ *Validator, f, val, _ string) (string, verdict) {
			return when(!urlRe.MatchString(val), "The %s must be a valid URL.", f)
		},
		"min": func(_ *Validator, f, val, p string) (string, verdict) {
			n, _ := strconv.Atoi(p)
			return when(utf8.RuneCountInString(val) < n, "The %s must be at least %d characters.", f, n)
		},
		"max": func(_ *Validator, f, val, p string) (string, verdict) {
			n, _ := strconv.Atoi(p)
			return when(utf8.RuneCountInString(val) > n, "The %s may not be greater than %d characters.", f, n)
		},
		"size": func(_ *Validator, f, val, p string) (string, verdict) {
			n, _ := strconv.Atoi(p)
			return when(utf8.RuneCountInString(val) != n, "The %s must be %d characters.", f, n)
		},
		"in": func(_ *Validator, f, val, p string) (string, verdict) {
			return when(!inList(val, p), "The selected %s is invalid.", f)
		},
		"not_in": func(_ *Validator, f, val, p string) (string, verdict) {
			return when(inList(val, p), "The selected %s is invalid.", f)
		},
		"same": func(v *Validator, f, val, p string) (string, verdict) {
			return when(v.data[p] != val, "The %s and %s must match.", f, p)
		},
		"different": func(v *Validator, f, val, p string) (string, verdict) {
			return when(v.data[p] == val, "The %s and %s must be different.", f, p)
		},
		"alpha": func(_ *Validator, f, val, _ string) (string, verdict) {
			return when(!alphaRe.MatchString(val), "The %s may only contain letters.", f)
		},
		"alpha_num": func(_ *Validator, f, val, _ string) (string, verdict) {
			return when(!alphaNumRe.MatchString(val), "The %s may only contain letters and numbers.", f)
		},
		"alpha_dash": func(_ *Validator, f, val, _ string) (string, verdict) {
			return when(!alphaDashRe.MatchString(val), "The %s may only contain letters, numbers, dashes and underscores.", f)
		},
		"regex": func(_ *Validator, f, val, p string) (string, verdict) {
			re, err := regexp.Compile(p)
			return when(err != nil || !re.MatchString(val), "The %s format is invalid.", f)
		},
		"gt":  compare(func(a, b float64) bool { return a > b }, "greater than"),
		"gte": compare(func(a, b float64) bool { return a >= b }, "greater than or equal to"),
		"lt":  compare(func(a, b float64) bool { return a < b }, "less than"),
		"lte": compare(func(a, b float64) bool { return a <= b }, "less than or equal to"),
	}
}

func when(failed bool, format string, args ...any) (string, verdict) {
	if failed {
		return fmt.Sprintf(format, args...), fail
	}
	return "", pass
}

func inList(val, list string) bool {
	for _, item := range strings.Split(list, ",") {
		if strings.TrimSpace(item) == val {
			return true
		}
	}
	return false
}

func compare(ok func(a, b float64) bool, phrase string) check {
	return func(_ *Validator, f, val, p string) (string, verdict) {
		a, _ := strconv.ParseFloat(val, 64)
		b, _ := strconv.ParseFloat(p, 64)
		return when(!ok(a, b), "The %s must be %s %s.", f, phrase, p)
	}
}
