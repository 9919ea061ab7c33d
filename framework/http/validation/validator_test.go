package validation_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-nestforge/framework/http/validation"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func pass(t *testing.T, label string, data map[string]string, rules validation.Rules) {
	t.Helper()
	t.Run(label, func(t *testing.T) {
		v := validation.Make(data, rules)
		assert.False(t, v.Fails(), "errors: %+v", v.Errors().Bag)
	})
}

func fail(t *testing.T, label, field string, data map[string]string, rules validation.Rules) {
	t.Helper()
	t.Run(label, func(t *testing.T) {
		v := validation.Make(data, rules)
		assert.True(t, v.Fails(), "expected failure on %q", field)
		assert.NotEmpty(t, v.Errors().First(field))
	})
}

// ── rules ────────────────────────────────────────────────────────────────────

func TestValidation_Required(t *testing.T) {
	r := validation.Rules{"name": "required"}

	pass(t, "non-empty", map[string]string{"name": "Alice"}, r)
	fail(t, "empty", "name", map[string]string{"name": ""}, r)
	fail(t, "whitespace", "name", map[string]string{"name": "   "}, r)
	fail(t, "missing", "name", map[string]string{}, r)
}

func TestValidation_RequiredMessage(t *testing.T) {
	v := validation.Make(map[string]string{}, validation.Rules{"APP_NAME": "required"})
	require.True(t, v.Fails())
	assert.Equal(t, "The APP_NAME field is required.", v.Errors().First("APP_NAME"))
}

func TestValidation_MinMax(t *testing.T) {
	pass(t, "min exact", map[string]string{"k": "abc"}, validation.Rules{"k": "min:3"})
	fail(t, "min short", "k", map[string]string{"k": "ab"}, validation.Rules{"k": "min:3"})
	pass(t, "max exact", map[string]string{"k": "abcde"}, validation.Rules{"k": "max:5"})
	fail(t, "max long", "k", map[string]string{"k": "abcdef"}, validation.Rules{"k": "max:5"})
	pass(t, "runes not bytes", map[string]string{"k": "héé"}, validation.Rules{"k": "size:3"})
}

func TestValidation_In(t *testing.T) {
	r := validation.Rules{"env": "in:local, production,testing"}

	pass(t, "listed", map[string]string{"env": "production"}, r)
	fail(t, "not listed", "env", map[string]string{"env": "staging"}, r)
	fail(t, "not_in", "env", map[string]string{"env": "local"}, validation.Rules{"env": "not_in:local"})
}

func TestValidation_Sometimes(t *testing.T) {
	r := validation.Rules{"port": "sometimes|integer"}

	pass(t, "absent", map[string]string{}, r)
	pass(t, "valid", map[string]string{"port": "8080"}, r)
	fail(t, "invalid", "port", map[string]string{"port": "eighty"}, r)
}

func TestValidation_Formats(t *testing.T) {
	pass(t, "email", map[string]string{"e": "user@example.com"}, validation.Rules{"e": "email"})
	fail(t, "bad email", "e", map[string]string{"e": "nope"}, validation.Rules{"e": "email"})
	pass(t, "url", map[string]string{"u": "https://x.io"}, validation.Rules{"u": "url"})
	fail(t, "bad url", "u", map[string]string{"u": "ftp://x.io"}, validation.Rules{"u": "url"})
	pass(t, "boolean", map[string]string{"b": "YES"}, validation.Rules{"b": "boolean"})
	fail(t, "alpha_dash", "s", map[string]string{"s": "a b"}, validation.Rules{"s": "alpha_dash"})
	pass(t, "regex", map[string]string{"s": "v12"}, validation.Rules{"s": `regex:^v\d+$`})
}

func TestValidation_Numeric(t *testing.T) {
	pass(t, "gte", map[string]string{"age": "18"}, validation.Rules{"age": "numeric|gte:18"})
	fail(t, "gte", "age", map[string]string{"age": "17"}, validation.Rules{"age": "numeric|gte:18"})
	fail(t, "gt", "n", map[string]string{"n": "1"}, validation.Rules{"n": "gt:1"})
	pass(t, "lt", map[string]string{"n": "0.5"}, validation.Rules{"n": "lt:1"})
	fail(t, "lte", "n", map[string]string{"n": "2"}, validation.Rules{"n": "lte:1"})
}

func TestValidation_BailsOnFirstFailure(t *testing.T) {
	v := validation.Make(map[string]string{"email": ""}, validation.Rules{"email": "required|email"})
	require.True(t, v.Fails())
	assert.Len(t, v.Errors().Bag["email"], 1)
}

// ── Errors ───────────────────────────────────────────────────────────────────

func TestErrors_AsError(t *testing.T) {
	v := validation.Make(map[string]string{"b": ""}, validation.Rules{
		"a": "required",
		"b": "required",
	})
	err := v.Validate()
	require.Error(t, err)

	var bag *validation.Errors
	require.ErrorAs(t, err, &bag)
	assert.Equal(t, []string{"a", "b"}, bag.Fields())
	assert.Equal(t, "The a field is required. The b field is required.", err.Error())

	out, jerr := json.Marshal(bag)
	require.NoError(t, jerr)
	assert.JSONEq(t, `{"errors":{"a":["The a field is required."],"b":["The b field is required."]}}`, string(out))
}

func TestValidate_NilWhenPassing(t *testing.T) {
	v := validation.Make(map[string]string{"a": "x"}, validation.Rules{"a": "required"})
	assert.NoError(t, v.Validate())
}
