// Package validation checks flat string maps against pipe-separated rule
// strings.
//
// The config package compiles its environment Schema into these rules, and
// DTOs implementing Validate() error can use it to fill a message bag that
// ValidatedBody turns into a 400 response.
//
//	v := validation.Make(map[string]string{
//	    "name":  "Alice",
//	    "email": "alice@example.com",
//	}, validation.Rules{
//	    "name":  "required|min:2|max:100",
//	    "email": "required|email",
//	})
//
//	if err := v.Validate(); err != nil {
//	    // err is *validation.Errors
//	}
//
// Rules: required, sometimes, nullable, numeric, integer, boolean, email, url,
// min:n, max:n, size:n, in:a,b, not_in:a,b, same:other, different:other,
// alpha, alpha_num, alpha_dash, regex:pattern, gt:n, gte:n, lt:n, lte:n.
// Unknown rule names are ignored. Processing of a field stops at its first
// failing rule; sometimes and nullable stop it silently on an empty value.
//
// Fields are checked in sorted order so messages are deterministic.
package validation
