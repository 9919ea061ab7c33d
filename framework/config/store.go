package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ErrMissingKey is returned by Require for an absent key.
var ErrMissingKey = errors.New("missing required config key")

// ReadError reports an env file that exists but could not be parsed.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read env file `%s`: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Options controls how an EnvStore is loaded.
type Options struct {
	// EnvFile is read when it exists. Defaults to ".env".
	EnvFile string
	// ExcludeProcessEnv ignores os.Environ.
	ExcludeProcessEnv bool
	// Schema, when set, is checked by ForRoot before the typed config is built.
	Schema *Schema
}

// EnvStore is an immutable snapshot of configuration key/value pairs.
type EnvStore struct {
	values map[string]string
}

// LoadStore builds an EnvStore from the process environment and the env file.
// Process values win over file values; a missing file is not an error.
func LoadStore(opts Options) (*EnvStore, error) {
	values := make(map[string]string)
	if !opts.ExcludeProcessEnv {
		for _, kv := range os.Environ() {
			if k, v, ok := strings.Cut(kv, "="); ok {
				values[k] = v
			}
		}
	}

	path := opts.EnvFile
	if path == "" {
		path = ".env"
	}
	fileValues, err := godotenv.Read(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// optional
	case err != nil:
		return nil, &ReadError{Path: path, Err: err}
	default:
		for k, v := range fileValues {
			if _, ok := values[k]; !ok {
				values[k] = v
			}
		}
	}
	return &EnvStore{values: values}, nil
}

// FromPairs builds a store from alternating key, value arguments.
func FromPairs(kv ...string) *EnvStore {
	values := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		values[kv[i]] = kv[i+1]
	}
	return &EnvStore{values: values}
}

// Get returns the value for key and whether it was set.
func (s *EnvStore) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Value returns the value for key, or fallback when unset.
func (s *EnvStore) Value(key, fallback string) string {
	if v, ok := s.values[key]; ok {
		return v
	}
	return fallback
}

// Require returns the value for key or ErrMissingKey.
func (s *EnvStore) Require(key string) (string, error) {
	v, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingKey, key)
	}
	return v, nil
}

// Int parses key as an int, returning fallback when unset.
func (s *EnvStore) Int(key string, fallback int) (int, error) {
	v, ok := s.values[key]
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config key %s: %w", key, err)
	}
	return n, nil
}

// Bool parses key as a bool, returning fallback when unset.
func (s *EnvStore) Bool(key string, fallback bool) (bool, error) {
	v, ok := s.values[key]
	if !ok || v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("config key %s: %w", key, err)
	}
	return b, nil
}

// Len returns the number of keys.
func (s *EnvStore) Len() int { return len(s.values) }

// data exposes the raw map to the schema validator.
func (s *EnvStore) data() map[string]string { return s.values }
