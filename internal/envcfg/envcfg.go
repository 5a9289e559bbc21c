// Package envcfg resolves configuration values from an ordered list of
// sources. Each source is consulted in priority order and the first
// non-empty value wins. This mirrors layered deployment environments where
// a request-scoped runtime environment overrides the process environment.
package envcfg

import (
	"os"
	"strings"
)

// Source supplies configuration values by key.
type Source interface {
	// Lookup returns the value for key and whether the key was present.
	// Presence with an empty value is not a usable result; Resolver skips it.
	Lookup(key string) (string, bool)
}

// Map is an in-memory Source, typically holding a request-scoped runtime
// environment.
type Map map[string]string

// Lookup implements Source.
func (m Map) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// OS is a Source backed by the process environment.
type OS struct{}

// Lookup implements Source.
func (OS) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Resolver consults its sources in order and returns the first non-empty
// value. A nil or empty Resolver resolves nothing.
type Resolver []Source

// Resolve returns the first non-empty value for key, or "" if no source
// supplies one. Values consisting only of whitespace count as empty.
func (r Resolver) Resolve(key string) string {
	for _, src := range r {
		if src == nil {
			continue
		}
		if v, ok := src.Lookup(key); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
