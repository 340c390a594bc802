package domain

import (
	"slices"
	"strings"
)

// EnvSnapshot is a case-insensitive set of environment variables.
// A snapshot is built once, by merging a toolchain setup script's captured
// variable dump over a base environment, and is shared read-only afterwards.
type EnvSnapshot struct {
	vars map[string]envVar // keyed by upper-cased name
}

type envVar struct {
	name  string // original spelling of the first writer
	value string
}

// NewEnvSnapshot builds a snapshot from "NAME=VALUE" entries, typically
// os.Environ(). Entries without '=' are ignored.
func NewEnvSnapshot(environ []string) *EnvSnapshot {
	s := &EnvSnapshot{vars: make(map[string]envVar, len(environ))}
	for _, entry := range environ {
		if k, v, ok := strings.Cut(entry, "="); ok && strings.TrimSpace(k) != "" {
			s.Set(k, v)
		}
	}
	return s
}

// Clone returns an independent copy of the snapshot.
func (s *EnvSnapshot) Clone() *EnvSnapshot {
	c := &EnvSnapshot{vars: make(map[string]envVar, len(s.vars))}
	for k, v := range s.vars {
		c.vars[k] = v
	}
	return c
}

// Set writes a variable. Matching is case-insensitive: when the name already
// exists under any casing the value is replaced and the stored spelling kept.
func (s *EnvSnapshot) Set(name, value string) {
	key := strings.ToUpper(name)
	if existing, ok := s.vars[key]; ok {
		existing.value = value
		s.vars[key] = existing
		return
	}
	s.vars[key] = envVar{name: name, value: value}
}

// Get reads a variable by case-insensitive name.
func (s *EnvSnapshot) Get(name string) (string, bool) {
	v, ok := s.vars[strings.ToUpper(name)]
	return v.value, ok
}

// Len returns the number of variables in the snapshot.
func (s *EnvSnapshot) Len() int {
	return len(s.vars)
}

// MergeAssignments parses a line-oriented "NAME=VALUE" dump, as emitted by a
// shell's variable table, and applies every parsed assignment to the snapshot.
// Lines that do not split into two parts on the first '=', or whose name part
// is empty or whitespace, are skipped; the parse is best-effort by contract.
// Merging the same dump twice is idempotent.
func (s *EnvSnapshot) MergeAssignments(dump string) {
	for _, line := range strings.Split(dump, "\n") {
		line = strings.TrimSuffix(line, "\r")
		name, value, ok := strings.Cut(line, "=")
		if !ok || strings.TrimSpace(name) == "" {
			continue
		}
		s.Set(name, value)
	}
}

// Environ renders the snapshot as sorted "NAME=VALUE" entries suitable for
// process execution.
func (s *EnvSnapshot) Environ() []string {
	out := make([]string, 0, len(s.vars))
	for _, v := range s.vars {
		out = append(out, v.name+"="+v.value)
	}
	slices.Sort(out)
	return out
}
