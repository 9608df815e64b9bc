package vos

import (
	"sort"
	"strings"
)

// Env is an environment variable set owned by a single Context.
type Env struct {
	vars map[string]string
}

// NewEnv creates an empty environment.
func NewEnv() *Env {
	return &Env{vars: make(map[string]string)}
}

// NewEnvFromList creates an environment from "key=value" entries. Later
// entries win; an entry without "=" sets an empty value.
func NewEnvFromList(environ []string) *Env {
	env := NewEnv()
	env.Merge(environ)
	return env
}

// Merge sets every "key=value" entry in environ.
func (e *Env) Merge(environ []string) {
	for _, entry := range environ {
		key, value := splitEntry(entry)
		e.Setenv(key, value)
	}
}

// Setenv sets key to value.
func (e *Env) Setenv(key, value string) {
	e.vars[key] = value
}

// Unsetenv removes key.
func (e *Env) Unsetenv(key string) {
	delete(e.vars, key)
}

// LookupEnv returns the value of key and whether it was set.
func (e *Env) LookupEnv(key string) (string, bool) {
	val, ok := e.vars[key]
	return val, ok
}

// Getenv returns the value of key, or "" if unset.
func (e *Env) Getenv(key string) string {
	return e.vars[key]
}

// Environ returns the variables as "key=value" entries sorted by key.
func (e *Env) Environ() []string {
	out := make([]string, 0, len(e.vars))
	for k, v := range e.vars {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

func splitEntry(entry string) (key, value string) {
	split := strings.SplitN(entry, "=", 2)
	key = split[0]
	if len(split) > 1 {
		value = split[1]
	}
	return
}
