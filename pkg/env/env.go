package env

import "os"

// Get returns the named environment variable, falling back when unset or
// empty. Used before config parsing runs, e.g. by the logger bootstrap.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
