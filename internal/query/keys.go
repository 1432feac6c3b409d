package query

import (
	"fmt"
	"strings"
)

// Key identifies a cached query. Two keys built from equal parts are equal.
type Key string

// KeyOf builds a key from its parts, e.g. KeyOf("chapters", 5) == "chapters:5"
func KeyOf(parts ...any) Key {
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = fmt.Sprint(p)
	}
	return Key(strings.Join(s, ":"))
}

// HasPrefix reports whether the key starts with prefix
func (k Key) HasPrefix(prefix string) bool {
	return strings.HasPrefix(string(k), prefix)
}
