package navigation

import "strings"

// Entry is one level of the stack: the route and the screen built for it.
// The screen keeps its own scroll position and query observer, so popping
// back to an entry shows it exactly as it was left.
type Entry[S any] struct {
	Route  Route
	Screen S
}

// Stack is the linear navigation history. The root entry is never popped.
//
//	Root:       [Books]
//	Book:       [Books | Longsword Manual]
//	Chapter:    [Books | Longsword Manual | Zornhau]
//	Technique:  [Books | Longsword Manual | Zornhau | Zornhau Ort]
type Stack[S any] struct {
	entries []Entry[S]
}

// NewStack creates a stack holding only the root entry
func NewStack[S any](root Route, screen S) *Stack[S] {
	return &Stack[S]{entries: []Entry[S]{{Route: root, Screen: screen}}}
}

// Len returns the number of entries in the stack
func (s *Stack[S]) Len() int {
	return len(s.entries)
}

// Depth returns the navigation depth (0 = root)
func (s *Stack[S]) Depth() int {
	if len(s.entries) == 0 {
		return 0
	}
	return len(s.entries) - 1
}

// Get returns the entry at idx (0 = root)
func (s *Stack[S]) Get(idx int) (Entry[S], bool) {
	if idx < 0 || idx >= len(s.entries) {
		return Entry[S]{}, false
	}
	return s.entries[idx], true
}

// Top returns the current entry
func (s *Stack[S]) Top() Entry[S] {
	return s.entries[len(s.entries)-1]
}

// Parent returns the entry below the top, if any
func (s *Stack[S]) Parent() (Entry[S], bool) {
	return s.Get(len(s.entries) - 2)
}

// Push makes route the current entry
func (s *Stack[S]) Push(route Route, screen S) {
	s.entries = append(s.entries, Entry[S]{Route: route, Screen: screen})
}

// Pop removes and returns the top entry.
// ok is false at the root, which is never popped.
func (s *Stack[S]) Pop() (popped Entry[S], ok bool) {
	if len(s.entries) <= 1 {
		return Entry[S]{}, false
	}
	popped = s.entries[len(s.entries)-1]
	s.entries[len(s.entries)-1] = Entry[S]{}
	s.entries = s.entries[:len(s.entries)-1]
	return popped, true
}

// CanGoBack returns true if we can navigate back (not at root)
func (s *Stack[S]) CanGoBack() bool {
	return len(s.entries) > 1
}

// Each calls fn for every entry, root first
func (s *Stack[S]) Each(fn func(Entry[S])) {
	for _, e := range s.entries {
		fn(e)
	}
}

// Breadcrumb joins the route titles from root to top
func (s *Stack[S]) Breadcrumb(sep string) string {
	titles := make([]string, len(s.entries))
	for i, e := range s.entries {
		titles[i] = e.Route.Title()
	}
	return strings.Join(titles, sep)
}
