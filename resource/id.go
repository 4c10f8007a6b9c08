package resource

import "strings"

// ID is a textual resource path of the form "base#fragment" where base
// includes an extension and fragment is optional. Grounded on the Rust
// original's asset/resource_id.rs, including its edge case that a bare
// leading "#" is not treated as a fragment marker for an empty base.
type ID string

// Full returns the id unchanged.
func (id ID) Full() string { return string(id) }

// Base returns the id with any "#fragment" suffix stripped.
func (id ID) Base() string {
	s := string(id)
	if i := strings.IndexByte(s, '#'); i > 0 {
		return s[:i]
	}
	return s
}

// Extension returns the portion of Base() after the last '.', or "" if
// there is none.
func (id ID) Extension() string {
	base := id.Base()
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return ""
	}
	return base[i+1:]
}

// Fragment returns the portion after '#', or ("", false) when there is no
// fragment. A leading "#" with an empty base (e.g. "#fragment") is NOT a
// fragment: the original treats the empty string before '#' as invalid,
// since a resource id always names a base asset.
func (id ID) Fragment() (string, bool) {
	s := string(id)
	i := strings.IndexByte(s, '#')
	if i <= 0 {
		return "", false
	}
	return s[i+1:], true
}

// WithFragment returns a new ID with the given fragment appended (or
// replacing an existing one).
func (id ID) WithFragment(fragment string) ID {
	return ID(id.Base() + "#" + fragment)
}
