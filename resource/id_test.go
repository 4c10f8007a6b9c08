package resource_test

import (
	"testing"

	"github.com/byte-engine/engine/resource"
)

func TestResourceIDProjections(t *testing.T) {
	cases := []struct {
		id       resource.ID
		base     string
		ext      string
		fragment string
		hasFrag  bool
	}{
		{"name.extension", "name.extension", "extension", "", false},
		{"name.extension#fragment", "name.extension", "extension", "fragment", true},
		{"#fragment", "#fragment", "", "", false},
		{"name", "name", "", "", false},
	}
	for _, c := range cases {
		if got := c.id.Base(); got != c.base {
			t.Errorf("Base(%q) = %q, want %q", c.id, got, c.base)
		}
		if got := c.id.Extension(); got != c.ext {
			t.Errorf("Extension(%q) = %q, want %q", c.id, got, c.ext)
		}
		frag, ok := c.id.Fragment()
		if ok != c.hasFrag || frag != c.fragment {
			t.Errorf("Fragment(%q) = (%q, %v), want (%q, %v)", c.id, frag, ok, c.fragment, c.hasFrag)
		}
	}
}
