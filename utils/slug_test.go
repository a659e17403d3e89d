package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"My Business!! Co.", "my-business-co"},
		{"  Everests Painting & Sons  ", "everests-painting-sons"},
		{"already-clean", "already-clean"},
		{"UPPER case", "upper-case"},
		{"---", ""},
		{"", ""},
		{"a__b..c", "a-b-c"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeSlug(c.in), "input %q", c.in)
	}
}
