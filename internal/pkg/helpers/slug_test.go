package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Devworks Bootcamp", "devworks-bootcamp"},
		{"ModernTech Bootcamp", "moderntech-bootcamp"},
		{"UI/UX & Design!", "ui-ux-design"},
		{"  padded  name  ", "padded-name"},
		{"already-a-slug", "already-a-slug"},
		{"MiXeD CaSe 123", "mixed-case-123"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "input %q", tt.in)
	}
}
