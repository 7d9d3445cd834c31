package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsImage(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"a.png", true},
		{"c.JPG", true},
		{"d.gif", true},
		{"e.Jpeg", true},
		{"f.BMP", true},
		{"b.txt", false},
		{"noext", false},
		{"archive.png.7z", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, IsImage(tc.name), tc.name)
	}
}

func TestIsHidden(t *testing.T) {
	assert.True(t, IsHidden(".x.png"))
	assert.False(t, IsHidden("x.png"))
}
