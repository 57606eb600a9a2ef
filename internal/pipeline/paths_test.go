package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirsResolve(t *testing.T) {
	dirs := Dirs{Output: "/srv/output", Input: "/srv/input", Temp: "/srv/temp"}

	tests := []struct {
		kind      string
		subfolder string
		filename  string
		expected  string
	}{
		{KindOutput, "", "a.png", filepath.Join("/srv/output", "a.png")},
		{KindInput, "refs", "b.png", filepath.Join("/srv/input", "refs", "b.png")},
		{KindTemp, "", "c.png", filepath.Join("/srv/temp", "c.png")},
		{"", "", "d.png", filepath.Join("/srv/output", "d.png")},
		{"bogus", "x", "e.png", filepath.Join("/srv/output", "x", "e.png")},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, dirs.Resolve(tt.kind, tt.subfolder, tt.filename))
	}
}
