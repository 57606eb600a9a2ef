// Package pipeline holds the seams to the host image-generation pipeline:
// its image directories and its text-encoding step.
package pipeline

import "path/filepath"

// Image directory kinds the host pipeline exposes.
const (
	KindOutput = "output"
	KindInput  = "input"
	KindTemp   = "temp"
)

// Dirs locates the host pipeline's image directories.
type Dirs struct {
	Output string
	Input  string
	Temp   string
}

// Resolve maps an image reference (kind, subfolder, filename) to an absolute
// path in the matching directory. Unknown kinds fall back to the output
// directory, which is where generated images land.
func (d Dirs) Resolve(kind, subfolder, filename string) string {
	var base string
	switch kind {
	case KindInput:
		base = d.Input
	case KindTemp:
		base = d.Temp
	default:
		base = d.Output
	}
	if subfolder != "" {
		return filepath.Join(base, subfolder, filename)
	}
	return filepath.Join(base, filename)
}
