package pages

import (
	"embed"
	"io/fs"
)

//go:embed sample/*.html
var sampleFS embed.FS

// Sample is a small bundled survey, used when no pages directory is
// configured.
func Sample() fs.FS {
	sub, err := fs.Sub(sampleFS, "sample")
	if err != nil {
		panic(err)
	}
	return sub
}
