// Package assets embeds the built-in word lists.
package assets

import (
	"embed"
)

//go:embed wordlists.yaml
var FS embed.FS

// WordLists returns the raw YAML document holding the built-in lists.
func WordLists() ([]byte, error) {
	return FS.ReadFile("wordlists.yaml")
}
