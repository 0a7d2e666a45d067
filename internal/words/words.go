// internal/words/words.go
//
// Provides word list management for the game engine.
//
// Responsibilities:
//   - Decode the embedded built-in lists ("Golden Words", "Teddy Words").
//   - Load extra lists from YAML or plain-text files.
//   - Expose the virtual "All Lists" list: every named list concatenated.
//
// List files:
//   - YAML: a mapping of list name to a sequence of words. Order is kept.
//   - Text: one word per line, blank lines and "#" comments skipped. The
//     list is named after the file base name without extension.
//
// Constraints:
//   • Words must be non-empty and alphabetic (a–z, A–Z); any length.
//   • Casing is kept as written so "I" still reads as the pronoun.
//   • No dictionary check: guesses are never validated against a list.

package words

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordling/assets"
)

// AllLists names the concatenation of every registered list.
const AllLists = "All Lists"

var (
	ErrUnknownList = errors.New("words: unknown list")
	ErrEmptyList   = errors.New("words: list is empty")
	ErrInvalidWord = errors.New("words: word must be alphabetic")
)

// Registry holds named word lists in registration order.
// Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	names []string
	lists map[string][]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{lists: make(map[string][]string)}
}

// Builtin returns a registry preloaded with the embedded lists.
func Builtin() (*Registry, error) {
	data, err := assets.WordLists()
	if err != nil {
		return nil, fmt.Errorf("words: read embedded lists: %w", err)
	}
	r := NewRegistry()
	if err := r.addYAML(data); err != nil {
		return nil, fmt.Errorf("words: embedded lists: %w", err)
	}
	return r, nil
}

// Add registers list under name, replacing any previous list of that name.
func (r *Registry) Add(name string, list []string) error {
	name = strings.TrimSpace(name)
	if name == "" || name == AllLists {
		return fmt.Errorf("words: invalid list name %q", name)
	}
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if !isAlpha(w) {
			return fmt.Errorf("%w: %q in %q", ErrInvalidWord, w, name)
		}
		out = append(out, w)
	}
	if len(out) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyList, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.lists[name]; !ok {
		r.names = append(r.names, name)
	}
	r.lists[name] = out
	return nil
}

// Names returns the registered list names followed by AllLists.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]string(nil), r.names...)
	if len(out) > 0 {
		out = append(out, AllLists)
	}
	return out
}

// Get returns a copy of the named list. AllLists concatenates every list
// in registration order.
func (r *Registry) Get(name string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if name == AllLists {
		var out []string
		for _, n := range r.names {
			out = append(out, r.lists[n]...)
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptyList, name)
		}
		return out, nil
	}
	list, ok := r.lists[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownList, name)
	}
	return append([]string(nil), list...), nil
}

// LoadFile adds the lists found in path. Files ending in .yaml or .yml are
// decoded as a name → words mapping; anything else is read as plain text.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("words: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := r.addYAML(data); err != nil {
			return fmt.Errorf("words: %s: %w", path, err)
		}
		return nil
	}
	list, err := readLines(data)
	if err != nil {
		return fmt.Errorf("words: %s: %w", path, err)
	}
	base := filepath.Base(path)
	return r.Add(strings.TrimSuffix(base, filepath.Ext(base)), list)
}

// addYAML decodes a mapping node so list order follows the document.
func (r *Registry) addYAML(data []byte) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if len(doc.Content) == 0 {
		return ErrEmptyList
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return errors.New("expected a mapping of list name to words")
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		var list []string
		if err := root.Content[i+1].Decode(&list); err != nil {
			return fmt.Errorf("list %q: %w", name, err)
		}
		if err := r.Add(name, list); err != nil {
			return err
		}
	}
	return nil
}

// readLines splits a text file into words, skipping blanks and comments.
func readLines(data []byte) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// isAlpha reports whether s is all ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return false
		}
	}
	return true
}
